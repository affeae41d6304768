package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
	"github.com/yourusername/sku-target-cleaner/internal/transform"
)

// Upload a file as received from the user
type Upload struct {
	Name string
	Data []byte
}

// ProcessRequest inputs of one cleaning run
type ProcessRequest struct {
	Main    Upload
	Grade   Upload
	Options entity.Options
	// GradeSheetName optional sheet of the grade workbook; first sheet if empty
	GradeSheetName string
	MainSheetName  string
}

// ProcessResult a finished run: records, diagnostics and the encoded output
type ProcessResult struct {
	RunID       string
	Result      entity.Result
	Output      []byte
	Filename    string
	ContentType string
}

// CleanerUseCase business logic of the target cleaner
type CleanerUseCase interface {
	// Process reads both sheets, transforms them and encodes the records
	Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error)

	// History latest runs, newest first
	History(ctx context.Context, limit int) ([]entity.Run, error)

	// Run one history entry by ID
	Run(ctx context.Context, id string) (*entity.Run, error)
}

type cleanerUseCase struct {
	reader repository.SheetReader
	writer repository.RecordWriter
	runs   repository.RunRepository
	now    func() time.Time
}

// NewCleanerUseCase creates a CleanerUseCase
func NewCleanerUseCase(
	reader repository.SheetReader,
	writer repository.RecordWriter,
	runs repository.RunRepository,
) CleanerUseCase {
	return &cleanerUseCase{
		reader: reader,
		writer: writer,
		runs:   runs,
		now:    time.Now,
	}
}

// Process reads both sheets, transforms them and encodes the records.
// An empty result is not an error; check Result.Empty.
func (u *cleanerUseCase) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	if len(req.Main.Data) == 0 || len(req.Grade.Data) == 0 {
		return nil, errors.New("both the target sheet and the grade sheet are required")
	}

	opts := req.Options
	opts.Month = NormalizeMonth(opts.Month)

	run := entity.Run{
		ID:          uuid.New().String(),
		Source:      req.Main.Name,
		GradeSource: req.Grade.Name,
		Month:       opts.Month,
		Brand:       opts.Brand,
		CreatedAt:   u.now(),
	}

	result, output, err := u.process(ctx, req, opts)
	if err != nil {
		run.Status = entity.RunFailed
		run.Error = err.Error()
		u.saveRun(ctx, run)
		return nil, err
	}

	run.Records = len(result.Records)
	run.Skipped = result.Diagnostics.Total()
	run.Status = entity.RunOK
	if result.Empty() {
		run.Status = entity.RunEmpty
		log.Printf("⚠️ Run %s: no valid records in %s (skipped: %s)", run.ID, req.Main.Name, DescribeDiagnostics(result.Diagnostics))
	} else {
		log.Printf("✅ Run %s: %d records from %s, %d store columns, %d graded SKUs (skipped: %s)",
			run.ID, run.Records, req.Main.Name, len(result.StoreColumns), result.GradedSKUs, DescribeDiagnostics(result.Diagnostics))
	}
	u.saveRun(ctx, run)

	return &ProcessResult{
		RunID:       run.ID,
		Result:      result,
		Output:      output,
		Filename:    OutputFilename(opts.Brand, opts.Month, u.writer.Extension()),
		ContentType: u.writer.ContentType(),
	}, nil
}

func (u *cleanerUseCase) process(ctx context.Context, req ProcessRequest, opts entity.Options) (entity.Result, []byte, error) {
	main, err := u.reader.ReadSheetFromBytes(ctx, req.Main.Data, req.Main.Name,
		entity.ReadOptions{HeaderRow: opts.HeaderRow, SheetName: req.MainSheetName})
	if err != nil {
		return entity.Result{}, nil, fmt.Errorf("failed to read target sheet: %w", err)
	}

	grade, err := u.reader.ReadSheetFromBytes(ctx, req.Grade.Data, req.Grade.Name,
		entity.ReadOptions{SheetName: req.GradeSheetName})
	if err != nil {
		return entity.Result{}, nil, fmt.Errorf("failed to read grade sheet: %w", err)
	}

	result, err := transform.Transform(main, grade, opts)
	if err != nil {
		return entity.Result{}, nil, fmt.Errorf("failed to transform %s: %w", req.Main.Name, err)
	}

	var buf bytes.Buffer
	if err := u.writer.Write(&buf, result.Records); err != nil {
		return entity.Result{}, nil, fmt.Errorf("failed to encode records: %w", err)
	}

	return result, buf.Bytes(), nil
}

// saveRun history is best effort; a failed write never fails the run
func (u *cleanerUseCase) saveRun(ctx context.Context, run entity.Run) {
	if u.runs == nil {
		return
	}
	if err := u.runs.SaveRun(ctx, run); err != nil {
		log.Printf("Failed to save run %s: %v", run.ID, err)
	}
}

// History latest runs, newest first
func (u *cleanerUseCase) History(ctx context.Context, limit int) ([]entity.Run, error) {
	if u.runs == nil {
		return nil, nil
	}
	return u.runs.ListRuns(ctx, limit)
}

// Run one history entry by ID
func (u *cleanerUseCase) Run(ctx context.Context, id string) (*entity.Run, error) {
	if u.runs == nil {
		return nil, fmt.Errorf("run %s not found: history is disabled", id)
	}
	return u.runs.GetRun(ctx, id)
}

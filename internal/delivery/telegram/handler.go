package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

// BotHandler Telegram bot handler
type BotHandler struct {
	bot            *tgbotapi.BotAPI
	cleanerUseCase usecase.CleanerUseCase
	sessions       *sessionStore
	previewRows    int
	maxUploadBytes int
}

// NewBotHandler creates the bot; defaults seed every chat's settings
func NewBotHandler(
	token string,
	cleanerUseCase usecase.CleanerUseCase,
	defaults entity.Options,
	previewRows int,
	maxUploadMB int,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:            bot,
		cleanerUseCase: cleanerUseCase,
		sessions:       newSessionStore(defaults),
		previewRows:    previewRows,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Start polls updates until ctx is cancelled
func (h *BotHandler) Start(ctx context.Context) error {
	log.Printf("Bot @%s started", h.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot stopping...")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			// Slots are claimed here, in update order, before any download starts.
			if update.Message.Document != nil && !h.reserveUpload(update.Message) {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes one incoming message
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		return
	}
	if name, ok := h.sessions.pendingMain(message.Chat.ID); ok {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("📎 Target sheet %s is waiting. Send the product grade sheet.", name))
		return
	}
	h.sendMessage(message.Chat.ID, "📎 Send the target sheet, then the grade sheet. /help for commands.")
}

// handleCommand commands
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch cmd := message.Command(); cmd {
	case "start":
		h.sendMessage(chatID, h.getWelcomeMessage())
	case "help":
		h.sendMessage(chatID, h.getHelpMessage())
	case "settings":
		h.sendMessage(chatID, describeOptions(h.sessions.options(chatID)))
	case "month", "brand", "mode", "strict", "headerrow":
		opts, err := h.sessions.apply(chatID, cmd, message.CommandArguments())
		if err != nil {
			h.sendMessage(chatID, "❌ "+err.Error())
			return
		}
		h.sendMessage(chatID, "✅ Saved.\n\n"+describeOptions(opts))
	case "reset":
		h.sessions.reset(chatID)
		h.sendMessage(chatID, "🧹 Uploads and settings cleared.")
	case "history":
		h.handleHistoryCommand(ctx, message)
	default:
		h.sendMessage(chatID, "Unknown command. /help for help.")
	}
}

// reserveUpload validates a document and claims its slot in the pair. It
// runs on the update loop; replies go out asynchronously.
func (h *BotHandler) reserveUpload(message *tgbotapi.Message) bool {
	chatID := message.Chat.ID
	doc := message.Document

	if problem := h.uploadProblem(doc); problem != "" {
		go h.sendMessage(chatID, problem)
		return false
	}
	if err := h.sessions.reserve(chatID, message.MessageID, doc.FileName); err != nil {
		go h.sendMessage(chatID, "⏳ "+err.Error())
		return false
	}
	return true
}

func (h *BotHandler) uploadProblem(doc *tgbotapi.Document) string {
	if doc.FileSize > h.maxUploadBytes {
		return fmt.Sprintf("❌ File must not exceed %d MB.", h.maxUploadBytes/1024/1024)
	}
	if !isSupportedUpload(doc.FileName) {
		return "❌ Only .xlsx and .csv files are accepted."
	}
	return ""
}

// handleDocumentMessage the earlier message is the target sheet, the later
// one the grade sheet, whatever order the downloads finish in
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	fileBytes, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		log.Printf("File download error: %v", err)
		h.sessions.release(chatID, message.MessageID)
		h.sendMessage(chatID, "❌ Could not download the file.")
		return
	}

	main, grade, opts, state := h.sessions.complete(chatID, message.MessageID, fileBytes)
	switch state {
	case uploadWaitingForGrade:
		h.sendMessage(chatID, fmt.Sprintf("📥 Target sheet %s received. Now send the product grade sheet.", doc.FileName))
		return
	case uploadWaitingForPeer, uploadDropped:
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("⏳ Processing %s with grades from %s...", main.Name, grade.Name))

	res, err := h.cleanerUseCase.Process(ctx, usecase.ProcessRequest{
		Main:    main,
		Grade:   grade,
		Options: opts,
	})
	if err != nil {
		log.Printf("Process error for chat %d: %v", chatID, err)
		h.sendMessage(chatID, failureMessage(err))
		return
	}

	if res.Result.Empty() {
		h.sendMessage(chatID, fmt.Sprintf(`⚠️ No valid data found.

Check that the SKU column is named "SKU" (or is column F) and that store columns look like "TTFROS004 - TikTok Electric".

Skipped: %s`, usecase.DescribeDiagnostics(res.Result.Diagnostics)))
		return
	}

	h.sendPreview(chatID, res)

	file := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: res.Filename, Bytes: res.Output})
	file.Caption = fmt.Sprintf("✅ %d rows generated", len(res.Result.Records))
	if _, err := h.bot.Send(file); err != nil {
		log.Printf("Failed to send document: %v", err)
		h.sendMessage(chatID, "❌ Could not send the result file.")
	}
}

// handleHistoryCommand latest runs
func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	runs, err := h.cleanerUseCase.History(ctx, 10)
	if err != nil {
		h.sendMessage(message.Chat.ID, "Could not load history.")
		return
	}

	if len(runs) == 0 {
		h.sendMessage(message.Chat.ID, "No runs yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Latest runs:\n\n")
	for i, run := range runs {
		fmt.Fprintf(&sb, "%d. %s %s → %s, %d rows (%s)\n",
			i+1, run.CreatedAt.Format("2006-01-02 15:04"), run.Source, run.Status, run.Records, run.Brand)
		if run.Error != "" {
			fmt.Fprintf(&sb, "   ↳ %s\n", run.Error)
		}
	}

	h.sendMessage(message.Chat.ID, sb.String())
}

// downloadFile fetches an uploaded file from Telegram
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (h *BotHandler) sendPreview(chatID int64, res *usecase.ProcessResult) {
	if h.previewRows <= 0 {
		return
	}
	preview := usecase.PreviewTable(res.Result.Records, h.previewRows)
	msg := tgbotapi.NewMessage(chatID, "<pre>"+html.EscapeString(preview)+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Failed to send preview: %v", err)
	}
}

// sendMessage plain text message
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func isSupportedUpload(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	}
	return false
}

// failureMessage tells layout problems apart from everything else
func failureMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoStoreColumns):
		return "❌ No store columns found. Headers must look like \"TTFROS004 - TikTok Electric\". Try /mode positional for the fixed S..AH layout."
	case errors.Is(err, entity.ErrStructural):
		return fmt.Sprintf("❌ The file layout is not as expected: %v\n\nCheck /settings (header row, mode) and send both files again.", err)
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}

// getWelcomeMessage welcome text
func (h *BotHandler) getWelcomeMessage() string {
	return `👋 SKU Target Cleaner

Send me two files:
1. the target sheet (per-store monthly targets)
2. the product grade sheet (SKU, Grade)

I will reply with a preview and a cleaned CSV: one row per SKU, store and month.

/help - commands`
}

// getHelpMessage command list
func (h *BotHandler) getHelpMessage() string {
	return `🤖 Commands:

/settings - current settings
/month 2026-01-01 - month written to every row
/brand freemir - brand written to every row
/headerrow 4 - row number of the target sheet header (1 = first row)
/mode pattern|positional - find store columns by header or use columns S..AH
/strict on|off - require " - " between store code and platform
/reset - forget uploads and settings
/history - latest runs`
}

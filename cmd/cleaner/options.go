package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sku-target-cleaner/config"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/transform"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

// optionFlags raw flag values; empty strings and zero mean "use the
// configured default". headerRow is the 1-based row number.
type optionFlags struct {
	month     string
	brand     string
	headerRow int
	mode      string
	colRange  string
	strict    bool
	skuHeader string
	skuColumn string
}

func defaultOptions(cfg *config.Config, now time.Time) (entity.Options, error) {
	opts := entity.DefaultOptions()
	opts.Month = usecase.FirstOfMonth(now)
	opts.Brand = cfg.DefaultBrand
	opts.HeaderRow = cfg.HeaderRow
	opts.StrictSeparator = cfg.StrictSeparator

	mode, err := entity.ParseSelectionMode(cfg.SelectionMode)
	if err != nil {
		return entity.Options{}, fmt.Errorf("SELECTION_MODE: %w", err)
	}
	opts.Selection = mode
	return opts, nil
}

func buildOptions(cfg *config.Config, f optionFlags, now time.Time) (entity.Options, error) {
	opts, err := defaultOptions(cfg, now)
	if err != nil {
		return entity.Options{}, err
	}

	if f.month != "" {
		opts.Month = f.month
	}
	if f.brand != "" {
		opts.Brand = f.brand
	}
	if f.headerRow < 0 {
		return entity.Options{}, fmt.Errorf("--header-row is a 1-based row number, got %d", f.headerRow)
	}
	if f.headerRow > 0 {
		opts.HeaderRow = f.headerRow - 1
	}
	if f.mode != "" {
		if opts.Selection, err = entity.ParseSelectionMode(f.mode); err != nil {
			return entity.Options{}, err
		}
	}
	if f.colRange != "" {
		if opts.PositionalStart, opts.PositionalEnd, err = transform.ParseColumnRange(f.colRange); err != nil {
			return entity.Options{}, err
		}
		if f.mode == "" {
			opts.Selection = entity.SelectionPositional
		}
	}
	if f.strict {
		opts.StrictSeparator = true
	}
	if f.skuHeader != "" {
		opts.SKUHeader = f.skuHeader
	}
	if f.skuColumn != "" {
		n, err := excelize.ColumnNameToNumber(strings.TrimSpace(f.skuColumn))
		if err != nil {
			return entity.Options{}, fmt.Errorf("--sku-column: %w", err)
		}
		opts.SKUFallbackIndex = n - 1
	}

	return opts, nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HEADER_ROW", "DEFAULT_BRAND", "SELECTION_MODE", "PREVIEW_ROWS", "MAX_UPLOAD_MB", "STRICT_SEPARATOR", "RUNS_DB_PATH"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.HeaderRow, "row 4 of the sheet")
	assert.Equal(t, "freemir", cfg.DefaultBrand)
	assert.Equal(t, "data/runs.db", cfg.RunsDBPath)
	assert.Equal(t, 10, cfg.PreviewRows)
}

func TestLoad_HeaderRowIsOneBased(t *testing.T) {
	t.Setenv("HEADER_ROW", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.HeaderRow)

	t.Setenv("HEADER_ROW", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("HEADER_ROW", "four")
	_, err = Load()
	assert.Error(t, err)
}

func TestRequireTelegram(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.RequireTelegram())

	cfg.TelegramToken = "123:abc"
	assert.NoError(t, cfg.RequireTelegram())
}

package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_TEMPERATURE", "")
	t.Setenv("OPENAI_TIMEOUT", "")
	t.Setenv("TESSERACT_LANG", "")
	t.Setenv("JOURNAL_PATH", "")

	cfg := LoadConfig()
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.EqualValues(t, 0.0, cfg.LLM.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "eng", cfg.Extract.TesseractLang)
	assert.Empty(t, cfg.Journal.Path)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("OPENAI_TIMEOUT", "90s")
	t.Setenv("TESSERACT_LANG", "eng+deu")
	t.Setenv("JOURNAL_PATH", "/tmp/jobs.db")

	cfg := LoadConfig()
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.BaseURL)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "eng+deu", cfg.Extract.TesseractLang)
	assert.Equal(t, "/tmp/jobs.db", cfg.Journal.Path)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OPENAI_TEMPERATURE", "hot")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.EqualValues(t, 0.0, cfg.LLM.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg.LLM.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

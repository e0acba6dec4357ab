package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "https://api.jusho.dev", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 300*time.Millisecond, cfg.AutofillDebounce())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "JUSHO_API_URL=http://localhost:8000\nJUSHO_TIMEOUT_MS=5000\nJUSHO_HEADERS=X-API-Key=abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	t.Setenv("JUSHO_TIMEOUT_MS", "1500")

	cfg, err := LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())

	headers, err := cfg.HeaderMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-API-Key": "abc"}, headers)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	t.Setenv("JUSHO_TIMEOUT_MS", "0")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
		wantErr  bool
	}{
		{name: "empty", input: "", expected: map[string]string{}},
		{name: "single", input: "X-API-Key=secret", expected: map[string]string{"X-API-Key": "secret"}},
		{
			name:     "several with spaces",
			input:    " X-API-Key = secret , X-Client=web ,",
			expected: map[string]string{"X-API-Key": "secret", "X-Client": "web"},
		},
		{name: "value with equals", input: "Authorization=Bearer a=b", expected: map[string]string{"Authorization": "Bearer a=b"}},
		{name: "missing separator", input: "X-API-Key", wantErr: true},
		{name: "missing name", input: "=value", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeaders(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

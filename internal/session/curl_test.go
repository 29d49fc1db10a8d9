package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
)

const sampleCurl = `curl 'https://www.aadvantagehotels.com/rest/aadvantage-hotels/places?query=Phoenix' \
  -H 'accept: application/json, text/plain, */*' \
  -H 'accept-language: en-US,en;q=0.9' \
  -H 'X-Xsrf-Token: abc123' \
  -b 'SESSION=deadbeef; XSRF-TOKEN=abc123' \
  --compressed`

func TestParseCurlCommand(t *testing.T) {
	url, headers, err := ParseCurlCommand(sampleCurl)
	require.NoError(t, err)

	assert.Equal(t, "https://www.aadvantagehotels.com/rest/aadvantage-hotels/places?query=Phoenix", url)
	assert.Equal(t, "application/json, text/plain, */*", headers["accept"])
	assert.Equal(t, "abc123", headers["X-Xsrf-Token"])
	assert.Equal(t, "SESSION=deadbeef; XSRF-TOKEN=abc123", headers["Cookie"])
}

func TestParseCurlCommand_DoubleQuotes(t *testing.T) {
	raw := `curl "https://example.com/api" -H 'accept: */*' --cookie "s=1"`

	url, headers, err := ParseCurlCommand(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", url)
	assert.Equal(t, "s=1", headers["Cookie"])
}

func TestParseCurlCommand_CookieFlagOverridesHeader(t *testing.T) {
	raw := `curl 'https://example.com' -H 'Cookie: old=1' -b 'new=2'`

	_, headers, err := ParseCurlCommand(raw)
	require.NoError(t, err)
	assert.Equal(t, "new=2", headers["Cookie"])
}

func TestParseCurlCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "no url", raw: `-H 'accept: */*'`, wantErr: common.ErrCurlNoURL},
		{name: "empty input", raw: "", wantErr: common.ErrCurlNoURL},
		{name: "url but no headers", raw: `curl 'https://example.com'`, wantErr: common.ErrCurlNoHeaders},
		{name: "malformed header ignored", raw: `curl 'https://example.com' -H 'not-a-header'`, wantErr: common.ErrCurlNoHeaders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCurlCommand(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSanity(t *testing.T) {
	assert.Empty(t, Sanity(map[string]string{
		"Cookie":       "s=1",
		"x-xsrf-token": "t",
	}), "header name match is case-insensitive")

	missing := Sanity(map[string]string{"accept": "*/*"})
	assert.ElementsMatch(t, []string{"Cookie", "X-Xsrf-Token"}, missing)
}

func TestSaveAndLoadHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "headers.json")
	headers := map[string]string{
		"Cookie":       "SESSION=deadbeef",
		"X-Xsrf-Token": "abc123",
	}

	require.NoError(t, SaveHeaders(path, headers))

	loaded, err := LoadHeaders(path)
	require.NoError(t, err)
	assert.Equal(t, headers, loaded)
}

func TestLoadHeaders_Missing(t *testing.T) {
	_, err := LoadHeaders(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, common.ErrNoHeaders)
}

func TestLoadHeaders_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadHeaders(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNoHeaders)
}

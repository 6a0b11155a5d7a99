package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apikey.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileSource_JSON(t *testing.T) {
	path := writeSecrets(t, `{"delphiepidata": "abc123", "eventbrite": "other"}`)

	key, err := NewFileSource(path).APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
}

func TestFileSource_YAML(t *testing.T) {
	path := writeSecrets(t, "delphiepidata: abc123\n")

	key, err := NewFileSource(path).APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
}

func TestFileSource_Errors(t *testing.T) {
	tests := map[string]string{
		"missing key":   `{"eventbrite": "x"}`,
		"non-string":    `{"delphiepidata": 42}`,
		"empty value":   `{"delphiepidata": ""}`,
		"malformed":     `{"delphiepidata": `,
		"empty file":    ``,
		"list document": `["delphiepidata"]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeSecrets(t, content)
			_, err := NewFileSource(path).APIKey(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).APIKey(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

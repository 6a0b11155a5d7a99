// Package secrets resolves the influenza API credential.
package secrets

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultKey is the name under which the epidata API key is stored.
const DefaultKey = "delphiepidata"

// Source provides the epidata API key.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// FileSource reads the API key from a local key-value file. JSON and YAML
// documents are both accepted.
type FileSource struct {
	Path string
	Key  string
}

// NewFileSource returns a FileSource reading DefaultKey from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Key: DefaultKey}
}

// APIKey implements Source.
func (s *FileSource) APIKey(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read secrets file: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return "", fmt.Errorf("parse secrets file %s: %w", s.Path, err)
	}
	if values == nil {
		return "", fmt.Errorf("secrets file %s is empty", s.Path)
	}

	return lookup(values, s.Key)
}

func lookup(values map[string]any, key string) (string, error) {
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("secret %q not found", key)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("secret %q must be a string, got %T", key, v)
	}
	if str == "" {
		return "", fmt.Errorf("secret %q is empty", key)
	}
	return str, nil
}

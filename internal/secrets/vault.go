package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig holds the settings needed to read the API key from a KV v2
// secret.
type VaultConfig struct {
	Address    string
	Token      string
	TokenPath  string
	Mount      string
	SecretPath string
}

// GetVaultToken returns the configured token, reading TokenPath when no
// token is set directly.
func (c VaultConfig) GetVaultToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenPath != "" {
		data, err := os.ReadFile(c.TokenPath)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("vault token is not configured")
}

// VaultSource reads the API key from HashiCorp Vault.
type VaultSource struct {
	client *vault.Client
	mount  string
	path   string
	key    string
}

// NewVaultSource creates a Vault-backed Source. No request is made until
// APIKey is called.
func NewVaultSource(cfg VaultConfig) (*VaultSource, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	token, err := cfg.GetVaultToken()
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	mount := cfg.Mount
	if mount == "" {
		mount = "secret"
	}

	return &VaultSource{client: client, mount: mount, path: cfg.SecretPath, key: DefaultKey}, nil
}

// APIKey implements Source.
func (s *VaultSource) APIKey(ctx context.Context) (string, error) {
	secret, err := s.client.KVv2(s.mount).Get(ctx, s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret not found: %s", s.path)
	}
	return lookup(secret.Data, s.key)
}

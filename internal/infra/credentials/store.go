package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"adcraft/internal/infra"
	"adcraft/internal/sqlinline"
)

const (
	ProviderOpenAI    = "openai"
	ProviderReplicate = "replicate"
	ProviderRunway    = "runway"
)

// Store keeps provider API keys in the integration_tokens table. Environment
// configuration takes precedence; this store is the fallback so keys can be
// rotated without a redeploy.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// Token returns the stored API key for a provider, or "" when none is set.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetToken stores or replaces the API key for a provider.
func (s *Store) SetToken(ctx context.Context, provider, key string) error {
	provider = strings.TrimSpace(strings.ToLower(provider))
	key = strings.TrimSpace(key)
	if provider == "" {
		return errors.New("provider is required")
	}
	if key == "" {
		return errors.New("api key is required")
	}
	return s.upsert(ctx, provider, key, nil)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}

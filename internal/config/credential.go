package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outreach-agent/internal/integrations/paramstore"
)

// TokenSource reads a credential document by parameter name.
type TokenSource interface {
	Token(ctx context.Context, name string) (string, error)
}

// TokenParameterName is where the completion credential lives under prefix.
func TokenParameterName(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/open-ai-token"
}

// ResolveCredential returns the completion credential. The environment value
// wins; otherwise the SSM parameter under ParamPrefix is read. An absent
// parameter (or no prefix) yields "" and no error, which selects the mock path.
func ResolveCredential(ctx context.Context, cfg *Config, source TokenSource) (string, error) {
	if cfg.HasCredential() {
		return cfg.OpenAI.APIKey, nil
	}
	if cfg.ParamPrefix == "" || source == nil {
		return "", nil
	}

	token, err := source.Token(ctx, TokenParameterName(cfg.ParamPrefix))
	if errors.Is(err, paramstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("config: resolve credential: %w", err)
	}
	return token, nil
}

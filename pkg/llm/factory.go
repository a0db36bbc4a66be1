package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/apperrors"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// NewInvoker builds a client for the given model identity, choosing the
// implementation by provider.
func NewInvoker(identity *models.ModelIdentity, logger *zap.Logger) (Invoker, error) {
	if identity == nil || !identity.Configured() {
		return nil, apperrors.ErrNoModelConfigured
	}

	cfg := &Config{
		Endpoint: identity.BaseURL,
		Model:    identity.Model,
		APIKey:   identity.APIKey,
	}

	switch identity.Provider {
	case models.ProviderOpenAI, "":
		return NewClient(cfg, logger)
	case models.ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedProvider, identity.Provider)
	}
}

// NewRouterFromIdentities builds a Router from accuracy and turbo model
// identities. The accuracy model is required; when the turbo identity is
// unset its traffic falls back to the accuracy model.
func NewRouterFromIdentities(accuracy, turbo *models.ModelIdentity, recorder UsageRecorder, logger *zap.Logger) (*Router, error) {
	accClient, err := NewInvoker(accuracy, logger)
	if err != nil {
		return nil, fmt.Errorf("accuracy model: %w", err)
	}

	var turboClient Invoker
	if turbo != nil && turbo.Configured() {
		turboClient, err = NewInvoker(turbo, logger)
		if err != nil {
			return nil, fmt.Errorf("turbo model: %w", err)
		}
	}

	return NewRouter(accClient, turboClient, recorder, logger), nil
}

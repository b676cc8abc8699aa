package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/utils/clock"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
)

// GetConfig returns the configuration in effect: the backend copy when the
// backend is reachable and sane, then the locally stored one, then the
// defaults.
func (u *UseCases) GetConfig(ctx context.Context) (*config.Config, error) {
	logger := logging.From(ctx)

	if u.remoteConfig != nil {
		cfg, err := u.remoteConfig.GetConfig(ctx)
		switch {
		case err != nil:
			metrics.ObserveUpstreamError("get_config")
			logger.Warn("backend config unavailable, using local config", "error", err)
		case cfg == nil:
			logger.Warn("backend returned empty config, using local config")
		default:
			if vErr := cfg.Validate(); vErr != nil {
				logger.Warn("backend config is invalid, using local config", "error", vErr)
			} else {
				return cfg, nil
			}
		}
	}

	local, err := u.repository.GetConfig(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get local config")
	}
	if local != nil {
		return local, nil
	}

	cfg := u.defaultConfig
	return &cfg, nil
}

// SaveConfig validates cfg, stores it locally and forwards it to the
// backend.
func (u *UseCases) SaveConfig(ctx context.Context, cfg config.Config) (*config.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UpdatedAt = clock.Now(ctx)

	if err := u.repository.PutConfig(ctx, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to save config")
	}

	if u.remoteConfig == nil {
		return &cfg, nil
	}

	saved, err := u.remoteConfig.PutConfig(ctx, cfg)
	if err != nil {
		metrics.ObserveUpstreamError("put_config")
		if errs.IsValidation(err) || errs.IsUpstream(err) {
			return nil, goerr.Wrap(err, "failed to forward config to backend")
		}
		return nil, goerr.Wrap(err, "failed to forward config to backend", goerr.T(errs.TagUpstream))
	}
	if saved == nil {
		return &cfg, nil
	}
	return saved, nil
}

// ResetConfig restores the default configuration.
func (u *UseCases) ResetConfig(ctx context.Context) (*config.Config, error) {
	logging.From(ctx).Info("resetting config to defaults")
	return u.SaveConfig(ctx, u.defaultConfig)
}

package cli

import (
	"context"

	"github.com/secmon-lab/sentiq/pkg/cli/config"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/usecase"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// engineConfig groups the settings every command needs to build the use
// cases.
type engineConfig struct {
	backend   config.Backend
	firestore config.Firestore
	policy    config.Policy
}

func (x *engineConfig) Flags() []cli.Flag {
	return joinFlags(x.backend.Flags(), x.firestore.Flags(), x.policy.Flags())
}

// hasScoreProvider reports whether a monitoring pass can fetch scores.
func (x *engineConfig) hasScoreProvider() bool {
	return x.backend.IsConfigured()
}

// configure builds the use cases. The returned closer releases the storage
// and is safe to call when an error is returned.
func (x *engineConfig) configure(ctx context.Context, publisher interfaces.EventPublisher) (*usecase.UseCases, func(), error) {
	logging.From(ctx).Info("engine options",
		"backend", x.backend,
		"firestore", x.firestore,
		"policy", x.policy,
	)

	defaults, err := x.policy.Configure()
	if err != nil {
		return nil, func() {}, err
	}

	repo, closer, err := x.firestore.Repository(ctx)
	if err != nil {
		return nil, closer, err
	}

	opts := []usecase.Option{
		usecase.WithRepository(repo),
		usecase.WithDefaultConfig(defaults),
	}
	if publisher != nil {
		opts = append(opts, usecase.WithEventPublisher(publisher))
	}

	client, err := x.backend.Configure()
	if err != nil {
		return nil, closer, err
	}
	if client != nil {
		opts = append(opts,
			usecase.WithScoreProvider(client),
			usecase.WithRemoteAlerts(client),
			usecase.WithRemoteConfig(client),
		)
	} else {
		logging.From(ctx).Warn("backend URL is not set, only locally generated alerts are available")
	}

	return usecase.New(opts...), closer, nil
}

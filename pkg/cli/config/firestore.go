package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/repository"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type Firestore struct {
	projectID  string
	databaseID string
}

func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID. Generated alerts are kept in memory when empty",
			Destination: &c.projectID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("SENTIQ_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Destination: &c.databaseID,
			Category:    "Firestore",
			Sources:     cli.EnvVars("SENTIQ_FIRESTORE_DATABASE_ID"),
			Value:       "(default)",
		},
	}
}

func (c Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project_id", c.projectID),
		slog.String("database_id", c.databaseID),
	)
}

// Configure connects to Firestore. It fails when no project is set.
func (c *Firestore) Configure(ctx context.Context) (*repository.Firestore, error) {
	if !c.IsConfigured() {
		return nil, goerr.New("firestore-project-id is required")
	}
	return repository.NewFirestore(ctx, c.projectID, c.databaseID)
}

// Repository returns Firestore when configured and the in-memory store
// otherwise. The returned closer releases the Firestore client.
func (c *Firestore) Repository(ctx context.Context) (interfaces.Repository, func(), error) {
	if !c.IsConfigured() {
		logging.From(ctx).Warn("Firestore is not configured, generated alerts are kept in memory")
		return repository.NewMemory(), func() {}, nil
	}

	repo, err := c.Configure(ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return repo, safe.CloseFunc(ctx, repo), nil
}

func (c *Firestore) ProjectID() string {
	return c.projectID
}

func (c *Firestore) DatabaseID() string {
	return c.databaseID
}

func (c *Firestore) IsConfigured() bool {
	return c.projectID != ""
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	firestoreadmin "cloud.google.com/go/firestore/apiv1/admin"
	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/cli/config"
	"github.com/secmon-lab/sentiq/pkg/repository"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/iterator"
)

const indexPollInterval = 10 * time.Second

func cmdMigrate() *cli.Command {
	var (
		fsCfg  config.Firestore
		dryRun bool
		noWait bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print planned index changes without applying them",
			Sources:     cli.EnvVars("SENTIQ_MIGRATE_DRY_RUN"),
			Destination: &dryRun,
		},
		&cli.BoolFlag{
			Name:        "no-wait",
			Usage:       "Return as soon as index creation is requested",
			Destination: &noWait,
		},
	}

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Apply Firestore indexes for the generated alert bucket",
		Flags:   joinFlags(fsCfg.Flags(), flags),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !fsCfg.IsConfigured() {
				return goerr.New("firestore-project-id is required for migrate")
			}
			m := &indexMigration{
				projectID:  fsCfg.ProjectID(),
				databaseID: fsCfg.DatabaseID(),
				indexes:    defineFirestoreIndexes(),
				dryRun:     dryRun,
			}
			if err := m.apply(ctx); err != nil {
				return err
			}
			if dryRun || noWait {
				return nil
			}
			return m.waitReady(ctx)
		},
	}
}

type indexMigration struct {
	projectID  string
	databaseID string
	indexes    *fireconf.Config
	dryRun     bool
}

func (m *indexMigration) apply(ctx context.Context) error {
	logger := logging.From(ctx).With("project_id", m.projectID, "database_id", m.databaseID)
	logger.Info("applying alert indexes", "dry_run", m.dryRun)

	opts := []fireconf.Option{fireconf.WithLogger(logger)}
	if m.dryRun {
		opts = append(opts, fireconf.WithDryRun(true))
	}

	client, err := fireconf.NewClient(ctx, m.projectID, m.databaseID, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client",
			goerr.V("project_id", m.projectID),
			goerr.V("database_id", m.databaseID),
		)
	}

	if err := client.Migrate(ctx, m.indexes); err != nil {
		return goerr.Wrap(err, "failed to apply indexes",
			goerr.V("project_id", m.projectID),
			goerr.V("database_id", m.databaseID),
		)
	}

	logger.Info("alert indexes applied")
	return nil
}

// waitReady blocks until no managed index is still building. Composite
// indexes keep building for a while after Migrate returns.
func (m *indexMigration) waitReady(ctx context.Context) error {
	admin, err := firestoreadmin.NewFirestoreAdminClient(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create firestore admin client",
			goerr.V("project_id", m.projectID),
			goerr.V("database_id", m.databaseID),
		)
	}
	defer safe.Close(ctx, admin)

	logger := logging.From(ctx)
	ticker := time.NewTicker(indexPollInterval)
	defer ticker.Stop()

	for {
		pending := 0
		for _, col := range m.indexes.Collections {
			names, err := m.building(ctx, admin, col.Name)
			if err != nil {
				return err
			}
			for _, name := range names {
				logger.Info("index still building", slog.String("collection", col.Name), slog.String("index", name))
			}
			pending += len(names)
		}

		if pending == 0 {
			logger.Info("all alert indexes ready")
			return nil
		}

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "interrupted while waiting for indexes", goerr.V("pending", pending))
		case <-ticker.C:
		}
	}
}

func (m *indexMigration) building(ctx context.Context, admin *firestoreadmin.FirestoreAdminClient, collection string) ([]string, error) {
	parent := fmt.Sprintf("projects/%s/databases/%s/collectionGroups/%s", m.projectID, m.databaseID, collection)

	var names []string
	it := admin.ListIndexes(ctx, &adminpb.ListIndexesRequest{Parent: parent})
	for {
		idx, err := it.Next()
		if err == iterator.Done {
			return names, nil
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list indexes", goerr.V("collection", collection))
		}

		switch idx.GetState() {
		case adminpb.Index_CREATING, adminpb.Index_NEEDS_REPAIR:
			names = append(names, idx.GetName())
		}
	}
}

func ascending(path string) fireconf.IndexField {
	return fireconf.IndexField{Path: path, Order: fireconf.OrderAscending}
}

func descending(path string) fireconf.IndexField {
	return fireconf.IndexField{Path: path, Order: fireconf.OrderDescending}
}

// defineFirestoreIndexes returns the composite indexes of the generated
// alert collection.
func defineFirestoreIndexes() *fireconf.Config {
	alerts := fireconf.Collection{
		Name: repository.CollectionAlerts,
		Indexes: []fireconf.Index{
			// dedup lookup
			{Fields: []fireconf.IndexField{ascending("DriverID"), ascending("Severity"), ascending("Status")}},
			{Fields: []fireconf.IndexField{ascending("Status"), descending("CreatedAt")}},
			// my alerts
			{Fields: []fireconf.IndexField{ascending("AssignedTo"), descending("CreatedAt")}},
		},
	}
	for i := range alerts.Indexes {
		alerts.Indexes[i].QueryScope = fireconf.QueryScopeCollection
	}

	return &fireconf.Config{Collections: []fireconf.Collection{alerts}}
}

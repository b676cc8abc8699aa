package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Firestore struct {
	db *firestore.Client
	eb *goerr.Builder
}

var _ interfaces.Repository = &Firestore{}

func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
			goerr.T(errs.TagDatabase),
		)
	}

	return &Firestore{
		db: db,
		eb: goerr.NewBuilder(goerr.TV(errs.RepositoryKey, "firestore"), goerr.T(errs.TagDatabase)),
	}, nil
}

func (r *Firestore) Close() error {
	return r.db.Close()
}

const (
	// CollectionAlerts holds the locally generated alerts
	CollectionAlerts  = "alerts"
	collectionConfigs = "configs"

	currentConfigDoc = "current"

	// Firestore rejects batches larger than this.
	maxBatchSize = 500
)

func (r *Firestore) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	doc, err := r.db.Collection(CollectionAlerts).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("alert not found",
				goerr.TV(errs.AlertIDKey, id.String()),
				goerr.T(errs.TagNotFound),
			)
		}
		return nil, r.eb.Wrap(err, "failed to get alert",
			goerr.TV(errs.AlertIDKey, id.String()),
			goerr.TV(errs.CollectionKey, CollectionAlerts),
		)
	}

	var a alert.Alert
	if err := doc.DataTo(&a); err != nil {
		return nil, r.eb.Wrap(err, "failed to convert data to alert", goerr.TV(errs.AlertIDKey, id.String()))
	}
	return &a, nil
}

func (r *Firestore) PutAlert(ctx context.Context, a *alert.Alert) error {
	if a == nil {
		return goerr.New("alert is nil", goerr.T(errs.TagValidation))
	}
	if err := a.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	if _, err := r.db.Collection(CollectionAlerts).Doc(a.ID.String()).Set(ctx, a); err != nil {
		return r.eb.Wrap(err, "failed to put alert",
			goerr.TV(errs.AlertIDKey, a.ID.String()),
			goerr.TV(errs.CollectionKey, CollectionAlerts),
		)
	}
	return nil
}

// ListAlerts returns the stored alerts ordered by creation time.
func (r *Firestore) ListAlerts(ctx context.Context) (alert.Alerts, error) {
	iter := r.db.Collection(CollectionAlerts).OrderBy("CreatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var alerts alert.Alerts
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, r.eb.Wrap(err, "failed to get next alert", goerr.TV(errs.CollectionKey, CollectionAlerts))
		}

		var a alert.Alert
		if err := doc.DataTo(&a); err != nil {
			return nil, r.eb.Wrap(err, "failed to convert data to alert", goerr.V("doc_id", doc.Ref.ID))
		}
		alerts = append(alerts, &a)
	}

	return alerts, nil
}

func (r *Firestore) ClearAlerts(ctx context.Context) (int, error) {
	iter := r.db.Collection(CollectionAlerts).Select().Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return 0, r.eb.Wrap(err, "failed to list alerts for deletion", goerr.TV(errs.CollectionKey, CollectionAlerts))
		}
		refs = append(refs, doc.Ref)
	}

	deleted := 0
	for start := 0; start < len(refs); start += maxBatchSize {
		end := min(start+maxBatchSize, len(refs))
		bw := r.db.BulkWriter(ctx)
		for _, ref := range refs[start:end] {
			if _, err := bw.Delete(ref); err != nil {
				bw.End()
				return deleted, r.eb.Wrap(err, "failed to enqueue alert deletion", goerr.V("doc_id", ref.ID))
			}
		}
		bw.End()
		deleted += end - start
	}

	return deleted, nil
}

func (r *Firestore) GetConfig(ctx context.Context) (*config.Config, error) {
	doc, err := r.db.Collection(collectionConfigs).Doc(currentConfigDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, r.eb.Wrap(err, "failed to get config", goerr.TV(errs.CollectionKey, collectionConfigs))
	}

	var cfg config.Config
	if err := doc.DataTo(&cfg); err != nil {
		return nil, r.eb.Wrap(err, "failed to convert data to config")
	}
	return &cfg, nil
}

func (r *Firestore) PutConfig(ctx context.Context, cfg config.Config) error {
	if _, err := r.db.Collection(collectionConfigs).Doc(currentConfigDoc).Set(ctx, cfg); err != nil {
		return r.eb.Wrap(err, "failed to put config", goerr.TV(errs.CollectionKey, collectionConfigs))
	}
	return nil
}

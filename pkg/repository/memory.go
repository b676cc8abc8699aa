package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

type Memory struct {
	mu       sync.RWMutex
	configMu sync.RWMutex

	alerts map[types.AlertID]*alert.Alert
	order  []types.AlertID
	config *config.Config

	// Call counter for tracking method invocations
	callCounts map[string]int
	callMu     sync.RWMutex

	eb *goerr.Builder
}

var _ interfaces.Repository = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		alerts:     make(map[types.AlertID]*alert.Alert),
		callCounts: make(map[string]int),
		eb:         goerr.NewBuilder(goerr.TV(errs.RepositoryKey, "memory")),
	}
}

func (r *Memory) incrementCallCount(methodName string) {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	r.callCounts[methodName]++
}

// GetCallCount returns the number of times a method has been called
func (r *Memory) GetCallCount(methodName string) int {
	r.callMu.RLock()
	defer r.callMu.RUnlock()
	return r.callCounts[methodName]
}

func (r *Memory) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	r.incrementCallCount("GetAlert")
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alerts[id]
	if !ok {
		return nil, r.eb.New("alert not found",
			goerr.TV(errs.AlertIDKey, id.String()),
			goerr.T(errs.TagNotFound),
		)
	}
	return a.Copy(), nil
}

func (r *Memory) PutAlert(ctx context.Context, a *alert.Alert) error {
	r.incrementCallCount("PutAlert")
	if a == nil {
		return r.eb.New("alert is nil", goerr.T(errs.TagValidation))
	}
	if err := a.ID.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alerts[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.alerts[a.ID] = a.Copy()
	return nil
}

// ListAlerts returns the stored alerts in insertion order.
func (r *Memory) ListAlerts(ctx context.Context) (alert.Alerts, error) {
	r.incrementCallCount("ListAlerts")
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := make(alert.Alerts, 0, len(r.order))
	for _, id := range r.order {
		alerts = append(alerts, r.alerts[id].Copy())
	}
	return alerts, nil
}

func (r *Memory) ClearAlerts(ctx context.Context) (int, error) {
	r.incrementCallCount("ClearAlerts")
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.alerts)
	r.alerts = make(map[types.AlertID]*alert.Alert)
	r.order = nil
	return n, nil
}

func (r *Memory) GetConfig(ctx context.Context) (*config.Config, error) {
	r.incrementCallCount("GetConfig")
	r.configMu.RLock()
	defer r.configMu.RUnlock()

	if r.config == nil {
		return nil, nil
	}
	cfg := *r.config
	return &cfg, nil
}

func (r *Memory) PutConfig(ctx context.Context, cfg config.Config) error {
	r.incrementCallCount("PutConfig")
	r.configMu.Lock()
	defer r.configMu.Unlock()

	r.config = &cfg
	return nil
}

package optimistic

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pkgerrors "sayitloud/pkg/errors"
)

// Outcome is the terminal state of one mutation instance.
type Outcome int

const (
	// OutcomeSkipped: a mutation for the same entity+action pair was
	// already in flight; re-invocation is a no-op.
	OutcomeSkipped Outcome = iota

	// OutcomeCommitted: the call succeeded and the optimistic value is
	// retained as-is.
	OutcomeCommitted

	// OutcomeRolledBack: the call failed and the pre-mutation snapshot was
	// restored.
	OutcomeRolledBack

	// OutcomeAbandoned: the session expired mid-flight; the navigation is
	// being replaced, so neither revert nor error surfacing happens.
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCommitted:
		return "committed"
	case OutcomeRolledBack:
		return "rolled_back"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Key identifies one entity+action pair. Mutations with equal keys are
// serialized by the in-flight guard; distinct keys run independently.
type Key struct {
	EntityID string
	Action   string
}

// Mutation is one optimistic state transition: Apply runs synchronously
// against local state before the network call, Revert restores the captured
// pre-mutation snapshot if the call fails. A nil Revert means the mutation
// has no rollback path.
type Mutation struct {
	Apply  func()
	Call   func(ctx context.Context) error
	Revert func()
}

// Runner executes optimistic mutations: apply locally, issue the call,
// reconcile (keep, revert, or abandon) on the outcome. One Runner is shared
// by every interactive view.
type Runner struct {
	mu       sync.Mutex
	inFlight map[Key]bool
	logger   *zap.Logger
}

// NewRunner creates a mutation runner.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		inFlight: make(map[Key]bool),
		logger:   logger,
	}
}

// InFlight reports whether a mutation for the key is currently applying.
func (r *Runner) InFlight(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight[key]
}

// Run executes one mutation instance through the
// Idle -> Applying -> Committed|RolledBack state machine.
//
// Rapid repeated invocations for the same key while a call is pending are
// no-ops (OutcomeSkipped), preventing duplicate network calls. A committed
// mutation keeps the optimistic value and does not reconcile against the
// server's returned payload. A failed call restores the snapshot via
// Revert; the error is returned for the caller to log or surface.
func (r *Runner) Run(ctx context.Context, key Key, m Mutation) (Outcome, error) {
	if m.Apply == nil || m.Call == nil {
		return OutcomeSkipped, pkgerrors.NewInternalError("mutation requires apply and call functions")
	}

	r.mu.Lock()
	if r.inFlight[key] {
		r.mu.Unlock()
		return OutcomeSkipped, nil
	}
	r.inFlight[key] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, key)
		r.mu.Unlock()
	}()

	instanceID := uuid.NewString()

	m.Apply()

	err := m.Call(ctx)
	if err == nil {
		return OutcomeCommitted, nil
	}

	if pkgerrors.IsSessionExpired(err) {
		r.logger.Debug("mutation abandoned on session expiry",
			zap.String("entity", key.EntityID),
			zap.String("action", key.Action),
			zap.String("mutation", instanceID),
		)
		return OutcomeAbandoned, nil
	}

	if m.Revert != nil {
		m.Revert()
	}
	r.logger.Warn("mutation rolled back",
		zap.String("entity", key.EntityID),
		zap.String("action", key.Action),
		zap.String("mutation", instanceID),
		zap.Bool("reverted", m.Revert != nil),
		zap.Error(err),
	)
	return OutcomeRolledBack, err
}

// file: internal/fsm/lifecycle.go
package fsm

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
)

// Server lifecycle states.
const (
	StateInitial   State = "initial"
	StateVerifying State = "verifying"
	StateReady     State = "ready"
	StateFailed    State = "failed"
	StateStopped   State = "stopped"
)

// Server lifecycle events.
const (
	EventVerify       Event = "verify"
	EventVerified     Event = "verified"
	EventVerifyFailed Event = "verify_failed"
	EventStop         Event = "stop"
)

// Lifecycle tracks whether the Sonarr connection has been verified. Registries
// are mounted only once it reports Ready.
type Lifecycle struct {
	machine FSM
	logger  logging.Logger

	mu      sync.Mutex
	lastErr error
}

// NewLifecycle builds the lifecycle machine:
//
//	initial -> verifying -> ready -> stopped
//	              |
//	              +-> failed -> verifying (retry)
func NewLifecycle(logger logging.Logger) (*Lifecycle, error) {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	lc := &Lifecycle{logger: logger.WithField("component", "lifecycle")}

	m := NewFSM(StateInitial, logger)
	m.AddTransition(Transition{From: []State{StateInitial, StateFailed}, Event: EventVerify, To: StateVerifying})
	m.AddTransition(Transition{From: []State{StateVerifying}, Event: EventVerified, To: StateReady, Action: lc.onReady})
	m.AddTransition(Transition{From: []State{StateVerifying}, Event: EventVerifyFailed, To: StateFailed, Action: lc.onFailed})
	m.AddTransition(Transition{From: []State{StateInitial, StateReady, StateFailed}, Event: EventStop, To: StateStopped})
	if err := m.Build(); err != nil {
		return nil, errors.Wrap(err, "failed to build lifecycle")
	}
	lc.machine = m
	return lc, nil
}

func (lc *Lifecycle) onReady(_ context.Context, _ Event, _ any) error {
	lc.mu.Lock()
	lc.lastErr = nil
	lc.mu.Unlock()
	lc.logger.Info("Sonarr connection verified.")
	return nil
}

func (lc *Lifecycle) onFailed(_ context.Context, _ Event, data any) error {
	err, _ := data.(error)
	lc.mu.Lock()
	lc.lastErr = err
	lc.mu.Unlock()
	lc.logger.Error("Sonarr connection check failed.", "error", err)
	return nil
}

// State returns the current lifecycle state.
func (lc *Lifecycle) State() State { return lc.machine.CurrentState() }

// Ready reports whether the connection has been verified.
func (lc *Lifecycle) Ready() bool { return lc.State() == StateReady }

// LastError returns the error of the most recent failed verification.
func (lc *Lifecycle) LastError() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lastErr
}

// Verify runs check and moves to ready on success or failed otherwise. The
// check error is returned unchanged.
func (lc *Lifecycle) Verify(ctx context.Context, check func(ctx context.Context) error) error {
	if err := lc.machine.Transition(ctx, EventVerify, nil); err != nil {
		return err
	}
	if err := check(ctx); err != nil {
		if terr := lc.machine.Transition(ctx, EventVerifyFailed, err); terr != nil {
			lc.logger.Warn("Could not record failed verification.", "error", terr)
		}
		return err
	}
	return lc.machine.Transition(ctx, EventVerified, nil)
}

// Stop moves the lifecycle to stopped. Stopping twice is a no-op.
func (lc *Lifecycle) Stop(ctx context.Context) error {
	if lc.State() == StateStopped {
		return nil
	}
	return lc.machine.Transition(ctx, EventStop, nil)
}

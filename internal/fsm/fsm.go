// Package fsm provides a small finite state machine wrapper around looplab/fsm and
// the server lifecycle built on it.
// file: internal/fsm/fsm.go
package fsm

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	lfsm "github.com/looplab/fsm"
)

// State represents a state in the FSM.
type State string

// Event represents an event that can trigger a state transition.
type Event string

// TransitionAction runs after the machine enters the destination state.
type TransitionAction func(ctx context.Context, event Event, data any) error

// GuardCondition returns false to cancel a transition before it happens.
type GuardCondition func(ctx context.Context, event Event, data any) bool

// Transition defines a transition rule between states.
type Transition struct {
	From      []State
	To        State
	Event     Event
	Action    TransitionAction
	Condition GuardCondition
}

// FSM is the state machine interface used across the application.
type FSM interface {
	// AddTransition stores a transition definition. Call Build after adding all transitions.
	AddTransition(transition Transition) FSM
	// Build creates the underlying machine.
	Build() error
	// CurrentState returns the current state, or "" before Build.
	CurrentState() State
	// CanTransition reports whether event is defined for the current state.
	CanTransition(event Event) bool
	// Transition fires event, passing data to guards and actions.
	Transition(ctx context.Context, event Event, data any) error
}

type loopFSM struct {
	mu           sync.RWMutex
	initialState State
	logger       logging.Logger
	transitions  []Transition
	fsm          *lfsm.FSM
	buildErr     error
}

// NewFSM creates an FSM builder with the given initial state.
func NewFSM(initialState State, logger logging.Logger) FSM {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &loopFSM{
		initialState: initialState,
		logger:       logger.WithField("component", "fsm"),
	}
}

func (l *loopFSM) AddTransition(t Transition) FSM {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.fsm != nil:
		l.setBuildErr(errors.New("cannot AddTransition after Build"))
	case len(t.From) == 0:
		l.setBuildErr(errors.Newf("transition %q has no source states", t.Event))
	default:
		l.transitions = append(l.transitions, t)
	}
	return l
}

func (l *loopFSM) setBuildErr(err error) {
	l.logger.Error("Invalid FSM configuration.", "error", err)
	if l.buildErr == nil {
		l.buildErr = err
	}
}

func (l *loopFSM) Build() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fsm != nil || l.buildErr != nil {
		return l.buildErr
	}

	events := make(map[string]*lfsm.EventDesc)
	var order []string
	callbacks := lfsm.Callbacks{}

	for i := range l.transitions {
		t := l.transitions[i]
		name := string(t.Event)
		desc, ok := events[name]
		if !ok {
			desc = &lfsm.EventDesc{Name: name, Dst: string(t.To)}
			events[name] = desc
			order = append(order, name)
		} else if desc.Dst != string(t.To) {
			l.buildErr = errors.Newf("conflicting destinations (%q and %q) for event %q", desc.Dst, t.To, name)
			return l.buildErr
		}
		for _, s := range t.From {
			desc.Src = append(desc.Src, string(s))
		}

		if t.Condition != nil {
			key := "before_" + name
			callbacks[key] = chain(callbacks[key], l.guardCallback(t))
		}
		if t.Action != nil {
			key := "enter_" + string(t.To)
			callbacks[key] = chain(callbacks[key], l.actionCallback(t))
		}
	}

	descs := make([]lfsm.EventDesc, 0, len(order))
	for _, name := range order {
		descs = append(descs, *events[name])
	}
	l.fsm = lfsm.NewFSM(string(l.initialState), descs, callbacks)
	l.logger.Debug("FSM built.", "initialState", l.initialState, "events", len(descs))
	return nil
}

// chain runs first then next for the same callback key.
func chain(first, next lfsm.Callback) lfsm.Callback {
	if first == nil {
		return next
	}
	return func(ctx context.Context, e *lfsm.Event) {
		first(ctx, e)
		next(ctx, e)
	}
}

func matchesSource(t Transition, src string) bool {
	for _, s := range t.From {
		if string(s) == src {
			return true
		}
	}
	return false
}

func eventData(e *lfsm.Event) any {
	if len(e.Args) > 0 {
		return e.Args[0]
	}
	return nil
}

func (l *loopFSM) guardCallback(t Transition) lfsm.Callback {
	return func(ctx context.Context, e *lfsm.Event) {
		if e.Event != string(t.Event) || !matchesSource(t, e.Src) {
			return
		}
		if !t.Condition(ctx, t.Event, eventData(e)) {
			e.Cancel(errors.Newf("guard for event %q from state %q failed", t.Event, e.Src))
		}
	}
}

func (l *loopFSM) actionCallback(t Transition) lfsm.Callback {
	return func(ctx context.Context, e *lfsm.Event) {
		if e.Event != string(t.Event) || !matchesSource(t, e.Src) {
			return
		}
		if err := t.Action(ctx, t.Event, eventData(e)); err != nil {
			l.logger.Error("Transition action failed.", "event", t.Event, "to", t.To, "error", err)
		}
	}
}

func (l *loopFSM) CurrentState() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.fsm == nil {
		return ""
	}
	return State(l.fsm.Current())
}

func (l *loopFSM) CanTransition(event Event) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fsm != nil && l.fsm.Can(string(event))
}

func (l *loopFSM) Transition(ctx context.Context, event Event, data any) error {
	l.mu.RLock()
	machine, buildErr := l.fsm, l.buildErr
	l.mu.RUnlock()
	if machine == nil {
		if buildErr != nil {
			return buildErr
		}
		return errors.New("fsm: Transition called before Build")
	}

	from := machine.Current()
	var args []any
	if data != nil {
		args = append(args, data)
	}
	if err := machine.Event(ctx, string(event), args...); err != nil {
		l.logger.Debug("FSM transition rejected.", "event", event, "from", from, "error", err)
		return errors.Wrapf(err, "event %q from state %q", event, from)
	}
	l.logger.Debug("FSM transition.", "event", event, "from", from, "to", machine.Current())
	return nil
}

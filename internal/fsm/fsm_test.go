// file: internal/fsm/fsm_test.go
package fsm

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateIdle     State = "idle"
	stateRunning  State = "running"
	statePaused   State = "paused"
	stateFinished State = "finished"

	eventStart Event = "start"
	eventPause Event = "pause"
	eventStop  Event = "stop"
)

func buildTestFSM(t *testing.T) FSM {
	t.Helper()
	m := NewFSM(stateIdle, nil)
	m.AddTransition(Transition{From: []State{stateIdle, statePaused}, Event: eventStart, To: stateRunning})
	m.AddTransition(Transition{From: []State{stateRunning}, Event: eventPause, To: statePaused})
	m.AddTransition(Transition{From: []State{stateRunning, statePaused}, Event: eventStop, To: stateFinished})
	require.NoError(t, m.Build())
	return m
}

func TestFSM_Transitions(t *testing.T) {
	m := buildTestFSM(t)
	ctx := context.Background()

	assert.Equal(t, stateIdle, m.CurrentState())
	assert.True(t, m.CanTransition(eventStart))
	assert.False(t, m.CanTransition(eventPause))

	require.NoError(t, m.Transition(ctx, eventStart, nil))
	require.NoError(t, m.Transition(ctx, eventPause, nil))
	require.NoError(t, m.Transition(ctx, eventStart, nil))
	require.NoError(t, m.Transition(ctx, eventStop, nil))
	assert.Equal(t, stateFinished, m.CurrentState())

	err := m.Transition(ctx, eventStart, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `event "start" from state "finished"`)
	assert.Equal(t, stateFinished, m.CurrentState())
}

func TestFSM_BuildErrors(t *testing.T) {
	m := NewFSM(stateIdle, nil)
	m.AddTransition(Transition{Event: eventStart, To: stateRunning})
	assert.Error(t, m.Build(), "transitions need source states")

	m = NewFSM(stateIdle, nil)
	m.AddTransition(Transition{From: []State{stateIdle}, Event: eventStart, To: stateRunning})
	m.AddTransition(Transition{From: []State{statePaused}, Event: eventStart, To: stateFinished})
	assert.Error(t, m.Build(), "one event cannot lead to two states")

	m = NewFSM(stateIdle, nil)
	assert.Error(t, m.Transition(context.Background(), eventStart, nil), "transition before build")
	assert.Equal(t, State(""), m.CurrentState())

	require.NoError(t, m.Build())
	require.NoError(t, m.Build(), "Build is idempotent")
	m.AddTransition(Transition{From: []State{stateIdle}, Event: eventStart, To: stateRunning})
	assert.False(t, m.CanTransition(eventStart), "transitions added after Build are ignored")
}

func TestFSM_GuardsAndActions(t *testing.T) {
	var allowed atomic.Bool
	var entered atomic.Int32
	var got atomic.Value

	m := NewFSM(stateIdle, nil)
	m.AddTransition(Transition{
		From:  []State{stateIdle},
		Event: eventStart,
		To:    stateRunning,
		Condition: func(_ context.Context, _ Event, _ any) bool {
			return allowed.Load()
		},
		Action: func(_ context.Context, _ Event, data any) error {
			entered.Add(1)
			got.Store(data)
			return errors.New("actions errors are logged, not returned")
		},
	})
	require.NoError(t, m.Build())
	ctx := context.Background()

	require.Error(t, m.Transition(ctx, eventStart, "payload"))
	assert.Equal(t, stateIdle, m.CurrentState())
	assert.Zero(t, entered.Load())

	allowed.Store(true)
	require.NoError(t, m.Transition(ctx, eventStart, "payload"))
	assert.Equal(t, stateRunning, m.CurrentState())
	assert.EqualValues(t, 1, entered.Load())
	assert.Equal(t, "payload", got.Load())
}

func TestLifecycle_VerifySuccess(t *testing.T) {
	lc, err := NewLifecycle(nil)
	require.NoError(t, err)
	ctx := context.Background()
	assert.Equal(t, StateInitial, lc.State())

	var seen State
	err = lc.Verify(ctx, func(context.Context) error {
		seen = lc.State()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateVerifying, seen, "the check runs while verifying")
	assert.True(t, lc.Ready())
	assert.NoError(t, lc.LastError())

	require.NoError(t, lc.Stop(ctx))
	require.NoError(t, lc.Stop(ctx))
	assert.Equal(t, StateStopped, lc.State())
}

func TestLifecycle_VerifyFailureAndRetry(t *testing.T) {
	lc, err := NewLifecycle(nil)
	require.NoError(t, err)
	ctx := context.Background()

	checkErr := errors.New("Failed to connect to http://sonarr:8989: No response from server")
	err = lc.Verify(ctx, func(context.Context) error { return checkErr })
	assert.Same(t, checkErr, err)
	assert.Equal(t, StateFailed, lc.State())
	assert.False(t, lc.Ready())
	assert.Same(t, checkErr, lc.LastError())

	require.NoError(t, lc.Verify(ctx, func(context.Context) error { return nil }))
	assert.True(t, lc.Ready())
	assert.NoError(t, lc.LastError())

	assert.Error(t, lc.Verify(ctx, func(context.Context) error { return nil }), "ready cannot be verified again")
}

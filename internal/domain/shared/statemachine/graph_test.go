package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testState string

const (
	statePending   testState = "pending"
	stateActive    testState = "active"
	stateDone      testState = "done"
	stateCancelled testState = "cancelled"
)

func testGraph() Graph[testState] {
	return Graph[testState]{
		statePending: {stateActive, stateCancelled},
		stateActive:  {stateDone, stateCancelled},
	}
}

func TestGraph_CanTransition(t *testing.T) {
	g := testGraph()

	t.Run("allows declared edges", func(t *testing.T) {
		assert.True(t, g.CanTransition(statePending, stateActive))
		assert.True(t, g.CanTransition(stateActive, stateDone))
	})

	t.Run("rejects undeclared edges", func(t *testing.T) {
		assert.False(t, g.CanTransition(statePending, stateDone))
		assert.False(t, g.CanTransition(stateDone, stateActive))
	})

	t.Run("rejects self transition unless declared", func(t *testing.T) {
		assert.False(t, g.CanTransition(stateActive, stateActive))
	})
}

func TestGraph_IsTerminal(t *testing.T) {
	g := testGraph()

	assert.False(t, g.IsTerminal(statePending))
	assert.False(t, g.IsTerminal(stateActive))
	assert.True(t, g.IsTerminal(stateDone))
	assert.True(t, g.IsTerminal(stateCancelled))
}

func TestGraph_TerminalStatesRejectAllTargets(t *testing.T) {
	g := testGraph()
	all := []testState{statePending, stateActive, stateDone, stateCancelled}

	for _, terminal := range []testState{stateDone, stateCancelled} {
		for _, target := range all {
			assert.False(t, g.CanTransition(terminal, target),
				"terminal state %s must not transition to %s", terminal, target)
		}
	}
}

func TestGraph_TargetsFrom(t *testing.T) {
	g := testGraph()

	targets := g.TargetsFrom(statePending)
	assert.ElementsMatch(t, []testState{stateActive, stateCancelled}, targets)

	// mutation of the returned slice must not affect the graph
	targets[0] = stateDone
	assert.True(t, g.CanTransition(statePending, stateActive))
}

// Package statemachine provides a small transition-graph helper backing the
// typed status enums of the domain aggregates. Each enum declares its graph
// once; CanTransitionTo methods delegate to it so the allowed edges live in
// a single place per entity kind.
package statemachine

// Graph maps each state to the set of states it may transition to.
// States absent from the map, or mapped to an empty slice, are terminal.
type Graph[S comparable] map[S][]S

// CanTransition reports whether the edge from -> to exists in the graph
func (g Graph[S]) CanTransition(from, to S) bool {
	for _, target := range g[from] {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a state has no outgoing edges
func (g Graph[S]) IsTerminal(state S) bool {
	return len(g[state]) == 0
}

// TargetsFrom returns the allowed target states from the given state
func (g Graph[S]) TargetsFrom(state S) []S {
	targets := g[state]
	out := make([]S, len(targets))
	copy(out, targets)
	return out
}

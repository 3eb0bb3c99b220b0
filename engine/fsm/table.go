// Package fsm provides a flat finite state machine driven by an explicit transition table
package fsm

import (
	"fmt"
	"sort"
)

// Transition defines a link between states
type Transition[S, E comparable] struct {
	From S
	On   E
	To   S
}

// Action runs when a transition enters or exits a state
type Action[S, E comparable] func(from, to S, on E)

// Table is a flat FSM whose legal moves are exactly the registered transitions
// Anything not in the table is rejected without side effects
type Table[S, E comparable] struct {
	current S
	edges   map[S]map[E]S
	onEnter map[S][]Action[S, E]
	onExit  map[S][]Action[S, E]
}

// New creates a machine resting in initial
func New[S, E comparable](initial S) *Table[S, E] {
	return &Table[S, E]{
		current: initial,
		edges:   make(map[S]map[E]S),
		onEnter: make(map[S][]Action[S, E]),
		onExit:  make(map[S][]Action[S, E]),
	}
}

// Allow registers from --on--> to, panics on a conflicting duplicate
// Returns the table for chained construction
func (t *Table[S, E]) Allow(from S, on E, to S) *Table[S, E] {
	row, ok := t.edges[from]
	if !ok {
		row = make(map[E]S)
		t.edges[from] = row
	}
	if existing, dup := row[on]; dup && existing != to {
		panic(fmt.Sprintf("fsm: conflicting transition %v --%v--> %v (already %v)", from, on, to, existing))
	}
	row[on] = to
	return t
}

// AllowFrom registers the same trigger and target for several source states
func (t *Table[S, E]) AllowFrom(froms []S, on E, to S) *Table[S, E] {
	for _, from := range froms {
		t.Allow(from, on, to)
	}
	return t
}

// OnEnter adds an action executed after entering s
func (t *Table[S, E]) OnEnter(s S, fn Action[S, E]) *Table[S, E] {
	t.onEnter[s] = append(t.onEnter[s], fn)
	return t
}

// OnExit adds an action executed before leaving s
func (t *Table[S, E]) OnExit(s S, fn Action[S, E]) *Table[S, E] {
	t.onExit[s] = append(t.onExit[s], fn)
	return t
}

// State returns the current state
func (t *Table[S, E]) State() S {
	return t.current
}

// Fire applies on; returns false and changes nothing when the table has no such edge
// Self-transitions run exit and enter actions like any other move
func (t *Table[S, E]) Fire(on E) bool {
	to, ok := t.edges[t.current][on]
	if !ok {
		return false
	}
	from := t.current
	for _, fn := range t.onExit[from] {
		fn(from, to, on)
	}
	t.current = to
	for _, fn := range t.onEnter[to] {
		fn(from, to, on)
	}
	return true
}

// Transitions lists the table, ordered by the formatted source then trigger
func (t *Table[S, E]) Transitions() []Transition[S, E] {
	out := make([]Transition[S, E], 0, len(t.edges)*2)
	for from, row := range t.edges {
		for on, to := range row {
			out = append(out, Transition[S, E]{From: from, On: on, To: to})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := fmt.Sprint(out[i].From), fmt.Sprint(out[j].From)
		if fi != fj {
			return fi < fj
		}
		return fmt.Sprint(out[i].On) < fmt.Sprint(out[j].On)
	})
	return out
}

package state

import (
	"errors"
	"fmt"

	"scorebook/internal/play"
)

var ErrIllegalTransition = errors.New("illegal base-out transition")

// BaseOutState is the authoritative half-inning state: who stands on each
// base (player id, "" when empty), the out count, and the running score.
// It is a value type; transitions produce a new value, never edit one in
// place.
type BaseOutState struct {
	First  string
	Second string
	Third  string
	Outs   int

	VisitorScore int
	HomeScore    int
}

// Empty returns the state that opens a half-inning, carrying the score
// forward from prev.
func Empty(prev BaseOutState) BaseOutState {
	return BaseOutState{VisitorScore: prev.VisitorScore, HomeScore: prev.HomeScore}
}

func (s BaseOutState) String() string {
	show := func(id string) string {
		if id == "" {
			return "-"
		}
		return id
	}
	return fmt.Sprintf("1:%s 2:%s 3:%s outs:%d %d-%d",
		show(s.First), show(s.Second), show(s.Third), s.Outs, s.VisitorScore, s.HomeScore)
}

// Runner returns the occupant of a base, "" when empty. Only First through
// Third are occupiable.
func (s BaseOutState) Runner(b play.Base) string {
	switch b {
	case play.First:
		return s.First
	case play.Second:
		return s.Second
	case play.Third:
		return s.Third
	}
	return ""
}

func (s *BaseOutState) setRunner(b play.Base, id string) {
	switch b {
	case play.First:
		s.First = id
	case play.Second:
		s.Second = id
	case play.Third:
		s.Third = id
	}
}

// Occupied reports base occupancy as a (first, second, third) triple.
func (s BaseOutState) Occupied() (bool, bool, bool) {
	return s.First != "", s.Second != "", s.Third != ""
}

// RunnersOn counts occupied bases.
func (s BaseOutState) RunnersOn() int {
	n := 0
	for _, id := range []string{s.First, s.Second, s.Third} {
		if id != "" {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants: out count in [0,3] and no
// runner identity on two bases at once.
func (s BaseOutState) Validate() error {
	if s.Outs < 0 || s.Outs > 3 {
		return fmt.Errorf("%w: out count %d", ErrIllegalTransition, s.Outs)
	}
	seen := map[string]play.Base{}
	for _, b := range []play.Base{play.First, play.Second, play.Third} {
		id := s.Runner(b)
		if id == "" {
			continue
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: runner %s on both %s and %s", ErrIllegalTransition, id, prev, b)
		}
		seen[id] = b
	}
	return nil
}

// Run records one run crossing the plate during a play.
type Run struct {
	Runner   string
	RBI      bool
	Unearned bool
}

// Outcome is the per-play attribution record emitted alongside the next
// state.
type Outcome struct {
	Runs          []Run
	Outs          int
	BatterReached bool
}

// RBIs counts the runs on this play credited to the batter.
func (o Outcome) RBIs() int {
	n := 0
	for _, r := range o.Runs {
		if r.RBI {
			n++
		}
	}
	return n
}

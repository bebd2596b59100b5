package game

import (
	"errors"
	"fmt"
	"iter"

	"scorebook/internal/eventfile"
	"scorebook/internal/play"
	"scorebook/internal/state"
)

// Snapshot is the record emitted after each play: the base-out state once
// the play has been applied, plus the play's attribution. Snapshots are
// immutable; a flagged snapshot carries the prior state forward unchanged.
type Snapshot struct {
	PlayNumber int
	Inning     int
	Home       bool // home half
	Batter     string
	Raw        string

	// Descriptor is nil when the raw play did not parse.
	Descriptor *play.Descriptor

	State   state.BaseOutState
	Outcome state.Outcome

	// Flagged marks a play whose state change was discarded: unknown play
	// code, malformed clause, or an illegal resulting state. Warning says
	// why.
	Flagged bool
	Warning string
}

// Game threads the state machine across one game's records. The fold is
// pure over the proto game, so Snapshots can be replayed any number of
// times and always yields the same sequence.
type Game struct {
	ID           string
	VisitingTeam string
	HomeTeam     string
	Date         string

	proto *eventfile.ProtoGame
}

func New(pg *eventfile.ProtoGame) *Game {
	return &Game{
		ID:           pg.ID,
		VisitingTeam: pg.VisitingTeam,
		HomeTeam:     pg.HomeTeam,
		Date:         pg.Date,
		proto:        pg,
	}
}

// Snapshots returns the lazy, restartable play-by-play sequence. Consumers
// pull snapshots one at a time; stopping early is cancellation, and the
// snapshots already produced remain valid.
func (g *Game) Snapshots() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		var cur state.BaseOutState
		lineup := newLineup()
		inning, home := 0, false
		started := false
		playNumber := -1

		for _, ev := range g.proto.Events {
			switch {
			case ev.Entrance != nil:
				// A substitution swaps identity without moving the state
				// machine: a pinch runner inherits the replaced player's
				// base.
				if replaced := lineup.apply(ev.Entrance); replaced != "" && ev.Entrance.IsSub {
					cur = swapRunner(cur, replaced, ev.Entrance.PlayerID)
				}
			case ev.Play != nil:
				p := ev.Play
				playNumber++
				if !started || p.Inning != inning || p.Home != home {
					cur = state.Empty(cur)
					inning, home, started = p.Inning, p.Home, true
				}
				snap := g.applyPlay(cur, p, playNumber)
				if !yield(snap) {
					return
				}
				cur = snap.State
			}
		}
	}
}

func (g *Game) applyPlay(cur state.BaseOutState, p *eventfile.Play, playNumber int) Snapshot {
	snap := Snapshot{
		PlayNumber: playNumber,
		Inning:     p.Inning,
		Home:       p.Home,
		Batter:     p.Batter,
		Raw:        p.Raw,
		State:      cur,
	}

	d, err := play.Parse(p.Raw)
	if err != nil {
		snap.Flagged = true
		switch {
		case errors.Is(err, play.ErrUnknownPlayCode):
			snap.Warning = fmt.Sprintf("skipped: %v", err)
		default:
			snap.Warning = fmt.Sprintf("rejected: %v", err)
		}
		return snap
	}
	snap.Descriptor = d

	next, outcome, err := state.Apply(cur, p.Batter, d, p.Home)
	if err != nil {
		snap.Flagged = true
		snap.Warning = fmt.Sprintf("flagged: %v", err)
		return snap
	}
	snap.State = next
	snap.Outcome = outcome
	return snap
}

// Reconstruct runs the whole fold and collects every snapshot.
func (g *Game) Reconstruct() []Snapshot {
	var out []Snapshot
	for snap := range g.Snapshots() {
		out = append(out, snap)
	}
	return out
}

// FinalScore folds the game to completion and reports the score.
func (g *Game) FinalScore() (visitor, home int) {
	var last state.BaseOutState
	for snap := range g.Snapshots() {
		last = snap.State
	}
	return last.VisitorScore, last.HomeScore
}

func swapRunner(s state.BaseOutState, from, to string) state.BaseOutState {
	switch from {
	case s.First:
		s.First = to
	case s.Second:
		s.Second = to
	case s.Third:
		s.Third = to
	}
	return s
}

// lineup tracks which player currently holds each batting-order slot per
// team, so a sub record can be traced back to the player it replaces.
type lineup struct {
	slots map[bool]map[int]string
}

func newLineup() *lineup {
	return &lineup{slots: map[bool]map[int]string{
		false: make(map[int]string),
		true:  make(map[int]string),
	}}
}

// apply records an entrance and returns the id of the player it replaced,
// "" for starters or unoccupied slots.
func (l *lineup) apply(e *eventfile.Entrance) string {
	replaced := l.slots[e.Home][e.BattingOrder]
	l.slots[e.Home][e.BattingOrder] = e.PlayerID
	return replaced
}

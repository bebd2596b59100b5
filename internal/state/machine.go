package state

import (
	"fmt"
	"slices"

	"scorebook/internal/play"
)

// Apply is the sole authority for turning (state, play) into the next
// state. It applies the batter's own resolution and every explicit
// advance clause, infers forced advances for unmentioned runners, and
// validates the result. On any violation the previous state is returned
// unchanged along with ErrIllegalTransition so callers can flag the play
// without losing the thread of the reconstruction.
func Apply(cur BaseOutState, batter string, d *play.Descriptor, battingHome bool) (BaseOutState, Outcome, error) {
	advances := slices.Clone(d.Advances)

	f1, f2, f3 := cur.Occupied()
	for _, origin := range forcedRunners(f1, f2, f3, d) {
		if mentioned(advances, origin) || cur.Runner(origin) == "" {
			continue
		}
		to := origin + 1
		advances = append(advances, play.Advance{From: origin, To: to, Implied: true})
	}
	play.SortAdvances(advances)

	next := cur
	var out Outcome
	var taken [4]bool // batter, first, second, third

	for _, a := range advances {
		var id string
		var idx int
		switch a.From {
		case play.BatterBase:
			idx, id = 0, batter
		case play.First, play.Second, play.Third:
			idx, id = int(a.From), cur.Runner(a.From)
		default:
			return cur, Outcome{}, fmt.Errorf("%w: advance %s from unknown origin", ErrIllegalTransition, a)
		}
		if taken[idx] {
			// Explicit clause already covered this origin; the implied
			// duplicate is dropped.
			continue
		}
		taken[idx] = true

		if id == "" {
			return cur, Outcome{}, fmt.Errorf("%w: advance %s from empty base", ErrIllegalTransition, a)
		}
		if a.From != play.BatterBase {
			next.setRunner(a.From, "")
		}

		switch {
		case a.Out:
			next.Outs++
		case a.To == play.Home:
			rbi := false
			switch a.RBI {
			case play.RBICredited:
				rbi = true
			case play.RBIWithheld:
				rbi = false
			default:
				rbi = d.RBIEligible() && a.ErrorCount == 0
			}
			out.Runs = append(out.Runs, Run{Runner: id, RBI: rbi, Unearned: a.Unearned})
			if a.From == play.BatterBase {
				out.BatterReached = true
			}
		default:
			if occ := next.Runner(a.To); occ != "" && occ != id {
				return cur, Outcome{}, fmt.Errorf("%w: %s and %s both on %s",
					ErrIllegalTransition, occ, id, a.To)
			}
			next.setRunner(a.To, id)
			if a.From == play.BatterBase {
				out.BatterReached = true
			}
		}
	}

	// The batter's out is implicit in most codes (K, 8, 63); it only
	// counts when no clause moved the batter, so K+WP.B-1 records no out.
	if d.BatterOut && !taken[0] {
		next.Outs++
	}

	if next.Outs > 3 {
		return cur, Outcome{}, fmt.Errorf("%w: %d outs", ErrIllegalTransition, next.Outs)
	}
	if err := next.Validate(); err != nil {
		return cur, Outcome{}, err
	}

	out.Outs = next.Outs - cur.Outs
	if battingHome {
		next.HomeScore += len(out.Runs)
	} else {
		next.VisitorScore += len(out.Runs)
	}
	return next, out, nil
}

func mentioned(advances []play.Advance, origin play.Base) bool {
	for _, a := range advances {
		if a.From == origin {
			return true
		}
	}
	return false
}

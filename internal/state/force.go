package state

import "scorebook/internal/play"

// forcedRunners returns the bases whose runners are compelled to advance
// one base by the play itself, given pre-play occupancy. A runner is
// forced only when every base behind them, down to the batter, is
// occupied and the play entitles the batter to first.
//
// The descriptor's explicit and synthesized clauses take precedence; the
// caller filters out origins already mentioned. Kept as a pure function
// over (occupancy, descriptor) so the full table is testable on its own.
func forcedRunners(first, second, third bool, d *play.Descriptor) []play.Base {
	if !d.ForceEligible() {
		return nil
	}
	var out []play.Base
	// Lead runners first, matching clause application order.
	if third && second && first {
		out = append(out, play.Third)
	}
	if second && first {
		out = append(out, play.Second)
	}
	if first {
		out = append(out, play.First)
	}
	return out
}

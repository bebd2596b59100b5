package play

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RBIFlag is the three-way RBI marking carried by an advance clause:
// unmarked clauses fall back to the play-kind rules.
type RBIFlag int

const (
	RBIUnspecified RBIFlag = iota
	RBICredited
	RBIWithheld
)

// Advance is one runner movement: explicit clauses come from the runner
// zone, implied ones are synthesized from the play code.
type Advance struct {
	From    Base // BatterBase or First..Third
	To      Base // First..Third or Home
	Out     bool
	Implied bool

	Unearned   bool
	RBI        RBIFlag
	ErrorCount int
	Mods       string
}

func (a Advance) String() string {
	verb := "-"
	if a.Out {
		verb = "X"
	}
	return a.From.String() + verb + a.To.String() + a.Mods
}

var (
	redundantOutSuffix = regexp.MustCompile(`\(\dX\)$`)
	throwParenRE       = regexp.MustCompile(`\(\d+/?T?H?\)`)
	advanceModsRE      = regexp.MustCompile(`^(\([0-9A-Z/#]+\))*$`)
)

// parseAdvance parses one clause token: <origin><verb><destination><mods>,
// verb "-" for a safe advance, "X" for a runner retired trying. Modifier
// groups in parentheses carry unearned-run, RBI and error markings; an
// error group cancels the out unless a completed throw is also marked.
func parseAdvance(token string) (Advance, error) {
	raw := token
	if strings.Contains(raw, "(") {
		// A trailing (2X)-style group duplicates the clause itself; a few
		// event files carry it. Drop it before splitting on the verb.
		raw = redundantOutSuffix.ReplaceAllString(raw, "")
	}

	var before, after string
	var adv Advance
	if b, a, ok := strings.Cut(raw, "-"); ok {
		before, after = b, a
	} else if b, a, ok := strings.Cut(raw, "X"); ok {
		before, after = b, a
		adv.Out = true
	} else {
		return Advance{}, fmt.Errorf("%w: no verb in %q", ErrMalformedAdvance, token)
	}
	if before == "" || after == "" {
		return Advance{}, fmt.Errorf("%w: %q", ErrMalformedAdvance, token)
	}

	switch before[0] {
	case 'B':
		adv.From = BatterBase
	case '1', '2', '3':
		adv.From = Base(before[0] - '0')
	default:
		return Advance{}, fmt.Errorf("%w: origin %q in %q", ErrMalformedAdvance, before[0], token)
	}
	switch after[0] {
	case '1', '2', '3':
		adv.To = Base(after[0] - '0')
	case 'H':
		adv.To = Home
	default:
		return Advance{}, fmt.Errorf("%w: destination %q in %q", ErrMalformedAdvance, after[0], token)
	}

	mods := after[1:]
	if mods != "" {
		if !advanceModsRE.MatchString(mods) {
			return Advance{}, fmt.Errorf("%w: modifiers %q in %q", ErrMalformedAdvance, mods, token)
		}
		adv.Mods = mods
		adv.Unearned = strings.Contains(mods, "(UR)") || strings.Contains(mods, "(TUR)")
		switch {
		case strings.Contains(mods, "(NR)") || strings.Contains(mods, "(NORBI)"):
			adv.RBI = RBIWithheld
		case strings.Contains(mods, "(RBI)"):
			adv.RBI = RBICredited
		}
		if errorParenRE.MatchString(mods) {
			adv.ErrorCount++
			if !throwParenRE.MatchString(mods) {
				// Safe on the error, unless a non-error throw finished the
				// play anyway.
				adv.Out = false
			}
		}
	}
	return adv, nil
}

// synthesizeImplied adds the advances the play code itself implies: stolen
// bases, runners retired by the code, and the batter's own advance. An
// explicit clause for the same origin always wins.
func (d *Descriptor) synthesizeImplied() {
	for _, dest := range d.StolenBases {
		origin := dest - 1
		if dest == Home {
			origin = Third
		}
		if d.hasAdvanceFrom(origin) {
			continue
		}
		d.Advances = append(d.Advances, Advance{From: origin, To: dest, Implied: true})
	}

	for _, origin := range d.erased {
		if d.hasAdvanceFrom(origin) {
			continue
		}
		d.Advances = append(d.Advances, Advance{From: origin, To: origin + 1, Out: true, Implied: true})
	}

	if d.BatterBases > 0 && !d.hasAdvanceFrom(BatterBase) {
		to := Base(d.BatterBases)
		if d.BatterBases >= 4 {
			to = Home
		}
		d.Advances = append(d.Advances, Advance{From: BatterBase, To: to, Implied: true})
	}
}

func (d *Descriptor) hasAdvanceFrom(origin Base) bool {
	for _, a := range d.Advances {
		if a.From == origin {
			return true
		}
	}
	return false
}

// SortAdvances orders clauses for application: lead runners first so a
// trailing runner never lands on a still-occupied base. The rare 2-1
// retreat sorts last.
func SortAdvances(advances []Advance) {
	sort.SliceStable(advances, func(i, j int) bool {
		return advanceRank(advances[i]) < advanceRank(advances[j])
	})
}

func advanceRank(a Advance) int {
	switch a.From {
	case Third:
		return 0
	case Second:
		if a.To == First {
			return 9
		}
		return 1
	case First:
		return 2
	default:
		return 3
	}
}

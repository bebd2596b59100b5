package play

import (
	"errors"
	"fmt"
	"strings"
)

// Base identifies a point on the basepaths. BatterBase is only valid as an
// advance origin, Home only as a destination.
type Base int

const (
	BatterBase Base = iota
	First
	Second
	Third
	Home
)

func (b Base) String() string {
	switch b {
	case BatterBase:
		return "B"
	case First, Second, Third:
		return fmt.Sprintf("%d", int(b))
	case Home:
		return "H"
	}
	return "?"
}

var (
	ErrMalformedDescriptor = errors.New("malformed play descriptor")
	ErrUnknownPlayCode     = errors.New("unknown play code")
	ErrMalformedAdvance    = errors.New("malformed advance clause")
)

// Kind is the canonical classification of the basic play zone.
type Kind int

const (
	Unknown Kind = iota
	FieldedOut
	Single
	Double
	Triple
	HomeRun
	Strikeout
	Walk
	HitByPitch
	ReachedOnError
	FoulError
	FieldersChoice
	Interference
	StolenBase
	CaughtStealing
	Pickoff
	PickoffCaughtStealing
	WildPitch
	PassedBall
	Balk
	DefensiveIndifference
	OtherAdvance
	NoPlay
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	FieldedOut:            "fielded-out",
	Single:                "single",
	Double:                "double",
	Triple:                "triple",
	HomeRun:               "home-run",
	Strikeout:             "strikeout",
	Walk:                  "walk",
	HitByPitch:            "hit-by-pitch",
	ReachedOnError:        "error",
	FoulError:             "foul-error",
	FieldersChoice:        "fielders-choice",
	Interference:          "interference",
	StolenBase:            "stolen-base",
	CaughtStealing:        "caught-stealing",
	Pickoff:               "pickoff",
	PickoffCaughtStealing: "pickoff-caught-stealing",
	WildPitch:             "wild-pitch",
	PassedBall:            "passed-ball",
	Balk:                  "balk",
	DefensiveIndifference: "defensive-indifference",
	OtherAdvance:          "other-advance",
	NoPlay:                "no-play",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Descriptor is the immutable parsed form of one raw play string. The basic
// play zone resolves to Kind plus the batter-facing fields; the runner zone
// resolves to Advances, which also holds clauses synthesized from the play
// code itself (stolen bases, erased runners, the batter's own advance).
type Descriptor struct {
	Raw       string
	Kind      Kind
	Fielders  []int
	Modifiers []string
	Advances  []Advance

	// Batter resolution.
	BatterOut   bool
	BatterBases int // bases the play itself awards the batter; 4 = home
	Hit         bool
	TotalBases  int

	AtBat           bool
	PlateAppearance bool
	Intentional     bool
	SacrificeFly    bool
	SacrificeHit    bool
	DoublePlay      bool
	TriplePlay      bool
	GroundRule      bool
	ErrorCount      int

	// Bases credited as stolen by the play code (destinations).
	StolenBases []Base

	// Origins of runners the play code retires (force notation, CS, PO).
	erased    []Base
	runnerRaw string
}

// Parse turns one raw Retrosheet play field into a Descriptor.
//
// The raw string has up to two zones separated by the first period: the
// batter zone (basic play code plus slash-delimited modifiers) and the
// runner zone (semicolon-delimited advance clauses).
func Parse(raw string) (*Descriptor, error) {
	batterZone, runnerZone, err := splitZones(raw)
	if err != nil {
		return nil, err
	}

	basic, mods := splitModifiers(batterZone)
	d := &Descriptor{
		Raw:             raw,
		Modifiers:       mods,
		AtBat:           true,
		PlateAppearance: true,
		runnerRaw:       runnerZone,
	}

	if err := d.classify(basic); err != nil {
		return nil, err
	}
	d.applyModifiers()

	if runnerZone != "" {
		for _, token := range strings.Split(runnerZone, ";") {
			adv, err := parseAdvance(token)
			if err != nil {
				return nil, err
			}
			d.Advances = append(d.Advances, adv)
		}
	}
	d.synthesizeImplied()
	SortAdvances(d.Advances)

	return d, nil
}

// descriptor alphabet for the batter zone
const batterZoneAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/#+-();!?$"

func splitZones(raw string) (batter, runners string, err error) {
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty descriptor", ErrMalformedDescriptor)
	}
	batter, runners, _ = strings.Cut(raw, ".")
	if batter == "" {
		return "", "", fmt.Errorf("%w: empty basic play zone in %q", ErrMalformedDescriptor, raw)
	}
	for _, r := range batter {
		if !strings.ContainsRune(batterZoneAlphabet, r) {
			return "", "", fmt.Errorf("%w: character %q in %q", ErrMalformedDescriptor, r, raw)
		}
	}
	return batter, runners, nil
}

// splitModifiers splits the batter zone on slashes that sit outside
// parentheses: the first group is the basic play code, the rest are
// modifiers such as G, L9, SF, GDP.
func splitModifiers(zone string) (basic string, mods []string) {
	var groups []string
	var cur strings.Builder
	depth := 0
	for _, r := range zone {
		switch {
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case r == '/' && depth == 0:
			groups = append(groups, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	groups = append(groups, cur.String())

	basic = groups[0]
	if len(groups) > 1 {
		mods = groups[1:]
	}
	return basic, mods
}

// applyModifiers folds the slash modifiers that change the batter's
// accounting: sacrifice flies and hits take away the at-bat.
func (d *Descriptor) applyModifiers() {
	for _, m := range d.Modifiers {
		switch {
		case strings.HasPrefix(m, "SH"):
			d.AtBat = false
			d.SacrificeHit = true
		case strings.HasPrefix(m, "SF"):
			d.AtBat = false
			d.SacrificeFly = true
		}
	}
}

// IsHit reports whether the play counts as a base hit.
func (d *Descriptor) IsHit() bool {
	return d.Hit
}

// ForceEligible reports whether the play kind compels runners ahead of an
// occupied chain to advance: the batter is awarded first, so every runner
// with all bases behind them occupied must move up.
func (d *Descriptor) ForceEligible() bool {
	switch d.Kind {
	case Walk, HitByPitch, Interference:
		return true
	case FieldersChoice, FieldedOut, ReachedOnError:
		// A batted ball forces only while the batter is entitled to first.
		return d.BatterBases >= 1 && !d.BatterOut
	}
	return false
}

// RBIEligible reports whether a run on this play credits the batter by
// default. Explicit (RBI)/(NR) clause flags override it either way.
func (d *Descriptor) RBIEligible() bool {
	switch d.Kind {
	case ReachedOnError, FoulError, WildPitch, PassedBall, Balk,
		StolenBase, CaughtStealing, Pickoff, PickoffCaughtStealing,
		DefensiveIndifference, OtherAdvance, NoPlay:
		return false
	}
	if d.DoublePlay && d.Kind == FieldedOut {
		// Grounding into a double play forfeits the RBI.
		return false
	}
	return true
}

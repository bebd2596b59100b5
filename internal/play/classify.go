package play

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	errorRE        = regexp.MustCompile(`\d*E\d*[/A-Z]*`)
	errorParenRE   = regexp.MustCompile(`\(\d*E\d*[/A-Z]*\)`)
	leadingDigits  = regexp.MustCompile(`^(\d+)`)
	forceTargetRE  = regexp.MustCompile(`\(([123B])\)`)
	strikeoutPlus  = regexp.MustCompile(`^K\d*\+(.*)`)
	walkPlus       = regexp.MustCompile(`^W\d*\+(.*)`)
	intentWalkPlus = regexp.MustCompile(`^IW?\d*\+(.*)`)
	runnerOutRE    = regexp.MustCompile(`\dX[\dH]`)
	attemptBaseRE  = regexp.MustCompile(`^(?:POCS|CS|PO)([\dH])`)
)

// classify resolves the basic play code. Matchers run in a fixed precedence
// order with longest-prefix guards (S before SB handled by guard, POCS
// before PO by order); the first match wins. An unmatched code is
// ErrUnknownPlayCode, which callers treat as recoverable.
func (d *Descriptor) classify(basic string) error {
	for _, match := range classifyOrder {
		if match(d, basic) {
			if d.Kind == Unknown {
				return fmt.Errorf("%w: %q resolved without a kind", ErrUnknownPlayCode, basic)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPlayCode, basic)
}

// classifySecondary parses the event after a K+ or W+ compound code (a
// stolen base, wild pitch, pickoff and so on attached to the strikeout or
// walk). The primary kind stays in place; the secondary event contributes
// its stolen bases, erased runners and error counts.
func (d *Descriptor) classifySecondary(basic string) error {
	primary, ab, pa := d.Kind, d.AtBat, d.PlateAppearance
	if err := d.classify(basic); err != nil {
		return err
	}
	// The compound event never changes how the plate appearance itself is
	// booked.
	d.Kind, d.AtBat, d.PlateAppearance = primary, ab, pa
	return nil
}

type matcher func(*Descriptor, string) bool

var classifyOrder []matcher

// Assigned in init to break the initialization cycle through
// matchStrikeout -> classifySecondary -> classify -> classifyOrder.
func init() {
	classifyOrder = []matcher{
		matchStrikeout,
		matchWalk,
		matchNoPlay,
		matchFieldedOut,
		matchInterference,
		matchSingle,
		matchDouble,
		matchTriple,
		matchHomeRun,
		matchFoulError,
		matchFielderError,
		matchFieldersChoice,
		matchHitByPitch,
		matchBalk,
		matchDefensiveIndifference,
		matchOtherAdvance,
		matchWildPitch,
		matchPassedBall,
		matchStolenBase,
		matchCaughtStealing,
		matchPickoffCaughtStealing,
		matchPickoff,
	}
}

func matchStrikeout(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "K") {
		return false
	}
	if d.Kind == Unknown {
		d.Kind = Strikeout
	}
	d.BatterOut = true
	if m := strikeoutPlus.FindStringSubmatch(bb); m != nil {
		// K+SB2, K+WP, K+PO1 and friends. The batter is still out unless a
		// B advance in the runner zone says otherwise.
		_ = d.classifySecondary(m[1])
	}
	return true
}

func matchWalk(d *Descriptor, bb string) bool {
	intentional := strings.HasPrefix(bb, "IW") || strings.HasPrefix(bb, "I")
	plain := strings.HasPrefix(bb, "W") && !strings.HasPrefix(bb, "WP")
	if !plain && !intentional {
		return false
	}
	if d.Kind == Unknown {
		d.Kind = Walk
	}
	d.Intentional = intentional
	d.AtBat = false
	d.BatterBases = 1
	plusRE := walkPlus
	if intentional {
		plusRE = intentWalkPlus
	}
	if m := plusRE.FindStringSubmatch(bb); m != nil {
		_ = d.classifySecondary(m[1])
	}
	return true
}

func matchNoPlay(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "NP") {
		return false
	}
	d.setKind(NoPlay)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

// matchFieldedOut handles the most common code: a batted ball fielded for
// one or more outs, written as fielder digits with optional parenthesized
// force targets, e.g. 8, 63, 64(1)3, 5(3)4(1)/GDP.
func matchFieldedOut(d *Descriptor, bb string) bool {
	m := leadingDigits.FindStringSubmatch(bb)
	if m == nil {
		return false
	}
	if errorRE.MatchString(bb) {
		// 3E1 and similar: the out was muffed, batter reaches.
		d.setKind(ReachedOnError)
		d.ErrorCount++
		d.BatterBases = 1
		d.Fielders = digitsOf(m[1])
		return true
	}

	d.setKind(FieldedOut)
	d.Fielders = fieldersOf(bb)
	d.BatterOut = true

	targets := forceTargetRE.FindAllStringSubmatch(bb, -1)
	if len(targets) == 0 {
		return true
	}

	// Parenthesized targets name the runners retired. The batter is out
	// too only when named as (B) or when fielder digits continue after the
	// final target, the conventional 64(1)3 double-play coding.
	d.BatterOut = false
	batterNamed := false
	for _, t := range targets {
		if t[1] == "B" {
			batterNamed = true
			continue
		}
		d.erased = append(d.erased, Base(int(t[1][0]-'0')))
	}
	lastClose := strings.LastIndexByte(bb, ')')
	trailing := lastClose >= 0 && strings.ContainsAny(bb[lastClose+1:], "0123456789")

	outsOnCode := len(d.erased)
	if batterNamed || trailing {
		d.BatterOut = true
		outsOnCode++
	}

	dp, tp := d.playMultiples()
	switch {
	case outsOnCode >= 3 || tp:
		d.TriplePlay = true
	case outsOnCode >= 2 || dp:
		d.DoublePlay = true
	}

	if !d.BatterOut {
		if d.DoublePlay && len(d.erased) == 1 && !runnerOutRE.MatchString(d.runnerRaw) {
			// A DP modifier with a single force target and no tagged-out
			// runner clause means the second out was the batter.
			d.BatterOut = true
		} else {
			d.BatterBases = 1
		}
	}
	return true
}

// playMultiples scans the slash modifiers for double/triple play markers
// (GDP, LDP, BGDP, ... but not NDP).
func (d *Descriptor) playMultiples() (dp, tp bool) {
	for _, m := range d.Modifiers {
		if strings.Contains(m, "DP") && !strings.Contains(m, "NDP") {
			dp = true
		}
		if strings.Contains(m, "TP") && !strings.Contains(m, "NTP") {
			tp = true
		}
	}
	if tp {
		dp = false
	}
	return dp, tp
}

func matchInterference(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "C") || strings.HasPrefix(bb, "CS") {
		return false
	}
	d.setKind(Interference)
	d.BatterBases = 1
	d.AtBat = false
	return true
}

func matchSingle(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "S") || strings.HasPrefix(bb, "SB") {
		return false
	}
	d.setKind(Single)
	d.Hit = true
	d.TotalBases = 1
	d.BatterBases = 1
	d.Fielders = digitsOf(bb[1:])
	return true
}

func matchDouble(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "D") || strings.HasPrefix(bb, "DI") {
		return false
	}
	d.setKind(Double)
	d.Hit = true
	d.TotalBases = 2
	d.BatterBases = 2
	d.GroundRule = strings.HasPrefix(bb, "DGR")
	d.Fielders = digitsOf(bb[1:])
	return true
}

func matchTriple(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "T") {
		return false
	}
	d.setKind(Triple)
	d.Hit = true
	d.TotalBases = 3
	d.BatterBases = 3
	d.Fielders = digitsOf(bb[1:])
	return true
}

func matchHomeRun(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "H") || strings.HasPrefix(bb, "HP") {
		return false
	}
	d.setKind(HomeRun)
	d.Hit = true
	d.TotalBases = 4
	d.BatterBases = 4
	return true
}

func matchFoulError(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "FLE") {
		return false
	}
	d.setKind(FoulError)
	d.ErrorCount++
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchFielderError(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "E") {
		return false
	}
	d.setKind(ReachedOnError)
	d.ErrorCount++
	d.BatterBases = 1
	d.Fielders = digitsOf(bb[1:])
	return true
}

func matchFieldersChoice(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "FC") {
		return false
	}
	d.setKind(FieldersChoice)
	d.BatterBases = 1
	d.Fielders = digitsOf(bb[2:])
	return true
}

func matchHitByPitch(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "HP") {
		return false
	}
	d.setKind(HitByPitch)
	d.AtBat = false
	d.BatterBases = 1
	return true
}

func matchBalk(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "BK") {
		return false
	}
	d.setKind(Balk)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchDefensiveIndifference(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "DI") {
		return false
	}
	d.setKind(DefensiveIndifference)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchOtherAdvance(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "OA") && !strings.HasPrefix(bb, "OBA") {
		return false
	}
	d.setKind(OtherAdvance)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchWildPitch(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "WP") {
		return false
	}
	d.setKind(WildPitch)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchPassedBall(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "PB") {
		return false
	}
	d.setKind(PassedBall)
	d.AtBat = false
	d.PlateAppearance = false
	return true
}

func matchStolenBase(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "SB") {
		return false
	}
	d.setKind(StolenBase)
	d.AtBat = false
	d.PlateAppearance = false
	for _, steal := range strings.Split(bb, ";") {
		if len(steal) < 3 {
			continue
		}
		switch steal[2] {
		case '2':
			d.StolenBases = append(d.StolenBases, Second)
		case '3':
			d.StolenBases = append(d.StolenBases, Third)
		case 'H':
			d.StolenBases = append(d.StolenBases, Home)
		}
	}
	return true
}

func matchCaughtStealing(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "CS") {
		return false
	}
	d.setKind(CaughtStealing)
	d.AtBat = false
	d.PlateAppearance = false
	d.eraseRunnerUnlessError(bb, false)
	return true
}

func matchPickoffCaughtStealing(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "POCS") {
		return false
	}
	d.setKind(PickoffCaughtStealing)
	d.AtBat = false
	d.PlateAppearance = false
	d.eraseRunnerUnlessError(bb, false)
	return true
}

func matchPickoff(d *Descriptor, bb string) bool {
	if !strings.HasPrefix(bb, "PO") || strings.HasPrefix(bb, "POCS") {
		return false
	}
	d.setKind(Pickoff)
	d.AtBat = false
	d.PlateAppearance = false
	d.eraseRunnerUnlessError(bb, true)
	return true
}

// eraseRunnerUnlessError marks the runner retired by a CS/PO/POCS code.
// An error group in the code cancels the out; for steal attempts the base
// is then credited as stolen instead. Pickoffs name the runner's own base,
// steal codes name the base being taken.
func (d *Descriptor) eraseRunnerUnlessError(bb string, pickoff bool) {
	m := attemptBaseRE.FindStringSubmatch(bb)
	if m == nil {
		return
	}
	attempted := m[1]
	if errorParenRE.MatchString(bb) {
		if !pickoff {
			d.ErrorCount++
			switch attempted {
			case "2":
				d.StolenBases = append(d.StolenBases, Second)
			case "3":
				d.StolenBases = append(d.StolenBases, Third)
			case "H":
				d.StolenBases = append(d.StolenBases, Home)
			}
		}
		return
	}
	var origin Base
	if pickoff {
		switch attempted {
		case "1":
			origin = First
		case "2":
			origin = Second
		case "3":
			origin = Third
		default:
			return
		}
	} else {
		switch attempted {
		case "2":
			origin = First
		case "3":
			origin = Second
		case "H":
			origin = Third
		default:
			return
		}
	}
	d.erased = append(d.erased, origin)
}

func (d *Descriptor) setKind(k Kind) {
	if d.Kind == Unknown {
		d.Kind = k
	}
}

func digitsOf(s string) []int {
	var out []int
	for _, r := range s {
		if r < '1' || r > '9' {
			break
		}
		out = append(out, int(r-'0'))
	}
	return out
}

// fieldersOf collects fielder position digits outside parentheses, so the
// force target in 64(1)3 does not pollute the fielding credit.
func fieldersOf(s string) []int {
	var out []int
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case depth == 0 && r >= '1' && r <= '9':
			out = append(out, int(r-'0'))
		}
	}
	return out
}

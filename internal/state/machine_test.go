package state

import (
	"errors"
	"testing"

	"scorebook/internal/play"
)

func mustParse(t *testing.T, raw string) *play.Descriptor {
	t.Helper()
	d, err := play.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return d
}

func TestApply(t *testing.T) {
	t.Run("single with bases empty", func(t *testing.T) {
		next, out, err := Apply(BaseOutState{}, "bat01", mustParse(t, "S7"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.First != "bat01" || next.Second != "" || next.Third != "" {
			t.Fatalf("expected batter on first only: %v", next)
		}
		if next.Outs != 0 || len(out.Runs) != 0 {
			t.Fatalf("expected no outs and no runs: %v %v", next, out)
		}
		if !out.BatterReached {
			t.Fatalf("expected batter reached")
		}
	})

	t.Run("single with explicit advances", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Second: "run2"}
		next, out, err := Apply(cur, "bat01", mustParse(t, "S7.2-3;1-2"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := BaseOutState{First: "bat01", Second: "run1", Third: "run2"}
		if next != want {
			t.Fatalf("expected %v, got %v", want, next)
		}
		if next.Outs != 0 || len(out.Runs) != 0 {
			t.Fatalf("expected no outs and no runs: %v", out)
		}
	})

	t.Run("bases loaded walk forces a run", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Second: "run2", Third: "run3"}
		next, out, err := Apply(cur, "bat01", mustParse(t, "W"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := BaseOutState{First: "bat01", Second: "run1", Third: "run2", VisitorScore: 1}
		if next != want {
			t.Fatalf("expected %v, got %v", want, next)
		}
		if len(out.Runs) != 1 || out.Runs[0].Runner != "run3" {
			t.Fatalf("expected run3 to score: %v", out.Runs)
		}
		if out.RBIs() != 1 {
			t.Fatalf("walked-in run credits the batter: %v", out.Runs)
		}
	})

	t.Run("force double play retires runner and batter", func(t *testing.T) {
		cur := BaseOutState{First: "run1"}
		next, out, err := Apply(cur, "bat01", mustParse(t, "64(1)3"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.Outs != 2 {
			t.Fatalf("expected two outs, got %d", next.Outs)
		}
		if next.First != "" || next.Second != "" || next.Third != "" {
			t.Fatalf("expected bases empty: %v", next)
		}
		if out.Outs != 2 || out.BatterReached {
			t.Fatalf("unexpected outcome: %+v", out)
		}
	})

	t.Run("explicit out overrides the forced run", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Second: "run2", Third: "run3"}
		next, out, err := Apply(cur, "bat01", mustParse(t, "FC2/G2.3XH(25)"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Runs) != 0 || next.Outs != 1 {
			t.Fatalf("runner retired at home must not score: %v %v", next, out)
		}
		want := BaseOutState{First: "bat01", Second: "run1", Third: "run2", Outs: 1}
		if next != want {
			t.Fatalf("expected %v, got %v", want, next)
		}
	})

	t.Run("unforced runners hold", func(t *testing.T) {
		cur := BaseOutState{Second: "run2", Third: "run3"}
		next, _, err := Apply(cur, "bat01", mustParse(t, "W"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := BaseOutState{First: "bat01", Second: "run2", Third: "run3"}
		if next != want {
			t.Fatalf("expected %v, got %v", want, next)
		}
	})

	t.Run("strikeout with dropped third strike reaching records no out", func(t *testing.T) {
		next, out, err := Apply(BaseOutState{}, "bat01", mustParse(t, "K+WP.B-1"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.Outs != 0 || next.First != "bat01" {
			t.Fatalf("expected batter safe at first: %v", next)
		}
		if !out.BatterReached {
			t.Fatalf("expected batter reached")
		}
	})

	t.Run("home run clears the bases", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Third: "run3"}
		next, out, err := Apply(cur, "bat01", mustParse(t, "HR/F78.3-H;1-H"), true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.RunnersOn() != 0 || len(out.Runs) != 3 {
			t.Fatalf("expected three runs and empty bases: %v %v", next, out)
		}
		if next.HomeScore != 3 || next.VisitorScore != 0 {
			t.Fatalf("runs must land on the batting side: %v", next)
		}
		if out.RBIs() != 3 {
			t.Fatalf("expected three RBIs, got %d", out.RBIs())
		}
	})

	t.Run("run on an error withholds the rbi", func(t *testing.T) {
		cur := BaseOutState{Third: "run3"}
		_, out, err := Apply(cur, "bat01", mustParse(t, "S8.3-H(E7)"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Runs) != 1 || out.RBIs() != 0 {
			t.Fatalf("errored run must not credit the batter: %v", out.Runs)
		}
	})

	t.Run("explicit rbi flag wins", func(t *testing.T) {
		cur := BaseOutState{Third: "run3"}
		_, out, err := Apply(cur, "bat01", mustParse(t, "S8.3-H(NR)"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.RBIs() != 0 {
			t.Fatalf("(NR) must withhold the RBI: %v", out.Runs)
		}
	})

	t.Run("double play withholds the rbi", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Third: "run3"}
		_, out, err := Apply(cur, "bat01", mustParse(t, "64(1)3/GDP.3-H"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Runs) != 1 || out.RBIs() != 0 {
			t.Fatalf("run on a double play must not credit the batter: %v", out.Runs)
		}
	})

	t.Run("wild pitch moves a runner without a plate appearance", func(t *testing.T) {
		cur := BaseOutState{Second: "run2"}
		next, _, err := Apply(cur, "bat01", mustParse(t, "WP.2-3"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := BaseOutState{Third: "run2"}
		if next != want {
			t.Fatalf("expected %v, got %v", want, next)
		}
	})
}

func TestApplyIllegalTransitions(t *testing.T) {
	t.Run("advance from an empty base", func(t *testing.T) {
		cur := BaseOutState{Outs: 1}
		next, _, err := Apply(cur, "bat01", mustParse(t, "S7.2-3"), false)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if next != cur {
			t.Fatalf("prior state must be returned unchanged: %v", next)
		}
	})

	t.Run("two runners on one base", func(t *testing.T) {
		cur := BaseOutState{First: "run1"}
		next, _, err := Apply(cur, "bat01", mustParse(t, "S7"), false)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if next != cur {
			t.Fatalf("prior state must be returned unchanged: %v", next)
		}
	})

	t.Run("more than three outs", func(t *testing.T) {
		cur := BaseOutState{First: "run1", Outs: 2}
		next, _, err := Apply(cur, "bat01", mustParse(t, "64(1)3"), false)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
		if next != cur {
			t.Fatalf("prior state must be returned unchanged: %v", next)
		}
	})

	t.Run("third out is legal", func(t *testing.T) {
		cur := BaseOutState{Outs: 2}
		next, _, err := Apply(cur, "bat01", mustParse(t, "K"), false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next.Outs != 3 {
			t.Fatalf("expected three outs, got %d", next.Outs)
		}
	})
}

// TestForcedRunners walks the full occupancy table for every force
// eligibility class, since forcing inference is where reconstructions
// historically go wrong.
func TestForcedRunners(t *testing.T) {
	occupancies := []struct {
		name                 string
		first, second, third bool
		forced               []play.Base
	}{
		{"empty", false, false, false, nil},
		{"first", true, false, false, []play.Base{play.First}},
		{"second", false, true, false, nil},
		{"third", false, false, true, nil},
		{"first and second", true, true, false, []play.Base{play.Second, play.First}},
		{"first and third", true, false, true, []play.Base{play.First}},
		{"second and third", false, true, true, nil},
		{"loaded", true, true, true, []play.Base{play.Third, play.Second, play.First}},
	}

	eligible := []string{"W", "IW", "HP", "C/E2", "FC6", "E6/G6", "64(1)"}
	ineligible := []string{"S7", "D8", "K", "8/F8", "64(1)3", "WP", "SB2", "NP"}

	equal := func(a, b []play.Base) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	for _, occ := range occupancies {
		t.Run(occ.name, func(t *testing.T) {
			for _, raw := range eligible {
				got := forcedRunners(occ.first, occ.second, occ.third, mustParse(t, raw))
				if !equal(got, occ.forced) {
					t.Fatalf("%s: expected %v, got %v", raw, occ.forced, got)
				}
			}
			for _, raw := range ineligible {
				got := forcedRunners(occ.first, occ.second, occ.third, mustParse(t, raw))
				if got != nil {
					t.Fatalf("%s: expected no forced runners, got %v", raw, got)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("duplicate runner identity", func(t *testing.T) {
		s := BaseOutState{First: "run1", Third: "run1"}
		if err := s.Validate(); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("out count bounds", func(t *testing.T) {
		if err := (BaseOutState{Outs: 4}).Validate(); !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition for 4 outs")
		}
		if err := (BaseOutState{Outs: 3}).Validate(); err != nil {
			t.Fatalf("three outs is valid, got %v", err)
		}
	})

	t.Run("empty carries the score", func(t *testing.T) {
		prev := BaseOutState{First: "run1", Outs: 3, VisitorScore: 4, HomeScore: 2}
		got := Empty(prev)
		want := BaseOutState{VisitorScore: 4, HomeScore: 2}
		if got != want {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})
}

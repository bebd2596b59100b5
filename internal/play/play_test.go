package play

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseKinds(t *testing.T) {
	cases := []struct {
		raw  string
		kind Kind
	}{
		{"S7", Single},
		{"S", Single},
		{"D8/L", Double},
		{"DGR/L9", Double},
		{"T9/F9", Triple},
		{"HR/F78", HomeRun},
		{"H/L7D", HomeRun},
		{"8/F8", FieldedOut},
		{"63/G6", FieldedOut},
		{"K", Strikeout},
		{"K23", Strikeout},
		{"W", Walk},
		{"IW", Walk},
		{"I", Walk},
		{"HP", HitByPitch},
		{"E6/G6", ReachedOnError},
		{"3E1", ReachedOnError},
		{"FLE5/P5F", FoulError},
		{"FC6/G6", FieldersChoice},
		{"C/E2", Interference},
		{"SB2", StolenBase},
		{"CS2(24)", CaughtStealing},
		{"PO1(13)", Pickoff},
		{"POCS2(1361)", PickoffCaughtStealing},
		{"WP", WildPitch},
		{"PB", PassedBall},
		{"BK", Balk},
		{"DI", DefensiveIndifference},
		{"OA", OtherAdvance},
		{"NP", NoPlay},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			d, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if d.Kind != tc.kind {
				t.Fatalf("expected %v, got %v", tc.kind, d.Kind)
			}
		})
	}
}

func TestParseBatterResolution(t *testing.T) {
	t.Run("single awards first and a hit", func(t *testing.T) {
		d, err := Parse("S7")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.Hit || d.TotalBases != 1 || d.BatterBases != 1 {
			t.Fatalf("unexpected batter resolution: %+v", d)
		}
		if !d.AtBat || !d.PlateAppearance {
			t.Fatalf("a single is an at-bat and a plate appearance")
		}
		if !reflect.DeepEqual(d.Fielders, []int{7}) {
			t.Fatalf("unexpected fielders: %v", d.Fielders)
		}
	})

	t.Run("walk is a plate appearance but not an at-bat", func(t *testing.T) {
		d, err := Parse("W")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.AtBat || !d.PlateAppearance {
			t.Fatalf("unexpected accounting: at-bat=%v pa=%v", d.AtBat, d.PlateAppearance)
		}
		if d.BatterBases != 1 || d.BatterOut {
			t.Fatalf("walk must award first: %+v", d)
		}
	})

	t.Run("intentional walk", func(t *testing.T) {
		d, err := Parse("IW")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.Intentional {
			t.Fatalf("expected intentional flag")
		}
	})

	t.Run("strikeout retires the batter", func(t *testing.T) {
		d, err := Parse("K")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.BatterOut || !d.AtBat {
			t.Fatalf("unexpected strikeout: %+v", d)
		}
	})

	t.Run("home run awards four bases", func(t *testing.T) {
		d, err := Parse("HR/F78")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.BatterBases != 4 || d.TotalBases != 4 {
			t.Fatalf("unexpected home run: %+v", d)
		}
		if len(d.Advances) != 1 || d.Advances[0].To != Home {
			t.Fatalf("expected implied B-H, got %v", d.Advances)
		}
	})

	t.Run("ground rule double", func(t *testing.T) {
		d, err := Parse("DGR/L9")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.GroundRule || d.BatterBases != 2 {
			t.Fatalf("unexpected ground rule double: %+v", d)
		}
	})

	t.Run("sacrifice takes away the at-bat", func(t *testing.T) {
		d, err := Parse("54(B)/BG25/SH.1-2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.AtBat || !d.SacrificeHit || !d.PlateAppearance {
			t.Fatalf("unexpected sacrifice: %+v", d)
		}
		if !d.BatterOut {
			t.Fatalf("batter named in the putout must be out")
		}
	})

	t.Run("sacrifice fly", func(t *testing.T) {
		d, err := Parse("8/SF.3-H")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.AtBat || !d.SacrificeFly {
			t.Fatalf("unexpected sacrifice fly: %+v", d)
		}
	})

	t.Run("muffed grounder reaches on error", func(t *testing.T) {
		d, err := Parse("3E1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.Kind != ReachedOnError || d.ErrorCount != 1 || d.BatterBases != 1 {
			t.Fatalf("unexpected error play: %+v", d)
		}
		if d.BatterOut {
			t.Fatalf("error cancels the out")
		}
	})
}

func TestParseForceNotation(t *testing.T) {
	t.Run("force plus trailing relay retires batter too", func(t *testing.T) {
		d, err := Parse("64(1)3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.BatterOut || !d.DoublePlay {
			t.Fatalf("expected batter out on a double play: %+v", d)
		}
		if !reflect.DeepEqual(d.Fielders, []int{6, 4, 3}) {
			t.Fatalf("force target must not pollute fielding credit: %v", d.Fielders)
		}
		if len(d.Advances) != 1 || !d.Advances[0].Out || d.Advances[0].From != First {
			t.Fatalf("expected implied 1X2, got %v", d.Advances)
		}
	})

	t.Run("lone force leaves batter safe", func(t *testing.T) {
		d, err := Parse("64(1)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.BatterOut {
			t.Fatalf("no trailing putout, batter reaches")
		}
		if d.BatterBases != 1 {
			t.Fatalf("expected batter awarded first, got %d", d.BatterBases)
		}
	})

	t.Run("dp modifier with single force implies batter out", func(t *testing.T) {
		d, err := Parse("64(1)/GDP")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.BatterOut || !d.DoublePlay {
			t.Fatalf("expected implied batter out: %+v", d)
		}
	})

	t.Run("triple play", func(t *testing.T) {
		d, err := Parse("5(2)4(1)3/GTP")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !d.TriplePlay || d.DoublePlay {
			t.Fatalf("expected triple play only: %+v", d)
		}
		if !d.BatterOut || len(d.Advances) != 2 {
			t.Fatalf("expected batter and two runners retired: %+v", d)
		}
	})
}

func TestParseCompoundCodes(t *testing.T) {
	t.Run("strikeout plus stolen base", func(t *testing.T) {
		d, err := Parse("K+SB2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.Kind != Strikeout || !d.BatterOut || !d.AtBat {
			t.Fatalf("compound must keep the strikeout booking: %+v", d)
		}
		if len(d.Advances) != 1 || d.Advances[0].To != Second || d.Advances[0].Out {
			t.Fatalf("expected implied 1-2, got %v", d.Advances)
		}
	})

	t.Run("strikeout plus wild pitch with batter advance", func(t *testing.T) {
		d, err := Parse("K+WP.B-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.Kind != Strikeout || !d.AtBat {
			t.Fatalf("compound must keep the strikeout booking: %+v", d)
		}
		if len(d.Advances) != 1 || d.Advances[0].From != BatterBase || d.Advances[0].Implied {
			t.Fatalf("expected explicit B-1, got %v", d.Advances)
		}
	})

	t.Run("walk plus wild pitch", func(t *testing.T) {
		d, err := Parse("W+WP.2-3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.Kind != Walk || d.AtBat {
			t.Fatalf("compound must keep the walk booking: %+v", d)
		}
		if len(d.Advances) != 2 {
			t.Fatalf("expected 2-3 plus implied B-1, got %v", d.Advances)
		}
	})
}

func TestParseRunnerEvents(t *testing.T) {
	t.Run("double steal", func(t *testing.T) {
		d, err := Parse("SB2;SB3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(d.StolenBases, []Base{Second, Third}) {
			t.Fatalf("unexpected stolen bases: %v", d.StolenBases)
		}
		if len(d.Advances) != 2 {
			t.Fatalf("expected two implied advances, got %v", d.Advances)
		}
		if d.PlateAppearance {
			t.Fatalf("a steal is not a plate appearance")
		}
	})

	t.Run("caught stealing erases runner", func(t *testing.T) {
		d, err := Parse("CS2(24)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(d.Advances) != 1 || !d.Advances[0].Out || d.Advances[0].From != First {
			t.Fatalf("expected implied 1X2, got %v", d.Advances)
		}
	})

	t.Run("error on steal attempt credits the base", func(t *testing.T) {
		d, err := Parse("CS2(2E4)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if d.ErrorCount != 1 {
			t.Fatalf("expected one error, got %d", d.ErrorCount)
		}
		if !reflect.DeepEqual(d.StolenBases, []Base{Second}) {
			t.Fatalf("expected stolen base on the error, got %v", d.StolenBases)
		}
		if len(d.Advances) != 1 || d.Advances[0].Out {
			t.Fatalf("expected safe implied 1-2, got %v", d.Advances)
		}
	})

	t.Run("pickoff names the runner's own base", func(t *testing.T) {
		d, err := Parse("PO2(14)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(d.Advances) != 1 || d.Advances[0].From != Second || !d.Advances[0].Out {
			t.Fatalf("expected runner on second retired, got %v", d.Advances)
		}
	})

	t.Run("pickoff caught stealing names the base taken", func(t *testing.T) {
		d, err := Parse("POCS2(1361)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(d.Advances) != 1 || d.Advances[0].From != First || !d.Advances[0].Out {
			t.Fatalf("expected runner on first retired, got %v", d.Advances)
		}
	})
}

func TestParseAdvanceClauses(t *testing.T) {
	t.Run("explicit clauses with implied batter advance", func(t *testing.T) {
		d, err := Parse("S7.2-3;1-2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []Advance{
			{From: Second, To: Third},
			{From: First, To: Second},
			{From: BatterBase, To: First, Implied: true},
		}
		if !reflect.DeepEqual(d.Advances, want) {
			t.Fatalf("unexpected advances: %v", d.Advances)
		}
	})

	t.Run("lead runners sort first", func(t *testing.T) {
		d, err := Parse("S8.1-2;3-H;2-3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		var origins []Base
		for _, a := range d.Advances {
			origins = append(origins, a.From)
		}
		want := []Base{Third, Second, First, BatterBase}
		if !reflect.DeepEqual(origins, want) {
			t.Fatalf("unexpected application order: %v", origins)
		}
	})

	t.Run("retreat sorts last", func(t *testing.T) {
		advances := []Advance{
			{From: Second, To: First},
			{From: First, To: Second, Out: true},
		}
		SortAdvances(advances)
		if advances[len(advances)-1].From != Second {
			t.Fatalf("2-1 retreat must apply last: %v", advances)
		}
	})

	t.Run("runner retired trying", func(t *testing.T) {
		d, err := Parse("FC6/G6.3XH(62)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(d.Advances) != 2 {
			t.Fatalf("expected 3XH plus implied B-1, got %v", d.Advances)
		}
		if !d.Advances[0].Out || d.Advances[0].To != Home {
			t.Fatalf("expected out at home, got %v", d.Advances[0])
		}
	})

	t.Run("error group cancels the out", func(t *testing.T) {
		d, err := Parse("S8.2XH(7E2)(UR)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		a := d.Advances[0]
		if a.Out {
			t.Fatalf("error group must rescue the runner: %v", a)
		}
		if !a.Unearned || a.ErrorCount != 1 {
			t.Fatalf("expected unearned run on an error: %v", a)
		}
	})

	t.Run("completed throw keeps the out despite an error", func(t *testing.T) {
		adv, err := parseAdvance("1X3(E5)(25/TH)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !adv.Out {
			t.Fatalf("throw group must keep the out: %v", adv)
		}
	})

	t.Run("rbi markings", func(t *testing.T) {
		cases := []struct {
			token string
			want  RBIFlag
		}{
			{"3-H(RBI)", RBICredited},
			{"3-H(NR)", RBIWithheld},
			{"3-H(NORBI)", RBIWithheld},
			{"3-H", RBIUnspecified},
		}
		for _, tc := range cases {
			adv, err := parseAdvance(tc.token)
			if err != nil {
				t.Fatalf("%s: expected no error, got %v", tc.token, err)
			}
			if adv.RBI != tc.want {
				t.Fatalf("%s: expected %v, got %v", tc.token, tc.want, adv.RBI)
			}
		}
	})

	t.Run("explicit clause wins over implied", func(t *testing.T) {
		d, err := Parse("SB2.1-3(E2/TH)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(d.Advances) != 1 || d.Advances[0].To != Third {
			t.Fatalf("explicit 1-3 must replace the implied 1-2: %v", d.Advances)
		}
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("empty descriptor", func(t *testing.T) {
		if _, err := Parse(""); !errors.Is(err, ErrMalformedDescriptor) {
			t.Fatalf("expected ErrMalformedDescriptor, got %v", err)
		}
	})

	t.Run("illegal character", func(t *testing.T) {
		if _, err := Parse("S7*"); !errors.Is(err, ErrMalformedDescriptor) {
			t.Fatalf("expected ErrMalformedDescriptor, got %v", err)
		}
	})

	t.Run("unknown play code", func(t *testing.T) {
		if _, err := Parse("Q5"); !errors.Is(err, ErrUnknownPlayCode) {
			t.Fatalf("expected ErrUnknownPlayCode, got %v", err)
		}
	})

	t.Run("invalid advance verb", func(t *testing.T) {
		_, err := Parse("S7.2=3")
		if !errors.Is(err, ErrMalformedAdvance) {
			t.Fatalf("expected ErrMalformedAdvance, got %v", err)
		}
	})

	t.Run("advance from nowhere", func(t *testing.T) {
		if _, err := Parse("S7.4-H"); !errors.Is(err, ErrMalformedAdvance) {
			t.Fatalf("expected ErrMalformedAdvance, got %v", err)
		}
	})
}

func TestParseIdempotent(t *testing.T) {
	raws := []string{
		"S7", "S7.2-3;1-2", "64(1)3", "W", "K+SB2", "HR/F78.2-H;1-H",
		"FC6/G6.3XH(62)", "CS2(2E4)", "8/SF.3-H",
	}
	for _, raw := range raws {
		first, err := Parse(raw)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", raw, err)
		}
		second, err := Parse(raw)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", raw, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: parse is not idempotent:\n%+v\n%+v", raw, first, second)
		}
	}
}

package boxscore

import (
	"fmt"
	"strings"

	"scorebook/internal/game"
)

// BoxScore is the downstream aggregate of one game's snapshot stream. It
// is computed from snapshots alone, so its run totals independently check
// the sequencer's final score.
type BoxScore struct {
	GameID       string
	VisitingTeam string
	HomeTeam     string
	Visitor      TeamTotals
	Home         TeamTotals
}

// TeamTotals is one side of the line score plus counting stats.
type TeamTotals struct {
	Innings []int // runs per inning, index 0 = 1st
	Runs    int
	Hits    int
	LOB     int
	Batters []BatterLine
}

// BatterLine is the classic AB/R/H/RBI row, in order of first appearance.
type BatterLine struct {
	PlayerID string
	AtBats   int
	Runs     int
	Hits     int
	RBIs     int
}

// Compute folds the game once and aggregates both sides. Flagged plays
// contribute nothing.
func Compute(g *game.Game) *BoxScore {
	b := &BoxScore{
		GameID:       g.ID,
		VisitingTeam: g.VisitingTeam,
		HomeTeam:     g.HomeTeam,
	}
	batters := map[string]int{}
	haveLast := false
	var last game.Snapshot

	for snap := range g.Snapshots() {
		if haveLast && (snap.Inning != last.Inning || snap.Home != last.Home) {
			b.side(last.Home).LOB += last.State.RunnersOn()
		}
		last, haveLast = snap, true

		side := b.side(snap.Home)
		for len(side.Innings) < snap.Inning {
			side.Innings = append(side.Innings, 0)
		}
		side.Innings[snap.Inning-1] += len(snap.Outcome.Runs)
		side.Runs += len(snap.Outcome.Runs)

		if snap.Descriptor == nil {
			continue
		}
		if snap.Descriptor.IsHit() {
			side.Hits++
		}
		if snap.Descriptor.AtBat {
			batterLine(batters, side, snap.Home, snap.Batter).AtBats++
		}
		if snap.Descriptor.IsHit() {
			batterLine(batters, side, snap.Home, snap.Batter).Hits++
		}
		if rbis := snap.Outcome.RBIs(); rbis > 0 {
			batterLine(batters, side, snap.Home, snap.Batter).RBIs += rbis
		}
		for _, run := range snap.Outcome.Runs {
			batterLine(batters, side, snap.Home, run.Runner).Runs++
		}
	}
	if haveLast {
		b.side(last.Home).LOB += last.State.RunnersOn()
	}
	return b
}

func (b *BoxScore) side(home bool) *TeamTotals {
	if home {
		return &b.Home
	}
	return &b.Visitor
}

// batterLine finds or appends the player's row. The returned pointer is
// used before the next append, so slice growth cannot invalidate it.
func batterLine(index map[string]int, side *TeamTotals, home bool, id string) *BatterLine {
	key := fmt.Sprintf("%t/%s", home, id)
	pos, ok := index[key]
	if !ok {
		side.Batters = append(side.Batters, BatterLine{PlayerID: id})
		pos = len(side.Batters) - 1
		index[key] = pos
	}
	return &side.Batters[pos]
}

// String renders the line score in the newspaper layout.
func (b *BoxScore) String() string {
	innings := max(len(b.Visitor.Innings), len(b.Home.Innings))
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s", "")
	for i := 1; i <= innings; i++ {
		fmt.Fprintf(&sb, "%3d", i)
	}
	fmt.Fprintf(&sb, "  %3s%3s%4s\n", "R", "H", "LOB")
	writeLine(&sb, b.VisitingTeam, b.Visitor, innings)
	writeLine(&sb, b.HomeTeam, b.Home, innings)
	return sb.String()
}

func writeLine(sb *strings.Builder, team string, t TeamTotals, innings int) {
	fmt.Fprintf(sb, "%-4s", team)
	for i := 0; i < innings; i++ {
		if i < len(t.Innings) {
			fmt.Fprintf(sb, "%3d", t.Innings[i])
		} else {
			fmt.Fprintf(sb, "%3s", "x")
		}
	}
	fmt.Fprintf(sb, "  %3d%3d%4d\n", t.Runs, t.Hits, t.LOB)
}

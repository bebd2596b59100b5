package eventfile

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// WalkDir collects the event files (.EVA for American League home teams,
// .EVN for National League) under a season directory tree.
func WalkDir(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(filepath.Clean(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		upper := strings.ToUpper(d.Name())
		if strings.HasSuffix(upper, ".EVA") || strings.HasSuffix(upper, ".EVN") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Filter selects proto games without parsing their plays.
type Filter struct {
	Team string // either side
	Park string // home side only
	Date string // exact match on the info date, 2013/04/09
	// UseDH filters on designated-hitter use when non-nil.
	UseDH *bool
}

func (f Filter) Match(g *ProtoGame) bool {
	if f.Team != "" && g.HomeTeam != f.Team && g.VisitingTeam != f.Team {
		return false
	}
	if f.Park != "" && g.HomeTeam != f.Park {
		return false
	}
	if f.Date != "" && g.Date != f.Date {
		return false
	}
	if f.UseDH != nil && g.UseDH != *f.UseDH {
		return false
	}
	return true
}

// Select returns the games from a file that pass the filter.
func (f Filter) Select(ef *File) []*ProtoGame {
	var out []*ProtoGame
	for _, g := range ef.Games {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

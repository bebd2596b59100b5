package eventfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrNoGameRecord  = errors.New("record before first id record")
	ErrBadFieldCount = errors.New("wrong field count for record")
)

// Play is one play record: the batter's plate appearance context plus the
// raw descriptor, left unparsed here. Descriptor parsing belongs to the
// play package; this file format layer only splits records.
type Play struct {
	Inning  int
	Home    bool // false = visiting team batting
	Batter  string
	Count   string
	Pitches string
	Raw     string
}

// Entrance is a start or sub record: a player taking a lineup slot.
type Entrance struct {
	PlayerID     string
	Name         string
	Home         bool
	BattingOrder int
	Position     int
	IsSub        bool
}

// Event is one entry in a game's timeline, in file order. Exactly one
// field is set.
type Event struct {
	Play     *Play
	Entrance *Entrance
	Comment  string
}

// EarnedRuns is a data,er record from the end of a game.
type EarnedRuns struct {
	PlayerID string
	Runs     int
}

// ProtoGame is one game's records, split but not yet reconstructed:
// just enough is lifted from the info records to filter games without
// parsing every play.
type ProtoGame struct {
	ID           string
	VisitingTeam string
	HomeTeam     string
	Date         string
	Site         string
	UseDH        bool
	Info         map[string]string
	Events       []Event
	EarnedRuns   []EarnedRuns
}

// File is one parsed .EVN/.EVA event file: games in file order plus any
// comments that precede the first game (encoder attribution and the like).
type File struct {
	Name          string
	StartComments []string
	Games         []*ProtoGame
}

func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	parsed.Name = path
	return parsed, nil
}

// Parse reads event-file records into ProtoGames. Games begin at id
// records; everything until the next id record belongs to the game.
func Parse(r io.Reader) (*File, error) {
	out := &File{}
	var game *ProtoGame

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n ")
		if text == "" {
			continue
		}
		fields, err := splitRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}

		kind, data := fields[0], fields[1:]
		if kind == "id" {
			if len(data) != 1 {
				return nil, fmt.Errorf("line %d: %w: id", line, ErrBadFieldCount)
			}
			if game != nil {
				out.Games = append(out.Games, game)
			}
			game = &ProtoGame{ID: data[0], Info: make(map[string]string)}
			continue
		}
		if game == nil {
			if kind != "com" {
				return nil, fmt.Errorf("line %d: %w: %s", line, ErrNoGameRecord, kind)
			}
			out.StartComments = append(out.StartComments, strings.Join(data, ","))
			continue
		}
		if err := game.appendRecord(kind, data); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if game != nil {
		out.Games = append(out.Games, game)
	}
	return out, nil
}

// splitRecord is a light CSV split: the full csv reader only runs when a
// quote is present, which is rare in event files.
func splitRecord(line string) ([]string, error) {
	if !strings.Contains(line, `"`) {
		return strings.Split(line, ","), nil
	}
	rd := csv.NewReader(strings.NewReader(line))
	rd.LazyQuotes = true
	rd.FieldsPerRecord = -1
	return rd.Read()
}

func (g *ProtoGame) appendRecord(kind string, data []string) error {
	switch kind {
	case "version", "badj", "padj", "ladj", "radj", "presadj":
		// Carried in files but not needed for reconstruction.
		return nil
	case "com":
		g.Events = append(g.Events, Event{Comment: strings.Join(data, ",")})
		return nil
	case "info":
		if len(data) < 2 {
			return fmt.Errorf("%w: info", ErrBadFieldCount)
		}
		g.setInfo(data[0], data[1])
		return nil
	case "start", "sub":
		if len(data) != 5 {
			return fmt.Errorf("%w: %s", ErrBadFieldCount, kind)
		}
		order, err := strconv.Atoi(data[3])
		if err != nil {
			return fmt.Errorf("%s batting order %q: %w", kind, data[3], err)
		}
		pos, err := strconv.Atoi(data[4])
		if err != nil {
			return fmt.Errorf("%s position %q: %w", kind, data[4], err)
		}
		g.Events = append(g.Events, Event{Entrance: &Entrance{
			PlayerID:     data[0],
			Name:         strings.Trim(data[1], `"`),
			Home:         data[2] == "1",
			BattingOrder: order,
			Position:     pos,
			IsSub:        kind == "sub",
		}})
		return nil
	case "play":
		if len(data) != 6 {
			return fmt.Errorf("%w: play", ErrBadFieldCount)
		}
		inning, err := strconv.Atoi(data[0])
		if err != nil {
			return fmt.Errorf("play inning %q: %w", data[0], err)
		}
		g.Events = append(g.Events, Event{Play: &Play{
			Inning:  inning,
			Home:    data[1] == "1",
			Batter:  data[2],
			Count:   data[3],
			Pitches: data[4],
			Raw:     data[5],
		}})
		return nil
	case "data":
		if len(data) != 3 || data[0] != "er" {
			// Only earned-run data records are defined.
			return nil
		}
		runs, err := strconv.Atoi(data[2])
		if err != nil {
			return fmt.Errorf("data er runs %q: %w", data[2], err)
		}
		g.EarnedRuns = append(g.EarnedRuns, EarnedRuns{PlayerID: data[1], Runs: runs})
		return nil
	default:
		// Unknown record kinds are tolerated; event files grow new ones.
		return nil
	}
}

func (g *ProtoGame) setInfo(key, value string) {
	g.Info[key] = value
	switch key {
	case "visteam":
		g.VisitingTeam = value
	case "hometeam":
		g.HomeTeam = value
	case "date":
		g.Date = value
	case "site":
		g.Site = value
	case "usedh":
		g.UseDH = value == "true"
	}
}

// Plays returns just the play records, in order.
func (g *ProtoGame) Plays() []*Play {
	var out []*Play
	for _, ev := range g.Events {
		if ev.Play != nil {
			out = append(out, ev.Play)
		}
	}
	return out
}

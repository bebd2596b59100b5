package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"scorebook/internal/store"
)

type GetGameInput struct {
	ID string `json:"id" jsonschema:"Retrosheet game id, e.g. SEA201304080"`
}

type ListGamesInput struct {
	Team  string `json:"team,omitempty" jsonschema:"restrict to games involving a team"`
	Park  string `json:"park,omitempty" jsonschema:"restrict to a home team's park"`
	Date  string `json:"date,omitempty" jsonschema:"exact date, 2013/04/08"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of games"`
}

type GetBoxScoreInput struct {
	ID string `json:"id" jsonschema:"Retrosheet game id"`
}

type SearchPlaysInput struct {
	Query string `json:"query" jsonschema:"search terms over play descriptors and batter ids"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type GameOutput struct {
	ID           string       `json:"id"`
	VisitingTeam string       `json:"visiting_team"`
	HomeTeam     string       `json:"home_team"`
	Date         string       `json:"date"`
	Site         string       `json:"site,omitempty"`
	VisitorScore int          `json:"visitor_score"`
	HomeScore    int          `json:"home_score"`
	Plays        []PlayOutput `json:"plays"`
}

type PlayOutput struct {
	Seq     int    `json:"seq"`
	Inning  int    `json:"inning"`
	Half    string `json:"half"`
	Batter  string `json:"batter"`
	Play    string `json:"play"`
	Kind    string `json:"kind"`
	Runs    int    `json:"runs,omitempty"`
	RBIs    int    `json:"rbis,omitempty"`
	Outs    int    `json:"outs,omitempty"`
	First   string `json:"first,omitempty"`
	Second  string `json:"second,omitempty"`
	Third   string `json:"third,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type GameSummaryOutput struct {
	ID           string `json:"id"`
	VisitingTeam string `json:"visiting_team"`
	HomeTeam     string `json:"home_team"`
	Date         string `json:"date"`
	VisitorScore int    `json:"visitor_score"`
	HomeScore    int    `json:"home_score"`
	Anomalies    int    `json:"anomalies,omitempty"`
}

type ListGamesOutput struct {
	Games []GameSummaryOutput `json:"games"`
}

type BoxScoreOutput struct {
	ID      string     `json:"id"`
	Visitor LineOutput `json:"visitor"`
	Home    LineOutput `json:"home"`
}

type LineOutput struct {
	Team    string `json:"team"`
	Innings []int  `json:"innings"`
	Runs    int    `json:"runs"`
	Hits    int    `json:"hits"`
	LOB     int    `json:"left_on_base"`
}

type SearchPlaysOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type SearchResultOutput struct {
	GameID string `json:"game_id"`
	Seq    int    `json:"seq"`
	Inning int    `json:"inning"`
	Batter string `json:"batter"`
	Play   string `json:"play"`
	Kind   string `json:"kind"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_game",
		Description: "Retrieve a reconstructed game with its full play-by-play",
	}, s.handleGetGame)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_games",
		Description: "List reconstructed games with optional team, park, and date filters",
	}, s.handleListGames)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_box_score",
		Description: "Return the line score and team totals for a game",
	}, s.handleGetBoxScore)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_plays",
		Description: "Search play descriptors and batter ids across all games",
	}, s.handleSearchPlays)
}

func (s *Server) handleGetGame(ctx context.Context, req *sdk.CallToolRequest, input GetGameInput) (*sdk.CallToolResult, GameOutput, error) {
	if input.ID == "" {
		return nil, GameOutput{}, fmt.Errorf("id is required")
	}
	g, err := s.db.GetGame(ctx, input.ID)
	if err != nil {
		return nil, GameOutput{}, err
	}
	if g == nil {
		return nil, GameOutput{}, fmt.Errorf("game not found")
	}
	plays, err := s.db.GetPlays(ctx, input.ID)
	if err != nil {
		return nil, GameOutput{}, err
	}

	out := GameOutput{
		ID:           g.ID,
		VisitingTeam: g.VisitingTeam,
		HomeTeam:     g.HomeTeam,
		Date:         g.Date,
		Site:         g.Site,
		VisitorScore: g.VisitorScore,
		HomeScore:    g.HomeScore,
		Plays:        make([]PlayOutput, 0, len(plays)),
	}
	for _, p := range plays {
		out.Plays = append(out.Plays, playOutputFromStore(p))
	}
	return nil, out, nil
}

func (s *Server) handleListGames(ctx context.Context, req *sdk.CallToolRequest, input ListGamesInput) (*sdk.CallToolResult, ListGamesOutput, error) {
	games, err := s.db.ListGames(ctx, store.GameFilter{
		Team:  input.Team,
		Park:  input.Park,
		Date:  input.Date,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, ListGamesOutput{}, err
	}

	out := ListGamesOutput{Games: make([]GameSummaryOutput, 0, len(games))}
	for _, g := range games {
		out.Games = append(out.Games, GameSummaryOutput{
			ID:           g.ID,
			VisitingTeam: g.VisitingTeam,
			HomeTeam:     g.HomeTeam,
			Date:         g.Date,
			VisitorScore: g.VisitorScore,
			HomeScore:    g.HomeScore,
			Anomalies:    g.Anomalies,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetBoxScore(ctx context.Context, req *sdk.CallToolRequest, input GetBoxScoreInput) (*sdk.CallToolResult, BoxScoreOutput, error) {
	if input.ID == "" {
		return nil, BoxScoreOutput{}, fmt.Errorf("id is required")
	}
	g, err := s.db.GetGame(ctx, input.ID)
	if err != nil {
		return nil, BoxScoreOutput{}, err
	}
	if g == nil {
		return nil, BoxScoreOutput{}, fmt.Errorf("game not found")
	}
	plays, err := s.db.GetPlays(ctx, input.ID)
	if err != nil {
		return nil, BoxScoreOutput{}, err
	}

	out := BoxScoreOutput{ID: g.ID}
	out.Visitor, out.Home = linesFromPlays(plays)
	out.Visitor.Team = g.VisitingTeam
	out.Home.Team = g.HomeTeam
	return nil, out, nil
}

func (s *Server) handleSearchPlays(ctx context.Context, req *sdk.CallToolRequest, input SearchPlaysInput) (*sdk.CallToolResult, SearchPlaysOutput, error) {
	if input.Query == "" {
		return nil, SearchPlaysOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.db.SearchPlays(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchPlaysOutput{}, err
	}

	out := SearchPlaysOutput{Results: make([]SearchResultOutput, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, SearchResultOutput{
			GameID: r.GameID,
			Seq:    r.Seq,
			Inning: r.Inning,
			Batter: r.Batter,
			Play:   r.Raw,
			Kind:   r.Kind,
		})
	}
	return nil, out, nil
}

func playOutputFromStore(p store.Play) PlayOutput {
	half := "top"
	if p.Home {
		half = "bottom"
	}
	return PlayOutput{
		Seq:     p.Seq,
		Inning:  p.Inning,
		Half:    half,
		Batter:  p.Batter,
		Play:    p.Raw,
		Kind:    p.Kind,
		Runs:    p.Runs,
		RBIs:    p.RBIs,
		Outs:    p.Outs,
		First:   p.First,
		Second:  p.Second,
		Third:   p.Third,
		Warning: p.Warning,
	}
}

// linesFromPlays rebuilds both sides of the line score from stored
// snapshot rows: runs by inning, hits by kind, runners stranded at each
// half-inning boundary.
func linesFromPlays(plays []store.Play) (visitor, home LineOutput) {
	hitKinds := map[string]bool{
		"single": true, "double": true, "triple": true, "home-run": true,
	}

	side := func(homeHalf bool) *LineOutput {
		if homeHalf {
			return &home
		}
		return &visitor
	}

	for i, p := range plays {
		line := side(p.Home)
		for len(line.Innings) < p.Inning {
			line.Innings = append(line.Innings, 0)
		}
		line.Innings[p.Inning-1] += p.Runs
		line.Runs += p.Runs
		if hitKinds[p.Kind] {
			line.Hits++
		}

		boundary := i == len(plays)-1 ||
			plays[i+1].Inning != p.Inning || plays[i+1].Home != p.Home
		if boundary {
			line.LOB += stranded(p)
		}
	}
	return visitor, home
}

func stranded(p store.Play) int {
	n := 0
	for _, id := range []string{p.First, p.Second, p.Third} {
		if id != "" {
			n++
		}
	}
	return n
}

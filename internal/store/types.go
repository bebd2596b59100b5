package store

// GameInput is one reconstructed game heading into the store.
type GameInput struct {
	ID           string
	VisitingTeam string
	HomeTeam     string
	Date         string
	Site         string
	UseDH        bool
	VisitorScore int
	HomeScore    int
	SourceFile   string
	RunID        string
}

// PlayInput is one snapshot row: the play's attribution plus the base-out
// state once it has been applied.
type PlayInput struct {
	Seq     int
	Inning  int
	Home    bool
	Batter  string
	Raw     string
	Kind    string
	Runs    int
	RBIs    int
	Outs    int // outs made on this play
	Flagged bool
	Warning string

	// State after the play.
	First        string
	Second       string
	Third        string
	OutsAfter    int
	VisitorScore int
	HomeScore    int
}

// AnomalyInput records a play the reconstruction could not apply.
type AnomalyInput struct {
	Seq     int
	Inning  int
	Raw     string
	Warning string
}

type Game struct {
	ID           string
	VisitingTeam string
	HomeTeam     string
	Date         string
	Site         string
	UseDH        bool
	VisitorScore int
	HomeScore    int
	SourceFile   string
	RunID        string
}

type GameSummary struct {
	ID           string
	VisitingTeam string
	HomeTeam     string
	Date         string
	VisitorScore int
	HomeScore    int
	Anomalies    int
}

// GameFilter narrows ListGames. Empty fields match everything.
type GameFilter struct {
	Team  string // either side
	Park  string // home side
	Date  string
	Limit int
}

type Play struct {
	Seq     int
	Inning  int
	Home    bool
	Batter  string
	Raw     string
	Kind    string
	Runs    int
	RBIs    int
	Outs    int
	Flagged bool
	Warning string

	First        string
	Second       string
	Third        string
	OutsAfter    int
	VisitorScore int
	HomeScore    int
}

type PlaySearchResult struct {
	GameID string
	Seq    int
	Inning int
	Batter string
	Raw    string
	Kind   string
}

type Anomaly struct {
	GameID  string
	Seq     int
	Inning  int
	Raw     string
	Warning string
}

package game

import (
	"time"

	"gorm.io/gorm"
)

// Game statuses and phases.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"

	PhasePlanning = "planning"
	PhaseResolved = "resolved"
)

// Player is a participant in a single game. The global identity lives in
// User (player_profiles); this row carries per-game resources and the moves
// pending for the current week.
type Player struct {
	gorm.Model
	GameID      uint   `json:"-"`
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`

	Soldiers int          `json:"soldiers"`
	Defense  DefenseLabel `json:"defense"`
	// Investments is the display-only allocation breakdown shown on the
	// player's dashboard. Stored as a JSON text column.
	Investments Allocation `json:"investments" gorm:"type:text"`

	HasSubmittedMoves bool `json:"has_submitted_moves"`
	// PendingMoves holds the normalized bundle for the current week. Stored
	// as a JSON text column; cleared when the week resolves.
	PendingMoves ActionBundle `json:"pending_moves" gorm:"type:text"`

	// One-week effects prepared by defensive actions. Reset on resolution.
	InsuranceActive bool `json:"insurance_active"`
	CounterActive   bool `json:"counter_active"`

	Eliminated bool `json:"eliminated"`
}

// Store per-game participants in a dedicated table for clarity
func (Player) TableName() string { return "game_players" }

// Game is one running match: a roster of players advancing through weekly
// cycles. The persisted cycle fields mirror the in-memory cycle state so a
// restarted server resumes from the last transition.
type Game struct {
	gorm.Model
	Name        string   `json:"name" gorm:"size:32"`
	Description string   `json:"description" gorm:"size:256"`
	Private     bool     `json:"private"`
	JoinCode    string   `json:"join_code" gorm:"unique"`
	Players     []Player `json:"players"`

	Week       int    `json:"week"`
	TotalWeeks int    `json:"total_weeks"`
	Phase      string `json:"phase"` // planning | resolved
	Status     string `json:"status"`
	Winner     string `json:"winner"`
	Message    string `json:"message"`

	CurrentCycle    CycleName `json:"current_cycle"`
	CycleLastUpdate time.Time `json:"cycle_last_update"`
	AutoSimulate    bool      `json:"auto_simulate"`
	// ReturnShifts carries market manipulation drags into the next week.
	// Applied on top of the cycle-derived returns whenever the economy is
	// rebuilt; replaced at every week resolution. Stored as a JSON text
	// column.
	ReturnShifts Allocation `json:"return_shifts" gorm:"type:text"`

	MovesDeadline   time.Time `json:"moves_deadline"`
	LastWeekSummary string    `json:"last_week_summary"`
	StatsCounted    bool      `json:"-"`
}

// HostEmail returns the creator's email (first roster slot).
func (g *Game) HostEmail() string {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[0].PlayerEmail
}

// FindPlayerByEmail returns the roster entry for the email, or nil.
func (g *Game) FindPlayerByEmail(email string) *Player {
	for i := range g.Players {
		if g.Players[i].PlayerEmail == email {
			return &g.Players[i]
		}
	}
	return nil
}

// ActionRecord is the append-only weekly submission log. Every submission
// (including edit-moves replacements before the deadline) appends a row; the
// latest row per player and week is the effective bundle. Rows are never
// updated after insert.
type ActionRecord struct {
	gorm.Model
	GameID      uint         `json:"-" gorm:"index:idx_weekly_actions_game_week"`
	Week        int          `json:"week" gorm:"index:idx_weekly_actions_game_week"`
	PlayerEmail string       `json:"-"`
	PlayerName  string       `json:"player_name"`
	Bundle      ActionBundle `json:"bundle" gorm:"type:text"`
}

func (ActionRecord) TableName() string { return "weekly_actions" }

// EconomySnapshot persists the cycle and derived market returns for one game
// week so clients can chart the economy history.
type EconomySnapshot struct {
	gorm.Model
	GameID  uint       `json:"-" gorm:"index:idx_economy_snapshots_game_week"`
	Week    int        `json:"week" gorm:"index:idx_economy_snapshots_game_week"`
	Cycle   CycleName  `json:"cycle"`
	Returns Allocation `json:"returns" gorm:"type:text"`
}

func (EconomySnapshot) TableName() string { return "economy_snapshots" }

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID   string `gorm:"index"`
	PlayerName   string
	Email        string `gorm:"uniqueIndex"`
	GamesPlayed  int
	Wins         int
	Resignations int
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }

package storage

import (
	"time"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// publicGamesTTL hides stale open lobbies from the public list.
	publicGamesTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, publicGamesTTL time.Duration) Repository {
	return &sqliteRepository{db: db, publicGamesTTL: publicGamesTTL}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	if err := r.db.Preload("Players").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.Game, error) {
	var g game.Game
	if err := r.db.Preload("Players").Where("join_code = ?", code).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) GetPublicGames() ([]game.Game, error) {
	var games []game.Game
	q := r.db.Preload("Players").
		Where("private = ? AND status = ?", false, game.StatusWaitingForPlayers)
	if r.publicGamesTTL > 0 {
		cutoff := time.Now().Add(-r.publicGamesTTL)
		q = q.Where("created_at >= ?", cutoff)
	}
	if err := q.Order("created_at desc").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) RemovePlayerByEmail(gameID uint, email string) error {
	return r.db.Where("game_id = ? AND player_email = ?", gameID, email).
		Delete(&game.Player{}).Error
}

func (r *sqliteRepository) AppendActionRecord(rec *game.ActionRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) LatestActionRecords(gameID uint, week int) ([]game.ActionRecord, error) {
	var rows []game.ActionRecord
	err := r.db.Where("game_id = ? AND week = ?", gameID, week).
		Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// Later rows replace earlier ones for the same player (edit moves).
	latest := make(map[string]game.ActionRecord, len(rows))
	order := make([]string, 0, len(rows))
	for _, rec := range rows {
		if _, seen := latest[rec.PlayerEmail]; !seen {
			order = append(order, rec.PlayerEmail)
		}
		latest[rec.PlayerEmail] = rec
	}
	out := make([]game.ActionRecord, 0, len(latest))
	for _, email := range order {
		out = append(out, latest[email])
	}
	return out, nil
}

func (r *sqliteRepository) SaveEconomySnapshot(snap *game.EconomySnapshot) error {
	return r.db.Create(snap).Error
}

func (r *sqliteRepository) GetEconomySnapshots(gameID uint) ([]game.EconomySnapshot, error) {
	var snaps []game.EconomySnapshot
	if err := r.db.Where("game_id = ?", gameID).Order("week asc").Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) error {
	if email == "" {
		return nil
	}
	var u game.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&game.User{Email: email, PlayerName: name}).Error
	}
	if err != nil {
		return err
	}
	if name != "" && u.PlayerName == "" {
		u.PlayerName = name
		return r.db.Save(&u).Error
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// UpdateStatsOnGameEnd counts the finished game for every participant and
// credits the winner. A resignation counts against the resigning player.
func (r *sqliteRepository) UpdateStatsOnGameEnd(g *game.Game, resignedEmail string) error {
	for i := range g.Players {
		p := &g.Players[i]
		if p.PlayerEmail == "" {
			continue
		}
		var u game.User
		err := r.db.Where("email = ?", p.PlayerEmail).First(&u).Error
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: p.PlayerEmail, PlayerName: p.PlayerName}
		} else if err != nil {
			return err
		}
		u.GamesPlayed++
		if g.Winner != "" && g.Winner == p.PlayerName {
			u.Wins++
		}
		if resignedEmail != "" && resignedEmail == p.PlayerEmail {
			u.Resignations++
		}
		if err := r.db.Save(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	err := r.db.Order("wins desc, games_played asc").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) FindTimedOutGames(now time.Time) ([]game.Game, error) {
	var games []game.Game
	// A zero deadline means "no deadline set"; filter those out with the
	// epoch lower bound instead of comparing against Go's zero time string.
	err := r.db.Preload("Players").
		Where("status = ? AND phase = ? AND moves_deadline > ? AND moves_deadline <= ?",
			game.StatusInProgress, game.PhasePlanning, time.Unix(0, 0), now).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *sqliteRepository) FindAutoSimGames(now time.Time, weekDuration time.Duration) ([]game.Game, error) {
	cutoff := now.Add(-weekDuration)
	var games []game.Game
	err := r.db.Preload("Players").
		Where("status = ? AND auto_simulate = ? AND cycle_last_update <= ?",
			game.StatusInProgress, true, cutoff).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

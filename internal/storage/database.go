package storage

import (
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. Market catalog data lives in the server config, not the
// database; only games, rosters, the weekly action log, economy snapshots
// and player profiles are persisted.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.User{},
		&game.Player{},
		&game.Game{},
		&game.ActionRecord{},
		&game.EconomySnapshot{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

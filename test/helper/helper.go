package helper

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/hooktrail/hooktrail/config"
	"github.com/hooktrail/hooktrail/db"
	"github.com/hooktrail/hooktrail/db/migrator"
	"go.uber.org/zap"
)

var cfg *config.Config

func init() {
	cfg = config.New()
	if err := config.Load("", cfg); err != nil {
		panic(err)
	}
}

// InitDB migrates the test database up and returns a handle to it. With
// truncate set, the events table is emptied first.
func InitDB(truncate bool) *db.DB {
	if err := migrator.New(cfg).Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		panic(err)
	}

	sqlDB, err := db.NewSqlDB(cfg.Database)
	if err != nil {
		panic(err)
	}
	database := db.NewDB(sqlDB, zap.NewNop().Sugar())

	if truncate {
		if _, err := database.DB.Exec("TRUNCATE events"); err != nil {
			panic(err)
		}
	}

	return database
}

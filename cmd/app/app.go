package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voterbowl/backend/internal/api"
	"github.com/voterbowl/backend/internal/config"
	"github.com/voterbowl/backend/internal/db"
	"github.com/voterbowl/backend/internal/logger"
	"github.com/voterbowl/backend/pkg/agcod"
	"github.com/voterbowl/backend/pkg/mailer"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	vendor, err := agcod.New(conf.AGCOD)
	if err != nil {
		return fmt.Errorf("failed to initialize gift code client -> %w", err)
	}

	m, err := mailer.NewSES(conf.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, vendor, m)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

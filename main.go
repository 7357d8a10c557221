package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}
	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "portfolio"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		log.Fatal().Err(err).Msg("Error enabling uuid-ossp extension")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating schema")
	}

	sessions, err := newSessionManager(db, config.GetDuration(c, "SESSION_LIFETIME", 7*24*time.Hour))
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing session store")
	}

	deps := api.Dependencies{Sessions: sessions}

	mailer, err := services.NewMailer(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "RESEND_FROM_EMAIL", ""),
		config.GetString(c, "CONTACT_TO_EMAIL", ""),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Contact mailer disabled")
	} else {
		deps.Mailer = mailer
	}

	if bucket := config.GetString(c, "IMAGE_BUCKET", ""); bucket != "" {
		storage, err := services.NewImageStorage(context.Background(), bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing image storage")
		}
		deps.Storage = storage
	} else {
		log.Warn().Msg("IMAGE_BUCKET not set, image uploads disabled")
	}

	server, err := api.NewServer(database.New(db), deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msgf("Server started on: %s", server.Addr)
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		server.ShutdownGracefully(30 * time.Second)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

// newSessionManager builds the scs session manager backed by the
// application database. scs expects its own sessions table.
func newSessionManager(db *gorm.DB, lifetime time.Duration) (*scs.SessionManager, error) {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		expiry TIMESTAMPTZ NOT NULL
	)`).Error; err != nil {
		return nil, err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)").Error; err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = postgresstore.New(sqlDB)
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm, nil
}

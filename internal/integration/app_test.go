package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/app"
	"github.com/metinatakli/ticket-inventory-system/internal/mailer"
	"github.com/metinatakli/ticket-inventory-system/internal/payment"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Mailer   *mailer.MockMailer
	Verifier *payment.MockEventVerifier
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mockMailer := mailer.NewMockMailer()
	mockVerifier := payment.NewMockEventVerifier()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		mockMailer,
		app.NewSessionManager(redisClient),
		mockVerifier,
	)

	return &TestApp{
		App:      application,
		DB:       db,
		Mailer:   mockMailer,
		Verifier: mockVerifier,
	}, nil
}

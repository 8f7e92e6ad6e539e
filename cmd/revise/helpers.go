package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/apprendo/revise/internal/config"
	"github.com/apprendo/revise/internal/domain"
	"github.com/apprendo/revise/internal/domain/srs"
	"github.com/apprendo/revise/internal/platform/logger"
	"github.com/apprendo/revise/internal/service/revision"
	"github.com/apprendo/revise/internal/store"
)

// app bundles everything a command needs.
type app struct {
	cfg      *config.Config
	service  revision.Service
	location *time.Location
}

// newApp loads configuration, sets up logging and wires the revision service
// onto the YAML file store.
func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Log, os.Stderr)

	location := time.Local
	if cfg.Engine.Timezone != "" && cfg.Engine.Timezone != "Local" {
		location, err = time.LoadLocation(cfg.Engine.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Engine.Timezone, err)
		}
	}

	fileStore, err := store.NewYAMLStore(cfg.Store.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	params := srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:      cfg.Engine.MinEaseFactor,
		MaxEaseFactor:      cfg.Engine.MaxEaseFactor,
		SuccessThreshold:   cfg.Engine.SuccessThreshold,
		FailureEasePenalty: cfg.Engine.FailureEasePenalty,
	})

	service := revision.NewService(
		fileStore,
		fileStore,
		srs.NewServiceWithParams(params),
		log,
		revision.WithMaxPerDay(cfg.Engine.MaxReviewsPerDay),
		revision.WithClock(func() time.Time { return time.Now().In(location) }),
	)

	return &app{cfg: cfg, service: service, location: location}, nil
}

// parseStudentID parses the required --student flag value.
func parseStudentID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: student ID %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

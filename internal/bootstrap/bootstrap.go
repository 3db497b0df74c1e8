// Package bootstrap provides dependency initialization for the video
// generation API.
package bootstrap

import (
	"log/slog"

	"github.com/pixevo/videogen-api/internal/config"
	"github.com/pixevo/videogen-api/internal/fal"
	"github.com/pixevo/videogen-api/internal/job"
	"github.com/pixevo/videogen-api/internal/piapi"
	"github.com/pixevo/videogen-api/internal/registry"
	"github.com/pixevo/videogen-api/internal/replicate"
	"github.com/pixevo/videogen-api/internal/runway"
	"github.com/pixevo/videogen-api/internal/videogen"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Service  *videogen.Service
	Registry *registry.Registry
	Repo     job.Repository
}

// NewDependencies creates and initializes all dependencies for the
// application. Clients are constructed unconditionally: a provider
// without a credential stays wired and reports its missing credential
// on first use instead of blocking startup.
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	reg := registry.Default()

	adapters := map[videogen.Provider]videogen.Adapter{
		videogen.ProviderReplicate: videogen.NewReplicateAdapter(
			replicate.NewClient(replicate.WithAPIToken(cfg.ReplicateAPIToken)),
		),
		videogen.ProviderPiAPI: videogen.NewPiAPIAdapter(
			piapi.NewClient(piapi.WithAPIKey(cfg.PiAPIKey)),
		),
		videogen.ProviderRunway: videogen.NewRunwayAdapter(
			runway.NewClient(runway.WithAPIKey(cfg.RunwayAPIKey)),
		),
		videogen.ProviderFal: videogen.NewFalAdapter(
			fal.NewClient(fal.WithAPIKey(cfg.FalKey)),
		),
	}

	service := videogen.NewService(reg, adapters, logger)
	repo := job.NewMemoryRepository()

	logger.Info("orchestrator initialized",
		slog.Int("models", reg.Len()),
		slog.Int("providers", len(adapters)),
		slog.Bool("webhooks_enabled", cfg.PublicBaseURL != ""),
	)

	return &Dependencies{
		Service:  service,
		Registry: reg,
		Repo:     repo,
	}
}

package testutil

import (
	"log/slog"

	appplayers "github.com/preston-bernstein/team-draft-service/internal/app/players"
	appteams "github.com/preston-bernstein/team-draft-service/internal/app/teams"
	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
	"github.com/preston-bernstein/team-draft-service/internal/providers"
	"github.com/preston-bernstein/team-draft-service/internal/store"
)

// Services bundles a memory store with the services built on it.
type Services struct {
	Store   *store.MemoryStore
	Players *appplayers.Service
	Teams   *appteams.Service
}

// NewServices builds roster and team services over a store preloaded with drafts. The allocator
// uses a fixed seed so results are repeatable.
func NewServices(drafts []players.Draft, extractor providers.Extractor, recorder *metrics.Recorder, logger *slog.Logger) Services {
	ms := store.NewMemoryStore()
	if len(drafts) > 0 {
		ms.AddPlayers(drafts)
	}
	return Services{
		Store:   ms,
		Players: appplayers.NewService(ms, extractor, logger),
		Teams:   appteams.NewService(ms, draft.NewSeeded(1), recorder, logger),
	}
}

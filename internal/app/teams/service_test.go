package teams

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	domainteams "github.com/preston-bernstein/team-draft-service/internal/domain/teams"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/export"
	"github.com/preston-bernstein/team-draft-service/internal/metrics"
	"github.com/preston-bernstein/team-draft-service/internal/store"
	"github.com/preston-bernstein/team-draft-service/internal/teststubs"
)

func seedRoster(st *store.MemoryStore, n int) {
	drafts := make([]players.Draft, 0, n)
	for i := 0; i < n; i++ {
		drafts = append(drafts, players.Draft{Name: string(rune('A' + i)), Rating: float64(1 + i%5)})
	}
	st.AddPlayers(drafts)
}

func newTestService(st *store.MemoryStore, rec *metrics.Recorder, logger *slog.Logger) *Service {
	svc := NewService(st, draft.NewSeeded(7), rec, logger)
	svc.newID = func() string { return "run-1" }
	return svc
}

func TestGenerateStoresRunAndRecordsMetrics(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 7)
	rec := metrics.NewRecorder()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := newTestService(st, rec, logger)

	run, err := svc.Generate(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if run.ID != "run-1" || run.PlayersPerTeam != 3 || !run.BalanceByRating {
		t.Fatalf("unexpected run metadata %+v", run)
	}
	if len(run.Teams) != 3 || domainteams.AssignedCount(run.Teams) != 7 {
		t.Fatalf("expected 3 teams covering 7 players, got %+v", run.Teams)
	}
	if len(run.Unassigned) != 0 {
		t.Fatalf("expected no unassigned players, got %+v", run.Unassigned)
	}

	if gen := st.Generation(); gen.RunID != "run-1" || len(gen.Teams) != 3 {
		t.Fatalf("expected generation stored, got %+v", gen)
	}
	snap := rec.Allocations()
	if snap.Runs != 1 || snap.Failures != 0 || snap.LastTeams != 3 || snap.LastPlayers != 7 {
		t.Fatalf("unexpected allocation metrics %+v", snap)
	}
	if !strings.Contains(buf.String(), "run_id=run-1") {
		t.Fatalf("expected run id in logs, got %s", buf.String())
	}
}

func TestGenerateFailureDiscardsPreviousTeams(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 4)
	rec := metrics.NewRecorder()
	svc := newTestService(st, rec, nil)

	if _, err := svc.Generate(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := svc.Generate(context.Background(), 0, true); !errors.Is(err, draft.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(st.Generation().Teams) != 0 {
		t.Fatalf("expected previous teams discarded")
	}
	if snap := rec.Allocations(); snap.Runs != 2 || snap.Failures != 1 {
		t.Fatalf("unexpected allocation metrics %+v", snap)
	}
}

func TestGenerateEmptyRoster(t *testing.T) {
	svc := newTestService(store.NewMemoryStore(), nil, nil)
	if _, err := svc.Generate(context.Background(), 2, true); !errors.Is(err, draft.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCurrentRecomputesUnassignedAfterRosterChanges(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 4)
	svc := newTestService(st, nil, nil)

	if _, err := svc.Generate(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	late := st.AddPlayers([]players.Draft{{Name: "Late", Rating: 3}})

	current := svc.Current()
	if current.ID != "run-1" || len(current.Teams) != 2 {
		t.Fatalf("unexpected current run %+v", current)
	}
	if len(current.Unassigned) != 1 || current.Unassigned[0].ID != late[0].ID {
		t.Fatalf("expected late player unassigned, got %+v", current.Unassigned)
	}

	// Every roster player is either on a team or unassigned.
	if domainteams.AssignedCount(current.Teams)+len(current.Unassigned) != len(st.ListPlayers()) {
		t.Fatalf("assigned plus unassigned should cover the roster")
	}
}

func TestCurrentWithoutGeneration(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 2)
	current := newTestService(st, nil, nil).Current()
	if current.Teams == nil || len(current.Teams) != 0 {
		t.Fatalf("expected empty non-nil teams, got %+v", current.Teams)
	}
	if len(current.Unassigned) != 2 {
		t.Fatalf("expected whole roster unassigned, got %+v", current.Unassigned)
	}
}

func TestExportHidesRatingsForUnbalancedRuns(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddPlayers([]players.Draft{{Name: "Ana", Rating: 1}, {Name: "Bruno", Rating: 1}})
	svc := newTestService(st, nil, nil)

	if _, err := svc.Generate(context.Background(), 2, false); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	out := svc.Export(export.Options{ShowRatings: true})
	if strings.Contains(out, "Nota Total") {
		t.Fatalf("expected ratings hidden for unbalanced run, got %q", out)
	}

	if _, err := svc.Generate(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	out = svc.Export(export.Options{ShowRatings: true})
	if !strings.HasPrefix(out, "Time 1 (Nota Total: 2.0)") {
		t.Fatalf("expected ratings for balanced run, got %q", out)
	}
}

func TestGenerateSurfacesAllocatorInvariantFailure(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 3)
	alloc := &teststubs.StubAllocator{Err: draft.ErrCapacityInvariant}
	rec := metrics.NewRecorder()
	svc := NewService(st, alloc, rec, nil)

	if _, err := svc.Generate(context.Background(), 2, false); !errors.Is(err, draft.ErrCapacityInvariant) {
		t.Fatalf("expected ErrCapacityInvariant, got %v", err)
	}
	if alloc.LastPerTeam != 2 || alloc.LastBalanced || len(alloc.LastRoster) != 3 {
		t.Fatalf("expected allocator called with roster and settings, got %+v", alloc)
	}
	if rec.Allocations().Failures != 1 {
		t.Fatalf("expected failure recorded")
	}
}

func TestGenerateRecordsLatencyFromClock(t *testing.T) {
	st := store.NewMemoryStore()
	seedRoster(st, 2)
	rec := metrics.NewRecorder()
	svc := newTestService(st, rec, nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * 5 * time.Millisecond)
	}

	if _, err := svc.Generate(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := rec.Allocations().LastLatency; got != 5*time.Millisecond {
		t.Fatalf("expected 5ms latency, got %s", got)
	}
}

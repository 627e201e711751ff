package registry_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avel9n/privacylens/internal/model"
	"github.com/avel9n/privacylens/internal/registry"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		t.Logf("pragmas: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.NewRegistry(openTestDB(t), nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func sampleReport(domain string, score int, at time.Time) *model.AnalysisReport {
	return &model.AnalysisReport{
		PageURL:    "https://" + domain + "/",
		PageDomain: domain,
		Score:      score,
		Level:      "high",
		Verdicts: []model.DomainVerdict{
			{Domain: "doubleclick.net", Count: 2, ThirdParty: true, KnownTracker: true},
		},
		CreatedAt: at,
	}
}

func TestRegistry_SaveAndGet(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	saved, err := reg.SaveAnalysis(ctx, sampleReport("example.com", 80, time.Time{}))
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("expected assigned creation time")
	}

	got, err := reg.GetAnalysis(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if got.PageDomain != "example.com" || got.Score != 80 {
		t.Errorf("stored report mismatch: %+v", got)
	}
	if len(got.Verdicts) != 1 || got.Verdicts[0].Domain != "doubleclick.net" {
		t.Errorf("verdicts not round-tripped: %+v", got.Verdicts)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.GetAnalysis(context.Background(), "no-such-id")
	if !errors.Is(err, registry.ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestRegistry_ListByDomain(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, domain := range []string{"example.com", "example.com", "other.org"} {
		if _, err := reg.SaveAnalysis(ctx, sampleReport(domain, 50+i, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveAnalysis %d: %v", i, err)
		}
	}

	got, err := reg.ListAnalyses(ctx, "example.com", 0)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 analyses for example.com, got %d", len(got))
	}
	// newest first
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("expected newest-first ordering: %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}

	all, err := reg.ListAnalyses(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListAnalyses all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 analyses overall, got %d", len(all))
	}

	limited, err := reg.ListAnalyses(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListAnalyses limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 analysis with limit 1, got %d", len(limited))
	}
}

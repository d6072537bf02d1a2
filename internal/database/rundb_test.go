package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/model"
)

func openTestDB(t *testing.T) *RunDB {
	t.Helper()
	rdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func sampleRun(domain string) *model.PipelineRun {
	run := model.NewPipelineRun(domain, []string{"rival.com"})
	run.Steps = []model.StepResult{
		{Name: "keyword-research", Status: model.StepCompleted, ArtifactPath: "/tmp/keywords.json", Duration: 3 * time.Second},
		{Name: "serp-analysis", Status: model.StepFailed, Error: "provider down", Duration: time.Second},
		{Name: "technical-audit", Status: model.StepSkipped},
	}
	run.Summarize()
	return run
}

func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := Options{CreateIfNotExists: false}
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Fatal("expected error opening a missing database without create")
	}
}

func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	run := sampleRun("ours.com")

	universe := &model.KeywordUniverse{
		Seeds: []string{"seo"},
		Keywords: []model.KeywordRecord{
			{Keyword: "seo tools", Volume: 1000, OpportunityScore: 2000, Source: model.SourceSeed},
			{Keyword: "free seo tools", Volume: 500, OpportunityScore: 800, Source: model.SourceRelated},
		},
	}

	if err := rdb.SaveRun(context.Background(), run, universe); err != nil {
		t.Fatal(err)
	}

	got, err := rdb.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Domain != "ours.com" {
		t.Errorf("domain = %q", got.Domain)
	}
	if len(got.Steps) != 3 {
		t.Fatalf("len(steps) = %d, want 3", len(got.Steps))
	}
	if got.Steps[1].Error != "provider down" {
		t.Errorf("step error = %q", got.Steps[1].Error)
	}
	if got.Summary.CompletedSteps != 1 || got.Summary.FailedSteps != 1 || got.Summary.SkippedSteps != 1 {
		t.Errorf("summary = %+v", got.Summary)
	}

	snapshots, err := rdb.GetKeywordSnapshots(context.Background(), run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("len(snapshots) = %d, want 2", len(snapshots))
	}
	if snapshots[0].Keyword != "seo tools" || snapshots[0].OpportunityScore != 2000 {
		t.Errorf("first snapshot = %+v", snapshots[0])
	}
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	if _, err := rdb.GetRun(context.Background(), "no-such-run"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("err = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	ctx := context.Background()

	first := sampleRun("ours.com")
	first.StartedAt = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := sampleRun("ours.com")
	second.StartedAt = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	other := sampleRun("elsewhere.com")
	other.StartedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, run := range []*model.PipelineRun{first, second, other} {
		if err := rdb.SaveRun(ctx, run, nil); err != nil {
			t.Fatal(err)
		}
	}

	all, err := rdb.ListRuns(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// Newest first
	if all[0].Domain != "elsewhere.com" {
		t.Errorf("first listed = %+v, want the newest run", all[0])
	}

	filtered, err := rdb.ListRuns(ctx, "ours.com", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Fatalf("len(filtered) = %d, want 2", len(filtered))
	}

	limited, err := rdb.ListRuns(ctx, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != other.ID {
		t.Errorf("limited = %+v, want only the newest run", limited)
	}
}

func TestSaveRunSnapshotLimit(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	run := sampleRun("ours.com")

	universe := &model.KeywordUniverse{}
	for i := 0; i < snapshotLimit+10; i++ {
		universe.Keywords = append(universe.Keywords, model.KeywordRecord{
			Keyword: "kw", Volume: i,
		})
	}

	if err := rdb.SaveRun(context.Background(), run, universe); err != nil {
		t.Fatal(err)
	}

	snapshots, err := rdb.GetKeywordSnapshots(context.Background(), run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != snapshotLimit {
		t.Errorf("len(snapshots) = %d, want %d", len(snapshots), snapshotLimit)
	}
}

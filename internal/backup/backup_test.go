package backup

import (
	"context"
	"strings"
	"testing"

	"github.com/ymori/wasuremono/internal/db"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/store"
)

func TestExportIsVersion3(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	store.CreateItem(ctx, database, &model.Item{Name: "A", Category: "other", Priority: "normal"})
	store.CreateCategory(ctx, database, "school")
	store.SaveRecord(ctx, database, &model.ForgottenRecord{Date: "2024-01-08", ItemIDs: []int64{1}})

	b, err := Export(ctx, database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if b.Version != model.BackupV3 {
		t.Errorf("expected version 3, got %d", b.Version)
	}
	if len(b.Items) != 1 || len(b.Categories) != 1 || len(b.ForgottenRecords) != 1 {
		t.Errorf("incomplete export: %+v", b)
	}
	if b.BackupAt.IsZero() {
		t.Error("missing backup timestamp")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"version":7,"items":[]}`)); err == nil {
		t.Error("expected error for unknown version")
	}
	if _, err := Decode(strings.NewReader(`not json`)); err == nil {
		t.Error("expected error for malformed file")
	}
	b, err := Decode(strings.NewReader(`{"version":1,"items":[{"name":"A"}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Version != 1 || len(b.Items) != 1 {
		t.Errorf("unexpected decode result: %+v", b)
	}
}

func TestImportStripsIDsAndResetsChecks(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	b := &model.Backup{
		Version: model.BackupV1,
		Items: []model.Item{
			{ID: 500, Name: "Umbrella", Checked: true},
			{ID: 501, Name: "Keys", Category: "home", Priority: "must"},
		},
	}
	summary, err := Import(ctx, database, b)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.Items != 2 {
		t.Errorf("expected 2 restored items, got %+v", summary)
	}

	items, _ := store.ListItems(ctx, database)
	for _, item := range items {
		if item.ID >= 500 {
			t.Errorf("imported id was preserved: %+v", item)
		}
		if item.Checked {
			t.Errorf("imported item came back checked: %+v", item)
		}
	}
	// Defaults fill missing fields.
	if items[0].Category != model.DefaultCategory || items[0].Priority != model.PriorityNormal {
		t.Errorf("defaults not applied: %+v", items[0])
	}
	if items[1].Priority != model.PriorityMust {
		t.Errorf("valid priority was rewritten: %+v", items[1])
	}
}

func TestImportReplacesOnlyVersionedCollections(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	store.CreateItem(ctx, database, &model.Item{Name: "Old", Category: "other", Priority: "normal"})
	store.CreateCategory(ctx, database, "keep-me")
	store.SaveRecord(ctx, database, &model.ForgottenRecord{Date: "2024-01-08", ItemIDs: []int64{1}})

	// v1 replaces items but must not touch categories or records.
	_, err := Import(ctx, database, &model.Backup{
		Version: model.BackupV1,
		Items:   []model.Item{{Name: "New"}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	items, _ := store.ListItems(ctx, database)
	if len(items) != 1 || items[0].Name != "New" {
		t.Errorf("items not replaced: %+v", items)
	}
	cats, _ := store.ListCategories(ctx, database)
	if len(cats) != 1 || cats[0].Name != "keep-me" {
		t.Errorf("v1 import touched categories: %+v", cats)
	}
	records, _ := store.ListRecords(ctx, database)
	if len(records) != 1 {
		t.Errorf("v1 import touched records: %+v", records)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := db.NewTestDB(t)
	target := db.NewTestDB(t)
	ctx := context.Background()

	store.CreateItem(ctx, source, &model.Item{
		Name: "Umbrella", Category: "other", Priority: "must", Days: []string{"Mon"},
	})
	store.CreateCategory(ctx, source, "school")
	store.SaveRecord(ctx, source, &model.ForgottenRecord{Date: "2024-01-08", ItemIDs: []int64{1}})

	b, err := Export(ctx, source)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	summary, err := Import(ctx, target, b)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.Items != 1 || summary.Categories != 1 || summary.Records != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	items, _ := store.ListItems(ctx, target)
	if len(items) != 1 || items[0].Name != "Umbrella" || items[0].Days[0] != "Mon" {
		t.Errorf("items did not round-trip: %+v", items)
	}
	records, _ := store.ListRecords(ctx, target)
	if len(records) != 1 || records[0].Date != "2024-01-08" {
		t.Errorf("records did not round-trip: %+v", records)
	}
}

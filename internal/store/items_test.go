package store

import (
	"context"
	"testing"

	"github.com/ymori/wasuremono/internal/db"
	"github.com/ymori/wasuremono/internal/model"
)

func newItem(name string, days ...string) *model.Item {
	return &model.Item{
		Name:     name,
		Category: model.DefaultCategory,
		Priority: model.PriorityNormal,
		Days:     days,
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, newItem("Math textbook", "Mon", "Wed"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected assigned id")
	}
	if item.Name != "Math textbook" {
		t.Errorf("expected name 'Math textbook', got %q", item.Name)
	}
	if len(item.Days) != 2 || item.Days[0] != "Mon" || item.Days[1] != "Wed" {
		t.Errorf("days did not round-trip: %v", item.Days)
	}
	if item.Checked {
		t.Error("new item must start unchecked")
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestGetItemByCode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	withCode := newItem("Library card")
	withCode.Code = "4901234567894"
	CreateItem(ctx, database, withCode)
	CreateItem(ctx, database, newItem("No code"))

	item, err := GetItemByCode(ctx, database, "4901234567894")
	if err != nil {
		t.Fatalf("GetItemByCode: %v", err)
	}
	if item == nil || item.Name != "Library card" {
		t.Errorf("expected 'Library card', got %+v", item)
	}

	missing, err := GetItemByCode(ctx, database, "0000000000000")
	if err != nil {
		t.Fatalf("GetItemByCode: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown code, got %+v", missing)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Gym clothes", "Tue"))
	item.Name = "Gym kit"
	item.Priority = model.PriorityMust
	item.Days = []string{"Tue", "Thu"}
	if err := UpdateItem(ctx, database, item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Gym kit" || got.Priority != model.PriorityMust || len(got.Days) != 2 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestSetItemCheckedAndUncheckAll(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateItem(ctx, database, newItem("A", "Mon"))
	b, _ := CreateItem(ctx, database, newItem("B", "Mon"))

	SetItemChecked(ctx, database, a.ID, true)
	SetItemChecked(ctx, database, b.ID, true)

	got, _ := GetItem(ctx, database, a.ID)
	if !got.Checked {
		t.Error("checked flag not persisted")
	}

	if err := UncheckAllItems(ctx, database); err != nil {
		t.Fatalf("UncheckAllItems: %v", err)
	}
	items, _ := ListItems(ctx, database)
	for _, item := range items {
		if item.Checked {
			t.Errorf("item %d still checked after reset", item.ID)
		}
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Delete me"))
	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Errorf("item still present after delete: %+v", got)
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Photo item"))
	photoData := []byte("fake jpeg data")
	if err := SetItemPhoto(ctx, database, item.ID, photoData, "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if string(data) != "fake jpeg data" || mime != "image/jpeg" {
		t.Errorf("photo did not round-trip: %q %q", data, mime)
	}
}

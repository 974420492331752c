package store

import (
	"context"
	"testing"

	"github.com/ymori/wasuremono/internal/db"
)

func TestGetSettingFallback(t *testing.T) {
	database := db.NewTestDB(t)

	value, err := GetSetting(context.Background(), database, SettingReferenceDate, "today")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if value != "today" {
		t.Errorf("expected fallback 'today', got %q", value)
	}
}

func TestSetSettingUpserts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SetSetting(ctx, database, SettingReferenceDate, "tomorrow")
	SetSetting(ctx, database, SettingReferenceDate, "today")

	value, _ := GetSetting(ctx, database, SettingReferenceDate, "tomorrow")
	if value != "today" {
		t.Errorf("expected 'today' after overwrite, got %q", value)
	}
}

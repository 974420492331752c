package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/db"
	"github.com/ymori/wasuremono/internal/events"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	service := checklist.New(database, events.NewHub())
	server := httptest.NewServer(LoggingMiddleware(NewRouter(service)))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

func TestItemLifecycle(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Math textbook",
		"days": []string{"Mon", "Wed"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	item := decodeBody[model.Item](t, resp)
	if item.ID == 0 || item.Category != "other" {
		t.Errorf("unexpected created item: %+v", item)
	}

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), map[string]any{
		"name":     "Math textbook",
		"category": "other",
		"priority": "must",
		"days":     []string{"Mon"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	updated := decodeBody[model.Item](t, resp)
	if updated.Priority != "must" || len(updated.Days) != 1 {
		t.Errorf("update not applied: %+v", updated)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/items", nil)
	items := decodeBody[[]model.Item](t, resp)
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %+v", items)
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/items/%d", server.URL, item.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateItemValidation(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{"name": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Bad days", "days": []string{"Monday"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad day label, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Pass", "code": "4901234567894",
	}).Body.Close()
	resp = doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Other", "code": "4901234567894",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate code, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChecklistFlow(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Math textbook", "days": []string{"Mon"},
	})
	item := decodeBody[model.Item](t, resp)

	// 2024-01-08 is a Monday, 2024-01-09 a Tuesday.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-08", nil)
	onMonday := decodeBody[[]schedule.EffectiveItem](t, resp)
	if len(onMonday) != 1 || onMonday[0].Name != "Math textbook" {
		t.Errorf("expected item on Monday, got %+v", onMonday)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-09", nil)
	onTuesday := decodeBody[[]schedule.EffectiveItem](t, resp)
	if len(onTuesday) != 0 {
		t.Errorf("expected empty Tuesday, got %+v", onTuesday)
	}

	// Remove the item for that one Monday.
	doJSON(t, http.MethodPut, server.URL+"/api/overrides/2024-01-08/removed", map[string]any{
		"itemId": item.ID, "removed": true,
	}).Body.Close()
	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-08", nil)
	if got := decodeBody[[]schedule.EffectiveItem](t, resp); len(got) != 0 {
		t.Errorf("removed item still listed: %+v", got)
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-15", nil)
	if got := decodeBody[[]schedule.EffectiveItem](t, resp); len(got) != 1 {
		t.Errorf("removal leaked to the next Monday: %+v", got)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/not-a-date", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSpecialItemsOverAPI(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/overrides/2024-01-08/specials", map[string]any{
		"name": "Field trip form",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	special := decodeBody[model.SpecialItem](t, resp)
	if special.ID == "" {
		t.Fatal("special has no id")
	}

	url := fmt.Sprintf("%s/api/overrides/2024-01-08/specials/%s/checked", server.URL, special.ID)
	doJSON(t, http.MethodPut, url, map[string]any{"checked": true}).Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-08", nil)
	list := decodeBody[[]schedule.EffectiveItem](t, resp)
	if len(list) != 1 || !list[0].Checked || !list[0].Special {
		t.Errorf("expected checked special, got %+v", list)
	}

	// Other dates never see it.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-09", nil)
	if got := decodeBody[[]schedule.EffectiveItem](t, resp); len(got) != 0 {
		t.Errorf("special leaked to another date: %+v", got)
	}
}

func TestStatsEndpoints(t *testing.T) {
	server := setupTestServer(t)

	// Empty date: 0%, not an error.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-08/stats", nil)
	stats := decodeBody[checklist.Stats](t, resp)
	if stats.Total != 0 || stats.Percentage != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "A", "days": []string{"Mon"},
	})
	item := decodeBody[model.Item](t, resp)
	doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/items/%d/checked", server.URL, item.ID),
		map[string]any{"checked": true}).Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/checklist/2024-01-08/stats", nil)
	stats = decodeBody[checklist.Stats](t, resp)
	if stats.Total != 1 || stats.Checked != 1 || stats.Percentage != 100 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	detailed := decodeBody[checklist.DetailedStats](t, resp)
	if detailed.ItemCount != 1 {
		t.Errorf("unexpected detailed stats: %+v", detailed)
	}
}

func TestForgottenEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Umbrella", "days": []string{"Mon"},
	})
	item := decodeBody[model.Item](t, resp)

	doJSON(t, http.MethodPut, server.URL+"/api/forgotten/2024-01-08", map[string]any{
		"forgottenItems": []int64{item.ID},
	}).Body.Close()
	doJSON(t, http.MethodPut, server.URL+"/api/forgotten/2024-01-15", map[string]any{
		"forgottenItems": []int64{item.ID},
	}).Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/forgotten", nil)
	records := decodeBody[[]model.ForgottenRecord](t, resp)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/forgotten/stats", nil)
	stats := decodeBody[struct {
		TotalForgotten int            `json:"totalForgotten"`
		ByDayOfWeek    map[string]int `json:"byDayOfWeek"`
	}](t, resp)
	if stats.TotalForgotten != 2 || stats.ByDayOfWeek["Mon"] != 2 {
		t.Errorf("unexpected forgotten stats: %+v", stats)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/forgotten/prune", map[string]any{
		"before": "2024-01-10",
	})
	pruned := decodeBody[map[string]int64](t, resp)
	if pruned["deleted"] != 1 {
		t.Errorf("expected 1 pruned, got %v", pruned)
	}
}

func TestScanEndpoint(t *testing.T) {
	server := setupTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Pass", "code": "4901234567894",
	}).Body.Close()

	resp := doJSON(t, http.MethodPost, server.URL+"/api/scan", map[string]any{"code": "4901234567894"})
	found := decodeBody[map[string]any](t, resp)
	if found["found"] != true {
		t.Errorf("expected found item, got %v", found)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/scan", map[string]any{"code": "0000000000000"})
	missing := decodeBody[map[string]any](t, resp)
	if missing["found"] != false {
		t.Errorf("expected found:false, got %v", missing)
	}
}

func TestBackupRoundTripOverAPI(t *testing.T) {
	server := setupTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/items", map[string]any{
		"name": "Umbrella", "days": []string{"Mon"},
	}).Body.Close()
	doJSON(t, http.MethodPost, server.URL+"/api/categories", map[string]any{
		"name": "school",
	}).Body.Close()

	resp := doJSON(t, http.MethodGet, server.URL+"/api/backup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	exported := decodeBody[model.Backup](t, resp)
	if exported.Version != model.BackupV3 || len(exported.Items) != 1 {
		t.Fatalf("unexpected export: %+v", exported)
	}

	// Import into the same server; collections are replaced.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/backup", exported)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import: expected 200, got %d", resp.StatusCode)
	}
	summary := decodeBody[map[string]int](t, resp)
	if summary["items"] != 1 || summary["categories"] != 1 {
		t.Errorf("unexpected import summary: %v", summary)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/backup", map[string]any{"version": 9})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown version, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSettingsEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/settings", nil)
	settings := decodeBody[map[string]string](t, resp)
	if settings["referenceDate"] != "today" {
		t.Errorf("expected default 'today', got %v", settings)
	}

	resp = doJSON(t, http.MethodPut, server.URL+"/api/settings", map[string]any{
		"referenceDate": "tomorrow",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, server.URL+"/api/settings", map[string]any{
		"referenceDate": "yesterday",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad value, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

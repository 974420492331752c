package api

import (
	"net/http"

	"github.com/ymori/wasuremono/internal/checklist"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(service *checklist.Service) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Service: service}
	categoriesHandler := &CategoriesHandler{Service: service}
	checklistHandler := &ChecklistHandler{Service: service}
	overridesHandler := &OverridesHandler{Service: service}
	forgottenHandler := &ForgottenHandler{Service: service}
	backupHandler := &BackupHandler{Service: service}
	scanHandler := &ScanHandler{Service: service}
	settingsHandler := &SettingsHandler{Service: service}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("POST /api/items/reset", itemsHandler.ResetChecks)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /api/items/{id}/checked", itemsHandler.SetChecked)
	mux.HandleFunc("PUT /api/items/{id}/photo", itemsHandler.UploadPhoto)
	mux.HandleFunc("GET /api/items/{id}/photo", itemsHandler.GetPhoto)

	// Categories.
	mux.HandleFunc("GET /api/categories", categoriesHandler.List)
	mux.HandleFunc("POST /api/categories", categoriesHandler.Create)
	mux.HandleFunc("DELETE /api/categories/{id}", categoriesHandler.Delete)

	// Checklist views.
	mux.HandleFunc("GET /api/checklist/today", checklistHandler.Today)
	mux.HandleFunc("GET /api/checklist/tomorrow", checklistHandler.Tomorrow)
	mux.HandleFunc("GET /api/checklist/{date}", checklistHandler.ForDate)
	mux.HandleFunc("GET /api/checklist/{date}/stats", checklistHandler.Stats)
	mux.HandleFunc("POST /api/checklist/{date}/checkall", checklistHandler.CheckAll)
	mux.HandleFunc("GET /api/stats", checklistHandler.DetailedStats)

	// Per-date overrides.
	mux.HandleFunc("GET /api/overrides", overridesHandler.List)
	mux.HandleFunc("GET /api/overrides/{date}", overridesHandler.Get)
	mux.HandleFunc("DELETE /api/overrides/{date}", overridesHandler.Delete)
	mux.HandleFunc("PUT /api/overrides/{date}/removed", overridesHandler.SetRemoved)
	mux.HandleFunc("POST /api/overrides/{date}/specials", overridesHandler.AddSpecial)
	mux.HandleFunc("DELETE /api/overrides/{date}/specials/{id}", overridesHandler.RemoveSpecial)
	mux.HandleFunc("PUT /api/overrides/{date}/specials/{id}/checked", overridesHandler.CheckSpecial)

	// Forgotten records and statistics.
	mux.HandleFunc("GET /api/forgotten", forgottenHandler.List)
	mux.HandleFunc("POST /api/forgotten/prune", forgottenHandler.Prune)
	mux.HandleFunc("GET /api/forgotten/stats", forgottenHandler.Stats)
	mux.HandleFunc("GET /api/forgotten/stats/items", forgottenHandler.ItemStats)
	mux.HandleFunc("GET /api/forgotten/top", forgottenHandler.Top)
	mux.HandleFunc("PUT /api/forgotten/{date}", forgottenHandler.Save)
	mux.HandleFunc("DELETE /api/forgotten/{date}", forgottenHandler.Delete)

	// Backup, scan, settings.
	mux.HandleFunc("GET /api/backup", backupHandler.Export)
	mux.HandleFunc("POST /api/backup", backupHandler.Import)
	mux.HandleFunc("POST /api/scan", scanHandler.Lookup)
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Update)

	// Change notifications.
	if service.Events != nil {
		mux.HandleFunc("GET /api/events", service.Events.HandleWebSocket)
	}

	return mux
}

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ymori/wasuremono/internal/backup"
	"github.com/ymori/wasuremono/internal/checklist"
	"github.com/ymori/wasuremono/internal/events"
)

// BackupHandler handles export and import of the versioned backup format.
type BackupHandler struct {
	Service *checklist.Service
}

// Export handles GET /api/backup: a downloadable snapshot of everything.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	b, err := backup.Export(r.Context(), h.Service.DB)
	if err != nil {
		serviceError(w, err, "failed to export backup")
		return
	}

	filename := fmt.Sprintf("wasuremono-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	jsonResponse(w, http.StatusOK, b)
}

// Import handles POST /api/backup: restores a backup file, replacing the
// collections its version carries.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	// Backups are small; 10 MB leaves plenty of headroom.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	defer r.Body.Close()

	b, err := backup.Decode(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := backup.Import(r.Context(), h.Service.DB, b)
	if err != nil {
		serviceError(w, err, "failed to import backup")
		return
	}

	h.Service.Events.Broadcast(events.ItemsChanged)
	h.Service.Events.Broadcast(events.CategoriesChanged)
	h.Service.Events.Broadcast(events.RecordsChanged)
	jsonResponse(w, http.StatusOK, summary)
}

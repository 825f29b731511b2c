// internal/app/features/activity/export.go
package activity

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCSV handles GET /admin/activity/export.csv with the same filters as
// List.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	logs, err := h.fetch(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "activity export failed", err, msgListFailed)
		return
	}

	filename := fmt.Sprintf("activity_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// UTF-8 BOM for Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.Log.Error("CSV write failed (BOM)", zap.Error(err))
		return
	}

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"timestamp", "username", "action", "details", "ip"})
	for _, e := range logs {
		_ = cw.Write([]string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Username,
			e.Action,
			e.Details,
			e.IP,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("CSV write failed", zap.Error(err))
	}
}

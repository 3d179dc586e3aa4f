package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go-sheet-dashboard/internal/model"
)

// loadSnapshot writes 503 and returns false while the first snapshot is loading.
func (h *DashboardHandler) loadSnapshot(w http.ResponseWriter) (*model.Snapshot, bool) {
	snap := h.cell.Load()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"state":   model.StateLoading,
			"message": "first snapshot not loaded yet",
		})
		return nil, false
	}
	return snap, true
}

// prepare loads the snapshot and parses the filter selection.
func (h *DashboardHandler) prepare(w http.ResponseWriter, r *http.Request) (*model.Snapshot, model.FilterSelection, bool) {
	sel, err := selectionFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, model.FilterSelection{}, false
	}

	snap, ok := h.loadSnapshot(w)
	if !ok {
		return nil, model.FilterSelection{}, false
	}
	return snap, sel, true
}

// selectionFromQuery reads year/month/site/team/type/from/to; the Portuguese
// names used by the sheet (ano, mes, polo, equipe, tipo, de, ate) are accepted too.
func selectionFromQuery(r *http.Request) (model.FilterSelection, error) {
	q := r.URL.Query()
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := q.Get(k); v != "" {
				return v
			}
		}
		return ""
	}

	sel, err := model.ParseFilterSelection(
		get("year", "ano"),
		get("month", "mes"),
		get("site", "polo"),
		get("team", "equipe"),
	)
	if err != nil {
		return model.FilterSelection{}, err
	}
	sel = sel.WithServiceType(get("type", "tipo"))
	return sel.WithPeriod(get("from", "de"), get("to", "ate"))
}

// reportDays reads the report day (default today) and the day it is compared
// with (default the day before).
func (h *DashboardHandler) reportDays(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	date := h.today()
	if v := q.Get("date"); v != "" {
		d, err := model.ParseDay(v, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		date = d
	}

	y, m, d := date.Date()
	compare := time.Date(y, m, d-1, 0, 0, 0, 0, h.loc)
	if v := q.Get("compare"); v != "" {
		c, err := model.ParseDay(v, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		compare = c
	}
	return date, compare, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

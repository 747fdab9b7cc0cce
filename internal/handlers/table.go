// internal/handlers/table.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/eranhirsch/nothanks/internal/game"
)

// CreateTableHandler registers a new table. Body: {"name": "..."}.
func CreateTableHandler(ts *TableServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			req.Name = "No Thanks!"
		}

		t := ts.CreateTable(req.Name)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"table_id": t.ID,
			"name":     t.Name,
		})
	}
}

// ListTablesHandler returns all live tables in creation order.
func ListTablesHandler(ts *TableServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		type tableInfo struct {
			TableID uuid.UUID `json:"table_id"`
			Name    string    `json:"name"`
		}
		tables := ts.Tables.List()
		out := make([]tableInfo, 0, len(tables))
		for _, t := range tables {
			out = append(out, tableInfo{TableID: t.ID, Name: t.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// TableStateHandler serves the client projection of a table's game:
// GET /table/state/{table_id}.
func TableStateHandler(ts *TableServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		t, ok := tableFromPath(ts, r.URL.Path, "/table/state/")
		if !ok {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		view, err := t.State(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// tableFromPath resolves /prefix/{table_id} to a live table.
func tableFromPath(ts *TableServer, path, prefix string) (*game.Table, bool) {
	idStr := strings.TrimPrefix(path, prefix)
	idStr = strings.TrimSuffix(idStr, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, false
	}
	return ts.Tables.Get(id)
}

package dto

import "github.com/atelier-studio/atelier-service/internal/ports"

// RowsResponse lists the rows of a table keyed by field name.
type RowsResponse struct {
	Count int              `json:"count"`
	Rows  []map[string]any `json:"rows"`
}

// ToRowsResponse converts table rows.
func ToRowsResponse(rows []ports.TableRow) RowsResponse {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}

	return RowsResponse{Count: len(out), Rows: out}
}

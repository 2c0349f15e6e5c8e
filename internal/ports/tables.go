package ports

import "context"

// TableRow is a row of an external table keyed by user field names.
type TableRow map[string]any

// TableStore is an external spreadsheet-like table service.
type TableStore interface {
	// ListRows returns every row of a table on the first page of results.
	ListRows(ctx context.Context, tableID string) ([]TableRow, error)

	// CreateRow inserts a row and returns it as stored, including its id.
	CreateRow(ctx context.Context, tableID string, row TableRow) (TableRow, error)
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// TableService reads and appends rows of external tables.
type TableService struct {
	store   ports.TableStore
	allowed []string
	logger  *slog.Logger
}

// NewTableService creates a table service. A nil store makes every call
// report the integration as unavailable. An empty allow list permits any table.
func NewTableService(store ports.TableStore, allowed []string, logger *slog.Logger) *TableService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TableService{
		store:   store,
		allowed: allowed,
		logger:  logger.With(slog.String("component", "app.TableService")),
	}
}

// ListRows returns the rows of a table.
func (s *TableService) ListRows(ctx context.Context, tableID string) ([]ports.TableRow, error) {
	if err := s.check("read table "+tableID, tableID); err != nil {
		return nil, err
	}

	rows, err := s.store.ListRows(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("listing rows of table %s: %w", tableID, err)
	}

	return rows, nil
}

// CreateRow appends a row to a table.
func (s *TableService) CreateRow(ctx context.Context, tableID string, row ports.TableRow) (ports.TableRow, error) {
	if err := s.check("write table "+tableID, tableID); err != nil {
		return nil, err
	}

	if len(row) == 0 {
		return nil, domain.NewValidationError("row", "must have at least one field")
	}

	created, err := s.store.CreateRow(ctx, tableID, row)
	if err != nil {
		return nil, fmt.Errorf("creating row in table %s: %w", tableID, err)
	}

	s.logger.InfoContext(ctx, "table row created", slog.String("table_id", tableID))

	return created, nil
}

func (s *TableService) check(operation, tableID string) error {
	if s.store == nil {
		return domain.NewUnavailableError("baserow", "not configured")
	}

	if tableID == "" {
		return domain.NewValidationError("tableId", "is required")
	}

	if len(s.allowed) > 0 && !slices.Contains(s.allowed, tableID) {
		return domain.NewForbiddenError(operation, "table not allowed")
	}

	return nil
}

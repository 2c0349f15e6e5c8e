package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atelier-studio/atelier-service/internal/domain"
)

// PostgreSQL error codes the adapters translate.
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeInvalidText         pq.ErrorCode = "22P02"
	codeOutOfRange          pq.ErrorCode = "22003"
)

// mapError translates driver errors into domain errors. Malformed ids are
// reported as not found since they cannot match any row; values a column
// cannot hold are validation errors.
func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return domain.NewConflictError(entity, "already exists")
		case codeForeignKeyViolation:
			return domain.NewConflictError(entity, "references a missing record")
		case codeInvalidText:
			return domain.NewNotFoundError(entity, id)
		case codeOutOfRange:
			return domain.NewValidationError("", entity+" value out of range")
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}

func fail(span trace.Span, err error) error {
	if err != nil && !domain.IsNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

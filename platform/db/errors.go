package db

import (
	"errors"
	"fmt"
	"strings"

	"portfolio_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
)

// TranslateError maps store errors onto the domain taxonomy:
// missing rows become NotFound, duplicate keys Conflict, and constraint or
// cast failures Validation. Anything else is wrapped as an internal error.
func TranslateError(op, notFoundMsg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFoundMsg).WithOp(op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict(duplicateMessage(pgErr)).WithOp(op)
		case codeForeignKeyViolation:
			return apperr.Validation("referenced resource does not exist").WithOp(op)
		case codeCheckViolation, codeNotNullViolation:
			return apperr.Validation(fmt.Sprintf("invalid value for %s", constraintField(pgErr))).WithOp(op)
		case codeInvalidText, codeInvalidDatetime:
			return apperr.Validation("malformed identifier or value").WithOp(op)
		}
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, "database operation failed", err).WithOp(op)
}

func duplicateMessage(pgErr *pgconn.PgError) string {
	field := constraintField(pgErr)
	if field == "" {
		return "Duplicate field value. Please use another value"
	}
	return fmt.Sprintf("Duplicate value for %s. Please use another value", field)
}

// constraintField derives a readable column name from constraint names
// following the <table>_<column>_key convention.
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	if name == "" {
		return ""
	}
	name = strings.TrimSuffix(name, "_key")
	name = strings.TrimSuffix(name, "_check")
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	return name
}

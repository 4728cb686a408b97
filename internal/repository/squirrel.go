package repository

import (
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql is the shared Squirrel statement builder configured for PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// jsonb renders v as a JSONB query argument.
func jsonb(v any) (sq.Sqlizer, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return sq.Expr("?::jsonb", string(data)), nil
}

// jsonbAppend renders "column || [item]" so the append happens inside one UPDATE.
func jsonbAppend(column string, item any) (sq.Sqlizer, error) {
	data, err := json.Marshal([]any{item})
	if err != nil {
		return nil, err
	}
	return sq.Expr(column+" || ?::jsonb", string(data)), nil
}

// unmarshalList decodes a JSONB array. NULL and empty input yield an empty slice.
func unmarshalList[T any](data []byte, dst *[]T) error {
	*dst = []T{}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

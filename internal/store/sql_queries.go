// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/bizdesk/models"
)

// psql renders $N placeholders for the pgx driver.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const usersTable = "users"

var userColumns = []string{"user_id", "username", "email", "password_hash", "created_at"}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(usersTable).
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserQuery(where sq.Eq) (string, []any, error) {
	return psql.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.Update(usersTable).
		Set("username", user.Username).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(userID int64) (string, []any, error) {
	return psql.Delete(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// rowColumns returns every column of table in select order: id, the
// writable columns, created_at.
func rowColumns(table models.Table) []string {
	cols := []string{models.RecordIDField}
	cols = append(cols, models.ColumnsOf(table)...)
	return append(cols, "created_at")
}

func buildListRowsQuery(table models.Table) (string, []any, error) {
	return psql.Select(rowColumns(table)...).
		From(table.String()).
		OrderBy("id ASC").
		ToSql()
}

func buildCountRowsQuery(table models.Table) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From(table.String()).
		ToSql()
}

func buildInsertRowQuery(table models.Table, values map[string]any) (string, []any, error) {
	return psql.Insert(table.String()).
		SetMap(values).
		Suffix(returning(rowColumns(table))).
		ToSql()
}

func buildLockRowQuery(table models.Table, id int64) (string, []any, error) {
	return psql.Select(rowColumns(table)...).
		From(table.String()).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildUpdateRowQuery(table models.Table, id int64, values map[string]any) (string, []any, error) {
	return psql.Update(table.String()).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix(returning(rowColumns(table))).
		ToSql()
}

func buildDeleteRowQuery(table models.Table, id int64) (string, []any, error) {
	return psql.Delete(table.String()).
		Where(sq.Eq{"id": id}).
		Suffix(returning(rowColumns(table))).
		ToSql()
}

// writableValues keeps the fields of record that are writable columns of
// table. id and created_at are store-assigned and silently ignored; any other
// unknown field is an error. Values are stored as text.
func writableValues(table models.Table, record models.Record) (map[string]any, error) {
	writable := models.ColumnsOf(table)
	values := make(map[string]any, len(record))

	for field, v := range record {
		switch {
		case field == models.RecordIDField || field == "created_at":
			continue
		case !slices.Contains(writable, field):
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, field)
		}

		switch v := v.(type) {
		case nil:
			values[field] = nil
		case string:
			values[field] = strings.TrimSpace(v)
		case json.Number:
			values[field] = v.String()
		case float64:
			values[field] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			values[field] = fmt.Sprint(v)
		}
	}

	if len(values) == 0 {
		return nil, ErrEmptyRecord
	}

	return values, nil
}

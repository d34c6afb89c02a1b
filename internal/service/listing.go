// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/bizdesk/models"
)

// SortDirection orders a column ascending or descending.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// Sortable supplier columns.
const (
	SupplierColumnName       = "name"
	SupplierColumnPersonName = "person_name"
	SupplierColumnType       = "type"
)

// SortState is the column a table is sorted by and its direction.
type SortState struct {
	Column    string
	Direction SortDirection
}

// ToggleSort flips the direction when column is already the sort column and
// starts ascending on a new column.
func ToggleSort(current SortState, column string) SortState {
	if current.Column == column {
		if current.Direction == SortAsc {
			return SortState{Column: column, Direction: SortDesc}
		}
		return SortState{Column: column, Direction: SortAsc}
	}
	return SortState{Column: column, Direction: SortAsc}
}

// SortClientsByName returns a copy of rows ordered by name, ignoring case.
func SortClientsByName(rows []models.Client) []models.Client {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.Client) int {
		return compareFold(a.Name, b.Name)
	})
	return out
}

// FilterClients keeps the rows whose name or email contains term, ignoring
// case. A blank term keeps every row.
func FilterClients(rows []models.Client, term string) []models.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(rows)
	}

	out := make([]models.Client, 0, len(rows))
	for _, c := range rows {
		if containsFold(term, c.Name, c.Email) {
			out = append(out, c)
		}
	}
	return out
}

// FilterSuppliers keeps the rows whose name, contact person or type contains
// term, ignoring case.
func FilterSuppliers(rows []models.Supplier, term string) []models.Supplier {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(rows)
	}

	out := make([]models.Supplier, 0, len(rows))
	for _, s := range rows {
		if containsFold(term, s.Name, s.PersonName, s.Type) {
			out = append(out, s)
		}
	}
	return out
}

// SortSuppliers returns a copy of rows ordered by state. Missing values sort
// as the empty string; an unknown column sorts by name.
func SortSuppliers(rows []models.Supplier, state SortState) []models.Supplier {
	key := func(s models.Supplier) string {
		switch state.Column {
		case SupplierColumnPersonName:
			return s.PersonName
		case SupplierColumnType:
			return s.Type
		default:
			return s.Name
		}
	}

	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.Supplier) int {
		c := compareFold(key(a), key(b))
		if state.Direction == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// Initial returns the upper-cased first letter of name, or "?" for a blank
// name.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func containsFold(lowerTerm string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Table is the logical name of a backend table whose rows are exposed through
// the REST and realtime APIs.
type Table string

const (
	// TableClients holds customer rows.
	TableClients Table = "clients"
	// TableSuppliers holds supplier rows.
	TableSuppliers Table = "suppliers"
)

// Tables lists every table the backend serves, in display order.
var Tables = []Table{TableClients, TableSuppliers}

// String returns the table name.
func (t Table) String() string {
	return string(t)
}

// Valid reports whether t is one of [Tables].
func (t Table) Valid() bool {
	for _, known := range Tables {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTable converts a raw name (as found in URLs and realtime topics) into a
// [Table]. Unknown names yield [ErrUnknownTable].
func ParseTable(raw string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, raw)
	}
	return t, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Client is a customer row of [TableClients].
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Supplier is a row of [TableSuppliers]. PersonName is the contact person,
// Type is a free-form supplier category.
type Supplier struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PersonName string    `json:"person_name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Type       string    `json:"type,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

// ClientInput carries the fields of a client form. It is used both for
// creation and for partial updates.
type ClientInput struct {
	Name  string
	Email string
	Phone string
}

// SupplierInput carries the fields of a supplier form.
type SupplierInput struct {
	Name       string
	PersonName string
	Email      string
	Phone      string
	Type       string
}

// Record returns the insert payload. Optional fields are sent even when empty.
func (in ClientInput) Record() Record {
	return Record{
		"name":  strings.TrimSpace(in.Name),
		"email": strings.TrimSpace(in.Email),
		"phone": strings.TrimSpace(in.Phone),
	}
}

// Patch returns the update payload: only non-empty fields are included, so
// a blank form field keeps the stored value.
func (in ClientInput) Patch() Record {
	return patchOf(map[string]string{
		"name":  in.Name,
		"email": in.Email,
		"phone": in.Phone,
	})
}

// Record returns the insert payload.
func (in SupplierInput) Record() Record {
	return Record{
		"name":        strings.TrimSpace(in.Name),
		"person_name": strings.TrimSpace(in.PersonName),
		"email":       strings.TrimSpace(in.Email),
		"phone":       strings.TrimSpace(in.Phone),
		"type":        strings.TrimSpace(in.Type),
	}
}

// Patch returns the update payload with non-empty fields only.
func (in SupplierInput) Patch() Record {
	return patchOf(map[string]string{
		"name":        in.Name,
		"person_name": in.PersonName,
		"email":       in.Email,
		"phone":       in.Phone,
		"type":        in.Type,
	})
}

func patchOf(fields map[string]string) Record {
	patch := make(Record, len(fields))
	for k, v := range fields {
		if v = strings.TrimSpace(v); v != "" {
			patch[k] = v
		}
	}
	return patch
}

// ColumnsOf returns the writable columns of table, excluding id and
// created_at which the store assigns.
func ColumnsOf(table Table) []string {
	switch table {
	case TableClients:
		return []string{"name", "email", "phone"}
	case TableSuppliers:
		return []string{"name", "person_name", "email", "phone", "type"}
	default:
		return nil
	}
}

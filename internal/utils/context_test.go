// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{name: "set with WithUserID", ctx: WithUserID(context.Background(), 42), wantID: 42, wantOK: true},
		{name: "absent", ctx: context.Background()},
		{name: "stored as string", ctx: context.WithValue(context.Background(), UserIDCtxKey, "42")},
		{name: "plain string key is not ours", ctx: context.WithValue(context.Background(), "userID", int64(7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestUserIDCtxKey_String(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
}

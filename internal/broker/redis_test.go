// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/models"
)

func TestChannelName(t *testing.T) {
	assert.Equal(t, "bizdesk:changes:clients", channelName("bizdesk", models.TableClients))
	assert.Equal(t, "prod:changes:suppliers", channelName("prod", models.TableSuppliers))
}

func TestNewRedisBroker_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// port 1 is reserved and refuses connections
	_, err := New(ctx, config.Broker{RedisAddress: "127.0.0.1:1"}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error connecting to redis")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/app"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/mock"
	"github.com/MKhiriev/bizdesk/models"
)

func newTestDirectorySvc(t *testing.T) (ClientDirectoryService, *mock.MockRowGateway) {
	t.Helper()
	gateway := mock.NewMockRowGateway(gomock.NewController(t))
	return NewClientDirectoryService(gateway, logger.Nop()), gateway
}

func TestClientDirectory_CreateClient(t *testing.T) {
	svc, gateway := newTestDirectorySvc(t)
	in := models.ClientInput{Name: "Ana", Email: "ana@example.com"}

	gateway.EXPECT().Insert(gomock.Any(), models.TableClients, in.Record()).Return(nil)

	require.NoError(t, svc.CreateClient(context.Background(), in))
}

func TestClientDirectory_CreateRequiresName(t *testing.T) {
	svc, _ := newTestDirectorySvc(t)

	assert.ErrorIs(t, svc.CreateClient(context.Background(), models.ClientInput{Name: "  "}), ErrNameRequired)
	assert.ErrorIs(t, svc.CreateSupplier(context.Background(), models.SupplierInput{Email: "x@y.z"}), ErrNameRequired)
}

func TestClientDirectory_UpdateSupplier_SendsPatch(t *testing.T) {
	svc, gateway := newTestDirectorySvc(t)
	in := models.SupplierInput{Phone: "555-0101"}

	gateway.EXPECT().Update(gomock.Any(), models.TableSuppliers, int64(5), in.Patch()).Return(nil)

	require.NoError(t, svc.UpdateSupplier(context.Background(), 5, in))
}

func TestClientDirectory_UpdateWithEmptyPatchIsNoop(t *testing.T) {
	svc, _ := newTestDirectorySvc(t)

	assert.NoError(t, svc.UpdateClient(context.Background(), 5, models.ClientInput{}))
}

func TestClientDirectory_UpdateInvalidID(t *testing.T) {
	svc, _ := newTestDirectorySvc(t)

	assert.ErrorIs(t, svc.UpdateClient(context.Background(), 0, models.ClientInput{Name: "x"}), ErrInvalidRowID)
}

func TestClientDirectory_UpdateMissingRow(t *testing.T) {
	svc, gateway := newTestDirectorySvc(t)

	gateway.EXPECT().Update(gomock.Any(), models.TableClients, int64(99), gomock.Any()).
		Return(fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgRowNotFound))

	err := svc.UpdateClient(context.Background(), 99, models.ClientInput{Name: "Ana"})
	assert.ErrorIs(t, err, ErrRowNotFound)
}

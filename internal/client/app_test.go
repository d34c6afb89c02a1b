// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/bizdesk/internal/adapter"
	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/mock"
	"github.com/MKhiriev/bizdesk/internal/service"
	"github.com/MKhiriev/bizdesk/internal/tui"
	"github.com/MKhiriev/bizdesk/models"
)

// fakeUI replays scripted results for the login flow and the main window.
type fakeUI struct {
	logins      []loginResult
	mainResults []bool
	mainErr     error

	loginCalls int
	mains      []models.Identity
}

type loginResult struct {
	identity models.Identity
	err      error
}

func (u *fakeUI) LoginFlow(context.Context) (models.Identity, error) {
	r := u.logins[u.loginCalls]
	u.loginCalls++
	return r.identity, r.err
}

func (u *fakeUI) MainLoop(_ context.Context, identity models.Identity, _ tui.Mount) (bool, error) {
	if u.mainErr != nil {
		return false, u.mainErr
	}
	logout := u.mainResults[len(u.mains)]
	u.mains = append(u.mains, identity)
	return logout, nil
}

var (
	ana  = models.Identity{UserID: 1, Username: "ana", Email: "ana@example.com"}
	luis = models.Identity{UserID: 2, Username: "luis", Email: "luis@example.com"}
)

func newTestApp(t *testing.T, ui UI) (*App, *mock.MockClientAuthService) {
	t.Helper()
	auth := mock.NewMockClientAuthService(gomock.NewController(t))
	services := &service.ClientServices{AuthService: auth}

	app, err := NewApp(services, nil, ui, config.ClientUI{PreviewSize: 5}, logger.Nop())
	require.NoError(t, err)
	return app, auth
}

func TestNewApp_RequiresUI(t *testing.T) {
	_, err := NewApp(&service.ClientServices{}, nil, nil, config.ClientUI{}, logger.Nop())
	assert.ErrorIs(t, err, errNoUI)
}

func TestRun_RestoredSessionSkipsLogin(t *testing.T) {
	ui := &fakeUI{mainResults: []bool{false}}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(&ana, nil)

	require.NoError(t, app.run(context.Background()))

	assert.Zero(t, ui.loginCalls)
	assert.Equal(t, []models.Identity{ana}, ui.mains)
}

func TestRun_NoSessionShowsLogin(t *testing.T) {
	ui := &fakeUI{
		logins:      []loginResult{{identity: ana}},
		mainResults: []bool{false},
	}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil)

	require.NoError(t, app.run(context.Background()))

	assert.Equal(t, 1, ui.loginCalls)
	assert.Equal(t, []models.Identity{ana}, ui.mains)
}

func TestRun_RestoreErrorFallsBackToLogin(t *testing.T) {
	ui := &fakeUI{
		logins:      []loginResult{{identity: ana}},
		mainResults: []bool{false},
	}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, assert.AnError)

	require.NoError(t, app.run(context.Background()))
	assert.Equal(t, 1, ui.loginCalls)
}

func TestRun_UserQuitsAtLogin(t *testing.T) {
	ui := &fakeUI{logins: []loginResult{{err: tui.ErrUserQuit}}}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil)

	require.NoError(t, app.run(context.Background()))
	assert.Empty(t, ui.mains)
}

func TestRun_LogoutReturnsToLogin(t *testing.T) {
	ui := &fakeUI{
		logins:      []loginResult{{identity: luis}, {err: tui.ErrUserQuit}},
		mainResults: []bool{true, true},
	}
	app, auth := newTestApp(t, ui)
	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(&ana, nil),
		auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil),
		auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil),
	)

	require.NoError(t, app.run(context.Background()))

	assert.Equal(t, []models.Identity{ana, luis}, ui.mains)
	assert.Equal(t, 2, ui.loginCalls)
}

func TestRun_MainLoopError(t *testing.T) {
	ui := &fakeUI{mainErr: assert.AnError}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(&ana, nil)

	err := app.run(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestRun_LoginError(t *testing.T) {
	ui := &fakeUI{logins: []loginResult{{err: assert.AnError}}}
	app, auth := newTestApp(t, ui)
	auth.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil)

	err := app.run(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, ui.mains)
}

func TestMount_StartsEverySynchronizer(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockRowGateway(ctrl)

	rows := map[models.Table][]models.Record{
		models.TableClients: {
			{"id": int64(1), "name": "Zoe"},
			{"id": int64(2), "name": "Ana"},
		},
		models.TableSuppliers: {
			{"id": int64(1), "name": "Acme"},
		},
	}

	var (
		mu         sync.Mutex
		subscribed = map[models.Table][][]models.EventKind{}
	)

	gateway.EXPECT().FetchAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, table models.Table) ([]models.Record, error) {
			return rows[table], nil
		}).AnyTimes()
	gateway.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, table models.Table, kinds []models.EventKind, _ func(models.ChangeEvent)) (adapter.SubscriptionHandle, error) {
			mu.Lock()
			defer mu.Unlock()
			subscribed[table] = append(subscribed[table], kinds)
			return mock.NewMockSubscriptionHandle(ctrl), nil
		}).AnyTimes()
	gateway.EXPECT().Unsubscribe(gomock.Any()).Times(6)

	app := &App{gateway: gateway, previewSize: 1, logger: logger.Nop()}

	var delivered []tea.Msg
	sink := tui.NewSink(func(msg tea.Msg) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, msg)
	})

	group := app.mount(sink)
	require.NoError(t, group.Start(context.Background()))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) == 6 && len(subscribed[models.TableClients])+len(subscribed[models.TableSuppliers]) == 6
	}, 2*time.Second, 10*time.Millisecond)

	group.Stop()

	mu.Lock()
	defer mu.Unlock()
	counters := 0
	for _, perTable := range subscribed {
		for _, kinds := range perTable {
			if slices.Equal(kinds, []models.EventKind{models.EventInserted, models.EventDeleted}) {
				counters++
			}
		}
	}
	assert.Equal(t, 2, counters)
}

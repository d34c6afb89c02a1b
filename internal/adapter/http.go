// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/bizdesk/internal/config"
	"github.com/MKhiriev/bizdesk/internal/logger"
	"github.com/MKhiriev/bizdesk/internal/utils"
	"github.com/MKhiriev/bizdesk/models"
	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
)

// REST routes of the backend.
const (
	pathSignUp   = "/auth/v1/signup"
	pathSignIn   = "/auth/v1/token"
	pathSignOut  = "/auth/v1/logout"
	pathUser     = "/auth/v1/user"
	pathRows     = "/rest/v1/{table}"
	pathRowCount = "/rest/v1/{table}/count"
	pathRow      = "/rest/v1/{table}/{id}"
	pathRealtime = "/realtime/v1/websocket"
)

// HTTPGateway implements [BackendGateway] over REST for rows and sessions
// and one websocket connection per change subscription.
type HTTPGateway struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	dialer            *websocket.Dialer
	heartbeatInterval time.Duration

	logger *logger.Logger
}

var _ BackendGateway = (*HTTPGateway)(nil)

// NewHTTPGateway normalises adapterCfg.HTTPAddress and builds a gateway bound
// to it. Returns [ErrInvalidAddress] if the address is empty or is not a
// valid URL.
func NewHTTPGateway(adapterCfg config.ClientAdapter, log *logger.Logger) (*HTTPGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &HTTPGateway{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		baseURL: baseURL,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: adapterCfg.RequestTimeout,
		},
		heartbeatInterval: adapterCfg.HeartbeatInterval,
		logger:            log.WithComponent("gateway"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [SessionGateway].
func (g *HTTPGateway) SetToken(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = strings.TrimSpace(token)
}

// Token implements [SessionGateway].
func (g *HTTPGateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// SignUp implements [SessionGateway]. POST /auth/v1/signup.
func (g *HTTPGateway) SignUp(ctx context.Context, req models.SignUpRequest) (models.Identity, error) {
	return g.authenticate(ctx, pathSignUp, req)
}

// SignIn implements [SessionGateway]. POST /auth/v1/token.
func (g *HTTPGateway) SignIn(ctx context.Context, req models.SignInRequest) (models.Identity, error) {
	return g.authenticate(ctx, pathSignIn, req)
}

func (g *HTTPGateway) authenticate(ctx context.Context, path string, body any) (models.Identity, error) {
	var identity models.Identity

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&identity).
		Post(path)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrMissingToken, err)
	}

	g.SetToken(token)
	return identity, nil
}

// SignOut implements [SessionGateway]. The local token is forgotten even if
// the server call fails.
func (g *HTTPGateway) SignOut(ctx context.Context) error {
	defer g.SetToken("")

	if g.Token() == "" {
		return nil
	}

	resp, err := g.authedRequest(ctx).Post(pathSignOut)
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}

	return mapHTTPError(resp)
}

// CurrentSession implements [SessionGateway]. A rejected token counts as no
// session and is dropped.
func (g *HTTPGateway) CurrentSession(ctx context.Context) (*models.Identity, error) {
	if g.Token() == "" {
		return nil, nil
	}

	var identity models.Identity
	resp, err := g.authedRequest(ctx).SetResult(&identity).Get(pathUser)
	if err != nil {
		return nil, fmt.Errorf("current session request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			g.SetToken("")
			return nil, nil
		}
		return nil, err
	}

	return &identity, nil
}

// UpdateProfile implements [SessionGateway]. PUT /auth/v1/user.
func (g *HTTPGateway) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.Identity, error) {
	var identity models.Identity

	resp, err := g.authedRequest(ctx).
		SetBody(req).
		SetResult(&identity).
		Put(pathUser)
	if err != nil {
		return models.Identity{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return identity, nil
}

// DeleteAccount implements [SessionGateway]. DELETE /auth/v1/user.
func (g *HTTPGateway) DeleteAccount(ctx context.Context) error {
	resp, err := g.authedRequest(ctx).Delete(pathUser)
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	g.SetToken("")
	return nil
}

// FetchAll implements [RowGateway]. Numbers are decoded as [json.Number] so
// ids survive untouched.
func (g *HTTPGateway) FetchAll(ctx context.Context, table models.Table) ([]models.Record, error) {
	resp, err := g.authedRequest(ctx).
		SetPathParam("table", table.String()).
		Get(pathRows)
	if err != nil {
		return nil, fmt.Errorf("fetch %s request: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()

	var rows []models.Record
	if err = dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", table, err)
	}
	if rows == nil {
		rows = []models.Record{}
	}

	return rows, nil
}

// Count implements [RowGateway].
func (g *HTTPGateway) Count(ctx context.Context, table models.Table) (int64, error) {
	var out models.CountResponse

	resp, err := g.authedRequest(ctx).
		SetPathParam("table", table.String()).
		SetResult(&out).
		Get(pathRowCount)
	if err != nil {
		return 0, fmt.Errorf("count %s request: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return out.Count, nil
}

// Insert implements [RowGateway]. POST /rest/v1/{table}.
func (g *HTTPGateway) Insert(ctx context.Context, table models.Table, record models.Record) error {
	resp, err := g.authedRequest(ctx).
		SetPathParam("table", table.String()).
		SetBody(record).
		Post(pathRows)
	if err != nil {
		return fmt.Errorf("insert %s request: %w", table, err)
	}

	return mapHTTPError(resp)
}

// Update implements [RowGateway]. PATCH /rest/v1/{table}/{id}.
func (g *HTTPGateway) Update(ctx context.Context, table models.Table, id int64, partial models.Record) error {
	resp, err := g.authedRequest(ctx).
		SetPathParams(rowParams(table, id)).
		SetBody(partial).
		Patch(pathRow)
	if err != nil {
		return fmt.Errorf("update %s/%d request: %w", table, id, err)
	}

	return mapHTTPError(resp)
}

// Delete implements [RowGateway]. DELETE /rest/v1/{table}/{id}.
func (g *HTTPGateway) Delete(ctx context.Context, table models.Table, id int64) error {
	resp, err := g.authedRequest(ctx).
		SetPathParams(rowParams(table, id)).
		Delete(pathRow)
	if err != nil {
		return fmt.Errorf("delete %s/%d request: %w", table, id, err)
	}

	return mapHTTPError(resp)
}

func rowParams(table models.Table, id int64) map[string]string {
	return map[string]string{
		"table": table.String(),
		"id":    strconv.FormatInt(id, 10),
	}
}

func (g *HTTPGateway) authedRequest(ctx context.Context) *resty.Request {
	req := g.client.R().SetContext(ctx)
	if token := g.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// realtimeURL converts the REST base URL into the websocket endpoint.
func (g *HTTPGateway) realtimeURL() (string, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + pathRealtime

	q := u.Query()
	q.Set("token", g.Token())
	q.Set("vsn", "1.0.0")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Package backend is the REST client of the sentiment backend. It supplies
// driver scores, server-issued alerts and the admin configuration.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sentiq/pkg/domain/interfaces"
	"github.com/secmon-lab/sentiq/pkg/domain/model/alert"
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/model/driver"
	"github.com/secmon-lab/sentiq/pkg/domain/model/errs"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/secmon-lab/sentiq/pkg/utils/safe"
)

const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is kept for diagnosis.
const maxErrorBody = 4 * 1024

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

var (
	_ interfaces.ScoreProvider     = &Client{}
	_ interfaces.RemoteAlertStore  = &Client{}
	_ interfaces.RemoteConfigStore = &Client{}
)

type Option func(*Client)

// WithToken sets the bearer token sent in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a client for the backend API rooted at baseURL, e.g.
// http://localhost:8080/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend URL", goerr.TV(errs.URLKey, baseURL), goerr.T(errs.TagValidation))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend URL must be http or https", goerr.TV(errs.URLKey, baseURL), goerr.T(errs.TagValidation))
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) ListDriverSnapshots(ctx context.Context) ([]driver.Snapshot, error) {
	var snapshots []driver.Snapshot
	if err := c.do(ctx, http.MethodGet, "/stats/all", nil, nil, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (c *Client) ListActiveAlerts(ctx context.Context) (alert.Alerts, error) {
	var resp []alertResponse
	if err := c.do(ctx, http.MethodGet, "/alerts/active", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toAlerts(resp), nil
}

func (c *Client) ListMyAlerts(ctx context.Context, manager types.ManagerID) (alert.Alerts, error) {
	query := url.Values{}
	if manager != "" {
		query.Set("managerId", manager.String())
	}

	var resp []alertResponse
	if err := c.do(ctx, http.MethodGet, "/alerts/my", query, nil, &resp); err != nil {
		return nil, err
	}
	return toAlerts(resp), nil
}

func (c *Client) GetAlert(ctx context.Context, id types.AlertID) (*alert.Alert, error) {
	var resp alertResponse
	if err := c.do(ctx, http.MethodGet, "/alerts/"+url.PathEscape(id.String()), nil, nil, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to get remote alert", goerr.TV(errs.AlertIDKey, id.String()))
	}
	return resp.toAlert(), nil
}

// ApplyAction forwards a lifecycle action. Parameters are sent both as JSON
// body and query string since backend versions differ in which they read.
func (c *Client) ApplyAction(ctx context.Context, id types.AlertID, action alert.Action, input alert.Input) (*alert.Alert, error) {
	body, query := actionRequest(action, input)

	var resp alertResponse
	p := "/alerts/" + url.PathEscape(id.String()) + "/" + action.String()
	if err := c.do(ctx, http.MethodPost, p, query, body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to apply remote alert action",
			goerr.TV(errs.AlertIDKey, id.String()),
			goerr.TV(errs.ActionKey, action.String()),
		)
	}
	return resp.toAlert(), nil
}

func (c *Client) GetConfig(ctx context.Context) (*config.Config, error) {
	var cfg config.Config
	if err := c.do(ctx, http.MethodGet, "/admin/config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) PutConfig(ctx context.Context, cfg config.Config) (*config.Config, error) {
	var saved config.Config
	if err := c.do(ctx, http.MethodPut, "/admin/config", nil, cfg, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) resolve(p string, query url.Values) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, payload, out any) error {
	endpoint := c.resolve(p, query)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request", goerr.TV(errs.EndpointKey, p))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.TV(errs.EndpointKey, p))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		tag := errs.TagUpstream
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			tag = errs.TagTimeout
		}
		return goerr.Wrap(err, "backend request failed",
			goerr.TV(errs.EndpointKey, p),
			goerr.V("method", method),
			goerr.T(tag),
		)
	}
	defer safe.Close(ctx, resp.Body)

	logging.From(ctx).Debug("backend request",
		"method", method,
		"endpoint", p,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp, method, p)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read backend response", goerr.TV(errs.EndpointKey, p), goerr.T(errs.TagUpstream))
	}
	if out == nil {
		return nil
	}

	data, err := unwrapEnvelope(raw)
	if err != nil {
		return goerr.Wrap(err, "backend rejected request", goerr.TV(errs.EndpointKey, p), goerr.T(errs.TagUpstream))
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "failed to decode backend response",
			goerr.TV(errs.EndpointKey, p),
			goerr.V("body", truncate(string(raw))),
			goerr.T(errs.TagUpstream),
		)
	}
	return nil
}

func statusError(resp *http.Response, method, p string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := resp.Status
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		msg = env.Message
	}

	opts := []goerr.Option{
		goerr.TV(errs.EndpointKey, p),
		goerr.TV(errs.HTTPStatusKey, resp.StatusCode),
		goerr.V("method", method),
		goerr.V("body", truncate(string(raw))),
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		opts = append(opts, goerr.T(errs.TagNotFound))
	case resp.StatusCode == http.StatusConflict:
		opts = append(opts, goerr.T(errs.TagInvalidTransition))
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		opts = append(opts, goerr.T(errs.TagValidation))
	case resp.StatusCode == http.StatusGatewayTimeout:
		opts = append(opts, goerr.T(errs.TagTimeout))
	default:
		opts = append(opts, goerr.T(errs.TagUpstream))
	}

	return goerr.New("backend returned error: "+msg, opts...)
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}

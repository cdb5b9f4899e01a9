// Package clubapi is the outbound adapter for a running clubstate server. Its
// Client implements ports.ClubService over the server's HTTP API, so the
// operator CLI can drive a remote club the same way it drives a local store.
//
// Transport concerns (retry, circuit breaking, tracing) come from
// httpclient.Client. This package owns the wire mapping: domain commands are
// encoded with the dto package and problem responses are translated back to
// domain errors by TranslateHTTPError.
package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/platform/httpclient"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// API paths relative to the server base URL.
const (
	pathInstantiate = "/api/v1/club"
	pathExecute     = "/api/v1/club/execute"
	pathReady       = "/health/ready"
)

// queryPaths maps each query to its GET route. Reads go over GET so the
// transport may retry them on server errors.
var queryPaths = map[club.QueryKind]string{
	club.QueryCount:            "/api/v1/club/count",
	club.QueryXFactor:          "/api/v1/club/x-factor",
	club.QueryMembersOnlyCount: "/api/v1/club/members-only-count",
	club.QueryMemberList:       "/api/v1/club/members",
	club.QueryWaitingList:      "/api/v1/club/waiting-list",
}

// maxAnswerBodySize bounds a query response.
const maxAnswerBodySize = 1 << 20

// Compile-time interface checks.
var (
	_ ports.ClubService   = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

// Client talks to a clubstate server.
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger
}

// New creates a Client that sends requests through hc.
func New(hc *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{http: hc, logger: logger}
}

// Instantiate sends POST /api/v1/club as caller. An omitted member list is
// sent as an absent members_list field.
func (c *Client) Instantiate(ctx context.Context, caller club.Identity, params club.InstantiateParams) error {
	body := dto.InstantiateRequest{
		Count:       &params.Count,
		XFactor:     &params.XFactor,
		MembersList: params.Members,
	}
	return c.send(ctx, http.MethodPost, pathInstantiate, "instantiate", caller, body, http.StatusCreated, nil)
}

// Execute sends POST /api/v1/club/execute as caller.
func (c *Client) Execute(ctx context.Context, caller club.Identity, cmd club.Command) error {
	body, err := dto.NewExecuteRequest(cmd)
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, pathExecute, cmd.Kind.String(), caller, body, http.StatusNoContent, nil)
}

// Query reads the GET route for kind and decodes its record.
func (c *Client) Query(ctx context.Context, kind club.QueryKind) (club.Answer, error) {
	path, ok := queryPaths[kind]
	if !ok {
		return club.Answer{}, &domain.ValidationError{
			Fields: map[string]string{"query": "unknown: " + kind.String()},
		}
	}

	var raw []byte
	err := c.send(ctx, http.MethodGet, path, kind.String(), "", nil, http.StatusOK, &raw)
	if err != nil {
		return club.Answer{}, err
	}
	return dto.DecodeAnswer(kind, raw)
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string { return c.http.Name() }

// HealthCheck asks the server's readiness endpoint. A server that answers
// 503 is reachable but not ready, and is reported as such.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.http.BaseURL()+pathReady, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating readiness request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if resp != nil {
		defer c.closeBody(ctx, resp)
	}
	if resp != nil && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: not ready (HTTP %d)", c.http.Name(), resp.StatusCode)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", c.http.Name(), err)
	}
	return nil
}

// send marshals reqBody, executes the request, and checks the status. A nil
// reqBody sends no body. On success with out non-nil, the raw response body
// is stored in *out.
func (c *Client) send(ctx context.Context, method, path, op string, caller club.Identity, reqBody any, wantStatus int, out *[]byte) error {
	var body io.Reader = http.NoBody
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling %s body: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.http.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(middleware.HeaderCaller, caller.String())
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		// Exhausted retries still hand back the last response; prefer the
		// server's own account of the failure.
		if resp != nil {
			defer c.closeBody(ctx, resp)
			if resp.StatusCode != wantStatus {
				return TranslateHTTPError(resp, op)
			}
		}
		c.logger.ErrorContext(ctx, "request failed",
			slog.String("operation", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != wantStatus {
		c.logger.DebugContext(ctx, "unexpected status",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return TranslateHTTPError(resp, op)
	}

	if out != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxAnswerBodySize))
		if err != nil {
			return fmt.Errorf("reading %s response: %w", op, err)
		}
		*out = b
	}
	return nil
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}

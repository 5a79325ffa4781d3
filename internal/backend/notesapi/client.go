// Package notesapi implements the service.Service interface against the notes REST API.
package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"gnotes/internal/config"
	"gnotes/internal/service"
)

const (
	// APIPrefix is prepended to every endpoint path.
	APIPrefix = "/api"

	// TokenScheme is the Authorization scheme the backend expects.
	TokenScheme = "Token"

	// maxErrorBody caps how much of a failure body is read for detail parsing.
	maxErrorBody = 64 << 10
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// New creates a client for the backend named in cfg.
func New(cfg *config.Config, log *slog.Logger) *Client {
	return NewWithHTTPClient(cfg.APIURL, &http.Client{}, cfg.Timeout, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		timeout: timeout,
		log:     log,
	}
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/login/", "", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &service.APIError{Status: http.StatusOK, Detail: "Invalid credentials"}
	}
	return resp.Token, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, creds service.Credentials) error {
	return c.do(ctx, "register", http.MethodPost, "/register/", "", creds, nil)
}

// Logout implements service.Service.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, "/logout/", token, nil, nil)
}

// ListNotes implements service.Service.
func (c *Client) ListNotes(ctx context.Context, token, query string) ([]service.Note, error) {
	if token == "" {
		return nil, service.ErrNoToken
	}
	path := "/notes/"
	if query != "" {
		path += "?" + url.Values{"search": {query}}.Encode()
	}
	var notes []service.Note
	if err := c.do(ctx, "list notes", http.MethodGet, path, token, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []service.Note{}
	}
	return notes, nil
}

// CreateNote implements service.Service.
func (c *Client) CreateNote(ctx context.Context, token string, draft service.Draft) (service.Note, error) {
	if token == "" {
		return service.Note{}, service.ErrNoToken
	}
	var note service.Note
	if err := c.do(ctx, "create note", http.MethodPost, "/notes/", token, draft, &note); err != nil {
		return service.Note{}, err
	}
	return note, nil
}

// UpdateNote implements service.Service.
func (c *Client) UpdateNote(ctx context.Context, token string, id int, draft service.Draft) (service.Note, error) {
	if token == "" {
		return service.Note{}, service.ErrNoToken
	}
	var note service.Note
	if err := c.do(ctx, "update note", http.MethodPut, notePath(id), token, draft, &note); err != nil {
		return service.Note{}, err
	}
	return note, nil
}

// DeleteNote implements service.Service.
func (c *Client) DeleteNote(ctx context.Context, token string, id int) error {
	if token == "" {
		return service.ErrNoToken
	}
	return c.do(ctx, "delete note", http.MethodDelete, notePath(id), token, nil, nil)
}

func notePath(id int) string {
	return "/notes/" + strconv.Itoa(id) + "/"
}

// do performs one request. A non-empty token authenticates the call.
// body is JSON-encoded when non-nil; out is JSON-decoded on success when non-nil.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+APIPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.clientFor(token).Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "method", method, "path", path, "request_id", reqID, "err", err)
		return &service.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return decodeBodyError(op, resp.StatusCode, err)
	}
	return nil
}

// clientFor returns an HTTP client that attaches the token, or the bare client.
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.http
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   TokenScheme,
	})
	authed := *c.http
	authed.Transport = &oauth2.Transport{Source: src, Base: c.http.Transport}
	return &authed
}

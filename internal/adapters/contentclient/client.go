// Package contentclient is an HTTP implementation of the contentapi port.
//
// Errors are always *contentapi.Error and unwrap to one of the contentapi
// sentinels, so callers branch with errors.Is.
package contentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

const (
	adminSecretHeader    = "X-Admin-Secret"
	idempotencyKeyHeader = "Idempotency-Key"

	defaultTimeout = 30 * time.Second
)

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	adminSecret string
}

type Option func(*Client)

// WithHTTPClient replaces the default client (which has a 30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
		}
	}
}

// WithAdminSecret sends the admin secret on every write.
func WithAdminSecret(secret string) Option {
	return func(c *Client) { c.adminSecret = secret }
}

// New returns a client for the API at baseURL ("http://host:port", no trailing path).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAdminSecret replaces the secret sent on writes.
func (c *Client) SetAdminSecret(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adminSecret = secret
}

func (c *Client) secret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adminSecret
}

func (c *Client) ListMembers(ctx context.Context) ([]domain.Member, error) {
	var out []wire.Member
	if err := c.do(ctx, "list members", http.MethodGet, "/api/get-members", nil, &out); err != nil {
		return nil, err
	}
	return wire.MembersToDomain(out), nil
}

func (c *Client) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	in := wire.MemberFromDomain(m)
	in.ID = ""
	var out wire.Member
	if err := c.do(ctx, "create member", http.MethodPost, "/api/manage-members", in, &out); err != nil {
		return domain.Member{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) UpdateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	var out wire.Member
	if err := c.do(ctx, "update member", http.MethodPut, "/api/manage-members", wire.MemberFromDomain(m), &out); err != nil {
		return domain.Member{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteMember(ctx context.Context, id domain.MemberID) error {
	return c.do(ctx, "delete member", http.MethodDelete, "/api/manage-members", wire.DeleteRequest{ID: wire.ID(id)}, nil)
}

func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out []wire.Event
	if err := c.do(ctx, "list events", http.MethodGet, "/api/get-events", nil, &out); err != nil {
		return nil, err
	}
	return wire.EventsToDomain(out), nil
}

func (c *Client) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	in := wire.EventFromDomain(e)
	in.ID = ""
	var out wire.Event
	if err := c.do(ctx, "create event", http.MethodPost, "/api/manage-events", in, &out); err != nil {
		return domain.Event{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) UpdateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	var out wire.Event
	if err := c.do(ctx, "update event", http.MethodPut, "/api/manage-events", wire.EventFromDomain(e), &out); err != nil {
		return domain.Event{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id domain.EventID) error {
	return c.do(ctx, "delete event", http.MethodDelete, "/api/manage-events", wire.DeleteRequest{ID: wire.ID(id)}, nil)
}

func (c *Client) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	var out []wire.GalleryItem
	if err := c.do(ctx, "list gallery", http.MethodGet, "/api/get-gallery", nil, &out); err != nil {
		return nil, err
	}
	return wire.GalleryToDomain(out), nil
}

func (c *Client) CreateGalleryItem(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error) {
	in := wire.GalleryItemFromDomain(g)
	in.ID = ""
	var out wire.GalleryItem
	if err := c.do(ctx, "create gallery item", http.MethodPost, "/api/manage-gallery", in, &out); err != nil {
		return domain.GalleryItem{}, err
	}
	return out.ToDomain(), nil
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id domain.GalleryItemID) error {
	return c.do(ctx, "delete gallery item", http.MethodDelete, "/api/manage-gallery", wire.DeleteRequest{ID: wire.ID(id)}, nil)
}

// do performs one request and decodes a 2xx body into target (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &contentapi.Error{Op: op, Err: fmt.Errorf("%w: encode request: %w", contentapi.ErrRejected, err)}
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &contentapi.Error{Op: op, Err: fmt.Errorf("%w: %w", contentapi.ErrTransport, err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if secret := c.secret(); method != http.MethodGet && secret != "" {
		req.Header.Set(adminSecretHeader, secret)
	}
	if method == http.MethodPost {
		if key, ok := contentapi.IdempotencyKeyFromContext(ctx); ok {
			req.Header.Set(idempotencyKeyHeader, key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &contentapi.Error{Op: op, Err: fmt.Errorf("%w: %w", contentapi.ErrTransport, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(op, resp)
	}
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &contentapi.Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: decode response: %w", contentapi.ErrStore, err)}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	e := &contentapi.Error{Op: op, Status: resp.StatusCode, Err: contentapi.ClassifyStatus(resp.StatusCode)}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var er wire.ErrorResponse
	if json.Unmarshal(raw, &er) == nil && er.Error.Code != "" {
		e.Code = er.Error.Code
		e.Message = er.Error.Message
	} else if s := strings.TrimSpace(string(raw)); s != "" {
		e.Message = s
	}
	return e
}

var _ contentapi.API = (*Client)(nil)

// Package client is a typed Go client for the Keeper HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"keeper/internal/errors"
)

const defaultTimeout = 15 * time.Second

// User is an account as returned by the API.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Note is a note as returned by the API.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AuthResult is the body of a successful register or login.
type AuthResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("keeper api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("keeper api: %d: %s", e.StatusCode, e.Message)
}

// Client talks to one Keeper server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken starts the client with an existing session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New returns a client for the API rooted at baseURL, e.g. "http://localhost:5000/api".
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

// Token returns the session token in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// SetToken replaces the session token; an empty token logs the client out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)

	return &out, nil
}

// Login signs in and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)

	return &out, nil
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}

	return &out.User, nil
}

// GoogleAuthURL is where a browser starts Google sign-in.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/oauth/google"
}

// GitHubAuthURL is where a browser starts GitHub sign-in.
func (c *Client) GitHubAuthURL() string {
	return c.baseURL + "/oauth/github"
}

// Notes lists the signed-in user's notes, newest first.
func (c *Client) Notes(ctx context.Context) ([]Note, error) {
	var out struct {
		Notes []Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, err
	}

	return out.Notes, nil
}

// CreateNote adds a note.
func (c *Client) CreateNote(ctx context.Context, title, content string) (*Note, error) {
	return c.writeNote(ctx, http.MethodPost, "/notes", title, content)
}

// UpdateNote replaces a note's title and content.
func (c *Client) UpdateNote(ctx context.Context, id int64, title, content string) (*Note, error) {
	return c.writeNote(ctx, http.MethodPut, notePath(id), title, content)
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

func (c *Client) writeNote(ctx context.Context, method, path, title, content string) (*Note, error) {
	var out struct {
		Note Note `json:"note"`
	}
	body := map[string]string{"title": title, "content": content}
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}

	return &out.Note, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decode response")
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}

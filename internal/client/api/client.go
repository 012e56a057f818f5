// Package api is a thin HTTP client for the userkeeper API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

const defaultTimeout = 10 * time.Second

// User is the public view of an account as returned by the server.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateRequest holds the fields to change. Empty fields are omitted and
// left unchanged by the server.
type UpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type UpdateResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Error is a non-2xx reply. Message is the server's "message" field, or the
// raw body when it was not JSON.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type messageBody struct {
	Message string `json:"message"`
}

// Register creates an account and returns the server's confirmation.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out messageBody
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/register", "", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login returns a bearer token valid for one hour.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, req UpdateRequest) (*UpdateResult, error) {
	var out UpdateResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageBody
		if json.Unmarshal(raw, &m) != nil || m.Message == "" {
			m.Message = strings.TrimSpace(string(raw))
		}
		return &Error{StatusCode: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

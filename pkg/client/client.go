package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/noteloft/noteloft/pkg/domain"
)

// defaultTimeout bounds every request; a timed-out call surfaces as an
// ordinary failure, never retried.
const defaultTimeout = 15 * time.Second

// AuthPayload is the session material returned by the auth endpoints.
type AuthPayload struct {
	AccessToken string         `json:"access_token"`
	User        domain.Account `json:"user"`
}

// SignUpRequest is the payload for creating an account.
type SignUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateNoteRequest is the payload for creating a new note.
type CreateNoteRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// SummarizeRequest is the payload for the document summarization endpoint.
type SummarizeRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Client is the Noteloft API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. An empty token makes anonymous calls;
// auth endpoints still work and the rest return 401.
func New(baseURL, token string) *Client {
	return NewWithTimeout(baseURL, token, defaultTimeout)
}

// NewWithTimeout creates a client with an explicit request timeout.
func NewWithTimeout(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
// Pass "" after sign-out.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	return c.token
}

// SignInWithPassword exchanges credentials for a session payload.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthPayload, error) {
	var p AuthPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &p); err != nil {
		return nil, fmt.Errorf("client.SignInWithPassword: %w", err)
	}
	return &p, nil
}

// SignUp creates an account. Metadata travels as profile data attached to
// the creation request (the UI sends the display name here).
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthPayload, error) {
	var p AuthPayload
	if err := c.post(ctx, "/api/auth/signup", req, &p); err != nil {
		return nil, fmt.Errorf("client.SignUp: %w", err)
	}
	return &p, nil
}

// SignOut revokes the current session server-side.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.SignOut: %w", err)
	}
	return nil
}

// GetMe returns the authenticated account's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.Account, error) {
	var a domain.Account
	if err := c.get(ctx, "/api/me", &a); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &a, nil
}

// ListNotes fetches the caller's notes, newest first.
func (c *Client) ListNotes(ctx context.Context, limit, offset int) ([]domain.Note, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var notes []domain.Note
	if err := c.get(ctx, "/api/notes?"+params.Encode(), &notes); err != nil {
		return nil, fmt.Errorf("client.ListNotes: %w", err)
	}
	return notes, nil
}

// GetNote fetches a single note by ID.
func (c *Client) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := c.get(ctx, "/api/notes/"+url.PathEscape(id), &note); err != nil {
		return nil, fmt.Errorf("client.GetNote: %w", err)
	}
	return &note, nil
}

// CreateNote creates a new note.
func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) (*domain.Note, error) {
	var created domain.Note
	if err := c.post(ctx, "/api/notes", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateNote: %w", err)
	}
	return &created, nil
}

// DeleteNote removes a note by ID.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteNote: %w", err)
	}
	return nil
}

// Summarize submits document text for summarization and returns the result.
// Large documents can take a while; pass a context with a deadline if the
// default client timeout is too generous.
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*domain.Summary, error) {
	var s domain.Summary
	if err := c.post(ctx, "/api/summaries", req, &s); err != nil {
		return nil, fmt.Errorf("client.Summarize: %w", err)
	}
	return &s, nil
}

// ListSummaries fetches the caller's past document summaries.
func (c *Client) ListSummaries(ctx context.Context, limit, offset int) ([]domain.Summary, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var summaries []domain.Summary
	if err := c.get(ctx, "/api/summaries?"+params.Encode(), &summaries); err != nil {
		return nil, fmt.Errorf("client.ListSummaries: %w", err)
	}
	return summaries, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

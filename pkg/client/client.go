// Package client talks to the résumé API over HTTP. It implements the
// builder's Gateway.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
)

// Client keeps the bearer token returned by Register or Login. Any 401
// clears it and calls OnUnauthorized.
type Client struct {
	BaseURL        string
	HTTP           *http.Client
	OnUnauthorized func()

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type authResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{"name": name, "email": email, "password": password})
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (domain.User, error) {
	var out authResult
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return domain.User{}, err
	}
	c.SetToken(out.Token)
	return out.User, nil
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) Create(ctx context.Context, content domain.ResumeContent) (domain.Resume, error) {
	var r domain.Resume
	err := c.doJSON(ctx, http.MethodPost, "/resumes", content, &r)
	return r, err
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (domain.Resume, error) {
	var r domain.Resume
	err := c.doJSON(ctx, http.MethodGet, "/resumes/"+id.String(), nil, &r)
	return r, err
}

func (c *Client) List(ctx context.Context) ([]domain.Resume, error) {
	var list []domain.Resume
	err := c.doJSON(ctx, http.MethodGet, "/resumes", nil, &list)
	return list, err
}

// Update sends the whole document.
func (c *Client) Update(ctx context.Context, id uuid.UUID, content domain.ResumeContent) (domain.Resume, error) {
	var r domain.Resume
	err := c.doJSON(ctx, http.MethodPut, "/resumes/"+id.String(), content, &r)
	return r, err
}

// Patch sends only the supplied fields.
func (c *Client) Patch(ctx context.Context, id uuid.UUID, patch domain.ResumePatch) (domain.Resume, error) {
	var r domain.Resume
	err := c.doJSON(ctx, http.MethodPatch, "/resumes/"+id.String(), patch, &r)
	return r, err
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/resumes/"+id.String(), nil, nil)
}

// Export returns the PDF bytes of content.
func (c *Client) Export(ctx context.Context, content domain.ResumeContent, filename string) ([]byte, error) {
	body, err := json.Marshal(map[string]any{"document": content, "filename": filename})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/export", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// UploadImage sends one image and returns its durable URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, "/uploads/image", w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.URL, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	resp, err := c.do(ctx, method, path, "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// do returns the response only for 2xx statuses; anything else becomes an
// error and the body is closed.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if t := c.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.SetToken("")
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}
	return nil, decodeError(resp)
}

// StatusError is a failure the API reported with its message.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string              `json:"message"`
		Errors  []domain.FieldError `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &body)
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if len(body.Errors) > 0 {
			return &domain.ValidationError{Fields: body.Errors}
		}
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, body.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, body.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, body.Message)
	}
	return &StatusError{Status: resp.StatusCode, Message: body.Message}
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

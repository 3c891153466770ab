// Package ghsync publishes catalog exports to a GitHub repository through
// the contents API and pulls them back.
package ghsync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.github.com"
const userAgent = "catman/1.0"

// ErrBadRepo is returned when a repository reference is not of the form
// "owner/repo".
var ErrBadRepo = errors.New("repository must be owner/repo")

// Client talks to the GitHub REST API on behalf of one token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit spaces outgoing API requests.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a client for one authentication token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload creates or updates path in the repository's default branch with
// the given payload, which may be UTF-8 text or raw binary; the contents
// API takes base64 either way. Uploads are single-attempt.
func (c *Client) Upload(ctx context.Context, repo, path string, data []byte) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	branch, err := c.defaultBranch(ctx, owner, name)
	if err != nil || branch == "" {
		branch = "main"
	}

	body := map[string]string{
		"message": fmt.Sprintf("Update %s - %d", path, time.Now().UnixMilli()),
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  branch,
	}
	// Updating an existing file requires its current blob SHA.
	if sha, err := c.fileSHA(ctx, owner, name, path); err == nil && sha != "" {
		body["sha"] = sha
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/repos/%s/%s/contents/%s", owner, name, path),
		bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError("upload", resp)
	}
	return nil
}

// Download fetches and decodes path from the repository.
func (c *Client) Download(ctx context.Context, repo, path string) ([]byte, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/contents/%s", owner, name, path), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("download", resp)
	}

	var file struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode contents response: %w", err)
	}
	// The API wraps base64 at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}
	return raw, nil
}

// ValidateToken reports whether the token authenticates at all.
func (c *Client) ValidateToken(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("validate token", resp)
	}
	return nil
}

// RepoAccessible reports whether the token can see the repository.
func (c *Client) RepoAccessible(ctx context.Context, repo string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, name), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("repository access", resp)
	}
	return nil
}

// defaultBranch asks the repository endpoint for its default branch.
func (c *Client) defaultBranch(ctx context.Context, owner, name string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, name), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("repository info", resp)
	}

	var info struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode repository info: %w", err)
	}
	return info.DefaultBranch, nil
}

// fileSHA returns the blob SHA of an existing file, or "" when the file
// does not exist yet.
func (c *Client) fileSHA(ctx context.Context, owner, name, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/contents/%s", owner, name, path), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", apiError("file info", resp)
	}

	var file struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return "", fmt.Errorf("decode file info: %w", err)
	}
	return file.SHA, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// apiError folds the GitHub response body into the error so callers can
// surface a human-readable reason.
func apiError(op string, resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed: %s - %s", op, resp.Status, strings.TrimSpace(string(detail)))
}

func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadRepo, repo)
	}
	return parts[0], parts[1], nil
}

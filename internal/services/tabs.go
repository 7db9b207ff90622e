// Tab backend implementation of [TabService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/desertthunder/songtabs/internal/models"
	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/time/rate"
)

// TabsClient implements [TabService] against the REST backend.
//
// Requests are throttled client-side and carry the current user's session JWT as a bearer token.
type TabsClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu   sync.RWMutex
	user *models.User
}

// NewTabsClient creates a client for the backend at baseURL. A non-positive rps disables throttling.
func NewTabsClient(baseURL string, client *http.Client, rps float64) *TabsClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &TabsClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (c *TabsClient) Name() string {
	return "Tab Backend"
}

// SetUser sets the user whose session token is sent with requests.
func (c *TabsClient) SetUser(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

// User returns the current user.
func (c *TabsClient) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Authenticate posts a Google ID token to /auth/google and stores the returned user.
func (c *TabsClient) Authenticate(ctx context.Context, idToken string) (*models.User, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty id token", shared.ErrMissingCredentials)
	}

	var user models.User
	err := c.doRequest(ctx, http.MethodPost, "/auth/google", map[string]string{"token": idToken}, &user, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	if !user.Authenticated() {
		return nil, fmt.Errorf("%w: backend returned no session token", shared.ErrAuthFailed)
	}

	c.SetUser(&user)
	return &user, nil
}

// Songs calls GET /songs?limit&offset.
func (c *TabsClient) Songs(ctx context.Context, page models.Page) ([]models.Song, error) {
	var songs []models.Song
	if err := c.doRequest(ctx, http.MethodGet, "/songs?"+pageQuery(page, "").Encode(), nil, &songs, true); err != nil {
		return nil, fmt.Errorf("failed to fetch songs: %w", err)
	}
	return songs, nil
}

// SearchSongs calls GET /songs?limit&offset&query.
func (c *TabsClient) SearchSongs(ctx context.Context, query string, page models.Page) ([]models.Song, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	var songs []models.Song
	if err := c.doRequest(ctx, http.MethodGet, "/songs?"+pageQuery(page, query).Encode(), nil, &songs, true); err != nil {
		return nil, fmt.Errorf("failed to fetch search results: %w", err)
	}
	return songs, nil
}

// Tab calls GET /tabs/{songID}.
func (c *TabsClient) Tab(ctx context.Context, songID int64) (*models.Tab, error) {
	var tab models.Tab
	if err := c.doRequest(ctx, http.MethodGet, "/tabs/"+strconv.FormatInt(songID, 10), nil, &tab, true); err != nil {
		return nil, fmt.Errorf("failed to fetch tab: %w", err)
	}
	return &tab, nil
}

// Videos calls GET /videos/{songID}. A null body yields an empty list.
func (c *TabsClient) Videos(ctx context.Context, songID int64) ([]models.Video, error) {
	var videos []models.Video
	if err := c.doRequest(ctx, http.MethodGet, "/videos/"+strconv.FormatInt(songID, 10), nil, &videos, true); err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

func pageQuery(page models.Page, query string) url.Values {
	if page.Limit <= 0 {
		page.Limit = models.DefaultPageSize
	}
	v := url.Values{}
	v.Set("limit", strconv.Itoa(page.Limit))
	v.Set("offset", strconv.Itoa(max(0, page.Offset)))
	if query != "" {
		v.Set("query", query)
	}
	return v
}

// doRequest performs a JSON request against the backend and decodes the response into result.
func (c *TabsClient) doRequest(ctx context.Context, method, endpoint string, body, result any, auth bool) error {
	var token string
	if auth {
		user := c.User()
		if !user.Authenticated() {
			return shared.ErrNotAuthenticated
		}
		token = user.SessionJWT
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", shared.ErrNotAuthenticated, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

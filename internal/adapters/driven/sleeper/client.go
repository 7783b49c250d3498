package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driven"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.LeagueProvider = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond keeps well under the provider's published limit.
	DefaultRequestsPerSecond = 10.0

	// DefaultBurst is the token bucket size.
	DefaultBurst = 5
)

// Config holds provider client settings.
type Config struct {
	// BaseURL is the API root (default: https://api.sleeper.app/v1).
	BaseURL string

	// UserAgent is sent with every request (default: rabkl-bot).
	UserAgent string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond and Burst configure client-side throttling.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client is a read-only Sleeper API client.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates a provider client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultProviderURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// League returns league metadata.
func (c *Client) League(ctx context.Context, leagueID string) (*domain.League, error) {
	var l leagueJSON
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID), &l); err != nil {
		return nil, err
	}
	return l.toDomain(), nil
}

// Users returns the league's members.
func (c *Client) Users(ctx context.Context, leagueID string) ([]domain.RawUser, error) {
	var raw []userJSON
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID)+"/users", &raw); err != nil {
		return nil, err
	}
	users := make([]domain.RawUser, 0, len(raw))
	for i := range raw {
		users = append(users, raw[i].toDomain())
	}
	return users, nil
}

// Rosters returns the league's rosters.
func (c *Client) Rosters(ctx context.Context, leagueID string) ([]domain.RawRoster, error) {
	var raw []rosterJSON
	if err := c.get(ctx, "/league/"+url.PathEscape(leagueID)+"/rosters", &raw); err != nil {
		return nil, err
	}
	rosters := make([]domain.RawRoster, 0, len(raw))
	for _, r := range raw {
		rosters = append(rosters, domain.RawRoster{RosterID: r.RosterID, OwnerID: r.OwnerID})
	}
	return rosters, nil
}

// Transactions returns the transactions recorded for one round.
// Records that do not decode are dropped so the rest of the round survives.
func (c *Client) Transactions(ctx context.Context, leagueID string, round int) ([]domain.RawTransaction, error) {
	var raw []json.RawMessage
	path := "/league/" + url.PathEscape(leagueID) + "/transactions/" + strconv.Itoa(round)
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	txns := make([]domain.RawTransaction, 0, len(raw))
	for i, rec := range raw {
		var t transactionJSON
		if err := json.Unmarshal(rec, &t); err != nil {
			logger.Debug("Dropping transaction %d of round %d: %v", i, round, err)
			continue
		}
		txns = append(txns, t.toDomain())
	}
	return txns, nil
}

// Players returns the full player dictionary for a sport.
func (c *Client) Players(ctx context.Context, sport string) (map[string]domain.RawPlayer, error) {
	var raw map[string]playerJSON
	if err := c.get(ctx, "/players/"+url.PathEscape(sport), &raw); err != nil {
		return nil, err
	}
	players := make(map[string]domain.RawPlayer, len(raw))
	for id, p := range raw {
		players[id] = p.toDomain()
	}
	return players, nil
}

// get issues a throttled GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

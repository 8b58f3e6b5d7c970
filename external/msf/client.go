package msf

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/platform/cache"
	"github.com/jordangerads/pickem/internal/platform/logging"
	"github.com/jordangerads/pickem/internal/platform/resilience"
	"github.com/jordangerads/pickem/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.mysportsfeeds.com/v2.1/pull/nfl"
	defaultCacheTTL = 5 * time.Minute
	maxBodyBytes    = 4 << 20
)

var errFeedTransient = crerr.New("schedule feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Password       string
	Timeout        time.Duration
	MaxRetries     int
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls NFL schedules from the stats provider. Raw responses are
// cached briefly so repeated syncs inside one window reuse the same payload.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authorization  string
	maxRetries     int
	responses      *cache.Store
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	credentials := strings.TrimSpace(cfg.APIKey) + ":" + strings.TrimSpace(cfg.Password)
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		authorization:  "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		maxRetries:     cfg.MaxRetries,
		responses:      cache.NewStore(ttl),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// SeasonWeekSchedule fetches one week of regular-season games.
func (c *Client) SeasonWeekSchedule(ctx context.Context, season, week int) ([]game.Game, []team.Team, error) {
	if season <= 0 || week <= 0 {
		return nil, nil, fmt.Errorf("season and week must be greater than zero")
	}

	path := fmt.Sprintf("/%d-regular/week/%d/games.json", season, week)
	var envelope gamesEnvelope
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, nil, fmt.Errorf("fetch week schedule season=%d week=%d: %w", season, week, err)
	}

	return mapEnvelope(envelope, season)
}

// UpcomingSchedule fetches every game in the given number of days starting
// at from, walking the provider's per-day endpoint.
func (c *Client) UpcomingSchedule(ctx context.Context, from time.Time, days int) ([]game.Game, []team.Team, error) {
	if days <= 0 {
		return nil, nil, fmt.Errorf("days must be greater than zero")
	}

	season := seasonFor(from)
	games := make([]game.Game, 0, 16)
	teams := make([]team.Team, 0, 32)
	seenGames := make(map[int64]struct{})
	seenTeams := make(map[int64]struct{})

	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		path := fmt.Sprintf("/%d-regular/date/%s/games.json", season, day.UTC().Format("20060102"))

		var envelope gamesEnvelope
		if err := c.getJSON(ctx, path, &envelope); err != nil {
			return nil, nil, fmt.Errorf("fetch day schedule date=%s: %w", day.UTC().Format("2006-01-02"), err)
		}

		dayGames, dayTeams, err := mapEnvelope(envelope, season)
		if err != nil {
			return nil, nil, err
		}
		for _, g := range dayGames {
			if _, ok := seenGames[g.ID]; ok {
				continue
			}
			seenGames[g.ID] = struct{}{}
			games = append(games, g)
		}
		for _, t := range dayTeams {
			if _, ok := seenTeams[t.ID]; ok {
				continue
			}
			seenTeams[t.ID] = struct{}{}
			teams = append(teams, t)
		}
	}

	return games, teams, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "schedule feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err := c.responses.GetOrLoad(ctx, path, func(ctx context.Context) (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", c.authorization)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errFeedTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "schedule feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// seasonFor maps a date to the NFL season year. Games in January and
// February still belong to the previous calendar year's season.
func seasonFor(t time.Time) int {
	year := t.UTC().Year()
	if t.UTC().Month() < time.March {
		return year - 1
	}
	return year
}

package mail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/jordangerads/pickem/internal/platform/resilience"
	"github.com/jordangerads/pickem/internal/usecase"
)

var errMailTransient = crerr.New("mail relay transient failure")

type HTTPSenderConfig struct {
	BaseURL        string
	Token          string
	FromAddress    string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// HTTPSender posts reminder messages to the transactional mail relay.
type HTTPSender struct {
	client         *http.Client
	baseURL        string
	token          string
	fromAddress    string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewHTTPSender(cfg HTTPSenderConfig, logger *slog.Logger) *HTTPSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &HTTPSender{
		client:         &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		fromAddress:    strings.TrimSpace(cfg.FromAddress),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type sendRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
	From           string `json:"from"`
	To             string `json:"to"`
	Subject        string `json:"subject"`
	TextBody       string `json:"textBody"`
}

func (s *HTTPSender) Send(ctx context.Context, msg usecase.MailMessage) error {
	if s.circuitEnabled {
		if err := s.breaker.Allow(); err != nil {
			s.logger.WarnContext(ctx, "mail relay circuit breaker rejected request", "state", s.breaker.State())
			return fmt.Errorf("mail relay is temporarily unavailable: %w", err)
		}
	}
	if s.baseURL == "" {
		return crerr.New("mail relay base url is required")
	}

	payload := sendRequest{
		IdempotencyKey: msg.ID,
		From:           s.fromAddress,
		To:             msg.Email,
		Subject:        msg.Subject,
		TextBody:       renderReminderBody(msg),
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal mail payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "build mail request")
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.recordOutcome(fmt.Errorf("%w: send request: %v", errMailTransient, err))
		return fmt.Errorf("send mail request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var outcome error
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			outcome = fmt.Errorf("%w: relay status=%d", errMailTransient, resp.StatusCode)
		} else {
			outcome = fmt.Errorf("relay status=%d", resp.StatusCode)
		}
		s.recordOutcome(outcome)
		return outcome
	}

	s.recordOutcome(nil)
	s.logger.InfoContext(ctx, "reminder mail accepted", "message_id", msg.ID, "user_id", msg.UserID)
	return nil
}

func (s *HTTPSender) recordOutcome(err error) {
	if !s.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errMailTransient) {
		s.breaker.RecordFailure()
		return
	}
	s.breaker.RecordSuccess()
}

// renderReminderBody writes the plain-text reminder listing each game still
// waiting for a pick.
func renderReminderBody(msg usecase.MailMessage) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("You still have picks to make today:\n\n")
	for _, m := range msg.Missing {
		_, _ = buf.WriteString(fmt.Sprintf("  - pool %d, game %d, kickoff %s\n",
			m.PoolID, m.GameID, m.KickoffAt.UTC().Format("Mon Jan 2 15:04 MST")))
	}
	_, _ = buf.WriteString("\nLock in your picks before kickoff.\n")

	return buf.String()
}

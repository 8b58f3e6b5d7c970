package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	_ "github.com/lib/pq"

	"github.com/jordangerads/pickem/external/msf"
	"github.com/jordangerads/pickem/internal/config"
	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/domain/user"
	"github.com/jordangerads/pickem/internal/infrastructure/account/static"
	"github.com/jordangerads/pickem/internal/infrastructure/mail"
	cacherepo "github.com/jordangerads/pickem/internal/infrastructure/repository/cache"
	"github.com/jordangerads/pickem/internal/infrastructure/repository/memory"
	"github.com/jordangerads/pickem/internal/infrastructure/repository/postgres"
	"github.com/jordangerads/pickem/internal/interfaces/httpapi"
	basecache "github.com/jordangerads/pickem/internal/platform/cache"
	"github.com/jordangerads/pickem/internal/platform/logging"
	"github.com/jordangerads/pickem/internal/platform/resilience"
	"github.com/jordangerads/pickem/internal/usecase"
)

type repositories struct {
	games game.Repository
	teams team.Repository
	pools pool.Repository
	users user.Repository
	picks pick.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.games = cacherepo.NewGameRepository(repos.games, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.pools = cacherepo.NewPoolRepository(repos.pools, store)
	}

	validator := usecase.NewPickValidator(repos.games, repos.users, repos.pools, repos.picks).
		WithLogger(appLogger)
	pickSvc := usecase.NewPickService(repos.picks, repos.games, repos.pools, validator).
		WithLogger(appLogger)
	poolSvc := usecase.NewPoolService(repos.pools, repos.users).
		WithLogger(appLogger)

	feed := msf.NewClient(msf.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		APIKey:     cfg.FeedAPIKey,
		Password:   cfg.FeedPassword,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		CacheTTL:   cfg.FeedCacheTTL,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
	scheduleSvc := usecase.NewScheduleSyncService(feed, repos.games, repos.teams).
		WithLogger(appLogger)

	sender := mail.NewHTTPSender(mail.HTTPSenderConfig{
		BaseURL:     cfg.MailBaseURL,
		Token:       cfg.MailToken,
		FromAddress: cfg.MailFromAddress,
		Timeout:     cfg.MailTimeout,
	}, logger)
	reminderSvc := usecase.NewReminderService(repos.users, repos.games, repos.picks, sender).
		WithWorkers(cfg.ReminderWorkers).
		WithLogger(appLogger)

	verifier, err := static.NewVerifier(cfg.StaticAccessTokens)
	if err != nil {
		return nil, fmt.Errorf("build token verifier: %w", err)
	}

	handler := httpapi.NewHandler(pickSvc, poolSvc, scheduleSvc, reminderSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories selects the storage backend. With no DB_URL the service
// runs on seeded in-memory stores, which is how local development works.
func buildRepositories(cfg config.Config) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		gameRepo := memory.NewGameRepository(memory.SeedGames())
		return repositories{
			games: gameRepo,
			teams: memory.NewTeamRepository(memory.SeedTeams()),
			pools: memory.NewPoolRepository(memory.SeedPools()),
			users: memory.NewUserRepository(memory.SeedUsers()),
			picks: memory.NewPickRepository(gameRepo),
		}, nil
	}

	db, err := openDB(cfg.DBURL)
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		games: postgres.NewGameRepository(db),
		teams: postgres.NewTeamRepository(db),
		pools: postgres.NewPoolRepository(db),
		users: postgres.NewUserRepository(db),
		picks: postgres.NewPickRepository(db),
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/domain/user"
	"github.com/jordangerads/pickem/internal/platform/id"
	"github.com/jordangerads/pickem/internal/platform/logging"
)

// reminderZone anchors "today" for the reminder sweep. Kickoffs are stored in
// UTC but the day boundary people reason about is Eastern.
const reminderZone = "America/New_York"

const defaultReminderWorkers = 8

// MissingGame is one game a user has not picked yet.
type MissingGame struct {
	GameID    int64
	PoolID    int64
	KickoffAt time.Time
}

// MailMessage is a reminder to one user listing their open picks for today.
type MailMessage struct {
	ID      string
	UserID  int64
	Email   string
	Subject string
	Missing []MissingGame
}

// MailSender delivers reminder messages.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// ReminderService sweeps each user's pools for games kicking off today that
// still have no confidence set and mails one reminder per user.
type ReminderService struct {
	userRepo user.Repository
	gameRepo game.Repository
	pickRepo pick.Repository
	sender   MailSender
	workers  int
	clock    clockwork.Clock
	idGen    id.Generator
	logger   *logging.Logger
}

func NewReminderService(
	userRepo user.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	sender MailSender,
) *ReminderService {
	return &ReminderService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
		sender:   sender,
		workers:  defaultReminderWorkers,
		clock:    clockwork.NewRealClock(),
		idGen:    id.UUIDGenerator{},
		logger:   logging.Default(),
	}
}

func (s *ReminderService) WithClock(clock clockwork.Clock) *ReminderService {
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *ReminderService) WithIDGenerator(gen id.Generator) *ReminderService {
	if gen != nil {
		s.idGen = gen
	}
	return s
}

func (s *ReminderService) WithWorkers(n int) *ReminderService {
	if n > 0 {
		s.workers = n
	}
	return s
}

func (s *ReminderService) WithLogger(logger *logging.Logger) *ReminderService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// NotifyUsersWithoutPicks finds every user who is missing a confidence for a
// game kicking off today and sends each of them a single reminder. It returns
// the number of reminders sent.
func (s *ReminderService) NotifyUsersWithoutPicks(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.NotifyUsersWithoutPicks")
	defer span.End()

	todays, err := s.todaysGames(ctx)
	if err != nil {
		return 0, err
	}
	if len(todays) == 0 {
		s.logger.InfoContext(ctx, "no games today, reminder sweep skipped")
		return 0, nil
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, dependencyFailure("list users", err)
	}

	messages := make([]MailMessage, 0, len(users))
	for _, u := range users {
		missing, err := s.missingForUser(ctx, u, todays)
		if err != nil {
			return 0, err
		}
		if len(missing) == 0 {
			continue
		}
		messages = append(messages, MailMessage{
			ID:      s.idGen.NewID(),
			UserID:  u.ID,
			Email:   u.Email,
			Subject: fmt.Sprintf("You have %d pick(s) to make before kickoff", len(missing)),
			Missing: missing,
		})
	}
	if len(messages) == 0 {
		return 0, nil
	}

	return s.dispatch(ctx, messages)
}

// todaysGames lists games kicking off between midnight and midnight Eastern.
func (s *ReminderService) todaysGames(ctx context.Context) ([]game.Game, error) {
	loc, err := time.LoadLocation(reminderZone)
	if err != nil {
		return nil, dependencyFailure("load reminder time zone", err)
	}

	now := s.clock.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	games, err := s.gameRepo.ListByKickoffBetween(ctx, start, end)
	if err != nil {
		return nil, dependencyFailure("list games by kickoff window", err)
	}
	return games, nil
}

// missingForUser returns today's games, across all of the user's pools, that
// have no pick with a confidence set. A pick with a chosen team but a nil
// confidence still counts as missing.
func (s *ReminderService) missingForUser(ctx context.Context, u user.User, todays []game.Game) ([]MissingGame, error) {
	// One pick listing per (pool, season, week) pair covered by today's games.
	type weekKey struct {
		poolID int64
		season int
		week   int
	}

	var missing []MissingGame
	made := make(map[weekKey]map[int64]bool)

	for _, m := range u.Memberships {
		for _, g := range todays {
			key := weekKey{poolID: m.PoolID, season: g.Season, week: g.Week}
			decided, ok := made[key]
			if !ok {
				picks, err := s.pickRepo.List(ctx, u.ID, m.PoolID, g.Season, g.Week)
				if err != nil {
					return nil, dependencyFailure("list stored picks", err)
				}
				decided = make(map[int64]bool, len(picks))
				for _, p := range picks {
					decided[p.GameID] = p.Confidence != nil
				}
				made[key] = decided
			}
			if !decided[g.ID] {
				missing = append(missing, MissingGame{GameID: g.ID, PoolID: m.PoolID, KickoffAt: g.KickoffAt})
			}
		}
	}

	return missing, nil
}

// dispatch fans the messages out over a bounded worker pool. Send failures
// are logged and skipped so one broken mailbox never stalls the sweep.
func (s *ReminderService) dispatch(ctx context.Context, messages []MailMessage) (int, error) {
	workers := s.workers
	if workers > len(messages) {
		workers = len(messages)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, dependencyFailure("create reminder worker pool", err)
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)
	for _, msg := range messages {
		msg := msg
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.sender.Send(ctx, msg); err != nil {
				s.logger.ErrorContext(ctx, "reminder send failed",
					"message_id", msg.ID, "user_id", msg.UserID, "error", err)
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			s.logger.ErrorContext(ctx, "reminder dispatch rejected",
				"message_id", msg.ID, "user_id", msg.UserID, "error", submitErr)
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "reminder sweep finished", "candidates", len(messages), "sent", sent)
	return sent, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/metrics"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

const defaultPairLockTTL = 10 * time.Second

// MatchService drives the match lifecycle: creation, confirmation and finalization.
// Every transition runs as one store transaction that re-reads the records it
// changes; nothing is cached between calls.
type MatchService struct {
	store               repository.Store
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
	pairLockTTL         time.Duration
	logger              *slog.Logger
}

// NewMatchService creates a new MatchService. lockStore and notificationService
// may be nil.
func NewMatchService(
	store repository.Store,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
	pairLockTTL time.Duration,
	logger *slog.Logger,
) *MatchService {
	if pairLockTTL <= 0 {
		pairLockTTL = defaultPairLockTTL
	}
	return &MatchService{
		store:               store,
		lockStore:           lockStore,
		notificationService: notificationService,
		pairLockTTL:         pairLockTTL,
		logger:              logger,
	}
}

// CreateMatchRequest names the two rides to pair and their owners.
type CreateMatchRequest struct {
	User1ID string
	Ride1ID string
	User2ID string
	Ride2ID string
}

// CreateMatch pairs two pending rides. Both rides move to matched, record each
// other in their matched lists, and the match is stored, all in one transaction.
func (s *MatchService) CreateMatch(ctx context.Context, req CreateMatchRequest) (*domain.Match, error) {
	match, err := domain.NewMatch(req.User1ID, req.Ride1ID, req.User2ID, req.Ride2ID)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquirePairLock(ctx, req.Ride1ID, req.Ride2ID, s.pairLockTTL)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "pair lock unavailable, relying on store transaction", "error", err)
		case !locked:
			return nil, s.fail(ctx, "create", ErrPairLocked)
		default:
			defer func() {
				if err := s.lockStore.ReleasePairLock(context.WithoutCancel(ctx), req.Ride1ID, req.Ride2ID); err != nil {
					s.logger.WarnContext(ctx, "pair lock release failed", "error", err)
				}
			}()
		}
	}

	now := time.Now().UTC()
	match.ID = uuid.New().String()
	match.CreatedAt = now
	match.UpdatedAt = now

	owners := map[string]string{req.Ride1ID: req.User1ID, req.Ride2ID: req.User2ID}
	counterpart := map[string]string{req.Ride1ID: req.Ride2ID, req.Ride2ID: req.Ride1ID}
	// fixed lock order keeps two opposing creates from deadlocking
	rideIDs := []string{req.Ride1ID, req.Ride2ID}
	sort.Strings(rideIDs)

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		for _, id := range rideIDs {
			ride, err := tx.Rides().GetByID(ctx, id)
			if err != nil {
				return notFoundAs(err, ErrRideNotFound)
			}
			if ride.UserID != owners[id] {
				return domain.ErrRideOwnerMismatch
			}
			if ride.IsMatchedWith(counterpart[id]) {
				return ErrAlreadyMatched
			}
			if !ride.Status.CanTransition(domain.RideStatusMatched) {
				return ErrRideNotPending
			}
		}

		for _, id := range rideIDs {
			if err := tx.Rides().MarkMatched(ctx, id, counterpart[id]); err != nil {
				return err
			}
		}
		return tx.Matches().Create(ctx, match)
	})
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	metrics.MatchesCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "match created",
		"match_id", match.ID,
		"ride_ids", match.RideIDs(),
		"user_ids", []string{match.User1ID, match.User2ID},
	)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyMatchCreated(ctx, match)
	}
	return match, nil
}

// ConfirmMatchResult reports the match state after a confirmation.
type ConfirmMatchResult struct {
	MatchStatus  domain.MatchStatus
	AllConfirmed bool
	Match        *domain.Match
}

// ConfirmMatch records userID's confirmation. Confirming twice is a no-op.
// When every participant has confirmed, the match and both rides become confirmed.
func (s *MatchService) ConfirmMatch(ctx context.Context, matchID, userID string) (*ConfirmMatchResult, error) {
	if matchID == "" {
		return nil, s.fail(ctx, "confirm", domain.ErrMissingMatchID)
	}
	if userID == "" {
		return nil, s.fail(ctx, "confirm", domain.ErrMissingUserID)
	}

	var (
		result    ConfirmMatchResult
		recorded  bool
		finalized bool
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		recorded, finalized = false, false

		match, err := tx.Matches().GetByID(ctx, matchID)
		if err != nil {
			return notFoundAs(err, ErrMatchNotFound)
		}
		if !match.HasParticipant(userID) {
			return ErrNotMatchParticipant
		}

		if !match.Confirmations[userID] {
			match, err = tx.Matches().Confirm(ctx, matchID, userID)
			if err != nil {
				if errors.Is(err, repository.ErrPreconditionFailed) {
					return ErrNotMatchParticipant
				}
				return err
			}
			recorded = true
		}

		if match.Status == domain.MatchStatusPendingConfirmation && match.AllConfirmed() {
			if err := tx.Matches().UpdateStatus(ctx, matchID, domain.MatchStatusPendingConfirmation, domain.MatchStatusConfirmed); err != nil {
				return err
			}
			for _, rideID := range match.RideIDs() {
				if err := tx.Rides().UpdateStatus(ctx, rideID, domain.RideStatusMatched, domain.RideStatusConfirmed); err != nil {
					return err
				}
			}
			match.Status = domain.MatchStatusConfirmed
			finalized = true
		}

		result = ConfirmMatchResult{
			MatchStatus:  match.Status,
			AllConfirmed: match.AllConfirmed(),
			Match:        match,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "confirm", err)
	}

	metrics.ConfirmationsTotal.Inc()
	if recorded {
		s.logger.InfoContext(ctx, "match confirmation recorded", "match_id", matchID, "user_id", userID)
		if s.notificationService != nil {
			_ = s.notificationService.NotifyConfirmationRecorded(ctx, result.Match, userID)
		}
	}
	if finalized {
		metrics.MatchesConfirmedTotal.Inc()
		s.logger.InfoContext(ctx, "match confirmed", "match_id", matchID, "ride_ids", result.Match.RideIDs())
		if s.notificationService != nil {
			_ = s.notificationService.NotifyMatchConfirmed(ctx, result.Match)
		}
	}
	return &result, nil
}

// GetMatch retrieves a match by ID.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	if matchID == "" {
		return nil, domain.ErrMissingMatchID
	}
	match, err := s.store.Matches().GetByID(ctx, matchID)
	if err != nil {
		return nil, notFoundAs(err, ErrMatchNotFound)
	}
	return match, nil
}

func (s *MatchService) fail(ctx context.Context, op string, err error) error {
	metrics.LifecycleFailures.WithLabelValues(op, Reason(err)).Inc()
	if errors.Is(err, repository.ErrStoreUnavailable) {
		s.logger.ErrorContext(ctx, "match "+op+" failed", "error", err)
	}
	return err
}

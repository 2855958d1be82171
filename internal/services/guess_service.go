package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/masq-social/masq-service/internal/events"
	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/masq-social/masq-service/internal/validator"
)

type guessService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGuessService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) GuessService {
	return &guessService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Submit records a guess at the target's real identity. Correctness is
// decided here, not in the store: the guessed name must equal the target's
// real name ignoring case only. The real name travels back in the result
// only when the guess is correct.
func (s *guessService) Submit(ctx context.Context, guesserID uint, req *models.GuessRequest) (*models.GuessResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.TargetID == guesserID {
		return nil, validator.ValidationErrors{{
			Field:   "target_id",
			Message: "cannot guess yourself",
			Rule:    "business_logic",
		}}
	}

	target, err := s.repo.User().GetByID(ctx, req.TargetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to load target: %w", err)
	}

	guess := &models.Guess{
		GuesserID:   guesserID,
		TargetID:    req.TargetID,
		GuessedName: req.GuessedName,
		Correct:     strings.EqualFold(req.GuessedName, target.RealName),
	}

	if err := s.repo.Guess().Create(ctx, guess); err != nil {
		s.logger.Error("Failed to create guess", "guesser_id", guesserID, "target_id", req.TargetID, "error", err)
		return nil, fmt.Errorf("failed to create guess: %w", err)
	}

	s.publishEvent(ctx, events.New(events.TypeGuessSubmitted, events.GuessSubmittedData{
		GuessID:   guess.ID,
		GuesserID: guess.GuesserID,
		TargetID:  guess.TargetID,
		Correct:   guess.Correct,
	}))

	s.logger.Info("Guess submitted", "guess_id", guess.ID, "guesser_id", guesserID, "target_id", req.TargetID, "correct", guess.Correct)

	result := &models.GuessResult{
		ID:          guess.ID,
		GuesserID:   guess.GuesserID,
		TargetID:    guess.TargetID,
		GuessedName: guess.GuessedName,
		Correct:     guess.Correct,
		CreatedAt:   guess.CreatedAt,
	}
	if guess.Correct {
		name := target.RealName
		result.TargetRealName = &name
	}

	return result, nil
}

func (s *guessService) ListForUser(ctx context.Context, userID uint) ([]*models.Guess, error) {
	guesses, err := s.repo.Guess().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guesses: %w", err)
	}
	return guesses, nil
}

func (s *guessService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "error", err)
	}
}

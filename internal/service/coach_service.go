package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRunnerNotFound       = errors.New("runner user not found")
	ErrRunnerNotRole        = errors.New("user found but is not a runner")
	ErrRunnerAlreadyCoached = errors.New("runner is already assigned to a coach")
	ErrRunnerNotManaged     = errors.New("runner is not managed by this coach")
)

// CoachService manages the coach/runner relationship and lets a coach
// read the plans of the runners they manage.
type CoachService interface {
	AddRunnerByEmail(ctx context.Context, coachID primitive.ObjectID, runnerEmail string) (*domain.User, error)
	GetManagedRunners(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	GetPlansForRunner(ctx context.Context, coachID, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	userRepo repository.UserRepository
	planRepo repository.PlanRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(userRepo repository.UserRepository, planRepo repository.PlanRepository) CoachService {
	return &coachService{
		userRepo: userRepo,
		planRepo: planRepo,
	}
}

// AddRunnerByEmail finds a runner by email and assigns them to the coach.
func (s *coachService) AddRunnerByEmail(ctx context.Context, coachID primitive.ObjectID, runnerEmail string) (*domain.User, error) {
	if coachID == primitive.NilObjectID || runnerEmail == "" {
		return nil, errors.New("coach ID and runner email are required")
	}

	runner, err := s.userRepo.GetByEmail(ctx, runnerEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunnerNotFound
		}
		return nil, err
	}

	if runner.Role != domain.RoleRunner {
		return nil, ErrRunnerNotRole
	}

	if runner.CoachID != nil && *runner.CoachID != primitive.NilObjectID {
		if *runner.CoachID == coachID {
			// Already managed by this coach.
			return runner, nil
		}
		return nil, ErrRunnerAlreadyCoached
	}

	// Assign runner to coach (update both records).
	err = s.userRepo.AddRunnerIDToCoach(ctx, coachID, runner.ID)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.SetCoachForRunner(ctx, runner.ID, coachID)
	if err != nil {
		// No transactional rollback here; the unique relationship is
		// re-derivable from the coach's runner list.
		return nil, err
	}

	runner.CoachID = &coachID // Update in-memory object for return
	return runner, nil
}

// GetManagedRunners retrieves the list of runners managed by the coach.
func (s *coachService) GetManagedRunners(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID cannot be nil")
	}
	return s.userRepo.GetRunnersByCoachID(ctx, coachID)
}

// GetPlansForRunner lets a coach read the plans of a runner they manage.
func (s *coachService) GetPlansForRunner(ctx context.Context, coachID, runnerID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	if coachID == primitive.NilObjectID || runnerID == primitive.NilObjectID {
		return nil, errors.New("coach ID and runner ID are required")
	}

	runner, err := s.userRepo.GetByID(ctx, runnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunnerNotFound
		}
		return nil, err
	}

	if runner.CoachID == nil || *runner.CoachID != coachID {
		return nil, ErrRunnerNotManaged
	}

	return s.planRepo.GetByOwnerID(ctx, runnerID)
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddRunnerIDToCoach(ctx context.Context, coachID, runnerID primitive.ObjectID) error
	GetRunnersByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	SetCoachForRunner(ctx context.Context, runnerID, coachID primitive.ObjectID) error
}

// PlanRepository defines the interface for interacting with generated
// training plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TrainingPlan, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error // ownership enforced in the filter
}

// ExportRepository defines the interface for markdown-export metadata.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.PlanExport) (primitive.ObjectID, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanExport, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

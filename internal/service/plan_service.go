package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/format"
	"runplan/internal/plangen"
	"runplan/internal/repository"
	"runplan/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("training plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this training plan")
	ErrExportNotFound   = errors.New("no export exists for this training plan")
)

const exportContentType = "text/markdown"

// PlanService generates, persists and exports training plans.
type PlanService interface {
	GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, params domain.ProfileParams) (*domain.TrainingPlan, error)
	GetPlanByID(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	GetPlansByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error
	ExportPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (string, *domain.PlanExport, error)
	GetExportDownloadURL(ctx context.Context, ownerID, planID primitive.ObjectID) (string, *domain.PlanExport, error)
}

// planService implements the PlanService interface.
type planService struct {
	planRepo    repository.PlanRepository
	exportRepo  repository.ExportRepository
	generator   plangen.Generator
	formatter   *format.Formatter
	fileStorage storage.FileStorage
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.PlanRepository,
	exportRepo repository.ExportRepository,
	generator plangen.Generator,
	formatter *format.Formatter,
	fileStorage storage.FileStorage,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		exportRepo:  exportRepo,
		generator:   generator,
		formatter:   formatter,
		fileStorage: fileStorage,
	}
}

// GeneratePlan validates the raw profile inputs, runs the generator and
// persists the result for the owner. Validation errors from the profile
// constructor propagate unchanged so the API layer can surface them.
func (s *planService) GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, params domain.ProfileParams) (*domain.TrainingPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to generate a plan")
	}

	profile, err := domain.NewRunnerProfile(params)
	if err != nil {
		return nil, err
	}

	plan := s.generator.Generate(profile)
	plan.OwnerID = ownerID

	planID, err := s.planRepo.Create(ctx, &plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return &plan, nil
}

// GetPlanByID retrieves a plan, enforcing ownership.
func (s *planService) GetPlanByID(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// GetPlansByOwner lists all plans generated by the user, newest first.
func (s *planService) GetPlansByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

// DeletePlan removes a plan and, best-effort, any exported document.
func (s *planService) DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error {
	// Clean up the export first; a plan without export metadata is normal.
	export, err := s.exportRepo.GetByPlanID(ctx, planID)
	if err == nil && export.OwnerID == ownerID {
		_ = s.fileStorage.DeleteObject(ctx, export.S3ObjectKey)
		_ = s.exportRepo.DeleteByPlanID(ctx, planID)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	err = s.planRepo.Delete(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Repo filter covers both "missing" and "owned by someone else".
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// ExportPlan renders the plan as markdown, uploads it to object storage
// and returns a presigned download URL. Re-exporting replaces the
// previous document.
func (s *planService) ExportPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (string, *domain.PlanExport, error) {
	plan, err := s.GetPlanByID(ctx, ownerID, planID)
	if err != nil {
		return "", nil, err
	}

	document := []byte(s.formatter.Markdown(*plan))
	fileName := format.ExportFileName(*plan)

	// Unique object key; the original filename is kept for download naming.
	objectKey := fmt.Sprintf("exports/%s/%s-%s", ownerID.Hex(), uuid.NewString(), fileName)

	if err := s.fileStorage.Upload(ctx, objectKey, exportContentType, document); err != nil {
		return "", nil, err
	}

	// Replace any previous export for this plan.
	if previous, err := s.exportRepo.GetByPlanID(ctx, planID); err == nil {
		_ = s.fileStorage.DeleteObject(ctx, previous.S3ObjectKey)
		_ = s.exportRepo.DeleteByPlanID(ctx, planID)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	export := &domain.PlanExport{
		PlanID:      planID,
		OwnerID:     ownerID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: exportContentType,
		Size:        int64(len(document)),
	}
	exportID, err := s.exportRepo.Create(ctx, export)
	if err != nil {
		return "", nil, err
	}
	export.ID = exportID

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", nil, err
	}
	return url, export, nil
}

// GetExportDownloadURL returns a fresh presigned URL for an existing export.
func (s *planService) GetExportDownloadURL(ctx context.Context, ownerID, planID primitive.ObjectID) (string, *domain.PlanExport, error) {
	// Ownership check on the plan also covers the export.
	if _, err := s.GetPlanByID(ctx, ownerID, planID); err != nil {
		return "", nil, err
	}

	export, err := s.exportRepo.GetByPlanID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrExportNotFound
		}
		return "", nil, err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, export.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", nil, err
	}
	return url, export, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/format"
	"runplan/internal/plangen"
	"runplan/internal/repository"
)

// --- In-memory fakes ---

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]*domain.TrainingPlan{}}
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.plans[id] = &stored
	return id, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	var out []domain.TrainingPlan
	for _, plan := range r.plans {
		if plan.OwnerID == ownerID {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	plan, ok := r.plans[id]
	if !ok || plan.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeExportRepo struct {
	exports map[primitive.ObjectID]*domain.PlanExport // keyed by plan ID
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{exports: map[primitive.ObjectID]*domain.PlanExport{}}
}

func (r *fakeExportRepo) Create(ctx context.Context, export *domain.PlanExport) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *export
	stored.ID = id
	stored.ExportedAt = time.Now().UTC()
	r.exports[export.PlanID] = &stored
	return id, nil
}

func (r *fakeExportRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanExport, error) {
	export, ok := r.exports[planID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *export
	return &copied, nil
}

func (r *fakeExportRepo) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	delete(r.exports, planID)
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, objectKey, contentType string, body []byte) error {
	s.objects[objectKey] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if _, ok := s.objects[objectKey]; !ok {
		return "", errors.New("object does not exist")
	}
	return "https://storage.local/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func validPlanParams() domain.ProfileParams {
	return domain.ProfileParams{
		TargetDistance:      "5K",
		RaceDate:            "2026-11-22",
		ExperienceLevel:     "Beginner",
		WeeklyMileageTarget: 20,
		DaysPerWeek:         4,
	}
}

func TestPlanService(t *testing.T) {
	Convey("Given a plan service with in-memory backends", t, func() {
		ctx := context.Background()
		planRepo := newFakePlanRepo()
		exportRepo := newFakeExportRepo()
		store := newFakeStorage()
		svc := NewPlanService(planRepo, exportRepo, plangen.NewGenerator(), format.NewFormatter(), store)

		owner := primitive.NewObjectID()
		stranger := primitive.NewObjectID()

		Convey("When generating a plan", func() {
			plan, err := svc.GeneratePlan(ctx, owner, validPlanParams())
			So(err, ShouldBeNil)
			So(plan.ID, ShouldNotResemble, primitive.NilObjectID)
			So(plan.OwnerID, ShouldResemble, owner)
			So(plan.TotalWeeks, ShouldEqual, 12)

			Convey("Then the owner can read it back", func() {
				got, err := svc.GetPlanByID(ctx, owner, plan.ID)
				So(err, ShouldBeNil)
				So(got.TotalWeeks, ShouldEqual, plan.TotalWeeks)
			})

			Convey("And another user is denied access", func() {
				_, err := svc.GetPlanByID(ctx, stranger, plan.ID)
				So(errors.Is(err, ErrPlanAccessDenied), ShouldBeTrue)
			})

			Convey("And it appears in the owner's plan list", func() {
				plans, err := svc.GetPlansByOwner(ctx, owner)
				So(err, ShouldBeNil)
				So(len(plans), ShouldEqual, 1)

				other, err := svc.GetPlansByOwner(ctx, stranger)
				So(err, ShouldBeNil)
				So(len(other), ShouldEqual, 0)
			})
		})

		Convey("When generating with invalid inputs", func() {
			params := validPlanParams()
			params.DaysPerWeek = 1
			_, err := svc.GeneratePlan(ctx, owner, params)
			So(errors.Is(err, domain.ErrInvalidDaysPerWeek), ShouldBeTrue)
		})

		Convey("When looking up a missing plan", func() {
			_, err := svc.GetPlanByID(ctx, owner, primitive.NewObjectID())
			So(errors.Is(err, ErrPlanNotFound), ShouldBeTrue)
		})

		Convey("When exporting a plan", func() {
			plan, err := svc.GeneratePlan(ctx, owner, validPlanParams())
			So(err, ShouldBeNil)

			url, export, err := svc.ExportPlan(ctx, owner, plan.ID)
			So(err, ShouldBeNil)
			So(url, ShouldContainSubstring, export.S3ObjectKey)
			So(export.FileName, ShouldEqual, "training_plan_5k.md")
			So(export.ContentType, ShouldEqual, "text/markdown")
			So(export.Size, ShouldBeGreaterThan, 0)

			Convey("Then the stored document is the rendered markdown", func() {
				body := store.objects[export.S3ObjectKey]
				So(strings.HasPrefix(string(body), "# 5K Training Plan"), ShouldBeTrue)
			})

			Convey("And a download URL can be fetched again later", func() {
				url2, export2, err := svc.GetExportDownloadURL(ctx, owner, plan.ID)
				So(err, ShouldBeNil)
				So(url2, ShouldNotBeEmpty)
				So(export2.S3ObjectKey, ShouldEqual, export.S3ObjectKey)
				So(export2.FileName, ShouldEqual, export.FileName)
			})

			Convey("And re-exporting replaces the previous object", func() {
				_, export2, err := svc.ExportPlan(ctx, owner, plan.ID)
				So(err, ShouldBeNil)
				So(export2.S3ObjectKey, ShouldNotEqual, export.S3ObjectKey)
				So(store.deleted, ShouldContain, export.S3ObjectKey)
				_, stillThere := store.objects[export.S3ObjectKey]
				So(stillThere, ShouldBeFalse)
			})

			Convey("And a stranger cannot export or fetch it", func() {
				_, _, err := svc.ExportPlan(ctx, stranger, plan.ID)
				So(errors.Is(err, ErrPlanAccessDenied), ShouldBeTrue)
				_, _, err = svc.GetExportDownloadURL(ctx, stranger, plan.ID)
				So(errors.Is(err, ErrPlanAccessDenied), ShouldBeTrue)
			})
		})

		Convey("When fetching an export that was never created", func() {
			plan, err := svc.GeneratePlan(ctx, owner, validPlanParams())
			So(err, ShouldBeNil)
			_, _, err = svc.GetExportDownloadURL(ctx, owner, plan.ID)
			So(errors.Is(err, ErrExportNotFound), ShouldBeTrue)
		})

		Convey("When deleting a plan with an export", func() {
			plan, err := svc.GeneratePlan(ctx, owner, validPlanParams())
			So(err, ShouldBeNil)
			_, export, err := svc.ExportPlan(ctx, owner, plan.ID)
			So(err, ShouldBeNil)

			So(svc.DeletePlan(ctx, owner, plan.ID), ShouldBeNil)

			Convey("Then the plan, export metadata and object are gone", func() {
				_, err := svc.GetPlanByID(ctx, owner, plan.ID)
				So(errors.Is(err, ErrPlanNotFound), ShouldBeTrue)
				_, err = exportRepo.GetByPlanID(ctx, plan.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, stillThere := store.objects[export.S3ObjectKey]
				So(stillThere, ShouldBeFalse)
			})
		})

		Convey("When a stranger tries to delete a plan", func() {
			plan, err := svc.GeneratePlan(ctx, owner, validPlanParams())
			So(err, ShouldBeNil)
			err = svc.DeletePlan(ctx, stranger, plan.ID)
			So(errors.Is(err, ErrPlanNotFound), ShouldBeTrue)

			_, err = svc.GetPlanByID(ctx, owner, plan.ID)
			So(err, ShouldBeNil)
		})
	})
}

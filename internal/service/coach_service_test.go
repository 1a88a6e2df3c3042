package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/repository"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return r.add(user).ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) AddRunnerIDToCoach(ctx context.Context, coachID, runnerID primitive.ObjectID) error {
	coach, ok := r.users[coachID]
	if !ok {
		return repository.ErrNotFound
	}
	coach.RunnerIDs = append(coach.RunnerIDs, runnerID)
	return nil
}

func (r *fakeUserRepo) GetRunnersByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.CoachID != nil && *u.CoachID == coachID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetCoachForRunner(ctx context.Context, runnerID, coachID primitive.ObjectID) error {
	runner, ok := r.users[runnerID]
	if !ok {
		return repository.ErrNotFound
	}
	runner.CoachID = &coachID
	return nil
}

func TestCoachService(t *testing.T) {
	Convey("Given a coach and an unattached runner", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		planRepo := newFakePlanRepo()
		svc := NewCoachService(userRepo, planRepo)

		coach := userRepo.add(&domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleCoach})
		runner := userRepo.add(&domain.User{Name: "Runner", Email: "runner@example.com", Role: domain.RoleRunner})

		Convey("When adding the runner by email", func() {
			got, err := svc.AddRunnerByEmail(ctx, coach.ID, runner.Email)
			So(err, ShouldBeNil)
			So(got.CoachID, ShouldNotBeNil)
			So(*got.CoachID, ShouldResemble, coach.ID)

			Convey("Then the runner shows up in the managed list", func() {
				runners, err := svc.GetManagedRunners(ctx, coach.ID)
				So(err, ShouldBeNil)
				So(len(runners), ShouldEqual, 1)
				So(runners[0].Email, ShouldEqual, runner.Email)
			})

			Convey("And adding the same runner again is a no-op", func() {
				again, err := svc.AddRunnerByEmail(ctx, coach.ID, runner.Email)
				So(err, ShouldBeNil)
				So(*again.CoachID, ShouldResemble, coach.ID)
			})

			Convey("And a second coach cannot claim the runner", func() {
				rival := userRepo.add(&domain.User{Name: "Rival", Email: "rival@example.com", Role: domain.RoleCoach})
				_, err := svc.AddRunnerByEmail(ctx, rival.ID, runner.Email)
				So(errors.Is(err, ErrRunnerAlreadyCoached), ShouldBeTrue)
			})

			Convey("And the coach can read the runner's plans", func() {
				plan := &domain.TrainingPlan{OwnerID: runner.ID, TotalWeeks: 12}
				_, err := planRepo.Create(ctx, plan)
				So(err, ShouldBeNil)

				plans, err := svc.GetPlansForRunner(ctx, coach.ID, runner.ID)
				So(err, ShouldBeNil)
				So(len(plans), ShouldEqual, 1)
				So(plans[0].TotalWeeks, ShouldEqual, 12)
			})
		})

		Convey("When the email does not match any user", func() {
			_, err := svc.AddRunnerByEmail(ctx, coach.ID, "nobody@example.com")
			So(errors.Is(err, ErrRunnerNotFound), ShouldBeTrue)
		})

		Convey("When the email belongs to another coach", func() {
			other := userRepo.add(&domain.User{Name: "Other", Email: "other@example.com", Role: domain.RoleCoach})
			_, err := svc.AddRunnerByEmail(ctx, coach.ID, other.Email)
			So(errors.Is(err, ErrRunnerNotRole), ShouldBeTrue)
		})

		Convey("When reading plans of an unmanaged runner", func() {
			_, err := svc.GetPlansForRunner(ctx, coach.ID, runner.ID)
			So(errors.Is(err, ErrRunnerNotManaged), ShouldBeTrue)
		})
	})
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	TargetDistance       string   `json:"targetDistance" binding:"required"`
	RaceDate             string   `json:"raceDate" binding:"required"` // YYYY-MM-DD
	ExperienceLevel      string   `json:"experienceLevel" binding:"required"`
	WeeklyMileageTarget  float64  `json:"weeklyMileageTarget" binding:"required,gt=0"`
	DaysPerWeek          int      `json:"daysPerWeek" binding:"required,min=3,max=7"`
	CurrentWeeklyMileage float64  `json:"currentWeeklyMileage" binding:"omitempty,gt=0"`
	PreviousInjuries     []string `json:"previousInjuries"`
	StrengthTrainingDays int      `json:"strengthTrainingDays" binding:"omitempty,min=1,max=7"`
}

// PlanSummaryResponse is the list-view DTO; it omits the week details.
type PlanSummaryResponse struct {
	ID              string    `json:"id"`
	TargetDistance  string    `json:"targetDistance"`
	ExperienceLevel string    `json:"experienceLevel"`
	RaceDate        time.Time `json:"raceDate"`
	StartDate       time.Time `json:"startDate"`
	TotalWeeks      int       `json:"totalWeeks"`
	PeakMileage     float64   `json:"peakMileage"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PlanResponse is the full plan including every week and workout.
type PlanResponse struct {
	ID          string                `json:"id"`
	Profile     domain.RunnerProfile  `json:"profile"`
	StartDate   time.Time             `json:"startDate"`
	TotalWeeks  int                   `json:"totalWeeks"`
	PeakMileage float64               `json:"peakMileage"`
	Weeks       []domain.TrainingWeek `json:"weeks"`
	CreatedAt   time.Time             `json:"createdAt"`
}

type ExportResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	ExportedAt  time.Time `json:"exportedAt"`
}

// --- Handler Methods ---

// GeneratePlan builds a new periodized training plan from the runner's
// profile and persists it for the authenticated user.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	params := domain.ProfileParams{
		TargetDistance:       req.TargetDistance,
		RaceDate:             req.RaceDate,
		ExperienceLevel:      req.ExperienceLevel,
		WeeklyMileageTarget:  req.WeeklyMileageTarget,
		DaysPerWeek:          req.DaysPerWeek,
		CurrentWeeklyMileage: req.CurrentWeeklyMileage,
		PreviousInjuries:     req.PreviousInjuries,
		StrengthTrainingDays: req.StrengthTrainingDays,
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), ownerID, params)
	if err != nil {
		// Profile validation failures surface as 400s with the parse message.
		if isProfileValidationError(err) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate training plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans returns summaries of every plan owned by the user, newest first.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	plans, err := h.planService.GetPlansByOwner(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve training plans.")
		return
	}

	if plans == nil {
		c.JSON(http.StatusOK, []PlanSummaryResponse{})
		return
	}

	c.JSON(http.StatusOK, MapPlansToSummaryResponse(plans))
}

// GetPlan returns the full plan, enforcing ownership.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlanByID(c.Request.Context(), ownerID, planID)
	if err != nil {
		respondPlanError(c, err, "Failed to retrieve training plan.")
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan removes a plan and any exported document it has.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	err := h.planService.DeletePlan(c.Request.Context(), ownerID, planID)
	if err != nil {
		respondPlanError(c, err, "Failed to delete training plan.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Training plan deleted successfully"})
}

// ExportPlan renders the plan as a markdown document, stores it and
// returns a presigned download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	url, export, err := h.planService.ExportPlan(c.Request.Context(), ownerID, planID)
	if err != nil {
		respondPlanError(c, err, "Failed to export training plan.")
		return
	}

	c.JSON(http.StatusCreated, ExportResponse{
		DownloadURL: url,
		FileName:    export.FileName,
		ContentType: export.ContentType,
		Size:        export.Size,
		ExportedAt:  export.ExportedAt,
	})
}

// GetExport returns a fresh download URL for an existing export.
func (h *PlanHandler) GetExport(c *gin.Context) {
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	url, export, err := h.planService.GetExportDownloadURL(c.Request.Context(), ownerID, planID)
	if err != nil {
		if errors.Is(err, service.ErrExportNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		respondPlanError(c, err, "Failed to retrieve export.")
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		DownloadURL: url,
		FileName:    export.FileName,
		ContentType: export.ContentType,
		Size:        export.Size,
		ExportedAt:  export.ExportedAt,
	})
}

// --- Helpers ---

func ownerIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func planIDFromPath(c *gin.Context) (primitive.ObjectID, bool) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format in URL path.")
		return primitive.NilObjectID, false
	}
	return planID, true
}

func respondPlanError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrPlanNotFound) {
		abortWithError(c, http.StatusNotFound, err.Error())
	} else if errors.Is(err, service.ErrPlanAccessDenied) {
		abortWithError(c, http.StatusForbidden, err.Error())
	} else {
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// isProfileValidationError reports whether the error came from parsing the
// profile inputs rather than from infrastructure.
func isProfileValidationError(err error) bool {
	if errors.Is(err, domain.ErrInvalidMileageTarget) || errors.Is(err, domain.ErrInvalidDaysPerWeek) {
		return true
	}
	var parseErr *domain.ParseError
	return errors.As(err, &parseErr)
}

// MapPlanToResponse converts a domain TrainingPlan to the full DTO.
func MapPlanToResponse(p *domain.TrainingPlan) PlanResponse {
	if p == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:          p.ID.Hex(),
		Profile:     p.Profile,
		StartDate:   p.StartDate(),
		TotalWeeks:  p.TotalWeeks,
		PeakMileage: p.PeakMileage,
		Weeks:       p.Weeks,
		CreatedAt:   p.CreatedAt,
	}
}

// MapPlansToSummaryResponse converts plans to their list-view DTOs.
func MapPlansToSummaryResponse(plans []domain.TrainingPlan) []PlanSummaryResponse {
	summaries := make([]PlanSummaryResponse, len(plans))
	for i, p := range plans {
		summaries[i] = PlanSummaryResponse{
			ID:              p.ID.Hex(),
			TargetDistance:  string(p.Profile.TargetDistance),
			ExperienceLevel: string(p.Profile.ExperienceLevel),
			RaceDate:        p.Profile.PeakRaceDate,
			StartDate:       p.StartDate(),
			TotalWeeks:      p.TotalWeeks,
			PeakMileage:     p.PeakMileage,
			CreatedAt:       p.CreatedAt,
		}
	}
	return summaries
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"runplan/internal/domain"
	"runplan/internal/service"
)

type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- DTOs for Runner Management ---

type AddRunnerRequest struct {
	RunnerEmail string `json:"runnerEmail" binding:"required,email"`
}

// --- Handler Methods ---

// AddRunnerByEmail associates an existing runner user with the
// authenticated coach.
func (h *CoachHandler) AddRunnerByEmail(c *gin.Context) {
	var req AddRunnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	coachIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}
	coachID, err := primitive.ObjectIDFromHex(coachIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid coach ID format in token.")
		return
	}

	runner, err := h.coachService.AddRunnerByEmail(c.Request.Context(), coachID, req.RunnerEmail)
	if err != nil {
		if errors.Is(err, service.ErrRunnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrRunnerNotRole) || errors.Is(err, service.ErrRunnerAlreadyCoached) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add runner.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(runner))
}

// GetManagedRunners retrieves the runners currently managed by the
// authenticated coach.
func (h *CoachHandler) GetManagedRunners(c *gin.Context) {
	coachIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}
	coachID, err := primitive.ObjectIDFromHex(coachIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid coach ID format in token.")
		return
	}

	runners, err := h.coachService.GetManagedRunners(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve managed runners.")
		return
	}

	if runners == nil {
		c.JSON(http.StatusOK, []UserResponse{})
		return
	}

	c.JSON(http.StatusOK, MapUsersToResponse(runners))
}

// GetPlansForRunner retrieves all plans generated by a runner the
// authenticated coach manages.
func (h *CoachHandler) GetPlansForRunner(c *gin.Context) {
	runnerIDHex := c.Param("runnerId")
	runnerID, err := primitive.ObjectIDFromHex(runnerIDHex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid runner ID format in URL path.")
		return
	}

	coachIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify coach from token.")
		return
	}
	coachID, err := primitive.ObjectIDFromHex(coachIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid coach ID format in token.")
		return
	}

	plans, err := h.coachService.GetPlansForRunner(c.Request.Context(), coachID, runnerID)
	if err != nil {
		if errors.Is(err, service.ErrRunnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrRunnerNotManaged) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve training plans.")
		}
		return
	}

	if plans == nil {
		c.JSON(http.StatusOK, []PlanSummaryResponse{})
		return
	}

	c.JSON(http.StatusOK, MapPlansToSummaryResponse(plans))
}

// MapUsersToResponse converts a slice of domain.User to UserResponse DTOs.
func MapUsersToResponse(users []domain.User) []UserResponse {
	userResponses := make([]UserResponse, len(users))
	for i, u := range users {
		userResponses[i] = MapUserToResponse(&u)
	}
	return userResponses
}

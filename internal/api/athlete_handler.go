package api

import (
	"errors"
	"net/http"
	"time"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteHandler holds the athlete service dependency.
type AthleteHandler struct {
	athleteService service.AthleteService
}

// NewAthleteHandler creates a new AthleteHandler.
func NewAthleteHandler(athleteService service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

// --- DTOs ---

type JoinTeamRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

type SetMaxRequest struct {
	ExerciseID   *string `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName" binding:"required"`
	OneRepMax    float64 `json:"oneRepMax" binding:"required,gt=0"`
}

type StatEntryRequest struct {
	ExerciseID   *string `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName" binding:"required"`
	Weight       float64 `json:"weight" binding:"required,gt=0"`
	Reps         int     `json:"reps" binding:"required,gt=0"`
}

type AthleteMaxResponse struct {
	ExerciseID   *string   `json:"exerciseId,omitempty"`
	ExerciseName string    `json:"exerciseName"`
	OneRepMax    float64   `json:"oneRepMax"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

type StatEntryResponse struct {
	ExerciseID   *string   `json:"exerciseId,omitempty"`
	ExerciseName string    `json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Date         time.Time `json:"date"`
}

// --- Mapping ---

func mapMaxToResponse(m domain.AthleteMax) AthleteMaxResponse {
	resp := AthleteMaxResponse{
		ExerciseName: m.ExerciseName,
		OneRepMax:    m.OneRepMax,
		LastUpdated:  m.LastUpdated,
	}
	if m.ExerciseID != nil {
		hex := m.ExerciseID.Hex()
		resp.ExerciseID = &hex
	}
	return resp
}

func mapMaxesToResponse(maxes []domain.AthleteMax) []AthleteMaxResponse {
	responses := make([]AthleteMaxResponse, len(maxes))
	for i, m := range maxes {
		responses[i] = mapMaxToResponse(m)
	}
	return responses
}

func mapStatEntryToResponse(e domain.AthleteStatEntry) StatEntryResponse {
	resp := StatEntryResponse{
		ExerciseName: e.VisibleName,
		Weight:       e.Weight,
		Reps:         e.Reps,
		Date:         e.Date,
	}
	if e.ExerciseID != nil {
		hex := e.ExerciseID.Hex()
		resp.ExerciseID = &hex
	}
	return resp
}

// --- Handler Methods ---

// GetTodayWorkouts godoc
// @Summary Get the athlete's workouts for a date
// @Description Resolves every published program day scheduled for the athlete's team on the date, with percentage prescriptions converted to target weights where a max is known. Defaults to today when no date is given.
// @Tags Athlete
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} service.TodayWorkout
// @Failure 400 {object} gin.H "Athlete has no team"
// @Router /athlete/workouts [get]
func (h *AthleteHandler) GetTodayWorkouts(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	workouts, err := h.athleteService.GetTodayWorkouts(c.Request.Context(), athleteID, date)
	if err != nil {
		mapAthleteError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// JoinTeam godoc
// @Summary Join a team
// @Description Sets the athlete's team membership, replacing any current team.
// @Tags Athlete
// @Accept json
// @Security BearerAuth
// @Param team body JoinTeamRequest true "Team to join"
// @Success 204 "Membership updated"
// @Router /athlete/team [put]
func (h *AthleteHandler) JoinTeam(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid teamId format.")
		return
	}

	if err := h.athleteService.JoinTeam(c.Request.Context(), athleteID, teamID); err != nil {
		mapAthleteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMaxes godoc
// @Summary Get the athlete's one-rep max table
// @Tags Athlete
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AthleteMaxResponse
// @Router /athlete/maxes [get]
func (h *AthleteHandler) GetMaxes(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	maxes, err := h.athleteService.GetMaxes(c.Request.Context(), athleteID)
	if err != nil {
		mapAthleteError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapMaxesToResponse(maxes))
}

// SetMax godoc
// @Summary Set a one-rep max manually
// @Description Manual entry is authoritative and overwrites any estimated value for the exercise.
// @Tags Athlete
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param max body SetMaxRequest true "Exercise and max"
// @Success 200 {array} AthleteMaxResponse "Updated max table"
// @Router /athlete/maxes [put]
func (h *AthleteHandler) SetMax(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	var req SetMaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var exerciseID *primitive.ObjectID
	if req.ExerciseID != nil && *req.ExerciseID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format.")
			return
		}
		exerciseID = &id
	}

	maxes, err := h.athleteService.SetMax(c.Request.Context(), athleteID, exerciseID, req.ExerciseName, req.OneRepMax)
	if err != nil {
		mapAthleteError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapMaxesToResponse(maxes))
}

// LogStatEntry godoc
// @Summary Record a tracked-stat set
// @Description Appends the set to the athlete's stat history and raises the stored one-rep max when the estimate beats it. Estimates never lower a max.
// @Tags Athlete
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body StatEntryRequest true "Weight and reps performed"
// @Success 200 {array} AthleteMaxResponse "Updated max table"
// @Router /athlete/stats [post]
func (h *AthleteHandler) LogStatEntry(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	var req StatEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry := domain.AthleteStatEntry{
		VisibleName: req.ExerciseName,
		Weight:      req.Weight,
		Reps:        req.Reps,
		Date:        time.Now().UTC(),
	}
	if req.ExerciseID != nil && *req.ExerciseID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format.")
			return
		}
		entry.ExerciseID = &id
	}

	maxes, err := h.athleteService.LogStatEntry(c.Request.Context(), athleteID, entry)
	if err != nil {
		mapAthleteError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapMaxesToResponse(maxes))
}

// GetStatHistory godoc
// @Summary Get the athlete's stat history
// @Tags Athlete
// @Produce json
// @Security BearerAuth
// @Success 200 {array} StatEntryResponse
// @Router /athlete/stats [get]
func (h *AthleteHandler) GetStatHistory(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	entries, err := h.athleteService.GetStatHistory(c.Request.Context(), athleteID)
	if err != nil {
		mapAthleteError(c, err)
		return
	}

	responses := make([]StatEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = mapStatEntryToResponse(e)
	}
	c.JSON(http.StatusOK, responses)
}

func mapAthleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAnAthlete):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAthleteHasNoTeam),
		errors.Is(err, service.ErrStatValidation),
		errors.Is(err, service.ErrMaxValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

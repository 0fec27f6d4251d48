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

// dateLayout is the wire format for calendar dates. Time-of-day never
// travels over the program API.
const dateLayout = "2006-01-02"

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type CreateProgramRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type MoveProgramRequest struct {
	NewStartDate string `json:"newStartDate" binding:"required"`
}

type AssignTeamRequest struct {
	TeamID string `json:"teamId" binding:"required"`
}

// SetConfigRequest is one group of identical sets.
type SetConfigRequest struct {
	Sets        int      `json:"sets" binding:"required,min=1"`
	Reps        string   `json:"reps" binding:"required"`
	Percentage  *float64 `json:"percentage" binding:"omitempty,min=0,max=120"`
	FixedWeight *float64 `json:"fixedWeight" binding:"omitempty,min=0"`
}

// PrescriptionRequest accepts either the rich setConfigs form or the legacy
// scalar form; a scalar-only payload becomes a single set config.
type PrescriptionRequest struct {
	ExerciseID   *string            `json:"exerciseId"`
	ExerciseName string             `json:"exerciseName" binding:"required"`
	SetConfigs   []SetConfigRequest `json:"setConfigs"`
	Sets         int                `json:"sets"`
	Reps         string             `json:"reps"`
	Percentage   *float64           `json:"percentage"`
	Weight       *float64           `json:"weight"`
	Notes        string             `json:"notes"`
}

type WorkoutDayRequest struct {
	Title     string                `json:"title"`
	Exercises []PrescriptionRequest `json:"exercises"`
}

// SetConfigResponse mirrors domain.SetConfig.
type SetConfigResponse struct {
	Sets        int      `json:"sets"`
	Reps        string   `json:"reps"`
	Percentage  *float64 `json:"percentage,omitempty"`
	FixedWeight *float64 `json:"fixedWeight,omitempty"`
}

// PrescriptionResponse carries both the stored set configs and the derived
// scalar projection for legacy consumers.
type PrescriptionResponse struct {
	ExerciseID   *string             `json:"exerciseId,omitempty"`
	ExerciseName string              `json:"exerciseName"`
	SetConfigs   []SetConfigResponse `json:"setConfigs"`
	TotalSets    int                 `json:"totalSets"`
	Sets         int                 `json:"sets"`
	Reps         string              `json:"reps"`
	Percentage   *float64            `json:"percentage,omitempty"`
	Weight       *float64            `json:"weight,omitempty"`
	Summary      string              `json:"summary"`
	Notes        string              `json:"notes,omitempty"`
	DemoURL      string              `json:"demoUrl,omitempty"`
}

type WorkoutDayResponse struct {
	Date      string                 `json:"date"`
	DayOfWeek string                 `json:"dayOfWeek"`
	Title     string                 `json:"title,omitempty"`
	Exercises []PrescriptionResponse `json:"exercises"`
}

type ProgramResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	OwnerID       string               `json:"ownerId"`
	AssignedTeams []string             `json:"assignedTeams"`
	Workouts      []WorkoutDayResponse `json:"workouts"`
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	IsPublished   bool                 `json:"isPublished"`
	IsDraft       bool                 `json:"isDraft"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// --- Mapping ---

func mapPrescriptionToResponse(p *domain.ExercisePrescription) PrescriptionResponse {
	configs := make([]SetConfigResponse, len(p.SetConfigs))
	for i, c := range p.SetConfigs {
		configs[i] = SetConfigResponse{Sets: c.Sets, Reps: c.Reps, Percentage: c.Percentage, FixedWeight: c.FixedWeight}
	}

	first := p.FirstConfig()
	resp := PrescriptionResponse{
		ExerciseName: p.ExerciseName,
		SetConfigs:   configs,
		TotalSets:    p.TotalSets(),
		Sets:         p.TotalSets(),
		Reps:         first.Reps,
		Percentage:   first.Percentage,
		Weight:       first.FixedWeight,
		Summary:      p.Summary(),
		Notes:        p.Notes,
		DemoURL:      p.DemoURL,
	}
	if p.ExerciseID != nil {
		hex := p.ExerciseID.Hex()
		resp.ExerciseID = &hex
	}
	return resp
}

func mapDayToResponse(d *domain.WorkoutDay) WorkoutDayResponse {
	exercises := make([]PrescriptionResponse, len(d.Exercises))
	for i := range d.Exercises {
		exercises[i] = mapPrescriptionToResponse(&d.Exercises[i])
	}
	return WorkoutDayResponse{
		Date:      d.Date.Format(dateLayout),
		DayOfWeek: d.DayOfWeek,
		Title:     d.Title,
		Exercises: exercises,
	}
}

// MapProgramToResponse converts a domain.WorkoutProgram to its DTO.
func MapProgramToResponse(p *domain.WorkoutProgram) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}

	teams := make([]string, len(p.AssignedTeams))
	for i, id := range p.AssignedTeams {
		teams[i] = id.Hex()
	}
	workouts := make([]WorkoutDayResponse, len(p.Workouts))
	for i := range p.Workouts {
		workouts[i] = mapDayToResponse(&p.Workouts[i])
	}

	return ProgramResponse{
		ID:            p.ID.Hex(),
		Name:          p.Name,
		OwnerID:       p.OwnerID.Hex(),
		AssignedTeams: teams,
		Workouts:      workouts,
		StartDate:     p.StartDate.Format(dateLayout),
		EndDate:       p.EndDate.Format(dateLayout),
		IsPublished:   p.IsPublished,
		IsDraft:       p.IsDraft,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// mapPrescriptionRequest converts the API form to the domain form,
// collapsing the legacy scalar fields into a single set config when no
// config list is given.
func mapPrescriptionRequest(req PrescriptionRequest, order int) (domain.ExercisePrescription, error) {
	p := domain.ExercisePrescription{
		ExerciseName: req.ExerciseName,
		Notes:        req.Notes,
		Order:        order,
	}
	if req.ExerciseID != nil && *req.ExerciseID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			return p, errors.New("invalid exerciseId: " + *req.ExerciseID)
		}
		p.ExerciseID = &id
	}

	if len(req.SetConfigs) > 0 {
		p.SetConfigs = make([]domain.SetConfig, len(req.SetConfigs))
		for i, c := range req.SetConfigs {
			p.SetConfigs[i] = domain.SetConfig{Sets: c.Sets, Reps: c.Reps, Percentage: c.Percentage, FixedWeight: c.FixedWeight}
		}
		return p, nil
	}

	if req.Sets > 0 {
		p.SetConfigs = []domain.SetConfig{{
			Sets:        req.Sets,
			Reps:        req.Reps,
			Percentage:  req.Percentage,
			FixedWeight: req.Weight,
		}}
	}
	return p, nil
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a workout program
// @Description Creates a program in draft state, owned by the authenticated coach or trainer.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program details"
// @Success 201 {object} ProgramResponse "Program created"
// @Failure 400 {object} gin.H "Invalid input"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	start, end, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), ownerID, req.Name, start, end)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

// ListPrograms godoc
// @Summary List the owner's program library
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProgramResponse "Programs, drafts included"
// @Router /programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}

	responses := make([]ProgramResponse, len(programs))
	for i := range programs {
		responses[i] = MapProgramToResponse(&programs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetProgram godoc
// @Summary Get one program
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramResponse
// @Failure 404 {object} gin.H "Program not found"
// @Router /programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), programID)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// UpdateProgram godoc
// @Summary Update program name and date range
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param program body CreateProgramRequest true "Program details"
// @Success 200 {object} ProgramResponse
// @Router /programs/{id} [put]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	program, err := h.programService.UpdateProgramMeta(c.Request.Context(), ownerID, programID, req.Name, start, end)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// DeleteProgram godoc
// @Summary Delete a program
// @Tags Programs
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 204 "Program deleted"
// @Router /programs/{id} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), ownerID, programID); err != nil {
		mapProgramError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetWorkoutDay godoc
// @Summary Add or replace the workout day for a calendar date
// @Description Matches the date ignoring any time-of-day component; a second call for the same date replaces the first.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Param day body WorkoutDayRequest true "Workout day payload"
// @Success 200 {object} ProgramResponse "Updated program"
// @Router /programs/{id}/days/{date} [put]
func (h *ProgramHandler) SetWorkoutDay(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD.")
		return
	}

	var req WorkoutDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	day := domain.WorkoutDay{Title: req.Title}
	for i, pr := range req.Exercises {
		prescription, err := mapPrescriptionRequest(pr, i)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		day.Exercises = append(day.Exercises, prescription)
	}

	program, err := h.programService.SetWorkoutDay(c.Request.Context(), ownerID, programID, date, day)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// MoveProgram godoc
// @Summary Move a program to a new start date
// @Description Shifts every workout day by the same delta so the earliest lands on newStartDate.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param move body MoveProgramRequest true "New start date (YYYY-MM-DD)"
// @Success 200 {object} ProgramResponse "Moved program"
// @Failure 400 {object} gin.H "Program has no workout days"
// @Router /programs/{id}/move [post]
func (h *ProgramHandler) MoveProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req MoveProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	newStart, err := time.Parse(dateLayout, req.NewStartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid newStartDate; expected YYYY-MM-DD.")
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	program, err := h.programService.MoveProgram(c.Request.Context(), ownerID, programID, newStart)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// Publish godoc
// @Summary Publish a program to its assigned teams
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramResponse "Published program"
// @Failure 400 {object} gin.H "No team assigned"
// @Router /programs/{id}/publish [post]
func (h *ProgramHandler) Publish(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	program, err := h.programService.Publish(c.Request.Context(), ownerID, programID)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// Unpublish godoc
// @Summary Return a program to draft state
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramResponse
// @Router /programs/{id}/unpublish [post]
func (h *ProgramHandler) Unpublish(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	program, err := h.programService.Unpublish(c.Request.Context(), ownerID, programID)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// AssignTeam godoc
// @Summary Assign a team to a program
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param team body AssignTeamRequest true "Team to assign"
// @Success 200 {object} ProgramResponse
// @Router /programs/{id}/teams [post]
func (h *ProgramHandler) AssignTeam(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid teamId format.")
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	program, err := h.programService.AssignTeam(c.Request.Context(), ownerID, programID, teamID)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// UnassignTeam godoc
// @Summary Remove a team from a program
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param teamId path string true "Team ID"
// @Success 200 {object} ProgramResponse
// @Router /programs/{id}/teams/{teamId} [delete]
func (h *ProgramHandler) UnassignTeam(c *gin.Context) {
	programID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	teamID, ok := pathObjectID(c, "teamId")
	if !ok {
		return
	}
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	program, err := h.programService.UnassignTeam(c.Request.Context(), ownerID, programID, teamID)
	if err != nil {
		mapProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// mapProgramError translates program service errors to HTTP statuses.
func mapProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrProgramValidation),
		errors.Is(err, service.ErrProgramHasNoDays),
		errors.Is(err, service.ErrPublishNeedsTeam):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// parseDateRange parses two YYYY-MM-DD dates, aborting on bad input.
func parseDateRange(c *gin.Context, startStr, endStr string) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid startDate; expected YYYY-MM-DD.")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid endDate; expected YYYY-MM-DD.")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

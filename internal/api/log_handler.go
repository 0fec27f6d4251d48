package api

import (
	"errors"
	"net/http"
	"time"

	"strengthdesk/coach-app/internal/calc"
	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler holds the workout log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

type SetLogRequest struct {
	SetNumber            int      `json:"setNumber" binding:"required,min=1"`
	PrescribedReps       string   `json:"prescribedReps"`
	PrescribedWeight     *float64 `json:"prescribedWeight"`
	PrescribedPercentage *float64 `json:"prescribedPercentage"`
	CompletedReps        *int     `json:"completedReps" binding:"omitempty,min=0"`
	CompletedWeight      *float64 `json:"completedWeight" binding:"omitempty,min=0"`
}

type ExerciseLogRequest struct {
	ExerciseID   *string         `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName" binding:"required"`
	Sets         []SetLogRequest `json:"sets" binding:"required"`
	Notes        string          `json:"notes"`
}

type SaveLogRequest struct {
	ProgramID *string              `json:"programId"`
	Exercises []ExerciseLogRequest `json:"exercises" binding:"required"`
}

type SetLogResponse struct {
	SetNumber            int      `json:"setNumber"`
	PrescribedReps       string   `json:"prescribedReps,omitempty"`
	PrescribedWeight     *float64 `json:"prescribedWeight,omitempty"`
	PrescribedPercentage *float64 `json:"prescribedPercentage,omitempty"`
	CompletedReps        *int     `json:"completedReps,omitempty"`
	CompletedWeight      *float64 `json:"completedWeight,omitempty"`
	IsCompleted          bool     `json:"isCompleted"`
	EstimatedOneRepMax   *float64 `json:"estimatedOneRepMax,omitempty"`
}

type ExerciseLogResponse struct {
	ExerciseID    *string          `json:"exerciseId,omitempty"`
	ExerciseName  string           `json:"exerciseName"`
	Sets          []SetLogResponse `json:"sets"`
	Notes         string           `json:"notes,omitempty"`
	SetsCompleted int              `json:"setsCompleted"`
}

type LogViewResponse struct {
	Date        string                `json:"date"`
	ProgramID   *string               `json:"programId,omitempty"`
	Exercises   []ExerciseLogResponse `json:"exercises"`
	IsCompleted bool                  `json:"isCompleted"`
}

type WorkoutLogResponse struct {
	ID          string                `json:"id"`
	AthleteID   string                `json:"athleteId"`
	Date        string                `json:"date"`
	ProgramID   *string               `json:"programId,omitempty"`
	Exercises   []ExerciseLogResponse `json:"exercises"`
	IsCompleted bool                  `json:"isCompleted"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// --- Mapping ---

func mapSetLogToResponse(s domain.SetLog) SetLogResponse {
	resp := SetLogResponse{
		SetNumber:            s.SetNumber,
		PrescribedReps:       s.PrescribedReps,
		PrescribedWeight:     s.PrescribedWeight,
		PrescribedPercentage: s.PrescribedPercentage,
		CompletedReps:        s.CompletedReps,
		CompletedWeight:      s.CompletedWeight,
		IsCompleted:          s.IsCompleted(),
	}
	if s.CompletedWeight != nil && s.CompletedReps != nil {
		if est := calc.EstimateOneRepMaxDisplay(*s.CompletedWeight, *s.CompletedReps); est > 0 {
			resp.EstimatedOneRepMax = &est
		}
	}
	return resp
}

func mapExerciseLogToResponse(e *domain.ExerciseLog) ExerciseLogResponse {
	sets := make([]SetLogResponse, len(e.Sets))
	for i, s := range e.Sets {
		sets[i] = mapSetLogToResponse(s)
	}
	resp := ExerciseLogResponse{
		ExerciseName:  e.ExerciseName,
		Sets:          sets,
		Notes:         e.Notes,
		SetsCompleted: e.SetsCompleted,
	}
	if e.ExerciseID != nil {
		hex := e.ExerciseID.Hex()
		resp.ExerciseID = &hex
	}
	return resp
}

func mapLogViewToResponse(v *service.LogView) LogViewResponse {
	exercises := make([]ExerciseLogResponse, len(v.Entries))
	for i := range v.Entries {
		exercises[i] = mapExerciseLogToResponse(&v.Entries[i])
	}
	resp := LogViewResponse{
		Date:        v.Date.Format(dateLayout),
		Exercises:   exercises,
		IsCompleted: v.IsCompleted,
	}
	if v.ProgramID != nil {
		hex := v.ProgramID.Hex()
		resp.ProgramID = &hex
	}
	return resp
}

// MapWorkoutLogToResponse converts a domain.WorkoutLog to its DTO.
func MapWorkoutLogToResponse(l *domain.WorkoutLog) WorkoutLogResponse {
	if l == nil {
		return WorkoutLogResponse{}
	}
	exercises := make([]ExerciseLogResponse, len(l.Exercises))
	for i := range l.Exercises {
		exercises[i] = mapExerciseLogToResponse(&l.Exercises[i])
	}
	resp := WorkoutLogResponse{
		ID:          l.ID.Hex(),
		AthleteID:   l.AthleteID.Hex(),
		Date:        l.Date.Format(dateLayout),
		Exercises:   exercises,
		IsCompleted: l.IsCompleted,
		CompletedAt: l.CompletedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.ProgramID != nil {
		hex := l.ProgramID.Hex()
		resp.ProgramID = &hex
	}
	return resp
}

func mapExerciseLogRequest(req ExerciseLogRequest) (domain.ExerciseLog, error) {
	entry := domain.ExerciseLog{
		ExerciseName: req.ExerciseName,
		Notes:        req.Notes,
		Sets:         make([]domain.SetLog, len(req.Sets)),
	}
	if req.ExerciseID != nil && *req.ExerciseID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			return entry, errors.New("invalid exerciseId: " + *req.ExerciseID)
		}
		entry.ExerciseID = &id
	}
	for i, s := range req.Sets {
		entry.Sets[i] = domain.SetLog{
			SetNumber:            s.SetNumber,
			PrescribedReps:       s.PrescribedReps,
			PrescribedWeight:     s.PrescribedWeight,
			PrescribedPercentage: s.PrescribedPercentage,
			CompletedReps:        s.CompletedReps,
			CompletedWeight:      s.CompletedWeight,
		}
	}
	return entry, nil
}

// --- Handler Methods ---

// GetLog godoc
// @Summary Get the merged workout log for a date
// @Description Reconciles the day's prescription with whatever the athlete has already logged. Never drops completed work.
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} LogViewResponse
// @Router /logs/{date} [get]
func (h *LogHandler) GetLog(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD.")
		return
	}

	view, err := h.logService.GetMergedLog(c.Request.Context(), athleteID, date)
	if err != nil {
		mapLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapLogViewToResponse(view))
}

// SaveLog godoc
// @Summary Save the workout log for a date
// @Description Upserts the log keyed by athlete and calendar date; saving twice for one date updates the same record.
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Param log body SaveLogRequest true "Logged exercises"
// @Success 200 {object} WorkoutLogResponse
// @Router /logs/{date} [put]
func (h *LogHandler) SaveLog(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date; expected YYYY-MM-DD.")
		return
	}

	var req SaveLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var programID *primitive.ObjectID
	if req.ProgramID != nil && *req.ProgramID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ProgramID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid programId format.")
			return
		}
		programID = &id
	}

	entries := make([]domain.ExerciseLog, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		entry, err := mapExerciseLogRequest(e)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		entries = append(entries, entry)
	}

	saved, err := h.logService.SaveLog(c.Request.Context(), athleteID, date, programID, entries)
	if err != nil {
		mapLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(saved))
}

// ListLogs godoc
// @Summary List workout logs in a date range
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} WorkoutLogResponse
// @Router /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	athleteID, ok := requesterID(c)
	if !ok {
		return
	}

	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid 'from' date; expected YYYY-MM-DD.")
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid 'to' date; expected YYYY-MM-DD.")
		return
	}

	logs, err := h.logService.ListLogs(c.Request.Context(), athleteID, from, to)
	if err != nil {
		mapLogError(c, err)
		return
	}

	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, responses)
}

func mapLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAnAthlete):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrLogValidation), errors.Is(err, service.ErrLogRange):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

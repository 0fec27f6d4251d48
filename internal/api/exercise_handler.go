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

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Category    domain.ExerciseCategory `json:"category" binding:"required"`
	DemoURL     string                  `json:"demoUrl" binding:"omitempty"`
	Description string                  `json:"description" binding:"omitempty"`
	Sports      []string                `json:"sports" binding:"omitempty"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID          string                  `json:"id,omitempty"` // empty for built-ins
	OwnerID     *string                 `json:"ownerId,omitempty"`
	Name        string                  `json:"name"`
	Category    domain.ExerciseCategory `json:"category"`
	DemoURL     string                  `json:"demoUrl,omitempty"`
	Description string                  `json:"description,omitempty"`
	Sports      []string                `json:"sports,omitempty"`
	IsGlobal    bool                    `json:"isGlobal"`
	CreatedAt   time.Time               `json:"createdAt,omitempty"`
	UpdatedAt   time.Time               `json:"updatedAt,omitempty"`
}

// RequestDemoUploadRequest asks for a presigned PUT URL.
type RequestDemoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type RequestDemoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ConfirmDemoUploadRequest reports a finished upload.
type ConfirmDemoUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Size        int64  `json:"size" binding:"required,min=1"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		Name:        ex.Name,
		Category:    ex.Category,
		DemoURL:     ex.DemoURL,
		Description: ex.Description,
		Sports:      ex.Sports,
		IsGlobal:    ex.IsGlobal(),
		CreatedAt:   ex.CreatedAt,
		UpdatedAt:   ex.UpdatedAt,
	}
	if ex.ID != primitive.NilObjectID {
		resp.ID = ex.ID.Hex()
	}
	if ex.OwnerID != nil {
		ownerHex := ex.OwnerID.Hex()
		resp.OwnerID = &ownerHex
	}
	return resp
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List the visible exercise catalog
// @Description Merges the requester's custom exercises with the built-in catalog; built-ins win on name collision.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "Merged catalog"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListVisibleExercises(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Create a new custom exercise
// @Description Creates a custom exercise owned by the authenticated coach or trainer.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a coach or trainer)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(
		c.Request.Context(),
		ownerID,
		req.Name,
		req.Category,
		req.DemoURL,
		req.Description,
		req.Sports,
	)
	if err != nil {
		if errors.Is(err, service.ErrExerciseValidation) || errors.Is(err, service.ErrInvalidDemoURL) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update a custom exercise
// @Description Updates an exercise; only the creator may update, and built-ins are immutable.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse "Exercise updated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (not the creator, or built-in exercise)"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	requester, ok := requesterID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(
		c.Request.Context(),
		requester,
		exerciseID,
		req.Name,
		req.Category,
		req.DemoURL,
		req.Description,
		req.Sports,
	)
	if err != nil {
		mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete a custom exercise
// @Description Deletes an exercise; only the creator may delete, and built-ins are immutable.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Exercise deleted"
// @Failure 403 {object} gin.H "Forbidden (not the creator, or built-in exercise)"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	requester, ok := requesterID(c)
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), requester, exerciseID); err != nil {
		mapExerciseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestDemoUpload godoc
// @Summary Request a presigned URL for a demonstration video upload
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param upload body RequestDemoUploadRequest true "Upload details"
// @Success 200 {object} RequestDemoUploadResponse "Presigned PUT URL"
// @Router /exercises/{id}/demo-upload [post]
func (h *ExerciseHandler) RequestDemoUpload(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	requester, ok := requesterID(c)
	if !ok {
		return
	}

	var req RequestDemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uploadURL, objectKey, err := h.exerciseService.RequestDemoUpload(c.Request.Context(), requester, exerciseID, req.FileName, req.ContentType)
	if err != nil {
		mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, RequestDemoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// ConfirmDemoUpload godoc
// @Summary Confirm a finished demonstration video upload
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param upload body ConfirmDemoUploadRequest true "Uploaded object details"
// @Success 201 {object} gin.H "Upload recorded"
// @Router /exercises/{id}/demo-upload/confirm [post]
func (h *ExerciseHandler) ConfirmDemoUpload(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	requester, ok := requesterID(c)
	if !ok {
		return
	}

	var req ConfirmDemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.exerciseService.ConfirmDemoUpload(c.Request.Context(), requester, exerciseID, req.ObjectKey, req.FileName, req.ContentType, req.Size)
	if err != nil {
		mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uploadId": upload.ID.Hex(), "uploadedAt": upload.UploadedAt})
}

// GetDemoDownloadURL godoc
// @Summary Get a presigned URL for an exercise's demonstration video
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} gin.H "Presigned GET URL"
// @Router /exercises/{id}/demo [get]
func (h *ExerciseHandler) GetDemoDownloadURL(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.GetDemoDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		mapExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// mapExerciseError translates exercise service errors to HTTP statuses.
func mapExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGlobalImmutable), errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExerciseValidation), errors.Is(err, service.ErrInvalidDemoURL):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// requesterID extracts the authenticated user's ObjectID from the context.
func requesterID(c *gin.Context) (primitive.ObjectID, bool) {
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

// pathObjectID parses an ObjectID path parameter.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

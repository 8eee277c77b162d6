package handler

import (
	"errors"

	"sukasamasuka/internal/delivery/http/dto"
	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/pkg/response"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobPostHandler struct {
	uc usecase.JobPostUsecase
}

type createJobPostRequest struct {
	JobTitle         string `json:"job_title"`
	JobGrade         string `json:"job_grade"`
	CurrentState     string `json:"current_state"`
	CurrentDistrict  string `json:"current_district"`
	ExpectedState    string `json:"expected_state"`
	ExpectedDistrict string `json:"expected_district"`
}

func NewJobPostHandler(uc usecase.JobPostUsecase) *JobPostHandler {
	return &JobPostHandler{uc: uc}
}

func (h *JobPostHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.ListAll)
	r.Get("/mine", h.ListMine)
	r.Delete("/:id", h.Delete)
}

func (h *JobPostHandler) Create(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createJobPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, evicted, err := h.uc.Create(c.Context(), userID, usecase.CreateJobPostInput{
		JobTitle:         req.JobTitle,
		JobGrade:         req.JobGrade,
		CurrentState:     req.CurrentState,
		CurrentDistrict:  req.CurrentDistrict,
		ExpectedState:    req.ExpectedState,
		ExpectedDistrict: req.ExpectedDistrict,
	})
	if err != nil {
		return mapJobPostUsecaseError(err)
	}

	data := dto.CreateJobPostResponse{
		Post:    dto.NewJobPostResponse(created),
		Evicted: evicted,
	}
	return response.Success(c, fiber.StatusCreated, "created", data)
}

// ListAll is the public browse feed of every active post.
func (h *JobPostHandler) ListAll(c fiber.Ctx) error {
	posts, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPostResponses(posts))
}

func (h *JobPostHandler) ListMine(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	posts, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobPostResponses(posts))
}

func (h *JobPostHandler) Delete(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid post id", nil, err)
	}

	if err := h.uc.Delete(c.Context(), userID, postID); err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func currentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func mapJobPostUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownJobTitle),
		errors.Is(err, usecase.ErrUnknownJobGrade),
		errors.Is(err, usecase.ErrUnknownLocation),
		errors.Is(err, usecase.ErrSameLocation):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrJobPostNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job post not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

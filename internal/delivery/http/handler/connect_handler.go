package handler

import (
	"errors"

	"sukasamasuka/internal/delivery/http/middleware"
	"sukasamasuka/internal/pkg/response"
	"sukasamasuka/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectHandler struct {
	uc usecase.ConnectUsecase
}

type initiateConnectRequest struct {
	ReceiverID  uuid.UUID `json:"receiver_id"`
	PhoneNumber string    `json:"phone_number"`
}

type acceptConnectRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func NewConnectHandler(uc usecase.ConnectUsecase) *ConnectHandler {
	return &ConnectHandler{uc: uc}
}

func (h *ConnectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Initiate)
	r.Post("/:id/accept", h.Accept)
	r.Get("/", h.List)
	r.Get("/status/:userID", h.Status)
}

// Initiate shares the caller's phone number with another user. When that
// user already initiated, the call completes the exchange instead.
func (h *ConnectHandler) Initiate(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req initiateConnectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ReceiverID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing receiver id", nil, nil)
	}

	st, err := h.uc.Initiate(c.Context(), userID, req.ReceiverID, req.PhoneNumber)
	if err != nil {
		return mapConnectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func (h *ConnectHandler) Accept(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request id", nil, err)
	}

	var req acceptConnectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	st, err := h.uc.Accept(c.Context(), userID, requestID, req.PhoneNumber)
	if err != nil {
		return mapConnectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func (h *ConnectHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	statuses, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapConnectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, statuses)
}

func (h *ConnectHandler) Status(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	otherID, err := uuid.Parse(c.Params("userID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	st, err := h.uc.StatusFor(c.Context(), userID, otherID)
	if err != nil {
		return mapConnectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func mapConnectUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidPhoneNumber):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid Malaysian mobile number", nil, err)
	case errors.Is(err, usecase.ErrSelfConnect):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Cannot connect with yourself", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Connect request not found", nil, err)
	case errors.Is(err, usecase.ErrNotRequestReceiver):
		return middleware.NewAppError(fiber.StatusForbidden, "Only the receiver can accept", nil, err)
	case errors.Is(err, usecase.ErrAlreadyConnected):
		return middleware.NewAppError(fiber.StatusConflict, "Request already accepted", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

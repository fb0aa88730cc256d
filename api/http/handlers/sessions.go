package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/careeradvisor/api/http/presenter"
	"github.com/artem13815/careeradvisor/pkg/chat"
	"github.com/artem13815/careeradvisor/pkg/security/jwt"
)

// SessionsHandler exposes chat transcripts of the authenticated user.
type SessionsHandler struct {
	uc chat.UseCase
}

func NewSessionsHandler(uc chat.UseCase) *SessionsHandler { return &SessionsHandler{uc: uc} }

// Create starts a transcript seeded with the greeting.
// @Summary Start chat session
// @Tags    sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} chat.Session
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /sessions [post]
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	owner, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	sess, err := h.uc.Start(c.UserContext(), owner)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to start session")
	}
	return presenter.JSON(c, http.StatusCreated, sess)
}

// List returns the user's sessions, most recently active first.
// @Summary List chat sessions
// @Tags    sessions
// @Produce json
// @Param   limit  query int false "page size (max 200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} chat.Session
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /sessions [get]
func (h *SessionsHandler) List(c *fiber.Ctx) error {
	owner, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.uc.List(c.UserContext(), owner, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list sessions")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get returns one transcript.
// @Summary Get chat session
// @Tags    sessions
// @Produce json
// @Param   id path string true "session id (UUID)"
// @Security BearerAuth
// @Success 200 {object} chat.Session
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /sessions/{id} [get]
func (h *SessionsHandler) Get(c *fiber.Ctx) error {
	owner, id, err := h.target(c)
	if err != nil {
		return err
	}
	sess, err := h.uc.Get(c.UserContext(), owner, id)
	if err != nil {
		return sessionError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sess)
}

// Ask runs one turn: the question and the answer are appended to the transcript.
// @Summary Ask within a session
// @Tags    sessions
// @Accept  json
// @Produce json
// @Param   id    path string          true "session id (UUID)"
// @Param   input body questionRequest true "question"
// @Security BearerAuth
// @Success 200 {object} chat.Message
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /sessions/{id}/messages [post]
func (h *SessionsHandler) Ask(c *fiber.Ctx) error {
	owner, id, err := h.target(c)
	if err != nil {
		return err
	}
	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	msg, err := h.uc.Ask(c.UserContext(), owner, id, req.Question)
	if err != nil {
		return sessionError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, msg)
}

// Clear resets the transcript to the greeting.
// @Summary Clear chat history
// @Tags    sessions
// @Produce json
// @Param   id path string true "session id (UUID)"
// @Security BearerAuth
// @Success 200 {object} chat.Session
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /sessions/{id}/clear [post]
func (h *SessionsHandler) Clear(c *fiber.Ctx) error {
	owner, id, err := h.target(c)
	if err != nil {
		return err
	}
	sess, err := h.uc.Clear(c.UserContext(), owner, id)
	if err != nil {
		return sessionError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sess)
}

// Delete removes a session.
// @Summary Delete chat session
// @Tags    sessions
// @Param   id path string true "session id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /sessions/{id} [delete]
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	owner, id, err := h.target(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), owner, id); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// target resolves the caller and the :id path param. Failures come back as
// *fiber.Error and are rendered by presenter.ErrorHandler.
func (h *SessionsHandler) target(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	owner, ok := jwt.UserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, fiber.NewError(http.StatusUnauthorized, "unknown user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(http.StatusBadRequest, "invalid session id")
	}
	return owner, id, nil
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return presenter.Error(c, http.StatusNotFound, "session not found")
	case errors.Is(err, chat.ErrEmptyQuestion):
		return presenter.Error(c, http.StatusBadRequest, "question is required")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "chat failed")
	}
}

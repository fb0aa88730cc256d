package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/careeradvisor/api/http/presenter"
	"github.com/artem13815/careeradvisor/pkg/advice"
)

type AdviceHandler struct {
	uc advice.UseCase
}

func NewAdviceHandler(uc advice.UseCase) *AdviceHandler { return &AdviceHandler{uc: uc} }

type questionRequest struct {
	Question string `json:"question"`
}

type adviceResponse struct {
	Answer string `json:"answer"`
	Kind   string `json:"kind"`
	Model  string `json:"model,omitempty"`
}

// Ask answers one career question without touching any transcript.
// Auth and API errors of the model are reported in the answer with kind set accordingly.
// @Summary Ask for career advice
// @Tags    advice
// @Accept  json
// @Produce json
// @Param   input body questionRequest true "question"
// @Security BearerAuth
// @Success 200 {object} adviceResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Router  /advice [post]
func (h *AdviceHandler) Ask(c *fiber.Ctx) error {
	var req questionRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.uc.Advise(c.UserContext(), req.Question)
	if err != nil {
		if errors.Is(err, advice.ErrEmptyQuestion) {
			return presenter.Error(c, http.StatusBadRequest, "question is required")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get advice")
	}
	return presenter.JSON(c, http.StatusOK, adviceResponse{Answer: res.Text, Kind: res.Kind.String(), Model: res.Model})
}

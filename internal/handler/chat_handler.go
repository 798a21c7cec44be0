package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/noorjahan04/City-Backend/internal/chatbot"
	"github.com/noorjahan04/City-Backend/internal/errors"
)

// ChatHandler handles the assistant chat endpoint.
type ChatHandler struct {
	responder chatbot.Responder
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(responder chatbot.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

// ChatRequest carries a user message to the assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat godoc
// @Summary Send a message to the assistant
// @Tags chatbot
// @Accept json
// @Produce json
// @Param request body ChatRequest true "User message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /chatbot [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.responder.Reply(c.Request().Context(), claims.UserID, req.Message)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

package handlers

import (
	"net/http"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	Message string                 `json:"message" binding:"required,min=1"`
	History []services.ChatMessage `json:"history"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

// Chat godoc
// @Summary      Marketplace assistant
// @Description  Answers one message; may search listings via an LLM tool call
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body ChatRequest true "Message and prior turns"
// @Success      200 {object} ChatResponse
// @Failure      500 {object} map[string]string
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	text, err := h.chatService.Reply(req.Message, req.History)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "chat failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Text: text})
}

package handlers

import (
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/services"
	"treinai_backend/internal/services/dto"
	"treinai_backend/ws"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
	wsHandler   *ws.Handler
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, wsHandler *ws.Handler) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
		wsHandler:   wsHandler,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(middleware.AuthMiddleware(), middleware.UserContextMiddleware())
	{
		// Sends go over REST; the socket below only pushes stored
		// messages back, to both ends of the pair.
		chat.POST("/messages", h.Send)
		chat.GET("/conversations/:partnerID", h.Conversation)
		chat.GET("/partner", h.Partner)
		chat.GET("/ws", h.wsHandler.ServeWS)
	}
}

func (h *ChatHandler) Send(c *gin.Context) {
	senderID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), senderID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) Conversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.GetConversation(c.Request.Context(), userID, h.GetRole(c), c.Param("partnerID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Partner answers the student's "who do I chat with" question.
func (h *ChatHandler) Partner(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.ResolvePartner(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

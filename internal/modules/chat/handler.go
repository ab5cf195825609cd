package chat

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"nam3land/internal/domain"
	"nam3land/internal/pkg/jwt"
	"nam3land/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dev setting. Lock down the origin check before exposing this publicly.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwtService}
}

// RegisterRoutes registers chat routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/conversations", h.ListConversations)
		chatGroup.GET("/conversations/:id", h.GetConversation)
		chatGroup.GET("/conversations/:id/messages", h.ListMessages)
		chatGroup.POST("/conversations/:id/messages", h.SendMessage)
		chatGroup.PUT("/conversations/:id/close", h.CloseConversation)
	}
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	convs, err := h.service.ListConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch conversations")
		return
	}

	items := make([]*ConversationResponse, 0, len(convs))
	for i := range convs {
		items = append(items, toConversationResponse(&convs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": items})
}

func (h *Handler) GetConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	conv, err := h.service.GetConversation(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversation": toConversationResponse(conv)})
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.service.ListMessages(c.Request.Context(), userID, id, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]*MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, toMessageResponse(&msgs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"messages": items})
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := domain.UserRole(c.GetString("role"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), userID, role, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.deliver(c, userID, msg)

	response.Success(c, http.StatusCreated, gin.H{"message": toMessageResponse(msg)})
}

func (h *Handler) CloseConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	if err := h.service.CloseConversation(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"closed": true})
}

// deliver pushes the message to both participants over live sockets and falls
// back to an in-app notification when the recipient is offline.
func (h *Handler) deliver(c *gin.Context, senderID int64, msg *domain.ChatMessage) {
	conv, err := h.service.store.GetConversationByID(c.Request.Context(), msg.ConversationID)
	if err != nil || conv == nil {
		return
	}
	recipientID := h.service.RecipientID(conv, senderID)

	event := gin.H{
		"type":    "message",
		"message": toMessageResponse(msg),
	}
	_ = h.hub.SendToUser(senderID, event)
	if delivered := h.hub.SendToUser(recipientID, event); !delivered {
		_ = h.service.NotifyIfMissed(c.Request.Context(), recipientID, msg)
	}
}

// HandleWebSocket upgrades GET /ws/chat?token=JWT to a live connection.
// Browsers cannot set headers on websocket dials, so the token rides in the
// query string.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID
	role := domain.UserRole(claims.Role)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(userID, conn)
	defer func() {
		h.hub.Unregister(userID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go h.pingLoop(conn)

	h.readLoop(conn, userID, role)
}

func (h *Handler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

type wsClientMessage struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	Message        string `json:"message"`
}

func (h *Handler) readLoop(conn *websocket.Conn, userID int64, role domain.UserRole) {
	for {
		var msg wsClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("websocket error for user %d: %v", userID, err)
			}
			return
		}

		switch msg.Type {
		case "message":
			h.handleWSMessage(conn, userID, role, msg)
		case "ping":
			_ = conn.WriteJSON(gin.H{"type": "pong"})
		default:
			h.sendWSError(conn, "UNKNOWN_TYPE", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) handleWSMessage(conn *websocket.Conn, senderID int64, role domain.UserRole, msg wsClientMessage) {
	ctx := context.Background()

	if msg.ConversationID <= 0 {
		h.sendWSError(conn, "INVALID_CONVERSATION", "conversation_id is required")
		return
	}

	created, err := h.service.SendMessage(ctx, senderID, role, msg.ConversationID,
		SendMessageRequest{Message: msg.Message})
	if err != nil {
		h.sendWSError(conn, "SEND_FAILED", err.Error())
		return
	}

	conv, err := h.service.store.GetConversationByID(ctx, msg.ConversationID)
	if err != nil || conv == nil {
		return
	}
	recipientID := h.service.RecipientID(conv, senderID)

	event := gin.H{
		"type":    "message",
		"message": toMessageResponse(created),
	}
	_ = h.hub.SendToUser(senderID, event)
	if delivered := h.hub.SendToUser(recipientID, event); !delivered {
		_ = h.service.NotifyIfMissed(ctx, recipientID, created)
	}
}

func (h *Handler) sendWSError(conn *websocket.Conn, code, message string) {
	_ = conn.WriteJSON(gin.H{
		"type": "error",
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message cannot be empty")
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "NOT_PARTICIPANT", "You are not a participant of this conversation")
	case errors.Is(err, ErrConversationClosed):
		response.Error(c, http.StatusConflict, "CONVERSATION_CLOSED", "Conversation is closed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

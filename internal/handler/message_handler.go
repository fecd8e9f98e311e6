package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"tuiter/internal/dto"
	"tuiter/internal/service"
	"tuiter/pkg/apperror"
	"tuiter/pkg/response"
	"tuiter/pkg/validator"
)

type MessageHandler struct {
	messageService service.MessageService
	redisClient    *redis.Client
	upgrader       websocket.Upgrader
}

func NewMessageHandler(messageService service.MessageService, redisClient *redis.Client) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		redisClient:    redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	fromID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	toID, err := uuid.Parse(c.Param("ruid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	var input dto.SendMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), fromID, toID, input.Message)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	userA, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userB, err := uuid.Parse(c.Param("ruid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), userA, userB)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) GetSent(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	messages, err := h.messageService.Sent(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) GetReceived(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	messages, err := h.messageService.Received(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("mid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	affected, err := h.messageService.Delete(c.Request.Context(), messageID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}

// HandleWebSocket streams the caller's incoming direct messages over a
// websocket, fed by the Redis DM channel.
func (h *MessageHandler) HandleWebSocket(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("redis client is nil, cannot subscribe for live messages")
		return
	}

	pubsub := h.redisClient.Subscribe(c.Request.Context(), service.DMChannel(userID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("failed to subscribe to dm channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			// Payload is the persisted message, already JSON
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

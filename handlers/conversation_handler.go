package handlers

import (
	"net/http"

	"github.com/consultoriamelchior-max/nexus-processual/models"
	"github.com/consultoriamelchior-max/nexus-processual/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConversationHandler handles HTTP requests for conversations and
// the messages inside them
type ConversationHandler struct {
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationRepo *repository.ConversationRepository, messageRepo *repository.MessageRepository) *ConversationHandler {
	return &ConversationHandler{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// CreateConversationRequest represents the request body for creating a conversation
type CreateConversationRequest struct {
	CaseID  string `json:"case_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	Channel string `json:"channel"`
}

// CreateConversation handles POST /api/conversations
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CASE_ID",
				"message": "Invalid case_id format",
			},
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = "whatsapp"
	}

	conv := &models.Conversation{
		CaseID:  caseID,
		UserID:  userID,
		Channel: channel,
	}

	if err := h.conversationRepo.Create(c.Request.Context(), conv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    conv,
	})
}

// ListConversations handles GET /api/cases/:id/conversations
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	conversations, err := h.conversationRepo.ListByCaseID(c.Request.Context(), caseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conversations,
	})
}

// CreateMessageRequest represents the request body for recording a message
type CreateMessageRequest struct {
	Sender string `json:"sender" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// CreateMessage handles POST /api/conversations/:id/messages
func (h *ConversationHandler) CreateMessage(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid conversation ID format",
			},
		})
		return
	}

	if _, err := h.conversationRepo.GetByID(c.Request.Context(), conversationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Conversation not found",
			},
		})
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	sender := models.MessageSender(req.Sender)
	if sender != models.SenderClient && sender != models.SenderOperator {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SENDER",
				"message": "Sender must be 'client' or 'operator'",
			},
		})
		return
	}

	msg := &models.Message{
		ConversationID: conversationID,
		Sender:         sender,
		Text:           req.Text,
	}

	if err := h.messageRepo.Create(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    msg,
	})
}

// ListMessages handles GET /api/conversations/:id/messages
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid conversation ID format",
			},
		})
		return
	}

	messages, err := h.messageRepo.ListByConversationID(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

package handlers

import (
	"net/http"

	"github.com/consultoriamelchior-max/nexus-processual/models"
	"github.com/consultoriamelchior-max/nexus-processual/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	clientRepo *repository.ClientRepository
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientRepo *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	UserID          string  `json:"user_id" binding:"required"`
	FullName        string  `json:"full_name" binding:"required"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email"`
	CPFOrIdentifier *string `json:"cpf_or_identifier"`
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
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

	client := &models.Client{
		UserID:          userID,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           req.Email,
		CPFOrIdentifier: req.CPFOrIdentifier,
	}

	if err := h.clientRepo.Create(c.Request.Context(), client); err != nil {
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
		"data":    client,
	})
}

// GetClient handles GET /api/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid client ID format",
			},
		})
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Client not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    client,
	})
}

// ListClients handles GET /api/clients?user_id=...
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid or missing user_id",
			},
		})
		return
	}

	clients, err := h.clientRepo.ListByUserID(c.Request.Context(), userID)
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
		"data":    clients,
	})
}

// DeleteClient handles DELETE /api/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid client ID format",
			},
		})
		return
	}

	if err := h.clientRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": id},
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/consultoriamelchior-max/nexus-processual/models"
	"github.com/consultoriamelchior-max/nexus-processual/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles HTTP requests for cases
type CaseHandler struct {
	caseRepo     *repository.CaseRepository
	aiOutputRepo *repository.AiOutputRepository
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseRepo *repository.CaseRepository, aiOutputRepo *repository.AiOutputRepository) *CaseHandler {
	return &CaseHandler{
		caseRepo:     caseRepo,
		aiOutputRepo: aiOutputRepo,
	}
}

// CreateCaseRequest represents the request body for creating a case
type CreateCaseRequest struct {
	UserID             string   `json:"user_id" binding:"required"`
	ClientID           string   `json:"client_id" binding:"required"`
	Status             string   `json:"status"`
	CaseTitle          string   `json:"case_title"`
	Defendant          string   `json:"defendant"`
	CaseType           string   `json:"case_type"`
	Court              string   `json:"court"`
	ProcessNumber      string   `json:"process_number"`
	DistributionDate   string   `json:"distribution_date"`
	CaseValue          *float64 `json:"case_value"`
	PartnerLawFirmName string   `json:"partner_law_firm_name"`
	PartnerLawyerName  string   `json:"partner_lawyer_name"`
}

// CreateCase handles POST /api/cases
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
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

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CLIENT_ID",
				"message": "Invalid client_id format",
			},
		})
		return
	}

	status := models.CaseStatusActive
	if req.Status != "" {
		status = models.CaseStatus(req.Status)
	}

	kase := &models.Case{
		UserID:             userID,
		ClientID:           clientID,
		Status:             status,
		CaseTitle:          req.CaseTitle,
		Defendant:          req.Defendant,
		CaseType:           req.CaseType,
		Court:              req.Court,
		ProcessNumber:      req.ProcessNumber,
		DistributionDate:   parseOptionalDate(req.DistributionDate),
		CaseValue:          req.CaseValue,
		PartnerLawFirmName: req.PartnerLawFirmName,
		PartnerLawyerName:  req.PartnerLawyerName,
	}

	if err := h.caseRepo.Create(c.Request.Context(), kase); err != nil {
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
		"data":    kase,
	})
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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

	kase, err := h.caseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    kase,
	})
}

// ListCases handles GET /api/cases?user_id=...&status=...&limit=...&offset=...
func (h *CaseHandler) ListCases(c *gin.Context) {
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

	var status *models.CaseStatus
	if s := c.Query("status"); s != "" {
		st := models.CaseStatus(s)
		status = &st
	}

	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}

	cases, err := h.caseRepo.ListByUserID(c.Request.Context(), userID, status, limit, offset)
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
		"data":    cases,
	})
}

// UpdateCaseRequest represents the request body for updating a case
type UpdateCaseRequest struct {
	Status             string   `json:"status"`
	CaseTitle          string   `json:"case_title"`
	Defendant          string   `json:"defendant"`
	CaseType           string   `json:"case_type"`
	Court              string   `json:"court"`
	ProcessNumber      string   `json:"process_number"`
	DistributionDate   string   `json:"distribution_date"`
	CaseValue          *float64 `json:"case_value"`
	PartnerLawFirmName string   `json:"partner_law_firm_name"`
	PartnerLawyerName  string   `json:"partner_lawyer_name"`
}

// UpdateCase handles PUT /api/cases/:id
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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

	kase, err := h.caseRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	var req UpdateCaseRequest
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

	if req.Status != "" {
		kase.Status = models.CaseStatus(req.Status)
	}
	if req.CaseTitle != "" {
		kase.CaseTitle = req.CaseTitle
	}
	if req.Defendant != "" {
		kase.Defendant = req.Defendant
	}
	if req.CaseType != "" {
		kase.CaseType = req.CaseType
	}
	if req.Court != "" {
		kase.Court = req.Court
	}
	if req.ProcessNumber != "" {
		kase.ProcessNumber = req.ProcessNumber
	}
	if d := parseOptionalDate(req.DistributionDate); d != nil {
		kase.DistributionDate = d
	}
	if req.CaseValue != nil {
		kase.CaseValue = req.CaseValue
	}
	if req.PartnerLawFirmName != "" {
		kase.PartnerLawFirmName = req.PartnerLawFirmName
	}
	if req.PartnerLawyerName != "" {
		kase.PartnerLawyerName = req.PartnerLawyerName
	}

	if err := h.caseRepo.Update(c.Request.Context(), kase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    kase,
	})
}

// DeleteCase handles DELETE /api/cases/:id
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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

	if err := h.caseRepo.Delete(c.Request.Context(), id); err != nil {
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

// ListCaseOutputs handles GET /api/cases/:id/outputs
func (h *CaseHandler) ListCaseOutputs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
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

	outputs, err := h.aiOutputRepo.ListByCaseID(c.Request.Context(), id)
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
		"data":    outputs,
	})
}

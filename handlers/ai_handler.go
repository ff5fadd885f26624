package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/consultoriamelchior-max/nexus-processual/llm"
	"github.com/consultoriamelchior-max/nexus-processual/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AiHandler handles the message-generation and document-analysis endpoints
type AiHandler struct {
	messageService *service.MessageService
	analyzeService *service.AnalyzeService
}

// NewAiHandler creates a new AI handler
func NewAiHandler(messageService *service.MessageService, analyzeService *service.AnalyzeService) *AiHandler {
	return &AiHandler{
		messageService: messageService,
		analyzeService: analyzeService,
	}
}

// GenerateMessageRequest represents the message endpoint request body
type GenerateMessageRequest struct {
	Action           string                  `json:"action" binding:"required"`
	UserID           *string                 `json:"userId"`
	CaseID           *string                 `json:"caseId"`
	CaseTitle        string                  `json:"caseTitle"`
	Defendant        string                  `json:"defendant"`
	CaseType         string                  `json:"caseType"`
	Court            string                  `json:"court"`
	PartnerFirm      string                  `json:"partnerFirm"`
	PartnerLawyer    string                  `json:"partnerLawyer"`
	DistributionDate string                  `json:"distributionDate"`
	CaseValue        *float64                `json:"caseValue"`
	CompanyContext   string                  `json:"companyContext"`
	Context          string                  `json:"context"`
	Objective        string                  `json:"objective"`
	Tone             string                  `json:"tone"`
	Formality        string                  `json:"formality"`
	ExistingOutputs  []string                `json:"existingOutputs"`
	RecentMessages   []service.RecentMessage `json:"recentMessages"`
}

// GenerateMessage handles POST /api/ai/message
func (h *AiHandler) GenerateMessage(c *gin.Context) {
	var req GenerateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceReq := service.GenerateMessageRequest{
		Action:           service.MessageAction(req.Action),
		UserID:           parseOptionalUUID(req.UserID),
		CaseID:           parseOptionalUUID(req.CaseID),
		CaseTitle:        req.CaseTitle,
		Defendant:        req.Defendant,
		CaseType:         req.CaseType,
		Court:            req.Court,
		PartnerFirm:      req.PartnerFirm,
		PartnerLawyer:    req.PartnerLawyer,
		DistributionDate: parseOptionalDate(req.DistributionDate),
		CaseValue:        req.CaseValue,
		CompanyContext:   req.CompanyContext,
		Context:          req.Context,
		Objective:        req.Objective,
		Tone:             req.Tone,
		Formality:        req.Formality,
		ExistingOutputs:  req.ExistingOutputs,
		RecentMessages:   req.RecentMessages,
	}

	result, err := h.messageService.GenerateMessage(c.Request.Context(), serviceReq)
	if err != nil {
		h.writeGatewayError(c, err)
		return
	}

	if result.Reply != nil {
		c.JSON(http.StatusOK, result.Reply)
		return
	}
	c.JSON(http.StatusOK, result.Messages)
}

// AnalyzeRequest represents the analysis endpoint request body. Two
// variants are accepted: direct petition/contract text, or a stored case
// document addressed by ID.
type AnalyzeRequest struct {
	PetitionText  string `json:"petitionText"`
	ContractText  string `json:"contractText"`
	ContractType  string `json:"contractType"`
	PhoneProvided string `json:"phoneProvided"`

	CaseID        *string `json:"caseId"`
	DocumentID    *string `json:"documentId"`
	ExtractedText string  `json:"extractedText"`
	FileURL       string  `json:"fileUrl"`
}

// Analyze handles POST /api/ai/analyze
func (h *AiHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var result *service.AnalyzeResult
	var err error

	if req.DocumentID != nil {
		caseID := parseOptionalUUID(req.CaseID)
		docID := parseOptionalUUID(req.DocumentID)
		if caseID == nil || docID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "caseId e documentId inválidos."})
			return
		}
		result, err = h.analyzeService.AnalyzeDocument(c.Request.Context(), service.AnalyzeDocumentRequest{
			CaseID:        *caseID,
			DocumentID:    *docID,
			ExtractedText: req.ExtractedText,
			FileURL:       req.FileURL,
		})
	} else {
		result, err = h.analyzeService.AnalyzeTexts(c.Request.Context(), service.AnalyzeTextsRequest{
			PetitionText:  req.PetitionText,
			ContractText:  req.ContractText,
			ContractType:  req.ContractType,
			PhoneProvided: req.PhoneProvided,
		})
	}

	if err != nil {
		h.writeAnalyzeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "extracted": result.Extracted})
}

// writeGatewayError maps message-engine failures onto the status taxonomy:
// 429 and 402 pass through, everything else is a 500.
func (h *AiHandler) writeGatewayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Limite de requisições excedido."})
	case errors.Is(err, llm.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Créditos de IA insuficientes."})
	case errors.Is(err, llm.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": llm.ErrNotConfigured.Error()})
	default:
		log.Printf("ai-message error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// writeAnalyzeError additionally surfaces the upstream status and body of
// other gateway failures, matching the analysis endpoint contract.
func (h *AiHandler) writeAnalyzeError(c *gin.Context, err error) {
	var gw *llm.GatewayError

	switch {
	case errors.Is(err, service.ErrNothingToAnalyze):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum texto disponível para análise."})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Documento não encontrado."})
	case errors.Is(err, service.ErrDocumentTextUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum texto disponível para análise.", "details": err.Error()})
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Limite de requisições excedido."})
	case errors.Is(err, llm.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Créditos de IA insuficientes."})
	case errors.As(err, &gw):
		c.JSON(gw.Status, gin.H{"error": "Erro no gateway de IA: " + http.StatusText(gw.Status), "details": gw.Body})
	default:
		log.Printf("ai-analyze error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

// parseOptionalDate accepts a bare date or a full timestamp
func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

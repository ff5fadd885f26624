package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/consultoriamelchior-max/nexus-processual/llm"
	"github.com/consultoriamelchior-max/nexus-processual/models"
	"github.com/consultoriamelchior-max/nexus-processual/storage"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentRepoNotSet    = errors.New("document repository not set")
	ErrAnalysisNotPersisted  = errors.New("failed to persist analysis result")
	ErrDocumentTextUnavailable = errors.New("document has no extractable text")
)

// extraction calls want near-deterministic output
const extractionTemperature = 0.1

// DocumentStore is the slice of the document repository the analyzer needs
type DocumentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	UpdateExtraction(ctx context.Context, id uuid.UUID, extractedText string, extractedJSON models.ExtractedData) error
}

// OutputStore records the analysis result as an insert-only AI output row
type OutputStore interface {
	Create(ctx context.Context, out *models.AiOutput) error
}

// AnalyzeService extracts structured data from petition and contract text
type AnalyzeService struct {
	gateway     Gateway
	documents   DocumentStore
	outputs     OutputStore
	fileStorage storage.Storage
}

// AnalyzeServiceOption is a functional option for AnalyzeService
type AnalyzeServiceOption func(*AnalyzeService)

// AnalyzeWithGateway sets the model gateway
func AnalyzeWithGateway(gw Gateway) AnalyzeServiceOption {
	return func(s *AnalyzeService) {
		s.gateway = gw
	}
}

// AnalyzeWithDocumentRepository sets the document repository
func AnalyzeWithDocumentRepository(repo DocumentStore) AnalyzeServiceOption {
	return func(s *AnalyzeService) {
		s.documents = repo
	}
}

// AnalyzeWithOutputRepository sets the AI output repository
func AnalyzeWithOutputRepository(repo OutputStore) AnalyzeServiceOption {
	return func(s *AnalyzeService) {
		s.outputs = repo
	}
}

// AnalyzeWithFileStorage sets the file storage used to resolve file_url texts
func AnalyzeWithFileStorage(fs storage.Storage) AnalyzeServiceOption {
	return func(s *AnalyzeService) {
		s.fileStorage = fs
	}
}

// NewAnalyzeService creates a new analyze service
func NewAnalyzeService(opts ...AnalyzeServiceOption) *AnalyzeService {
	s := &AnalyzeService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeTextsRequest is the direct-text analysis variant
type AnalyzeTextsRequest struct {
	PetitionText  string
	ContractText  string
	ContractType  string
	PhoneProvided string
}

// AnalyzeResult is the structured extraction outcome
type AnalyzeResult struct {
	Extracted models.ExtractedData
	Degraded  bool
}

// AnalyzeTexts runs the extraction prompt over raw petition/contract text.
// It fails fast, before any network call, when there is nothing to analyze.
func (s *AnalyzeService) AnalyzeTexts(ctx context.Context, req AnalyzeTextsRequest) (*AnalyzeResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotSet
	}
	if strings.TrimSpace(req.PetitionText) == "" && strings.TrimSpace(req.ContractText) == "" {
		return nil, ErrNothingToAnalyze
	}

	systemPrompt, userPrompt := BuildAnalysisPrompts(req.PetitionText, req.ContractText, req.PhoneProvided)

	content, err := s.gateway.Complete(ctx, systemPrompt, userPrompt, llm.Options{
		Temperature:  extractionTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	extracted, ok := ParseExtraction(content)
	if !ok {
		log.Printf("Warning: analysis response was not valid JSON, storing degraded extraction")
	}

	return &AnalyzeResult{Extracted: extracted, Degraded: !ok}, nil
}

// AnalyzeDocumentRequest is the stored-document analysis variant
type AnalyzeDocumentRequest struct {
	CaseID        uuid.UUID
	DocumentID    uuid.UUID
	ExtractedText string
	FileURL       string
}

// AnalyzeDocument analyzes a stored case document: the text comes from
// the request, from the document row, or from file storage, in that
// order. On success the document's extraction columns are updated in
// place and a case_summary AI output row is inserted.
func (s *AnalyzeService) AnalyzeDocument(ctx context.Context, req AnalyzeDocumentRequest) (*AnalyzeResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotSet
	}
	if s.documents == nil {
		return nil, ErrDocumentRepoNotSet
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	text, err := s.resolveText(ctx, doc, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNothingToAnalyze
	}

	systemPrompt, userPrompt := BuildDocumentAnalysisPrompts(doc.DocType, text)

	content, err := s.gateway.Complete(ctx, systemPrompt, userPrompt, llm.Options{
		Temperature:  extractionTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	extracted, ok := ParseExtraction(content)
	if !ok {
		log.Printf("Warning: document %s analysis response was not valid JSON, storing degraded extraction", req.DocumentID)
	}

	if err := s.documents.UpdateExtraction(ctx, doc.ID, TruncateText(text, MaxDocumentChars), extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisNotPersisted, err)
	}

	if s.outputs != nil {
		out := &models.AiOutput{
			CaseID:     req.CaseID,
			OutputType: "case_summary",
			Content:    summaryOf(extracted, content),
			Confidence: confidenceOf(extracted),
			ScamRisk:   models.ScamRiskLow,
		}
		if err := s.outputs.Create(ctx, out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAnalysisNotPersisted, err)
		}
	}

	return &AnalyzeResult{Extracted: extracted, Degraded: !ok}, nil
}

// resolveText picks the document text to analyze: request text first, then
// the stored extraction, then the stored file.
func (s *AnalyzeService) resolveText(ctx context.Context, doc *models.Document, req AnalyzeDocumentRequest) (string, error) {
	if strings.TrimSpace(req.ExtractedText) != "" {
		return req.ExtractedText, nil
	}
	if doc.ExtractedText != nil && strings.TrimSpace(*doc.ExtractedText) != "" {
		return *doc.ExtractedText, nil
	}

	fileURL := req.FileURL
	if fileURL == "" && doc.FileURL != nil {
		fileURL = *doc.FileURL
	}
	if fileURL == "" || s.fileStorage == nil {
		return "", ErrDocumentTextUnavailable
	}

	reader, err := s.fileStorage.Download(ctx, fileURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentTextUnavailable, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentTextUnavailable, err)
	}

	return string(data), nil
}

// summaryOf prefers the extracted summary field, falling back to the raw
// model output.
func summaryOf(extracted models.ExtractedData, raw string) string {
	if s, ok := extracted["summary"].(string); ok && s != "" {
		return s
	}
	return raw
}

// confidenceOf reads an optional confidence score from the extraction,
// defaulting to the same neutral score the parser fallback uses.
func confidenceOf(extracted models.ExtractedData) int {
	if n, ok := extracted["confidence"].(float64); ok && n >= 0 && n <= 10 {
		return int(n)
	}
	return 5
}

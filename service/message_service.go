package service

import (
	"context"
	"errors"
	"time"

	"github.com/consultoriamelchior-max/nexus-processual/llm"

	"github.com/google/uuid"
)

// Gateway is the single outbound call the engine makes per request
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.Options) (string, error)
}

var (
	ErrGatewayNotSet    = errors.New("AI gateway not set")
	ErrNothingToAnalyze = errors.New("nenhum texto disponível para análise")
)

// MessageService routes message actions to the matching prompt assembly
// and parsing pair. It holds no per-request state; every invocation is a
// single request/response cycle.
type MessageService struct {
	gateway Gateway
	history *HistoryRetriever
	now     func() time.Time
}

// MessageServiceOption is a functional option for MessageService
type MessageServiceOption func(*MessageService)

// MessageWithGateway sets the model gateway
func MessageWithGateway(gw Gateway) MessageServiceOption {
	return func(s *MessageService) {
		s.gateway = gw
	}
}

// MessageWithHistoryRetriever sets the cross-case history retriever
func MessageWithHistoryRetriever(h *HistoryRetriever) MessageServiceOption {
	return func(s *MessageService) {
		s.history = h
	}
}

// MessageWithClock overrides the time source used for the time policy
func MessageWithClock(now func() time.Time) MessageServiceOption {
	return func(s *MessageService) {
		s.now = now
	}
}

// NewMessageService creates a new message service
func NewMessageService(opts ...MessageServiceOption) *MessageService {
	s := &MessageService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateMessageRequest carries one message action and its case context
type GenerateMessageRequest struct {
	Action MessageAction

	UserID *uuid.UUID
	CaseID *uuid.UUID

	CaseTitle        string
	Defendant        string
	CaseType         string
	Court            string
	PartnerFirm      string
	PartnerLawyer    string
	DistributionDate *time.Time
	CaseValue        *float64

	CompanyContext string
	Context        string
	Objective      string
	Tone           string
	Formality      string

	ExistingOutputs []string
	RecentMessages  []RecentMessage
}

// GenerateMessageResult holds the parsed output for the requested shape.
// Exactly one of Reply and Messages is set.
type GenerateMessageResult struct {
	Reply    *ReplySuggestion
	Messages *MessageList
	Degraded bool
}

// GenerateMessage runs one action: time policy, optional history
// enrichment, prompt assembly, a single gateway call, and tolerant
// parsing of the model's reply.
func (s *MessageService) GenerateMessage(ctx context.Context, req GenerateMessageRequest) (*GenerateMessageResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotSet
	}

	pc := PromptContext{
		CaseTitle:       req.CaseTitle,
		Defendant:       req.Defendant,
		CaseType:        req.CaseType,
		Court:           req.Court,
		PartnerFirm:     req.PartnerFirm,
		PartnerLawyer:   req.PartnerLawyer,
		CompanyContext:  req.CompanyContext,
		Context:         req.Context,
		Objective:       req.Objective,
		Tone:            req.Tone,
		Formality:       req.Formality,
		ExistingOutputs: req.ExistingOutputs,
		RecentMessages:  req.RecentMessages,
		TimePolicy:      ComputeTimePolicy(s.now(), req.DistributionDate, req.CaseValue),
	}

	if req.Action == ActionSuggestReply && req.UserID != nil && req.CaseID != nil {
		pc.History = s.history.StyleExemplar(ctx, *req.UserID, *req.CaseID)
	}

	systemPrompt, userPrompt := BuildMessagePrompts(req.Action, pc)

	content, err := s.gateway.Complete(ctx, systemPrompt, userPrompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	if req.Action == ActionSuggestReply {
		reply, ok := ParseReplySuggestion(content)
		return &GenerateMessageResult{Reply: &reply, Degraded: !ok}, nil
	}

	list, ok := ParseMessageList(content)
	return &GenerateMessageResult{Messages: &list, Degraded: !ok}, nil
}

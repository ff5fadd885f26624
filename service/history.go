package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
)

// historyMessageLimit bounds the cross-case fan-out query
const historyMessageLimit = 200

// HistoryRepository is the read-only collaborator the retriever pulls
// prior transcripts from
type HistoryRepository interface {
	ListRecentByOwnerExcludingCase(ctx context.Context, userID, caseID uuid.UUID, limit int) ([]models.HistoryMessage, error)
}

// HistoryRetriever gathers an operator's conversation transcripts from
// other cases so generated replies can imitate their established style.
type HistoryRetriever struct {
	repo HistoryRepository
}

// NewHistoryRetriever creates a new history retriever
func NewHistoryRetriever(repo HistoryRepository) *HistoryRetriever {
	return &HistoryRetriever{repo: repo}
}

// StyleExemplar returns the operator's other-case transcripts, grouped by
// conversation and joined with a separator. Retrieval is best-effort
// enrichment: any failure degrades to an empty exemplar and the request
// proceeds without it.
func (h *HistoryRetriever) StyleExemplar(ctx context.Context, userID, caseID uuid.UUID) string {
	if h == nil || h.repo == nil {
		return ""
	}

	messages, err := h.repo.ListRecentByOwnerExcludingCase(ctx, userID, caseID, historyMessageLimit)
	if err != nil {
		log.Printf("Warning: failed to retrieve conversation history for user %s: %v. Continuing without history.", userID, err)
		return ""
	}
	if len(messages) == 0 {
		return ""
	}

	// Group into per-conversation transcripts, keeping conversations in
	// the order their first message appears.
	order := make([]uuid.UUID, 0)
	transcripts := make(map[uuid.UUID]*strings.Builder)
	for _, msg := range messages {
		b, ok := transcripts[msg.ConversationID]
		if !ok {
			b = &strings.Builder{}
			transcripts[msg.ConversationID] = b
			order = append(order, msg.ConversationID)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s: %s", msg.Sender, msg.Text)
	}

	parts := make([]string, 0, len(order))
	for _, id := range order {
		parts = append(parts, transcripts[id].String())
	}

	return strings.Join(parts, "\n---\n")
}

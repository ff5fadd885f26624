package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeHistoryRepo struct {
	messages []models.HistoryMessage
	err      error

	gotUserID uuid.UUID
	gotCaseID uuid.UUID
	gotLimit  int
}

func (f *fakeHistoryRepo) ListRecentByOwnerExcludingCase(ctx context.Context, userID, caseID uuid.UUID, limit int) ([]models.HistoryMessage, error) {
	f.gotUserID = userID
	f.gotCaseID = caseID
	f.gotLimit = limit
	return f.messages, f.err
}

func TestStyleExemplarGroupsByConversation(t *testing.T) {
	convA := uuid.New()
	convB := uuid.New()
	now := time.Now()

	repo := &fakeHistoryRepo{
		messages: []models.HistoryMessage{
			{ConversationID: convA, Sender: models.SenderClient, Text: "oi", CreatedAt: now},
			{ConversationID: convA, Sender: models.SenderOperator, Text: "olá, tudo bem?", CreatedAt: now},
			{ConversationID: convB, Sender: models.SenderClient, Text: "alguma novidade?", CreatedAt: now},
		},
	}

	exemplar := NewHistoryRetriever(repo).StyleExemplar(context.Background(), uuid.New(), uuid.New())

	assert.Equal(t, "client: oi\noperator: olá, tudo bem?\n---\nclient: alguma novidade?", exemplar)
	assert.Equal(t, historyMessageLimit, repo.gotLimit)
}

func TestStyleExemplarEmptyHistory(t *testing.T) {
	retriever := NewHistoryRetriever(&fakeHistoryRepo{})
	assert.Equal(t, "", retriever.StyleExemplar(context.Background(), uuid.New(), uuid.New()))
}

func TestStyleExemplarRepositoryFailure(t *testing.T) {
	repo := &fakeHistoryRepo{err: errors.New("connection refused")}
	retriever := NewHistoryRetriever(repo)

	// Retrieval failures degrade to no exemplar instead of surfacing
	assert.Equal(t, "", retriever.StyleExemplar(context.Background(), uuid.New(), uuid.New()))
}

func TestStyleExemplarNilRetriever(t *testing.T) {
	var retriever *HistoryRetriever
	assert.Equal(t, "", retriever.StyleExemplar(context.Background(), uuid.New(), uuid.New()))
}

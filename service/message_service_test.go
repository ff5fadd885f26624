package service

import (
	"context"
	"testing"
	"time"

	"github.com/consultoriamelchior-max/nexus-processual/llm"
	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	response string
	err      error

	calls            int
	lastSystemPrompt string
	lastUserPrompt   string
	lastOpts         llm.Options
}

func (f *fakeGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.Options) (string, error) {
	f.calls++
	f.lastSystemPrompt = systemPrompt
	f.lastUserPrompt = userPrompt
	f.lastOpts = opts
	return f.response, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateMessageSuggestReply(t *testing.T) {
	gw := &fakeGateway{response: `{"state":"curioso","short":"oi","standard":"olá, temos novidades"}`}
	svc := NewMessageService(MessageWithGateway(gw))

	result, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
		RecentMessages: []RecentMessage{
			{Sender: "client", Text: "alguma novidade?"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Reply)
	assert.Nil(t, result.Messages)
	assert.False(t, result.Degraded)
	assert.Equal(t, "curioso", result.Reply.State)
	assert.Equal(t, 1, gw.calls)
	assert.Contains(t, gw.lastUserPrompt, "client: alguma novidade?")
}

func TestGenerateMessageGenerationAction(t *testing.T) {
	gw := &fakeGateway{response: `{"messages":[{"message":"Olá, Maria","short_variant":"Oi","confidence":8,"scam_risk":"baixo","scam_reasons":[]}]}`}
	svc := NewMessageService(MessageWithGateway(gw))

	result, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionApproachV1,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Messages)
	assert.Nil(t, result.Reply)
	require.Len(t, result.Messages.Messages, 1)
	assert.Equal(t, "Olá, Maria", result.Messages.Messages[0].Message)
}

func TestGenerateMessageAppliesTimePolicy(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dist := now.AddDate(0, 0, -200)

	gw := &fakeGateway{response: `{"state":"curioso","short":"a","standard":"b"}`}
	svc := NewMessageService(
		MessageWithGateway(gw),
		MessageWithClock(fixedClock(now)),
	)

	_, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action:           ActionSuggestReply,
		DistributionDate: &dist,
		CaseValue:        ptrFloat(10000),
	})

	require.NoError(t, err)
	assert.Contains(t, gw.lastSystemPrompt, "R$ 5.000,00")
	assert.NotContains(t, gw.lastSystemPrompt, "50%")
}

func TestGenerateMessageFetchesHistoryForSuggestReply(t *testing.T) {
	histRepo := &fakeHistoryRepo{
		messages: []models.HistoryMessage{
			{ConversationID: uuid.New(), Sender: models.SenderOperator, Text: "bom dia"},
		},
	}
	gw := &fakeGateway{response: `{"state":"curioso","short":"a","standard":"b"}`}
	svc := NewMessageService(
		MessageWithGateway(gw),
		MessageWithHistoryRetriever(NewHistoryRetriever(histRepo)),
	)

	userID := uuid.New()
	caseID := uuid.New()
	_, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
		UserID: &userID,
		CaseID: &caseID,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, histRepo.gotUserID)
	assert.Equal(t, caseID, histRepo.gotCaseID)
	assert.Contains(t, gw.lastSystemPrompt, "operator: bom dia")
}

func TestGenerateMessageSkipsHistoryWithoutIDs(t *testing.T) {
	histRepo := &fakeHistoryRepo{
		messages: []models.HistoryMessage{
			{ConversationID: uuid.New(), Sender: models.SenderOperator, Text: "bom dia"},
		},
	}
	gw := &fakeGateway{response: `{"state":"curioso","short":"a","standard":"b"}`}
	svc := NewMessageService(
		MessageWithGateway(gw),
		MessageWithHistoryRetriever(NewHistoryRetriever(histRepo)),
	)

	_, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
	})

	require.NoError(t, err)
	assert.NotContains(t, gw.lastSystemPrompt, "operator: bom dia")
}

func TestGenerateMessageDegradedParse(t *testing.T) {
	gw := &fakeGateway{response: "não consegui gerar JSON"}
	svc := NewMessageService(MessageWithGateway(gw))

	result, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
	})

	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, "indefinido", result.Reply.State)
}

func TestGenerateMessageGatewayError(t *testing.T) {
	gw := &fakeGateway{err: llm.ErrRateLimited}
	svc := NewMessageService(MessageWithGateway(gw))

	_, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
	})

	assert.ErrorIs(t, err, llm.ErrRateLimited)
}

func TestGenerateMessageNoGateway(t *testing.T) {
	svc := NewMessageService()

	_, err := svc.GenerateMessage(context.Background(), GenerateMessageRequest{
		Action: ActionSuggestReply,
	})

	assert.ErrorIs(t, err, ErrGatewayNotSet)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/consultoriamelchior-max/nexus-processual/llm"
	"github.com/consultoriamelchior-max/nexus-processual/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	response string
	err      error
}

func (s *stubGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.Options) (string, error) {
	return s.response, s.err
}

func newTestRouter(gw service.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)

	messageService := service.NewMessageService(service.MessageWithGateway(gw))
	analyzeService := service.NewAnalyzeService(service.AnalyzeWithGateway(gw))
	handler := NewAiHandler(messageService, analyzeService)

	r := gin.New()
	r.Use(CORS())
	r.POST("/api/ai/message", handler.GenerateMessage)
	r.POST("/api/ai/analyze", handler.Analyze)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateMessageSuggestReplyResponse(t *testing.T) {
	r := newTestRouter(&stubGateway{response: `{"state":"curioso","short":"oi","standard":"olá, temos novidades"}`})

	w := postJSON(t, r, "/api/ai/message", gin.H{
		"action": "suggest_reply",
		"recentMessages": []gin.H{
			{"sender": "client", "text": "alguma novidade?"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp service.ReplySuggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "curioso", resp.State)
	assert.Equal(t, "oi", resp.Short)
	assert.Equal(t, "olá, temos novidades", resp.Standard)
}

func TestGenerateMessageListResponse(t *testing.T) {
	r := newTestRouter(&stubGateway{response: `{"messages":[{"message":"Olá","short_variant":"Oi","confidence":8,"scam_risk":"baixo","scam_reasons":[]}]}`})

	w := postJSON(t, r, "/api/ai/message", gin.H{"action": "approach_v1"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp service.MessageList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Olá", resp.Messages[0].Message)
}

func TestGenerateMessageMissingAction(t *testing.T) {
	r := newTestRouter(&stubGateway{response: "{}"})

	w := postJSON(t, r, "/api/ai/message", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateMessageRateLimited(t *testing.T) {
	r := newTestRouter(&stubGateway{err: llm.ErrRateLimited})

	w := postJSON(t, r, "/api/ai/message", gin.H{"action": "suggest_reply"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Limite de requisições excedido.")
}

func TestGenerateMessageInsufficientCredits(t *testing.T) {
	r := newTestRouter(&stubGateway{err: llm.ErrInsufficientCredits})

	w := postJSON(t, r, "/api/ai/message", gin.H{"action": "suggest_reply"})

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Créditos de IA insuficientes.")
}

func TestAnalyzeSuccess(t *testing.T) {
	r := newTestRouter(&stubGateway{response: `{"client_name":"Maria Silva","summary":"Ação revisional."}`})

	w := postJSON(t, r, "/api/ai/analyze", gin.H{
		"petitionText": "Petição inicial...",
		"contractText": "CCB nº 123...",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool                   `json:"success"`
		Extracted map[string]interface{} `json:"extracted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Maria Silva", resp.Extracted["client_name"])
}

func TestAnalyzeNothingToAnalyze(t *testing.T) {
	r := newTestRouter(&stubGateway{response: "{}"})

	w := postJSON(t, r, "/api/ai/analyze", gin.H{
		"petitionText": "",
		"contractText": "  ",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Nenhum texto disponível para análise.")
}

func TestAnalyzeGatewayFailureSurfacesStatus(t *testing.T) {
	r := newTestRouter(&stubGateway{err: &llm.GatewayError{Status: http.StatusBadGateway, Body: "upstream down"}})

	w := postJSON(t, r, "/api/ai/analyze", gin.H{"petitionText": "Petição inicial..."})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Erro no gateway de IA")
	assert.Contains(t, w.Body.String(), "upstream down")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodOptions, "/api/ai/message", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Body.String())
}

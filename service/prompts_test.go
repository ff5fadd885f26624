package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", TruncateText("abc", 5))
	assert.Equal(t, "abcde", TruncateText("abcde", 5))
	assert.Equal(t, "abcde", TruncateText("abcdefgh", 5))

	// Character ceiling, not byte ceiling
	assert.Equal(t, "ççççç", TruncateText("ççççççç", 5))
}

func TestBuildAnalysisPromptsTruncatesInputs(t *testing.T) {
	longPetition := strings.Repeat("p", MaxPetitionChars+500)
	longContract := strings.Repeat("c", MaxContractChars+500)

	_, userPrompt := BuildAnalysisPrompts(longPetition, longContract, "11999990000")

	assert.Contains(t, userPrompt, strings.Repeat("p", MaxPetitionChars))
	assert.NotContains(t, userPrompt, strings.Repeat("p", MaxPetitionChars+1))
	assert.Contains(t, userPrompt, strings.Repeat("c", MaxContractChars))
	assert.NotContains(t, userPrompt, strings.Repeat("c", MaxContractChars+1))
	assert.Contains(t, userPrompt, "11999990000")
}

func TestBuildAnalysisPromptsAtExactCeiling(t *testing.T) {
	petition := strings.Repeat("p", MaxPetitionChars)

	_, userPrompt := BuildAnalysisPrompts(petition, "", "")

	assert.Contains(t, userPrompt, petition)
	assert.Contains(t, userPrompt, "não informado")
	assert.Contains(t, userPrompt, "Não fornecido")
}

func TestBuildDocumentAnalysisPromptsTruncates(t *testing.T) {
	text := strings.Repeat("d", MaxDocumentChars+100)

	_, userPrompt := BuildDocumentAnalysisPrompts("petição", text)

	assert.Contains(t, userPrompt, "petição")
	assert.Contains(t, userPrompt, strings.Repeat("d", MaxDocumentChars))
	assert.NotContains(t, userPrompt, strings.Repeat("d", MaxDocumentChars+1))
}

func TestBuildSuggestReplyPromptsWithHistory(t *testing.T) {
	pc := PromptContext{
		CaseTitle: "Silva vs Banco XYZ",
		History:   "client: oi\noperator: olá, tudo bem?",
		RecentMessages: []RecentMessage{
			{Sender: "client", Text: "quando sai o dinheiro?"},
		},
	}

	systemPrompt, userPrompt := BuildMessagePrompts(ActionSuggestReply, pc)

	assert.Contains(t, systemPrompt, "EXEMPLOS DE CONVERSAS ANTERIORES")
	assert.Contains(t, systemPrompt, "client: oi")
	assert.Contains(t, systemPrompt, "Nunca repita uma mensagem já enviada")
	assert.Contains(t, userPrompt, "client: quando sai o dinheiro?")
}

func TestBuildSuggestReplyPromptsWithoutHistory(t *testing.T) {
	pc := PromptContext{CaseTitle: "Silva vs Banco XYZ"}

	systemPrompt, _ := BuildMessagePrompts(ActionSuggestReply, pc)

	assert.NotContains(t, systemPrompt, "EXEMPLOS DE CONVERSAS ANTERIORES")
	assert.NotContains(t, systemPrompt, "REGRAS SOBRE O HISTÓRICO")
}

func TestBuildSuggestReplyPromptsCarriesPlaybook(t *testing.T) {
	systemPrompt, _ := BuildMessagePrompts(ActionSuggestReply, PromptContext{})

	// Staged disclosure order: identity, news, value, banking details,
	// then the validation contact.
	idxIdentity := strings.Index(systemPrompt, "Confirme a identidade")
	idxValue := strings.Index(systemPrompt, "Revele o valor")
	idxBank := strings.Index(systemPrompt, "dados bancários para o repasse")
	idxValidation := strings.Index(systemPrompt, "contato de validação")

	require.True(t, idxIdentity >= 0 && idxValue >= 0 && idxBank >= 0 && idxValidation >= 0)
	assert.Less(t, idxIdentity, idxValue)
	assert.Less(t, idxValue, idxBank)
	assert.Less(t, idxBank, idxValidation)
}

func TestCaseContextIncludesTimePolicy(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dist := now.AddDate(0, 0, -200)
	pc := PromptContext{
		CaseTitle:  "Silva vs Banco XYZ",
		TimePolicy: ComputeTimePolicy(now, &dist, ptrFloat(10000)),
	}

	systemPrompt, _ := BuildMessagePrompts(ActionSuggestReply, pc)

	assert.Contains(t, systemPrompt, "POLÍTICA DE TEMPO")
	assert.Contains(t, systemPrompt, "R$ 5.000,00")
}

func TestBuildGenerationPromptsVariations(t *testing.T) {
	systemPrompt, userPrompt := BuildMessagePrompts(ActionVariationsV1, PromptContext{})

	assert.Contains(t, systemPrompt, "Gere 3 mensagem(ns)")
	assert.Contains(t, userPrompt, "3 variações")
}

func TestBuildGenerationPromptsModifiers(t *testing.T) {
	systemPrompt, _ := BuildMessagePrompts(ActionReduceScam, PromptContext{})
	assert.Contains(t, systemPrompt, "Reduza elementos que possam parecer golpe")

	systemPrompt, _ = BuildMessagePrompts(ActionSimplify, PromptContext{})
	assert.Contains(t, systemPrompt, "Simplificar ao máximo a linguagem")

	systemPrompt, _ = BuildMessagePrompts(ActionMakeTrustworthy, PromptContext{})
	assert.Contains(t, systemPrompt, "mais confiável")
}

func TestBuildGenerationPromptsRewriteUsesExistingOutput(t *testing.T) {
	pc := PromptContext{ExistingOutputs: []string{"Mensagem antiga sobre o processo."}}

	_, userPrompt := BuildMessagePrompts(ActionSimplify, pc)

	assert.Contains(t, userPrompt, "Mensagem antiga sobre o processo.")
}

func TestBuildGenerationPromptsDefaults(t *testing.T) {
	systemPrompt, _ := BuildMessagePrompts(ActionApproachV1, PromptContext{})

	assert.Contains(t, systemPrompt, "profissional")
	assert.Contains(t, systemPrompt, "N/A")
	assert.Contains(t, systemPrompt, defaultCompanyContext)
}

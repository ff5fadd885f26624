package service

import (
	"fmt"
	"strings"
)

// MessageAction names a request type dispatched to the message engine
type MessageAction string

const (
	ActionSuggestReply    MessageAction = "suggest_reply"
	ActionApproachV1      MessageAction = "approach_v1"
	ActionVariationsV1    MessageAction = "variations_v1"
	ActionMakeTrustworthy MessageAction = "make_trustworthy"
	ActionReduceScam      MessageAction = "reduce_scam"
	ActionSimplify        MessageAction = "simplify"
)

// Character ceilings applied to externally supplied document text before
// it is folded into a prompt, to respect the model's input-size limits.
const (
	MaxPetitionChars = 10000
	MaxContractChars = 5000
	MaxDocumentChars = 15000
)

// TruncateText cuts s to at most max characters. Text at exactly the
// ceiling passes through unmodified.
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// RecentMessage is one line of the conversation being replied to
type RecentMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// PromptContext carries every field a message prompt can reference.
// Presence and absence of each input is explicit here rather than spread
// over ad hoc string concatenation.
type PromptContext struct {
	CaseTitle      string
	Defendant      string
	CaseType       string
	Court          string
	ProcessNumber  string
	PartnerFirm    string
	PartnerLawyer  string
	CompanyContext string

	Context   string
	Objective string
	Tone      string
	Formality string

	ExistingOutputs []string
	RecentMessages  []RecentMessage

	TimePolicy TimePolicy
	History    string
}

const defaultCompanyContext = "Somos uma empresa parceira do escritório responsável, atuamos no acompanhamento processual e na comunicação operacional com clientes, sem substituir o advogado."

// sharedRules are embedded in every system prompt. The operating company's
// role stays transparent and the model never claims legal representation.
const sharedRules = `REGRAS:
- Nunca se apresente como advogado
- Nunca prometa resultados judiciais
- Seja transparente sobre o papel da empresa
- Adapte a linguagem ao nível de compreensão do cliente`

const disclosurePlaybook = `ROTEIRO DE DIVULGAÇÃO EM ETAPAS (siga a ordem, sem pular etapas):
1. Confirme a identidade do cliente antes de dar qualquer detalhe do processo.
2. Sinalize que há novidades sobre o processo, sem revelar valores.
3. Revele o valor apenas quando o cliente demonstrar interesse.
4. Após o interesse confirmado, solicite os dados bancários para o repasse.
5. Mencione o contato de validação somente depois que os dados bancários forem informados.`

const historyRules = `REGRAS SOBRE O HISTÓRICO:
- Nunca repita uma mensagem já enviada
- Responda às perguntas que o cliente deixou em aberto
- Não peça novamente informações que o cliente já forneceu`

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// caseContext renders the case header block shared by all message prompts
func (pc PromptContext) caseContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Caso: %s\n", orNA(pc.CaseTitle))
	fmt.Fprintf(&b, "Réu: %s\n", orNA(pc.Defendant))
	fmt.Fprintf(&b, "Tipo: %s\n", orNA(pc.CaseType))
	fmt.Fprintf(&b, "Tribunal: %s\n", orNA(pc.Court))
	fmt.Fprintf(&b, "Escritório parceiro: %s\n", orNA(pc.PartnerFirm))
	fmt.Fprintf(&b, "Advogado parceiro: %s", orNA(pc.PartnerLawyer))
	if !pc.TimePolicy.Empty() {
		b.WriteString("\n")
		b.WriteString(pc.TimePolicy.Instructions)
	}
	return b.String()
}

// transcript renders the recent conversation as sender:text lines
func (pc PromptContext) transcript() string {
	lines := make([]string, 0, len(pc.RecentMessages))
	for _, m := range pc.RecentMessages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
	return strings.Join(lines, "\n")
}

// BuildMessagePrompts assembles the system and user prompt pair for a
// message action.
func BuildMessagePrompts(action MessageAction, pc PromptContext) (systemPrompt, userPrompt string) {
	if action == ActionSuggestReply {
		return buildSuggestReplyPrompts(pc)
	}
	return buildGenerationPrompts(action, pc)
}

func buildSuggestReplyPrompts(pc PromptContext) (string, string) {
	var b strings.Builder

	b.WriteString("Você é um assistente de comunicação processual para uma empresa que acompanha processos judiciais e se comunica com clientes via WhatsApp, em parceria com escritórios de advocacia.\n\n")
	fmt.Fprintf(&b, "Contexto da empresa: %s\n\n", orDefault(pc.CompanyContext, defaultCompanyContext))
	b.WriteString(pc.caseContext())
	b.WriteString("\n\n")
	b.WriteString(sharedRules)
	b.WriteString("\n\n")
	b.WriteString(disclosurePlaybook)

	// The style exemplar block only exists when there is real history;
	// an empty block would teach the model nothing.
	if pc.History != "" {
		b.WriteString("\n\nEXEMPLOS DE CONVERSAS ANTERIORES (outros casos deste operador; use apenas como referência de estilo):\n")
		b.WriteString(pc.History)
		b.WriteString("\n\n")
		b.WriteString(historyRules)
	}

	b.WriteString("\n\nAnalise a conversa e classifique o estado emocional do cliente (desconfiado/curioso/resistente/ansioso/interessado).\n")
	b.WriteString("Sugira 2 respostas: uma curta e uma padrão, imitando o estilo das conversas anteriores quando disponíveis.\n\n")
	b.WriteString(`Responda em JSON:
{"state": "...", "short": "resposta curta", "standard": "resposta padrão completa"}`)

	userPrompt := fmt.Sprintf("Conversa recente:\n%s\n\nSugira respostas adequadas.", pc.transcript())
	return b.String(), userPrompt
}

func buildGenerationPrompts(action MessageAction, pc PromptContext) (string, string) {
	count := 1
	if action == ActionVariationsV1 {
		count = 3
	}

	var modifier string
	switch action {
	case ActionMakeTrustworthy:
		modifier = "\nFoque em tornar a mensagem mais confiável, incluindo referências ao escritório parceiro e ao processo."
	case ActionReduceScam:
		modifier = "\nReduza elementos que possam parecer golpe. Evite urgência, valores específicos prematuros, e links. Inclua formas de verificação."
	case ActionSimplify:
		modifier = "\nSimplificar ao máximo a linguagem. Use frases curtas, evite jargão jurídico."
	}

	systemPrompt := fmt.Sprintf(`Você é um assistente de comunicação processual.

Contexto da empresa: %s

Contexto: %s
Objetivo: %s
Tom: %s
Formalidade: %s

%s

%s
- Mencione o escritório parceiro quando relevante%s

Gere %d mensagem(ns). Para cada uma, avalie:
- confidence: nota de 0 a 10
- scam_risk: baixo/médio/alto
- scam_reasons: lista de motivos do risco

Responda em JSON:
{"messages": [{"message": "...", "short_variant": "versão curta", "confidence": N, "scam_risk": "...", "scam_reasons": ["..."]}]}`,
		orDefault(pc.CompanyContext, defaultCompanyContext),
		orNA(pc.Context),
		orNA(pc.Objective),
		orDefault(pc.Tone, "profissional"),
		orDefault(pc.Formality, "média"),
		pc.caseContext(),
		sharedRules,
		modifier,
		count,
	)

	var userPrompt string
	switch action {
	case ActionApproachV1:
		userPrompt = "Gere uma mensagem de abordagem inicial para o primeiro contato com o cliente sobre este processo."
	case ActionVariationsV1:
		userPrompt = "Gere 3 variações diferentes de mensagem para este caso."
	default:
		existing := "Gere uma mensagem nova."
		if len(pc.ExistingOutputs) > 0 && pc.ExistingOutputs[0] != "" {
			existing = pc.ExistingOutputs[0]
		}
		userPrompt = fmt.Sprintf("Reescreva/melhore esta mensagem existente:\n%s", existing)
	}

	return systemPrompt, userPrompt
}

const analysisSystemPrompt = `Você é um assistente jurídico especializado em análise de documentos brasileiros de financiamento (CCB) e petições iniciais.

TAREFA: Extraia dados estruturados combinando as informações da PETIÇÃO e do CONTRATO judicial.

DIRETRIZES DE EXTRAÇÃO DE TELEFONE (ALTA PRIORIDADE):
- O campo "phone_contract" é o seu objetivo principal. Ele deve conter o telefone de contato direto do CLIENTE.
- BUSCA EXAUSTIVA: Procure por rótulos como "Celular:", "Fone:", "Telefone:", "Tel:", "WhatsApp:", "Contato:".
- NO CONTRATO (CCB): Geralmente está no bloco de identificação do emitente/devedor, logo abaixo ou ao lado do e-mail e endereço.
- NA PETIÇÃO: Geralmente está no parágrafo de qualificação do autor no início do documento.
- MAPEAMENTO: Qualquer telefone do cliente encontrado nos documentos DEVE ser retornado no campo "phone_contract".
- CUIDADO: Ignore telefones claramente associados apenas a advogados (perto de OAB).

RESUMO EXECUTIVO:
- Resumo de 2 a 3 frases concisas.
- Deve identificar Autor, Réu, objetivo da ação e motivo principal.
- Evite detalhes técnicos desnecessários como CPFs e jurisprudência.

Responda APENAS com JSON válido:
{
  "client_name": "Nome",
  "client_cpf": "CPF",
  "defendant": "Réu",
  "case_type": "Ação",
  "court": "Vara",
  "process_number": "Processo",
  "distribution_date": "YYYY-MM-DD",
  "case_value": 0.00,
  "lawyers": [{"name": "...", "oab": "...", "role": "..."}],
  "partner_law_firm": "Escritório",
  "phone_contract": "Apenas dígitos do telefone encontrado",
  "summary": "Resumo equilibrado"
}`

// BuildAnalysisPrompts assembles the extraction prompt pair for the
// petition+contract analysis variant. Both texts are truncated to their
// ceilings before inclusion.
func BuildAnalysisPrompts(petitionText, contractText, phoneProvided string) (string, string) {
	pText := TruncateText(petitionText, MaxPetitionChars)
	cText := TruncateText(contractText, MaxContractChars)

	userPrompt := fmt.Sprintf("Telefone fornecido pelo operador: %s\n\nTEXTO DA PETIÇÃO:\n%s\n\nTEXTO DO CONTRATO/CCB:\n%s",
		orDefault(phoneProvided, "não informado"),
		orDefault(pText, "Não fornecido"),
		orDefault(cText, "Não fornecido"),
	)

	return analysisSystemPrompt, userPrompt
}

// BuildDocumentAnalysisPrompts assembles the extraction prompt pair for a
// stored case document of arbitrary type.
func BuildDocumentAnalysisPrompts(docType, text string) (string, string) {
	userPrompt := fmt.Sprintf("Tipo do documento: %s\n\nTEXTO DO DOCUMENTO:\n%s",
		orDefault(docType, "N/A"),
		TruncateText(text, MaxDocumentChars),
	)
	return analysisSystemPrompt, userPrompt
}

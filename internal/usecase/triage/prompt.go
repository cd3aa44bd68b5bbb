package triage

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/navegador/internal/domain"
)

// ToolName is the single function declared to the model.
const ToolName = "consultar_rede_atendimento"

const systemInstruction = `Você é o "Navegador de Impacto Araraquara", um assistente de triagem especializado no atendimento à população em situação de rua.

FLUXO DE ATENDIMENTO:
1. Analise o relato do usuário para identificar: Gravidade (Saúde), Demanda Principal e Perfil.
   - GRAVE: Risco de morte, fraturas, dor no peito, falta de ar -> Encaminhar para UPA.
   - LEVE: Febre baixa, curativos, receitas -> Encaminhar para UBS.
   - SOCIAL/PERNOITE: Casa de Acolhida, São Pio (aceita animais), Sacrário, Centro Pop (Docs).
2. Use a ferramenta 'consultar_rede_atendimento' passando os parâmetros identificados.
3. Com o resultado da ferramenta, gere a resposta final em JSON com os campos destination, justification, address_contact, procedures (lista) e severity_level (low, medium ou high).

IMPORTANTE:
- Se o usuário mencionar animais/pets, priorize locais que aceitam animais (Associação São Pio).
- Se for saúde grave, priorize UPAs.`

var toolDefinition = domain.ToolDefinition{
	Name: ToolName,
	Description: "Busca locais de atendimento para pessoas em situação de rua em Araraquara " +
		"com base na demanda, horário e perfil do usuário.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"demanda": map[string]any{
				"type":        "string",
				"description": "A necessidade atual (ex: pernoite, alimentação, urgência médica, emissão de documentos).",
			},
			"perfil_usuario": map[string]any{
				"type":        "string",
				"description": "Perfil da pessoa (ex: homem, mulher com filhos, pessoa com animal de estimação).",
			},
			"horario_atual": map[string]any{
				"type":        "string",
				"description": "Horário atual no formato HH:mm.",
			},
			"gravidade": map[string]any{
				"type":        "string",
				"enum":        []string{"leve", "moderada", "grave"},
				"description": "Nível de urgência da situação de saúde.",
			},
		},
		"required": []string{"demanda"},
	},
}

// resultSchema is the JSON schema of the final answer, quoted in the repair prompt.
var resultSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"destination":     map[string]any{"type": "string"},
		"justification":   map[string]any{"type": "string"},
		"address_contact": map[string]any{"type": "string"},
		"procedures":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"severity_level":  map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
	},
	"required": []string{"destination", "justification", "address_contact", "procedures", "severity_level"},
}

func userMessage(report, clock string) string {
	return fmt.Sprintf("Relato do caso: \"%s\". Horário atual: %s", report, clock)
}

func repairMessage(text string) string {
	schema, _ := json.Marshal(resultSchema)
	return fmt.Sprintf(
		"Converta o seguinte texto em JSON estrito (sem markdown) seguindo este schema: %s.\nTexto: %s",
		schema, text,
	)
}

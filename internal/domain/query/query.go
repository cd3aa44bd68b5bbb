package query

import "strings"

// Gravidade is the severity of the reported situation, as classified at intake.
type Gravidade string

// Intake severity values.
const (
	Leve     Gravidade = "leve"
	Moderada Gravidade = "moderada"
	Grave    Gravidade = "grave"
)

// IsValid checks if the value is one of the intake severities.
func (g Gravidade) IsValid() bool {
	return g == Leve || g == Moderada || g == Grave
}

// Attributes are the query fields extracted from a free-text report by the language model.
// Every field is optional; absent fields contribute nothing to matching.
type Attributes struct {
	Demanda       string
	PerfilUsuario string
	HorarioAtual  string // HH:MM, informational only
	Gravidade     Gravidade
}

// SearchString joins the non-empty demanda, perfil and gravidade with single spaces
// and lowercases the result.
func (a Attributes) SearchString() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Demanda, a.PerfilUsuario, string(a.Gravidade)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// IsEmpty reports whether no scorable field is set.
func (a Attributes) IsEmpty() bool {
	return a.Demanda == "" && a.PerfilUsuario == "" && a.Gravidade == ""
}

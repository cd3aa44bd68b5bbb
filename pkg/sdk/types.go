package navegador

import "time"

// Gravidade is the severity hint used by the matcher.
type Gravidade string

// Gravidade constants.
const (
	GravidadeLeve     Gravidade = "leve"
	GravidadeModerada Gravidade = "moderada"
	GravidadeGrave    Gravidade = "grave"
)

// Severity is the urgency assigned by triage.
type Severity string

// Severity constants.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Location is a service point of the catalog.
type Location struct {
	Name    string
	Address string
	Contact string
	Tags    []string
}

// ScoredLocation is a location with its relevance score.
type ScoredLocation struct {
	Location
	Score int
}

// MatchQuery carries the attributes the matcher scores against.
// All fields are optional.
type MatchQuery struct {
	Demanda       string
	PerfilUsuario string
	HorarioAtual  string
	Gravidade     Gravidade
	// TopK limits the result size; 0 uses the client default.
	TopK int
}

// TriageResult is the structured recommendation produced by Triage.
type TriageResult struct {
	Destination    string
	Justification  string
	AddressContact string
	Procedures     []string
	Severity       Severity
}

// HistoryItem is a recorded triage.
type HistoryItem struct {
	ID            string
	Timestamp     time.Time
	OriginalQuery string
	Result        TriageResult
}

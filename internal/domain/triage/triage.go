package triage

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/navegador/internal/domain"
)

// Severity is the urgency level shown with the final recommendation.
type Severity string

// Result severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IsValid checks if the severity is one of the supported values.
func (s Severity) IsValid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Result is the structured recommendation produced for one report.
type Result struct {
	destination    string
	justification  string
	addressContact string
	procedures     []string
	severity       Severity
}

// New creates a validated Result.
func New(
	destination, justification, addressContact string,
	procedures []string, severity Severity,
) (Result, error) {
	if strings.TrimSpace(destination) == "" {
		return Result{}, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}
	if !severity.IsValid() {
		return Result{}, fmt.Errorf("%w: unknown severity level %q", domain.ErrInvalidInput, severity)
	}
	procs := make([]string, 0, len(procedures))
	for _, p := range procedures {
		if p = strings.TrimSpace(p); p != "" {
			procs = append(procs, p)
		}
	}
	return Result{
		destination:    destination,
		justification:  justification,
		addressContact: addressContact,
		procedures:     procs,
		severity:       severity,
	}, nil
}

// Destination returns the recommended service.
func (r Result) Destination() string { return r.destination }

// Justification explains why the destination was chosen.
func (r Result) Justification() string { return r.justification }

// AddressContact returns address and phone of the destination.
func (r Result) AddressContact() string { return r.addressContact }

// Procedures returns a copy of the checklist to follow.
func (r Result) Procedures() []string {
	out := make([]string, len(r.procedures))
	copy(out, r.procedures)
	return out
}

// Severity returns the urgency level.
func (r Result) Severity() Severity { return r.severity }

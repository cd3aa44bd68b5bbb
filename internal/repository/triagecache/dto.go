package triagecache

import domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"

type resultDTO struct {
	Destination    string   `json:"destination"`
	Justification  string   `json:"justification"`
	AddressContact string   `json:"address_contact"`
	Procedures     []string `json:"procedures"`
	SeverityLevel  string   `json:"severity_level"`
}

func fromDomain(r domtriage.Result) resultDTO {
	return resultDTO{
		Destination:    r.Destination(),
		Justification:  r.Justification(),
		AddressContact: r.AddressContact(),
		Procedures:     r.Procedures(),
		SeverityLevel:  string(r.Severity()),
	}
}

func (d resultDTO) toDomain() (domtriage.Result, error) {
	return domtriage.New(
		d.Destination, d.Justification, d.AddressContact,
		d.Procedures, domtriage.Severity(d.SeverityLevel),
	)
}

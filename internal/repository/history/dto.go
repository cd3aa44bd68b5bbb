package history

import (
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

// itemDTO is the stored shape of one history entry.
type itemDTO struct {
	ID             string   `json:"id"`
	Timestamp      int64    `json:"timestamp"`
	OriginalQuery  string   `json:"original_query"`
	Destination    string   `json:"destination"`
	Justification  string   `json:"justification"`
	AddressContact string   `json:"address_contact"`
	Procedures     []string `json:"procedures"`
	SeverityLevel  string   `json:"severity_level"`
}

func fromDomain(it domhistory.Item) itemDTO {
	r := it.Result()
	return itemDTO{
		ID:             it.ID(),
		Timestamp:      it.Timestamp(),
		OriginalQuery:  it.OriginalQuery(),
		Destination:    r.Destination(),
		Justification:  r.Justification(),
		AddressContact: r.AddressContact(),
		Procedures:     r.Procedures(),
		SeverityLevel:  string(r.Severity()),
	}
}

func (d itemDTO) toDomain() (domhistory.Item, error) {
	r, err := domtriage.New(
		d.Destination, d.Justification, d.AddressContact,
		d.Procedures, domtriage.Severity(d.SeverityLevel),
	)
	if err != nil {
		return domhistory.Item{}, err
	}
	return domhistory.New(d.ID, d.Timestamp, d.OriginalQuery, r), nil
}

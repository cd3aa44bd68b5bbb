package catalog

import "github.com/kailas-cloud/navegador/internal/domain/location"

// fileDTO is the YAML layout of a catalog file.
type fileDTO struct {
	Locations []locationDTO `yaml:"locations"`
}

type locationDTO struct {
	Name    string   `yaml:"name"`
	Address string   `yaml:"address"`
	Contact string   `yaml:"contact"`
	Tags    []string `yaml:"tags"`
}

func (d locationDTO) toDomain() location.ServiceLocation {
	return location.New(d.Name, d.Address, d.Contact, d.Tags)
}

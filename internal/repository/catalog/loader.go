package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/navegador/internal/domain"
	"github.com/kailas-cloud/navegador/internal/domain/location"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default returns the built-in Araraquara service directory.
func Default() (location.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (location.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return location.Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return location.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault reads path when set, otherwise returns the built-in directory.
func LoadOrDefault(path string) (location.Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes a YAML catalog document. Unknown fields are rejected.
func Parse(data []byte) (location.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f fileDTO
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return location.Catalog{}, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
		}
		return location.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	locs := make([]location.ServiceLocation, len(f.Locations))
	for i, d := range f.Locations {
		locs[i] = d.toDomain()
	}
	c, err := location.NewCatalog(locs)
	if err != nil {
		return location.Catalog{}, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

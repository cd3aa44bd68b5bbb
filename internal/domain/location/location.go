package location

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/navegador/internal/domain"
)

// ServiceLocation is an immutable entry of the service directory.
type ServiceLocation struct {
	name    string
	address string
	contact string
	tags    []string
	tagSet  map[string]struct{}
}

// New creates a ServiceLocation. Tags are lowercased, trimmed and de-duplicated
// keeping their first-seen order; empty tags are dropped.
func New(name, address, contact string, tags []string) ServiceLocation {
	l := ServiceLocation{
		name:    name,
		address: address,
		contact: contact,
		tagSet:  make(map[string]struct{}, len(tags)),
	}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := l.tagSet[t]; dup {
			continue
		}
		l.tagSet[t] = struct{}{}
		l.tags = append(l.tags, t)
	}
	return l
}

// Name returns the location display name.
func (l ServiceLocation) Name() string { return l.name }

// Address returns the street address.
func (l ServiceLocation) Address() string { return l.address }

// Contact returns the phone contact.
func (l ServiceLocation) Contact() string { return l.contact }

// Tags returns a copy of the tag list in declaration order.
func (l ServiceLocation) Tags() []string {
	out := make([]string, len(l.tags))
	copy(out, l.tags)
	return out
}

// HasTag reports whether the location carries the given lowercase tag.
func (l ServiceLocation) HasTag(tag string) bool {
	_, ok := l.tagSet[tag]
	return ok
}

// SearchText returns the lowercased "name tag1 tag2 ..." string used for keyword matching.
func (l ServiceLocation) SearchText() string {
	return strings.ToLower(l.name + " " + strings.Join(l.tags, " "))
}

// Catalog is the ordered, read-only list of locations available for recommendation.
// Order is significant: it breaks ties between equally scored entries.
type Catalog struct {
	locations []ServiceLocation
}

// NewCatalog validates and copies the given locations.
func NewCatalog(locations []ServiceLocation) (Catalog, error) {
	if len(locations) == 0 {
		return Catalog{}, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
	}
	for i, l := range locations {
		if strings.TrimSpace(l.name) == "" {
			return Catalog{}, fmt.Errorf("%w: location %d has no name", domain.ErrInvalidInput, i)
		}
	}
	out := make([]ServiceLocation, len(locations))
	copy(out, locations)
	return Catalog{locations: out}, nil
}

// Len returns the number of locations.
func (c Catalog) Len() int { return len(c.locations) }

// Locations returns a copy of the catalog entries in catalog order.
func (c Catalog) Locations() []ServiceLocation {
	out := make([]ServiceLocation, len(c.locations))
	copy(out, c.locations)
	return out
}

// ByName returns the location with the given name.
func (c Catalog) ByName(name string) (ServiceLocation, bool) {
	for _, l := range c.locations {
		if l.name == name {
			return l, true
		}
	}
	return ServiceLocation{}, false
}

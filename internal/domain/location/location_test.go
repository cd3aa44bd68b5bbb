package location

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/navegador/internal/domain"
)

func TestNew_NormalizesTags(t *testing.T) {
	l := New("Casa de Acolhida", "Av. Sete de Setembro, 678", "(16) 3336-7510",
		[]string{" Pernoite", "pernoite", "", "Feminino"})

	tags := l.Tags()
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	if tags[0] != "pernoite" || tags[1] != "feminino" {
		t.Errorf("unexpected tags order: %v", tags)
	}
	if !l.HasTag("feminino") {
		t.Error("expected HasTag(feminino)")
	}
	if l.HasTag("Feminino") {
		t.Error("HasTag must compare against lowercase tags")
	}
}

func TestTags_ReturnsCopy(t *testing.T) {
	l := New("UPA Central", "Via Expressa", "(16) 3334-6900", []string{"saude", "grave"})
	tags := l.Tags()
	tags[0] = "mutated"

	if l.Tags()[0] != "saude" {
		t.Error("Tags() must not expose internal slice")
	}
}

func TestSearchText(t *testing.T) {
	l := New("CAPS AD", "", "", []string{"saude", "mental"})
	if got := l.SearchText(); got != "caps ad saude mental" {
		t.Errorf("SearchText() = %q", got)
	}
}

func TestNewCatalog_Empty(t *testing.T) {
	_, err := NewCatalog(nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewCatalog_MissingName(t *testing.T) {
	_, err := NewCatalog([]ServiceLocation{New(" ", "addr", "", nil)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCatalog_PreservesOrderAndCopies(t *testing.T) {
	in := []ServiceLocation{
		New("A", "", "", nil),
		New("B", "", "", nil),
	}
	c, err := NewCatalog(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in[0] = New("Z", "", "", nil)

	locs := c.Locations()
	if c.Len() != 2 || locs[0].Name() != "A" || locs[1].Name() != "B" {
		t.Errorf("unexpected catalog contents: %v", locs)
	}

	if _, ok := c.ByName("B"); !ok {
		t.Error("expected ByName(B) to succeed")
	}
	if _, ok := c.ByName("Z"); ok {
		t.Error("catalog must not see caller mutations")
	}
}

package departments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

func TestDefaultSetIsValid(t *testing.T) {
	registry, err := NewRegistry(Default())
	if err != nil {
		t.Fatalf("default set rejected: %v", err)
	}
	if len(registry.All()) != 9 {
		t.Fatalf("default set has %d departments, want 9", len(registry.All()))
	}

	dept, ok := registry.Get("vehicles")
	if !ok || dept.Prefix != "V" {
		t.Fatalf("vehicles lookup: %+v ok=%v", dept, ok)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]models.Department{
		{ID: "hr", Prefix: "HR"},
		{ID: "hr", Prefix: "H2"},
	})
	if err == nil {
		t.Fatalf("duplicate id accepted")
	}
}

func TestNewRegistryRejectsEmptyPrefix(t *testing.T) {
	_, err := NewRegistry([]models.Department{{ID: "hr"}})
	if err == nil {
		t.Fatalf("empty prefix accepted")
	}
}

func TestAllPreservesConfigurationOrder(t *testing.T) {
	registry, err := NewRegistry([]models.Department{
		{ID: "b", Prefix: "B"},
		{ID: "a", Prefix: "A"},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	all := registry.All()
	if all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("order changed: %+v", all)
	}
}

func TestResolveDeepLink(t *testing.T) {
	registry, err := NewRegistry(Default())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	if _, ok := registry.Resolve("finance"); !ok {
		t.Fatalf("known id not resolved")
	}
	if _, ok := registry.Resolve("  finance  "); !ok {
		t.Fatalf("padded id not resolved")
	}
	if _, ok := registry.Resolve("bakery"); ok {
		t.Fatalf("unknown id resolved")
	}
	if _, ok := registry.Resolve(""); ok {
		t.Fatalf("empty id resolved")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	raw := `departments:
  - id: triage
    name_ar: "قسم الفرز"
    name_en: "Triage Section"
    prefix: T
    room_name_ar: "مكتب الفرز"
    room_name_en: "Triage Office"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	depts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(depts) != 1 || depts[0].ID != "triage" || depts[0].Prefix != "T" || depts[0].NameEn != "Triage Section" {
		t.Fatalf("loaded: %+v", depts)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}

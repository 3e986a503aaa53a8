package departments

import (
	"fmt"
	"os"
	"strings"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"

	"gopkg.in/yaml.v3"
)

// Registry holds the fixed department set. It is built once at startup
// and never mutated afterwards.
type Registry struct {
	ordered []models.Department
	byID    map[string]models.Department
}

func NewRegistry(depts []models.Department) (*Registry, error) {
	if len(depts) == 0 {
		return nil, fmt.Errorf("department set is empty")
	}
	byID := make(map[string]models.Department, len(depts))
	for _, dept := range depts {
		if dept.ID == "" {
			return nil, fmt.Errorf("department with empty id")
		}
		if dept.Prefix == "" {
			return nil, fmt.Errorf("department %s: empty prefix", dept.ID)
		}
		if _, exists := byID[dept.ID]; exists {
			return nil, fmt.Errorf("duplicate department id %s", dept.ID)
		}
		byID[dept.ID] = dept
	}
	ordered := make([]models.Department, len(depts))
	copy(ordered, depts)
	return &Registry{ordered: ordered, byID: byID}, nil
}

// LoadFile reads a department set from a YAML file.
func LoadFile(path string) ([]models.Department, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read departments file: %w", err)
	}
	var doc struct {
		Departments []models.Department `yaml:"departments"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse departments file: %w", err)
	}
	return doc.Departments, nil
}

func (r *Registry) Get(id string) (models.Department, bool) {
	dept, ok := r.byID[id]
	return dept, ok
}

// All returns the departments in configuration order.
func (r *Registry) All() []models.Department {
	out := make([]models.Department, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Resolve looks up a department id supplied via a QR deep link.
// Unknown or empty values resolve to nothing.
func (r *Registry) Resolve(raw string) (models.Department, bool) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return models.Department{}, false
	}
	return r.Get(id)
}

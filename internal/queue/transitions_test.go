package queue

import (
	"testing"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{"call", models.StatusWaiting, true},
		{"call", models.StatusCalled, true},
		{"call", models.StatusCompleted, false},
		{"complete", models.StatusWaiting, true},
		{"complete", models.StatusCalled, true},
		{"complete", models.StatusCompleted, true},
		{"unknown", models.StatusWaiting, false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

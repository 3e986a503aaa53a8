package queue

import "github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"

// A call on an already-called ticket is a recall; completed tickets
// never come back to the serving display. Complete is idempotent from
// any status.
var transitionMap = map[string][]string{
	"call":     {models.StatusWaiting, models.StatusCalled},
	"complete": {models.StatusWaiting, models.StatusCalled, models.StatusCompleted},
}

func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

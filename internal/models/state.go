package models

// QueueState is the snapshot of the whole queue: every ticket ever
// issued this session, in creation order, plus the last issued number
// per department. LastNumbers is a cache; it always equals the highest
// ticket number per department, or 0 when none exist.
type QueueState struct {
	Tickets     []Ticket       `json:"tickets"`
	LastNumbers map[string]int `json:"last_numbers"`
}

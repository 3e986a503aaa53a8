package hub

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

// Subscription scopes a display client to one department. An empty
// DepartmentID receives everything.
type Subscription struct {
	DepartmentID string
}

type Client struct {
	ID           string
	Send         chan []byte
	Subscription Subscription
}

// Hub fans queue events and announcement audio out to connected
// display screens.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

type SubscribeMessage struct {
	Action       string `json:"action"`
	DepartmentID string `json:"department_id"`
}

type ticketEnvelope struct {
	Type      string        `json:"type"`
	Ticket    models.Ticket `json:"ticket"`
	CreatedAt time.Time     `json:"created_at"`
}

type audioEnvelope struct {
	Type         string    `json:"type"`
	DepartmentID string    `json:"department_id"`
	DisplayID    string    `json:"display_id"`
	Audio        string    `json:"audio"`
	SampleRate   int       `json:"sample_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

func New() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) UpdateSubscription(client *Client, sub Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client.Subscription = sub
}

// BroadcastTicket pushes a ticket lifecycle event to every client
// subscribed to the ticket's department.
func (h *Hub) BroadcastTicket(eventType string, ticket models.Ticket) {
	payload, err := json.Marshal(ticketEnvelope{
		Type:      eventType,
		Ticket:    ticket,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("encode ticket event: %v", err)
		return
	}
	h.broadcast(payload, ticket.DepartmentID)
}

// BroadcastAudio pushes synthesized announcement audio (base64 PCM) to
// displays so they can play it.
func (h *Hub) BroadcastAudio(departmentID, displayID string, pcm []byte) {
	payload, err := json.Marshal(audioEnvelope{
		Type:         "announcement_audio",
		DepartmentID: departmentID,
		DisplayID:    displayID,
		Audio:        base64.StdEncoding.EncodeToString(pcm),
		SampleRate:   24000,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Printf("encode announcement audio: %v", err)
		return
	}
	h.broadcast(payload, departmentID)
}

func (h *Hub) broadcast(payload []byte, departmentID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.Subscription.DepartmentID != "" && client.Subscription.DepartmentID != departmentID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			log.Printf("drop message for client %s", client.ID)
		}
	}
}

func ParseSubscribe(data []byte) (SubscribeMessage, bool) {
	var msg SubscribeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return SubscribeMessage{}, false
	}
	if msg.Action != "subscribe" && msg.Action != "unsubscribe" {
		return SubscribeMessage{}, false
	}
	return msg, true
}

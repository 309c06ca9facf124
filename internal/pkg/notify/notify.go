package notify

import "github.com/presensi-hq/presensi-backend-go/internal/pkg/sse"

// Notifier receives fire-and-forget events on state transitions. Core
// correctness never depends on delivery; implementations must not block.
type Notifier interface {
	Notify(employeeID string, name string, data interface{})
}

// HubNotifier publishes events to the in-process SSE hub.
type HubNotifier struct {
	hub *sse.Hub
}

func NewHubNotifier(hub *sse.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(employeeID string, name string, data interface{}) {
	n.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Name:       name,
		Data:       data,
	})
}

// Nop discards all events; used in tests.
type Nop struct{}

func (Nop) Notify(string, string, interface{}) {}

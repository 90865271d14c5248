package ws

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients connected for the given owner
	Publish(ownerKey int32, event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to the owner's clients
func (h *Hub) Publish(ownerKey int32, event Event) {
	h.Broadcast(ownerKey, event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(ownerKey int32, event Event) {}

// OwnerKey maps an optional owner ID onto a hub key. The zero key is the
// single-user variant where expenses have no owner.
func OwnerKey(ownerID *int32) int32 {
	if ownerID == nil {
		return 0
	}
	return *ownerID
}

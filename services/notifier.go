package services

// Event names pushed over the realtime channel.
const (
	EventNewOrder     = "new_order"
	EventOrderUpdate  = "order_update"
	EventOrderDeleted = "order_deleted"
)

// Notifier is the outbound side channel for live UIs. Implementations must
// never block the caller beyond their own internal timeout and must never
// return an error: a missed notification is acceptable, a failed mutation
// is not.
type Notifier interface {
	Publish(tenantID uint, event string, data interface{})
}

// NopNotifier drops every event. Used when no realtime hub is wired in.
type NopNotifier struct{}

func (NopNotifier) Publish(uint, string, interface{}) {}

package service

// Notifier receives events for connected terminals.
type Notifier interface {
	Publish(eventType string, payload interface{})
}

// Event types published by the services.
const (
	EventStockUpdate   = "stock_update"
	EventSaleCompleted = "sale_completed"
)

type nopNotifier struct{}

func (nopNotifier) Publish(string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

package events

// Topic constants for domain events emitted by the platform.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingPaid      = "booking.paid"
	TopicBookingAbandoned = "booking.abandoned"
	TopicPaymentFailed    = "payment.failed"
	TopicCustomerJoined   = "customer.joined"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicBookingCreated,
		TopicBookingPaid,
		TopicBookingAbandoned,
		TopicPaymentFailed,
		TopicCustomerJoined,
	}
}

var knownTopics = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, topic := range DefaultTopics() {
		set[topic] = struct{}{}
	}
	return set
}()

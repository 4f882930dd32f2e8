package service

import "context"

// Notification is a message queued for out-of-band delivery.
type Notification struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Recipient string `json:"recipient"`
}

// Notifier accepts notifications for asynchronous delivery. Failures are
// logged by callers, never propagated to the vote transaction.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

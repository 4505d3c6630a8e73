package workflow

import (
	"github.com/sony/gobreaker"

	"github.com/rajputritesh1907/taskbackend/logging"
)

// EmailSender is the mail transport boundary. Failures must be
// catchable; the dispatcher never lets them reach the caller.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Dispatcher delivers a batch of notifications. Implementations are
// best-effort: a failed delivery is logged and dropped, and must not
// stop delivery of the remaining notifications.
type Dispatcher interface {
	Dispatch(notes []Notification)
}

// EmailDispatcher sends each notification through the SMTP transport,
// guarded by a circuit breaker so a dead mail server cannot stall
// request handling once it has tripped.
type EmailDispatcher struct {
	sender  EmailSender
	breaker *gobreaker.CircuitBreaker
}

func NewEmailDispatcher(sender EmailSender, breaker *gobreaker.CircuitBreaker) *EmailDispatcher {
	return &EmailDispatcher{sender: sender, breaker: breaker}
}

func (d *EmailDispatcher) Dispatch(notes []Notification) {
	for _, n := range notes {
		_, err := d.breaker.Execute(func() (interface{}, error) {
			return nil, d.sender.Send(n.To, n.Subject, n.Body)
		})
		if err != nil {
			logging.Logger.Warnf("Event ID: NOTIFICATION_SEND_FAILED, Description: Email to %s (%s) could not be sent: %v", n.To, n.Subject, err)
		}
	}
}

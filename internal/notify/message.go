// Package notify implements the outbound notification gateway.  The
// engine composes fully-formed messages (recipient, subject, plain
// text, markup body) and hands them off fire-and-forget; delivery is
// decoupled from request handling by a durable RabbitMQ queue whose
// consumer appends each message to a log file.  No real mail moves.
package notify

import (
	"errors"
	"fmt"
)

// QueueName is the durable queue notifications travel through.
const QueueName = "notification.send"

// Message is a fully-formed notification.  All four fields are
// required; senders reject incomplete messages without delivering.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Validate reports the first missing required field, if any.
func (m Message) Validate() error {
	switch {
	case m.To == "":
		return errors.New("missing to")
	case m.Subject == "":
		return errors.New("missing subject")
	case m.Text == "":
		return errors.New("missing text")
	case m.HTML == "":
		return errors.New("missing html")
	}
	return nil
}

// Recipient formats a name/address pair as a mail recipient header,
// e.g. `"Ada Lovelace" <ada@example.com>`.
func Recipient(name, email string) string {
	return fmt.Sprintf("%q <%s>", name, email)
}

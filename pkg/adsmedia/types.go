package adsmedia

import "fmt"

// EmailMessage describes a single transactional email. To is required;
// the remaining fields are optional and omitted from the wire request when
// empty, because the API distinguishes an absent field from an empty string.
// The recipient address is forwarded as-is; deliverability is the service's
// concern, not the client's.
type EmailMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
	Text     string `json:"text,omitempty"`
	ToName   string `json:"to_name,omitempty"`
	FromName string `json:"from_name,omitempty"`
	ReplyTo  string `json:"reply_to,omitempty"`
}

// Validate checks the minimum the API requires before a request is attempted.
func (m EmailMessage) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient address is required", ErrInvalidMessage)
	}
	return nil
}

// Recipient is a single batch recipient.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BatchMessage describes a batch send of up to 1000 recipients. The recipient
// limit is enforced server-side; the client forwards the list as given.
// Subject and HTML support the API's personalization placeholders.
type BatchMessage struct {
	Recipients []Recipient `json:"recipients"`
	Subject    string      `json:"subject"`
	HTML       string      `json:"html"`
	Text       string      `json:"text,omitempty"`
	Preheader  string      `json:"preheader,omitempty"`
	FromName   string      `json:"from_name,omitempty"`
}

func (m BatchMessage) Validate() error {
	if len(m.Recipients) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for i, r := range m.Recipients {
		if r.Email == "" {
			return fmt.Errorf("%w: recipient %d has no email address", ErrInvalidMessage, i)
		}
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.HTML == "" {
		return fmt.Errorf("%w: html body is required", ErrInvalidMessage)
	}
	return nil
}

// SendResult is the payload returned by a successful single send.
type SendResult struct {
	MessageID string `json:"message_id"`
	SendID    int    `json:"send_id"`
	To        string `json:"to"`
}

// BatchResult is the payload returned by a successful batch send. Batch
// delivery is asynchronous; TaskID identifies the server-side task.
type BatchResult struct {
	TaskID string `json:"task_id"`
	Queued int    `json:"queued"`
}

// SendStatus is the delivery status of a previously sent message.
type SendStatus struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	To        string `json:"to"`
}

// SuppressionStatus reports whether an address is undeliverable.
// Reason is only meaningful when Suppressed is true; the API may omit it
// either way, in which case it stays empty.
type SuppressionStatus struct {
	Suppressed bool   `json:"suppressed"`
	Reason     string `json:"reason"`
}

// PingResult identifies the authenticated account. Used for liveness and
// credential verification. Note the camelCase userId on the wire.
type PingResult struct {
	UserID  string `json:"userId"`
	Version string `json:"version"`
}

// UsageStats summarizes account resources. Fields the API omits decode to
// zero, which is the documented default.
type UsageStats struct {
	Servers       int `json:"servers"`
	Lists         int `json:"lists"`
	Schedules     int `json:"schedules"`
	SentThisMonth int `json:"sent_this_month"`
}

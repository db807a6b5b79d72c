package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
)

// sendOperation sends a single email with all fields given at once.
type sendOperation struct {
	client *adsmedia.Client
}

func (o *sendOperation) Name() string { return "send" }

func (o *sendOperation) Description() string {
	return "Send a transactional email. Useful for notifications, confirmations, and alerts."
}

func (o *sendOperation) Schema() []Param {
	return []Param{
		{Name: "to", Type: "string", Description: "Recipient email address", Required: true},
		{Name: "subject", Type: "string", Description: "Email subject line", Required: true},
		{Name: "html", Type: "string", Description: "HTML content of the email", Required: true},
		{Name: "to_name", Type: "string", Description: "Recipient name"},
		{Name: "from_name", Type: "string", Description: "Sender display name"},
	}
}

func (o *sendOperation) Invoke(ctx context.Context, args map[string]string) (string, error) {
	if err := requireArgs(o.Schema(), args); err != nil {
		return "", err
	}

	result, err := o.client.SendEmail(ctx, adsmedia.EmailMessage{
		To:       args["to"],
		Subject:  args["subject"],
		HTML:     args["html"],
		ToName:   args["to_name"],
		FromName: args["from_name"],
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Email sent to %s. Message ID: %s", args["to"], result.MessageID), nil
}

// checkOperation checks suppression status before sending.
type checkOperation struct {
	client *adsmedia.Client
}

func (o *checkOperation) Name() string { return "check" }

func (o *checkOperation) Description() string {
	return "Check whether an email address is suppressed (bounced, unsubscribed, or blocked)."
}

func (o *checkOperation) Schema() []Param {
	return []Param{
		{Name: "email", Type: "string", Description: "Email address to check", Required: true},
	}
}

func (o *checkOperation) Invoke(ctx context.Context, args map[string]string) (string, error) {
	if err := requireArgs(o.Schema(), args); err != nil {
		return "", err
	}

	status, err := o.client.CheckSuppression(ctx, args["email"])
	if err != nil {
		return "", err
	}
	if status.Suppressed {
		reason := status.Reason
		if reason == "" {
			reason = "unknown"
		}
		return fmt.Sprintf("%s is suppressed. Reason: %s", args["email"], reason), nil
	}
	return fmt.Sprintf("%s is not suppressed - safe to send.", args["email"]), nil
}

// pingOperation verifies connectivity and the credential.
type pingOperation struct {
	client *adsmedia.Client
}

func (o *pingOperation) Name() string { return "ping" }

func (o *pingOperation) Description() string {
	return "Test API connectivity and authentication."
}

func (o *pingOperation) Schema() []Param { return nil }

func (o *pingOperation) Invoke(ctx context.Context, _ map[string]string) (string, error) {
	result, err := o.client.Ping(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Connected. User ID: %s, API version: %s", result.UserID, result.Version), nil
}

// usageOperation reports account usage counters.
type usageOperation struct {
	client *adsmedia.Client
}

func (o *usageOperation) Name() string { return "usage" }

func (o *usageOperation) Description() string {
	return "View account usage: servers, lists, schedules, and emails sent this month."
}

func (o *usageOperation) Schema() []Param { return nil }

func (o *usageOperation) Invoke(ctx context.Context, _ map[string]string) (string, error) {
	stats, err := o.client.GetUsage(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Servers: %d\n", stats.Servers)
	fmt.Fprintf(&b, "Lists: %d\n", stats.Lists)
	fmt.Fprintf(&b, "Schedules: %d\n", stats.Schedules)
	fmt.Fprintf(&b, "Sent this month: %d", stats.SentThisMonth)
	return b.String(), nil
}

// statusOperation looks up delivery status of a sent message.
type statusOperation struct {
	client *adsmedia.Client
}

func (o *statusOperation) Name() string { return "status" }

func (o *statusOperation) Description() string {
	return "Get the delivery status of a previously sent email by message ID."
}

func (o *statusOperation) Schema() []Param {
	return []Param{
		{Name: "message_id", Type: "string", Description: "Message ID returned from send", Required: true},
	}
}

func (o *statusOperation) Invoke(ctx context.Context, args map[string]string) (string, error) {
	if err := requireArgs(o.Schema(), args); err != nil {
		return "", err
	}

	status, err := o.client.SendStatus(ctx, args["message_id"])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Message %s to %s: %s", status.MessageID, status.To, status.Status), nil
}

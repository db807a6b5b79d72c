package notify

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"sort"
	"strings"
	"sync"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"
)

// Message is a rendered notification, ready to hand to the email client.
type Message struct {
	Subject string
	HTML    string
}

// DefaultEvent is the fallback template used for unrecognized event types.
const DefaultEvent = "notification"

// Registry maps webhook event types to email templates. Subjects render
// with text/template, bodies with html/template so payload values are
// escaped. The built-in set covers the common automation events; overrides
// can be registered programmatically or loaded from YAML.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*eventTemplate
}

type eventTemplate struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
}

// NewRegistry returns a registry preloaded with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]*eventTemplate)}
	for event, tmpl := range builtinTemplates {
		// Built-ins are compile-time constants; a parse failure is a bug.
		if err := r.Register(event, tmpl.subject, tmpl.html); err != nil {
			panic(fmt.Sprintf("notify: invalid built-in template %q: %v", event, err))
		}
	}
	return r
}

// Register parses and stores a template for the event type, replacing any
// existing one.
func (r *Registry) Register(event, subject, html string) error {
	if event == "" {
		return fmt.Errorf("%w: event type is required", ErrInvalidTemplate)
	}

	subjTmpl, err := texttemplate.New(event + ".subject").Parse(subject)
	if err != nil {
		return fmt.Errorf("%w: subject for %q: %v", ErrInvalidTemplate, event, err)
	}
	htmlTmpl, err := htmltemplate.New(event + ".html").Parse(html)
	if err != nil {
		return fmt.Errorf("%w: html for %q: %v", ErrInvalidTemplate, event, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[event] = &eventTemplate{subject: subjTmpl, html: htmlTmpl}
	return nil
}

// yamlOverrides is the on-disk shape accepted by LoadYAML:
//
//	events:
//	  order_placed:
//	    subject: "Order {{.orderId}} received"
//	    html: "<p>Thanks for order {{.orderId}}!</p>"
type yamlOverrides struct {
	Events map[string]struct {
		Subject string `yaml:"subject"`
		HTML    string `yaml:"html"`
	} `yaml:"events"`
}

// LoadYAML merges template overrides from a YAML document into the registry.
func (r *Registry) LoadYAML(rd io.Reader) error {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return fmt.Errorf("%w: reading overrides: %v", ErrInvalidTemplate, err)
	}

	var overrides yamlOverrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("%w: parsing overrides: %v", ErrInvalidTemplate, err)
	}

	for event, tmpl := range overrides.Events {
		if err := r.Register(event, tmpl.Subject, tmpl.HTML); err != nil {
			return err
		}
	}
	return nil
}

// Render produces the notification email for an event. Unknown event types
// fall back to the generic notification template.
func (r *Registry) Render(event string, data map[string]any) (Message, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[event]
	if !ok {
		tmpl = r.templates[DefaultEvent]
	}
	r.mu.RUnlock()

	if tmpl == nil {
		return Message{}, fmt.Errorf("%w: no template for %q and no default", ErrInvalidTemplate, event)
	}

	var subject strings.Builder
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("%w: rendering subject for %q: %v", ErrInvalidTemplate, event, err)
	}
	var html strings.Builder
	if err := tmpl.html.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("%w: rendering html for %q: %v", ErrInvalidTemplate, event, err)
	}

	return Message{Subject: subject.String(), HTML: html.String()}, nil
}

// Events lists registered event types sorted by name.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]string, 0, len(r.templates))
	for event := range r.templates {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// builtinTemplates covers the automation events the relay understands out of
// the box: form builders, signup hooks, commerce, scheduling, and a generic
// catch-all.
var builtinTemplates = map[string]struct {
	subject string
	html    string
}{
	"form_submission": {
		subject: `New Form Submission: {{or .formName "Contact Form"}}`,
		html: `<h1>New Form Submission</h1>
<p>Form: {{or .formName "Unknown"}}</p>
<h3>Submitted Data:</h3>
<table style="border-collapse: collapse; width: 100%">
{{with .fields}}{{range $key, $value := .}}<tr><td style="padding: 8px; border: 1px solid #ddd"><strong>{{$key}}</strong></td><td style="padding: 8px; border: 1px solid #ddd">{{$value}}</td></tr>
{{end}}{{else}}{{range $key, $value := .}}<tr><td style="padding: 8px; border: 1px solid #ddd"><strong>{{$key}}</strong></td><td style="padding: 8px; border: 1px solid #ddd">{{$value}}</td></tr>
{{end}}{{end}}</table>`,
	},
	"user_signup": {
		subject: `Welcome, {{or .name "New User"}}!`,
		html: `<h1>Welcome to Our Platform!</h1>
<p>Hi {{or .name "there"}},</p>
<p>Thank you for signing up. We're excited to have you!</p>
<p>Your account has been created with email: {{or .email ""}}</p>`,
	},
	"order_placed": {
		subject: `Order Confirmation #{{or .orderId .id}}`,
		html: `<h1>Thank You for Your Order!</h1>
<p>Order #{{or .orderId .id}}</p>
<p>Total: {{or .total .amount}}</p>
<p>We'll send you tracking information when it ships.</p>`,
	},
	"payment_received": {
		subject: `Payment Received - {{.amount}}`,
		html: `<h1>Payment Confirmed</h1>
<p>Amount: {{.amount}}</p>
<p>Transaction ID: {{or .transactionId .id}}</p>
<p>Thank you for your payment!</p>`,
	},
	"appointment_booked": {
		subject: `Appointment Confirmed - {{or .date .datetime}}`,
		html: `<h1>Appointment Confirmed</h1>
<p>Date: {{or .date .datetime}}</p>
<p>Time: {{or .time ""}}</p>
<p>Service: {{or .service .type "Consultation"}}</p>
<p>We look forward to seeing you!</p>`,
	},
	DefaultEvent: {
		subject: `{{or .subject "Notification"}}`,
		html:    `<p>{{or .message "You have a new notification."}}</p>`,
	},
}

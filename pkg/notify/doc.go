// Package notify turns inbound automation webhooks into notification emails.
//
// The Handler accepts a JSON event from form builders, signup hooks,
// commerce platforms, or anything else that can POST JSON, picks an email
// template by event type, renders it with the payload data, and sends the
// result through the ADSMedia client. Unknown events fall back to a generic
// notification template.
//
// Templates are Go templates: subjects render with text/template, bodies
// with html/template so payload values are escaped. The built-in set can be
// extended or replaced programmatically or from a YAML file:
//
//	events:
//	  order_placed:
//	    subject: "Order {{.orderId}} received"
//	    html: "<p>Thanks for your order!</p>"
//
// When a shared secret is configured, inbound payloads must carry
// X-ADSMedia-Signature and X-ADSMedia-Timestamp headers; the signature is
// HMAC-SHA256 over "timestamp.body" and is checked in constant time within
// a bounded replay window.
package notify

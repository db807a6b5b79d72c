// Package adsmedia provides a typed client for the ADSMedia transactional
// email API.
//
// Every API response is wrapped in a uniform envelope, either
// {"success": true, "data": {...}} or {"success": false, "error": {"message": "..."}}.
// The client decodes the envelope defensively (a bare error string is also
// accepted) and classifies every failure into one of four sentinel errors:
//
//   - ErrNoCredential: the client has no API key
//   - ErrTransport: connection failure or timeout, safe to retry
//   - ErrService: the envelope reports success=false; APIError carries the message
//   - ErrProtocol: the response is not a recognizable envelope
//
// Callers branch on error kind with errors.Is, never on message text:
//
//	result, err := client.SendEmail(ctx, adsmedia.EmailMessage{
//	    To:      "user@example.com",
//	    Subject: "Welcome!",
//	    HTML:    "<p>Hello</p>",
//	})
//	if err != nil {
//	    var apiErr *adsmedia.APIError
//	    switch {
//	    case errors.As(err, &apiErr):
//	        // Surface apiErr.Message to the end user.
//	    case errors.Is(err, adsmedia.ErrTransport):
//	        // Safe to retry.
//	    }
//	}
//
// # Configuration
//
// Config is loaded from the environment via the config package, or built
// directly. Only the API key is required:
//
//	var cfg adsmedia.Config
//	config.MustLoad(&cfg)
//	client := adsmedia.MustNew(cfg)
//
// Each request carries the credential as a bearer token, uses a fixed
// 30-second timeout by default, and is attempted exactly once. Retry,
// rate limiting, and queuing are deliberately left to the caller.
package adsmedia

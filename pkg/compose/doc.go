// Package compose implements the multi-turn "compose email" dialogue used by
// chat front-ends: a per-session state machine that collects recipient,
// subject, and body across asynchronous user turns, then submits the draft
// through an injected EmailSender.
//
// Each session moves through
//
//	awaiting_recipient -> awaiting_subject -> awaiting_body -> submitting -> completed | failed
//
// with cancellation possible from any non-terminal state. One session exists
// per key at a time; starting a new dialogue replaces an active one. Sessions
// idle past Config.IdleTimeout are cancelled lazily on their next touch and
// proactively by a background sweeper.
//
// The engine is transport-agnostic: front-ends feed Start/Input/Cancel and
// render the returned Event however their platform expects (embed, Markdown,
// plain text). State lives only in process memory; persistence across
// restarts is deliberately out of scope.
//
//	engine := compose.MustNew(client, compose.DefaultConfig())
//	defer engine.Close()
//
//	ev := engine.Start(ctx, sessionKey)        // prompt for recipient
//	ev, err := engine.Input(ctx, sessionKey, "a@b.com") // prompt for subject
package compose

// Package command exposes the toolkit's front-end-facing surface: named
// one-shot operations (send, check, ping, usage, status) and the multi-turn
// compose dialogue, behind a single Router.
//
// The Operation interface is the one capability contract every front-end
// adapts: a chat bot maps slash commands onto OneShot, an agent framework
// maps its tool schema onto Schema/Invoke, a webhook endpoint calls OneShot
// directly. Operations return plain text; the front-end owns rendering.
//
//	router := command.NewRouter(client, engine)
//
//	out, err := router.OneShot(ctx, "check", map[string]string{"email": "a@b.com"})
//	if err != nil {
//	    reply(command.FormatError(err))
//	    return
//	}
//	reply(out)
package command

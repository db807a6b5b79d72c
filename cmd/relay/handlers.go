package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adsmedia/adsmedia-go/pkg/adsmedia"
	"github.com/adsmedia/adsmedia-go/pkg/command"
	"github.com/adsmedia/adsmedia-go/pkg/compose"
	"github.com/adsmedia/adsmedia-go/pkg/httpserver"
)

// api carries the wired toolkit pieces behind the HTTP surface.
type api struct {
	client *adsmedia.Client
	router *command.Router
	hook   http.Handler
	log    *slog.Logger
}

func newAPI(client *adsmedia.Client, router *command.Router, hook http.Handler, log *slog.Logger) *api {
	return &api{client: client, router: router, hook: hook, log: log}
}

func (a *api) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthHandler(a.log))
	r.Get("/ready", httpserver.HealthHandler(a.log, func(ctx context.Context) error {
		_, err := a.client.Ping(ctx)
		return err
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/send", a.handleSend)
		r.Post("/send/batch", a.handleSendBatch)
		r.Get("/send/status", a.handleSendStatus)
		r.Get("/suppressions/check", a.handleCheckSuppression)
		r.Get("/ping", a.handlePing)
		r.Get("/usage", a.handleUsage)

		r.Post("/ops/{name}", a.handleOneShot)

		r.Route("/compose/{key}", func(r chi.Router) {
			r.Post("/start", a.handleComposeStart)
			r.Post("/input", a.handleComposeInput)
			r.Post("/cancel", a.handleComposeCancel)
		})
	})

	r.Post("/webhooks", a.hook.ServeHTTP)

	return r
}

func (a *api) handleSend(w http.ResponseWriter, r *http.Request) {
	var msg adsmedia.EmailMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := a.client.SendEmail(r.Context(), msg)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (a *api) handleSendBatch(w http.ResponseWriter, r *http.Request) {
	var msg adsmedia.BatchMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := a.client.SendBatch(r.Context(), msg)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (a *api) handleSendStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("message_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "message_id is required")
		return
	}

	status, err := a.client.SendStatus(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, status)
}

func (a *api) handleCheckSuppression(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	status, err := a.client.CheckSuppression(r.Context(), email)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, status)
}

func (a *api) handlePing(w http.ResponseWriter, r *http.Request) {
	result, err := a.client.Ping(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (a *api) handleUsage(w http.ResponseWriter, r *http.Request) {
	stats, err := a.client.GetUsage(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// handleOneShot runs a named toolkit operation with string arguments, the
// same dispatch surface chat front-ends use.
func (a *api) handleOneShot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := map[string]string{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	text, err := a.router.OneShot(r.Context(), name, args)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, command.ErrUnknownOperation) {
			status = http.StatusNotFound
		} else if errors.Is(err, command.ErrMissingArgument) || errors.Is(err, adsmedia.ErrInvalidMessage) {
			status = http.StatusBadRequest
		}
		writeError(w, status, command.FormatError(err))
		return
	}
	writeData(w, http.StatusOK, map[string]string{"text": text})
}

func (a *api) handleComposeStart(w http.ResponseWriter, r *http.Request) {
	event := a.router.StartCompose(r.Context(), chi.URLParam(r, "key"))
	writeData(w, http.StatusOK, renderEvent(event))
}

func (a *api) handleComposeInput(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	event, err := a.router.Converse(r.Context(), chi.URLParam(r, "key"), body.Text)
	if err != nil {
		writeError(w, http.StatusConflict, command.FormatError(err))
		return
	}
	writeData(w, http.StatusOK, renderEvent(event))
}

func (a *api) handleComposeCancel(w http.ResponseWriter, r *http.Request) {
	event, err := a.router.CancelCompose(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusConflict, command.FormatError(err))
		return
	}
	writeData(w, http.StatusOK, renderEvent(event))
}

// eventView is the JSON shape of a compose event. Failed sends carry the
// user-facing guidance line, never raw error text.
type eventView struct {
	Kind      compose.EventKind `json:"kind"`
	Prompt    string            `json:"prompt,omitempty"`
	MessageID string            `json:"message_id,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func renderEvent(event compose.Event) eventView {
	view := eventView{
		Kind:      event.Kind,
		Prompt:    event.Prompt,
		MessageID: event.MessageID,
	}
	if event.Err != nil {
		view.Error = command.FormatError(event.Err)
	}
	return view
}

// writeServiceError maps client errors onto HTTP statuses, surfacing only
// classified guidance.
func (a *api) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	a.log.ErrorContext(r.Context(), "api call failed", slog.Any("error", err))

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, adsmedia.ErrInvalidMessage):
		status = http.StatusBadRequest
	case errors.Is(err, adsmedia.ErrNoCredential):
		status = http.StatusInternalServerError
	case errors.Is(err, adsmedia.ErrService):
		status = http.StatusBadGateway
	case errors.Is(err, adsmedia.ErrTransport), errors.Is(err, adsmedia.ErrProtocol):
		status = http.StatusBadGateway
	}
	writeError(w, status, command.FormatError(err))
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]any{"message": message},
	})
}

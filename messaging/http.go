// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/bureau-foundation/orgbot/lib/netutil"
)

// Request paths served by NewHTTPHandler.
const (
	EventsPath      = "/slack/events"
	InteractivePath = "/slack/interactive"
	HealthPath      = "/healthz"
)

// HTTPConfig configures NewHTTPHandler.
type HTTPConfig struct {
	// SigningSecret verifies X-Slack-Signature on every Slack request.
	// Required.
	SigningSecret string

	Dispatcher *Dispatcher

	Logger *slog.Logger
}

type httpHandler struct {
	signingSecret string
	dispatcher    *Dispatcher
	logger        *slog.Logger
}

// NewHTTPHandler returns the handler for Slack's HTTP delivery mode:
// Events API callbacks on EventsPath and interactivity payloads on
// InteractivePath. Requests with a missing, stale, or wrong signature
// are rejected with 401 before their body is interpreted.
func NewHTTPHandler(config HTTPConfig) http.Handler {
	if config.SigningSecret == "" {
		panic("messaging.NewHTTPHandler: SigningSecret is required")
	}
	if config.Dispatcher == nil {
		panic("messaging.NewHTTPHandler: Dispatcher is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := &httpHandler{
		signingSecret: config.SigningSecret,
		dispatcher:    config.Dispatcher,
		logger:        logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+EventsPath, handler.serveEvents)
	mux.HandleFunc("POST "+InteractivePath, handler.serveInteractive)
	mux.HandleFunc("GET "+HealthPath, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return mux
}

// verifiedBody reads the request body and checks Slack's signature
// over it. On failure it has already written the response.
func (handler *httpHandler) verifiedBody(writer http.ResponseWriter, request *http.Request) ([]byte, bool) {
	verifier, err := slack.NewSecretsVerifier(request.Header, handler.signingSecret)
	if err != nil {
		handler.logger.Warn("rejecting unsigned slack request", "path", request.URL.Path, "error", err)
		http.Error(writer, "invalid signature", http.StatusUnauthorized)
		return nil, false
	}

	body, err := netutil.ReadRequest(request.Body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, netutil.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(writer, "unreadable body", status)
		return nil, false
	}

	if _, err := verifier.Write(body); err != nil {
		http.Error(writer, "invalid signature", http.StatusUnauthorized)
		return nil, false
	}
	if err := verifier.Ensure(); err != nil {
		handler.logger.Warn("rejecting slack request with bad signature", "path", request.URL.Path, "error", err)
		http.Error(writer, "invalid signature", http.StatusUnauthorized)
		return nil, false
	}
	return body, true
}

func (handler *httpHandler) serveEvents(writer http.ResponseWriter, request *http.Request) {
	body, ok := handler.verifiedBody(writer, request)
	if !ok {
		return
	}

	// The token field is a deprecated verification scheme; the
	// signature check above supersedes it.
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		handler.logger.Warn("malformed events api payload", "error", err)
		http.Error(writer, "malformed event", http.StatusBadRequest)
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			http.Error(writer, "malformed challenge", http.StatusBadRequest)
			return
		}
		writer.Header().Set("Content-Type", "text/plain")
		writer.Write([]byte(challenge.Challenge))
		return
	}

	// Slack retries deliveries it believes timed out. The original
	// delivery was acknowledged and is already being handled.
	if retry := request.Header.Get("X-Slack-Retry-Num"); retry != "" {
		handler.logger.Debug("ignoring slack retry",
			"retry", retry,
			"reason", request.Header.Get("X-Slack-Retry-Reason"),
		)
		writer.WriteHeader(http.StatusOK)
		return
	}

	writer.WriteHeader(http.StatusOK)
	handler.dispatcher.Go(request.Context(), func(ctx context.Context) {
		handler.dispatcher.DispatchEvent(ctx, event)
	})
}

func (handler *httpHandler) serveInteractive(writer http.ResponseWriter, request *http.Request) {
	body, ok := handler.verifiedBody(writer, request)
	if !ok {
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		http.Error(writer, "malformed form", http.StatusBadRequest)
		return
	}
	payload := form.Get("payload")
	if payload == "" {
		http.Error(writer, "missing payload", http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		handler.logger.Warn("malformed interaction payload", "error", err)
		http.Error(writer, "malformed payload", http.StatusBadRequest)
		return
	}

	writer.WriteHeader(http.StatusOK)
	handler.dispatcher.Go(request.Context(), func(ctx context.Context) {
		handler.dispatcher.DispatchInteraction(ctx, &callback)
	})
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/bureau-foundation/orgbot/onboarding"
)

// Handler is the workflow side of the dispatcher. *onboarding.Workflow
// implements it.
type Handler interface {
	HandleMessage(ctx context.Context, message onboarding.Message, replier onboarding.Replier) error
	HandleConfirm(ctx context.Context, action onboarding.Action, replier onboarding.Replier) error
	HandleDecline(ctx context.Context, action onboarding.Action, replier onboarding.Replier) error
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Handler receives translated events. Required.
	Handler Handler

	// Replier is passed to every handler call. Required.
	Replier onboarding.Replier

	// NewRequestID generates the per-event correlation ID. Defaults
	// to random UUIDs.
	NewRequestID func() string

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Dispatcher routes Slack events to the workflow. It is shared by both
// transports and is safe for concurrent use.
type Dispatcher struct {
	handler      Handler
	replier      onboarding.Replier
	newRequestID func() string
	logger       *slog.Logger

	inflight sync.WaitGroup
}

// NewDispatcher returns a Dispatcher.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	if config.Handler == nil {
		panic("messaging.Dispatcher: Handler is required")
	}
	if config.Replier == nil {
		panic("messaging.Dispatcher: Replier is required")
	}
	newRequestID := config.NewRequestID
	if newRequestID == nil {
		newRequestID = uuid.NewString
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		handler:      config.Handler,
		replier:      config.Replier,
		newRequestID: newRequestID,
		logger:       logger,
	}
}

// DispatchEvent handles one Events API callback. Only message events
// are routed; everything else is logged and dropped.
func (dispatcher *Dispatcher) DispatchEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		dispatcher.logger.Debug("ignoring events api envelope", "type", event.Type)
		return
	}

	messageEvent, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		dispatcher.logger.Debug("ignoring event", "type", event.InnerEvent.Type)
		return
	}

	message, ok := translateMessage(messageEvent)
	if !ok {
		dispatcher.logger.Debug("ignoring message",
			"subtype", messageEvent.SubType,
			"bot_id", messageEvent.BotID,
		)
		return
	}
	message.RequestID = dispatcher.newRequestID()

	if err := dispatcher.handler.HandleMessage(ctx, message, dispatcher.replier); err != nil {
		dispatcher.logger.Error("handling message",
			"request_id", message.RequestID,
			"requester", message.RequesterID,
			"error", err,
		)
	}
}

// DispatchInteraction handles one interactivity callback, routing the
// confirmation prompt's buttons by action ID.
func (dispatcher *Dispatcher) DispatchInteraction(ctx context.Context, callback *slack.InteractionCallback) {
	action, actionID, ok := translateAction(callback)
	if !ok {
		dispatcher.logger.Debug("ignoring interaction", "type", callback.Type)
		return
	}
	action.RequestID = dispatcher.newRequestID()

	var err error
	switch actionID {
	case ActionConfirm:
		err = dispatcher.handler.HandleConfirm(ctx, action, dispatcher.replier)
	case ActionDecline:
		err = dispatcher.handler.HandleDecline(ctx, action, dispatcher.replier)
	default:
		dispatcher.logger.Debug("ignoring unknown action", "action_id", actionID)
		return
	}
	if err != nil {
		dispatcher.logger.Error("handling action",
			"request_id", action.RequestID,
			"requester", action.RequesterID,
			"action_id", actionID,
			"error", err,
		)
	}
}

// Go runs work in the background after the transport has acknowledged
// the event. The work's context is detached from ctx's cancellation so
// an invitation already in flight runs to completion during shutdown;
// Wait blocks until all such work returns.
func (dispatcher *Dispatcher) Go(ctx context.Context, work func(context.Context)) {
	detached := context.WithoutCancel(ctx)
	dispatcher.inflight.Add(1)
	go func() {
		defer dispatcher.inflight.Done()
		work(detached)
	}()
}

// Wait blocks until every call started with Go has returned.
func (dispatcher *Dispatcher) Wait() {
	dispatcher.inflight.Wait()
}

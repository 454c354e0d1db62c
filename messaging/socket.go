// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// SocketModeConfig configures RunSocketMode.
type SocketModeConfig struct {
	// Client must carry an app-level token (ClientConfig.AppToken).
	Client *slack.Client

	Dispatcher *Dispatcher

	// Debug enables socketmode's connection-level debug logging.
	Debug bool

	Logger *slog.Logger
}

// acker acknowledges Socket Mode envelopes. *socketmode.Client
// implements it.
type acker interface {
	Ack(request socketmode.Request, payload ...any)
}

// RunSocketMode connects to Slack over Socket Mode and dispatches
// events until ctx is cancelled. Reconnection is handled by
// socketmode. On return, in-flight workflow calls have finished.
func RunSocketMode(ctx context.Context, config SocketModeConfig) error {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := socketmode.New(config.Client,
		socketmode.OptionLog(NewLogAdapter(logger)),
		socketmode.OptionDebug(config.Debug),
	)

	runDone := make(chan error, 1)
	go func() {
		runDone <- client.RunContext(ctx)
	}()

	err := serveSocketEvents(ctx, client.Events, client, config.Dispatcher, logger, runDone)
	config.Dispatcher.Wait()
	return err
}

// serveSocketEvents consumes events until ctx is cancelled or the
// connection loop exits.
func serveSocketEvents(ctx context.Context, events <-chan socketmode.Event, acker acker, dispatcher *Dispatcher, logger *slog.Logger, runDone <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info("socket mode shutting down")
			return nil

		case err := <-runDone:
			if ctx.Err() != nil {
				return nil
			}
			if err == nil {
				return fmt.Errorf("socket mode: connection loop exited")
			}
			return fmt.Errorf("socket mode: %w", err)

		case event := <-events:
			handleSocketEvent(ctx, event, acker, dispatcher, logger)
		}
	}
}

func handleSocketEvent(ctx context.Context, event socketmode.Event, acker acker, dispatcher *Dispatcher, logger *slog.Logger) {
	switch event.Type {
	case socketmode.EventTypeConnecting:
		logger.Info("connecting to slack")

	case socketmode.EventTypeConnected:
		logger.Info("connected to slack")

	case socketmode.EventTypeConnectionError:
		logger.Warn("slack connection error", "data", event.Data)

	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := event.Data.(slackevents.EventsAPIEvent)
		if !ok {
			logger.Warn("unexpected events api payload", "type", fmt.Sprintf("%T", event.Data))
			return
		}
		ack(acker, event)
		dispatcher.Go(ctx, func(ctx context.Context) {
			dispatcher.DispatchEvent(ctx, eventsAPIEvent)
		})

	case socketmode.EventTypeInteractive:
		callback, ok := event.Data.(slack.InteractionCallback)
		if !ok {
			logger.Warn("unexpected interactive payload", "type", fmt.Sprintf("%T", event.Data))
			return
		}
		ack(acker, event)
		dispatcher.Go(ctx, func(ctx context.Context) {
			dispatcher.DispatchInteraction(ctx, &callback)
		})

	default:
		logger.Debug("socket mode event", "type", event.Type)
	}
}

// ack acknowledges event before any workflow work starts; Slack
// redelivers envelopes that are not acknowledged within three seconds.
func ack(acker acker, event socketmode.Event) {
	if event.Request != nil {
		acker.Ack(*event.Request)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging connects the onboarding workflow to Slack.
//
// Inbound, Slack delivers two kinds of events: messages (through the
// Events API) and button activations (through interactivity). Both
// arrive either over a Socket Mode websocket ([RunSocketMode]) or as
// signed HTTP requests ([NewHTTPHandler]). Either way they are
// translated into [onboarding.Message] and [onboarding.Action] values
// and handed to a [Dispatcher], which assigns a request ID and calls
// the workflow.
//
// Outbound, [Replier] posts plain replies and confirmation prompts
// into the thread an event came from. Prompts are rendered as Block
// Kit: a section carrying the profile link and an actions block with
// confirm and decline buttons ([ActionConfirm], [ActionDecline]). The
// confirm button's value is the canonical GitHub login, which is how
// the pending handle survives between the two steps without any
// server-side session.
//
// Slack requires button clicks and event deliveries to be acknowledged
// within three seconds. Both transports acknowledge first and run the
// workflow afterwards.
//
// Failed Web API calls surface as [*PostError]. [IsSlackError] tests
// for a specific Slack error code such as "channel_not_found", and
// [RetryAfter] extracts the back-off from an HTTP 429. The replier logs
// installation problems (bad token, missing channel access) at error
// level with the code attached.
package messaging

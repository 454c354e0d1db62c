// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import "context"

// ChannelKind classifies the conversation a message arrived in.
type ChannelKind string

// DirectMessage is a one-to-one conversation with the bot. Messages in
// any other kind of channel are ignored.
const DirectMessage ChannelKind = "im"

// Thread identifies where a reply goes: a channel and the timestamp of
// the thread's root message.
type Thread struct {
	ChannelID string
	Timestamp string
}

// Message is an inbound chat message.
type Message struct {
	// RequestID correlates log lines for one inbound event.
	RequestID   string
	RequesterID string
	Text        string
	ChannelKind ChannelKind
	Thread      Thread
}

// Action is an activation of a confirmation prompt button.
type Action struct {
	RequestID   string
	RequesterID string
	// Value is the payload embedded in the prompt: the canonical login
	// for the confirm button, empty for decline.
	Value  string
	Thread Thread
}

// Prompt asks the requester to confirm a resolved profile.
type Prompt struct {
	// Text is the question, including a link to the profile.
	Text string
	// Login is the canonical handle, round-tripped as the confirm
	// action's value.
	Login string
	// ProfileURL is the profile's web URL.
	ProfileURL string
}

// Replier sends messages back into the conversation an event came
// from. Implementations are supplied by the chat transport.
type Replier interface {
	// Reply posts plain text in thread.
	Reply(ctx context.Context, thread Thread, text string) error

	// Prompt posts a confirm/deny prompt in thread.
	Prompt(ctx context.Context, thread Thread, prompt Prompt) error
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/bureau-foundation/orgbot/onboarding"
)

// translateMessage converts a Slack message event. It reports false
// for events the workflow must never see: bot messages (including the
// bot's own replies), subtyped messages such as edits and joins, and
// messages with no author.
//
// Replies go into the message's thread when it has one, otherwise
// they start a thread on the message itself.
func translateMessage(event *slackevents.MessageEvent) (onboarding.Message, bool) {
	if event == nil || event.BotID != "" || event.SubType != "" || event.User == "" {
		return onboarding.Message{}, false
	}

	threadTimestamp := event.ThreadTimeStamp
	if threadTimestamp == "" {
		threadTimestamp = event.TimeStamp
	}

	return onboarding.Message{
		RequesterID: event.User,
		Text:        event.Text,
		ChannelKind: onboarding.ChannelKind(event.ChannelType),
		Thread: onboarding.Thread{
			ChannelID: event.Channel,
			Timestamp: threadTimestamp,
		},
	}, true
}

// translateAction converts a block_actions interaction into an Action
// and the ID of the button pressed. It reports false for other
// interaction types and for callbacks with no block action.
func translateAction(callback *slack.InteractionCallback) (onboarding.Action, string, bool) {
	if callback.Type != slack.InteractionTypeBlockActions {
		return onboarding.Action{}, "", false
	}
	if len(callback.ActionCallback.BlockActions) == 0 || callback.ActionCallback.BlockActions[0] == nil {
		return onboarding.Action{}, "", false
	}
	blockAction := callback.ActionCallback.BlockActions[0]

	channelID := callback.Channel.ID
	if channelID == "" {
		channelID = callback.Container.ChannelID
	}

	// The prompt was posted inside the requester's thread, so its own
	// thread_ts points at the thread root.
	threadTimestamp := callback.Message.ThreadTimestamp
	if threadTimestamp == "" {
		threadTimestamp = callback.Message.Timestamp
	}

	return onboarding.Action{
		RequesterID: callback.User.ID,
		Value:       blockAction.Value,
		Thread: onboarding.Thread{
			ChannelID: channelID,
			Timestamp: threadTimestamp,
		},
	}, blockAction.ActionID, true
}

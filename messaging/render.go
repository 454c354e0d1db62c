// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"github.com/slack-go/slack"

	"github.com/bureau-foundation/orgbot/onboarding"
)

// Action IDs of the confirmation prompt's buttons.
const (
	ActionConfirm = "confirm_github_yes"
	ActionDecline = "confirm_github_no"
)

// promptBlockID identifies the prompt's actions block.
const promptBlockID = "confirm_github"

// PromptBlocks renders prompt as Block Kit: a markdown section with the
// question and profile link, then Yes and No buttons. The Yes button
// carries the canonical login as its value.
func PromptBlocks(prompt onboarding.Prompt) []slack.Block {
	question := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, prompt.Text, false, false),
		nil, nil,
	)

	confirm := slack.NewButtonBlockElement(
		ActionConfirm,
		prompt.Login,
		slack.NewTextBlockObject(slack.PlainTextType, "Yes", false, false),
	).WithStyle(slack.StylePrimary)

	decline := slack.NewButtonBlockElement(
		ActionDecline,
		"",
		slack.NewTextBlockObject(slack.PlainTextType, "No", false, false),
	).WithStyle(slack.StyleDanger)

	return []slack.Block{
		question,
		slack.NewActionBlock(promptBlockID, confirm, decline),
	}
}

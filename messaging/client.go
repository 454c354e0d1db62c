// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"log/slog"

	"github.com/slack-go/slack"
)

// ClientConfig configures the Slack Web API client.
type ClientConfig struct {
	// BotToken is the xoxb- bot token. Required.
	BotToken string

	// AppToken is the xapp- app-level token. Needed only for Socket
	// Mode.
	AppToken string

	// APIURL overrides the Web API endpoint, for tests. Must end in a
	// slash.
	APIURL string

	// Debug enables slack-go's debug logging through Logger.
	Debug bool

	Logger *slog.Logger
}

// NewClient returns a Slack Web API client whose internal logging goes
// to config.Logger.
func NewClient(config ClientConfig) *slack.Client {
	options := []slack.Option{
		slack.OptionLog(NewLogAdapter(config.Logger)),
		slack.OptionDebug(config.Debug),
	}
	if config.AppToken != "" {
		options = append(options, slack.OptionAppLevelToken(config.AppToken))
	}
	if config.APIURL != "" {
		options = append(options, slack.OptionAPIURL(config.APIURL))
	}
	return slack.New(config.BotToken, options...)
}

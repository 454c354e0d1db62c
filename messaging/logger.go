// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"log/slog"
	"strings"
)

// LogAdapter routes slack-go's internal logging into slog at debug
// level. It satisfies the logger interface accepted by
// slack.OptionLog and socketmode.OptionLog.
type LogAdapter struct {
	logger *slog.Logger
}

// NewLogAdapter returns a LogAdapter writing to logger with
// source=slack.
func NewLogAdapter(logger *slog.Logger) *LogAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogAdapter{logger: logger.With("source", "slack")}
}

// Output implements the log.Logger-style method slack-go calls.
func (adapter *LogAdapter) Output(_ int, message string) error {
	adapter.logger.Debug(strings.TrimRight(message, "\n"))
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// PostError reports a failed chat.postMessage call. Callers can use
// errors.As to recover the channel:
//
//	var postErr *PostError
//	if errors.As(err, &postErr) {
//	    log(postErr.Channel)
//	}
type PostError struct {
	// Channel is the destination channel ID.
	Channel string
	// Err is the underlying failure: a slack.SlackErrorResponse for
	// API-level rejections, or a transport error.
	Err error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("slack: posting to %s: %v", e.Channel, e.Err)
}

func (e *PostError) Unwrap() error { return e.Err }

// Slack Web API error codes the replier classifies. The first three
// point at the installation (token, scopes, channel membership) rather
// than the message.
const (
	ErrCodeChannelNotFound = "channel_not_found"
	ErrCodeNotInChannel    = "not_in_channel"
	ErrCodeInvalidAuth     = "invalid_auth"
	ErrCodeInvalidBlocks   = "invalid_blocks"
)

// IsSlackError reports whether err carries a Slack Web API error
// response with the given code.
func IsSlackError(err error, code string) bool {
	return code != "" && slackErrorCode(err) == code
}

// slackErrorCode returns the Web API error code carried by err, or "".
func slackErrorCode(err error) string {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return slackErr.Err
	}
	var slackErrPtr *slack.SlackErrorResponse
	if errors.As(err, &slackErrPtr) {
		return slackErrPtr.Err
	}
	return ""
}

// RetryAfter reports how long Slack asked the caller to back off when
// err is an HTTP 429 rejection.
func RetryAfter(err error) (time.Duration, bool) {
	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter, true
	}
	return 0, false
}

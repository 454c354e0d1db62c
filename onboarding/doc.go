// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package onboarding implements the GitHub organization onboarding
// conversation: a chat user sends a GitHub username in a direct
// message, confirms the matching profile, and receives an organization
// invitation at most once.
//
// The conversation has two steps and no server-side session state.
// [Workflow.HandleMessage] verifies the username and emits a [Prompt]
// whose confirm action carries the canonical login; the transport
// round-trips that value back into [Workflow.HandleConfirm] or
// [Workflow.HandleDecline]. The only durable state is the processed
// set, which records requesters once their invitation is issued (or
// found to be unnecessary because they are already members).
//
// Two clients sit between the workflow and GitHub:
//
//   - [Verifier] resolves a candidate handle to a [Profile], or nil.
//   - [Inviter] issues the invitation and classifies the result as an
//     [Outcome].
//
// Both normalize every failure at their boundary. The workflow never
// sees a transport error from GitHub. A nil profile means "not found
// or GitHub unreachable"; the two are indistinguishable to the user and
// are told apart only in logs.
//
// The chat transport is reached through [Replier]. Button
// acknowledgement is the transport's job and happens before the
// workflow runs.
package onboarding

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed Go client for the subset of the GitHub
// REST API that organization onboarding needs: user lookup and
// organization invitations.
//
// The client authenticates with a personal access token or fine-grained
// token sent as a Bearer credential, pins the REST API version header,
// and maps non-2xx responses to [*APIError]. Callers classify failures
// with [IsNotFound], [IsValidationFailed], and [IsAlreadyMember] rather
// than inspecting status codes.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base
// URLs. There is no response caching and no automatic retry: every call
// is one HTTP round trip, bounded by the configured timeout.
//
// [ValidLogin] implements GitHub's username grammar so callers can reject
// malformed handles without a network call.
package github

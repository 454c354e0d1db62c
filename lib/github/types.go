// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "time"

// User is a GitHub user as returned by GET /users/{username}. Only the
// fields onboarding reads are decoded.
type User struct {
	Login   string `json:"login"`
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
	Type    string `json:"type"` // "User" or "Organization"
}

// CreateInvitationRequest is the body of POST /orgs/{org}/invitations.
// Invitees are always addressed by user ID and join as direct members.
type CreateInvitationRequest struct {
	InviteeID int64   `json:"invitee_id"`
	TeamIDs   []int64 `json:"team_ids,omitempty"`
}

// Invitation is a pending organization invitation.
type Invitation struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	Inviter   User      `json:"inviter"`
	TeamCount int       `json:"team_count"`
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// CreateOrgInvitation invites a user to an organization. GitHub answers
// 201 Created on success; any other status is an error. An invitee who
// is already a member yields an error satisfying IsAlreadyMember.
func (client *Client) CreateOrgInvitation(ctx context.Context, org string, request CreateInvitationRequest) (*Invitation, error) {
	path := fmt.Sprintf("/orgs/%s/invitations", url.PathEscape(org))
	body, status, err := client.do(ctx, http.MethodPost, path, request)
	if err != nil {
		return nil, fmt.Errorf("inviting to %s: %w", org, err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("inviting to %s: unexpected HTTP %d", org, status)
	}

	var invitation Invitation
	if err := json.Unmarshal(body, &invitation); err != nil {
		// The invitation exists; only the echo failed to decode.
		client.logger.Warn("decoding invitation response", "org", org, "error", err)
	}
	return &invitation, nil
}

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

// GetUser fetches the public profile of the named user. A nonexistent
// user yields an error satisfying IsNotFound. Any success status other
// than 200 is reported as an error.
func (client *Client) GetUser(ctx context.Context, login string) (*User, error) {
	body, status, err := client.do(ctx, http.MethodGet, "/users/"+url.PathEscape(login), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", login, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("getting user %s: unexpected HTTP %d", login, status)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", login, err)
	}
	if user.Login == "" || user.ID == 0 {
		return nil, fmt.Errorf("decoding user %s: response missing login or id", login)
	}
	return &user, nil
}

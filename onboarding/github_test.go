// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bureau-foundation/orgbot/lib/github"
)

// fakeGitHub is a TLS server standing in for the GitHub REST API. Each
// test installs the handler it needs and counts the requests made.
type fakeGitHub struct {
	server   *httptest.Server
	client   *github.Client
	requests atomic.Int32
}

func newFakeGitHub(t *testing.T, handler http.HandlerFunc) *fakeGitHub {
	t.Helper()
	fake := &fakeGitHub{}
	fake.server = httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fake.requests.Add(1)
		handler(writer, request)
	}))
	t.Cleanup(fake.server.Close)

	client, err := github.NewClient(github.Config{
		BaseURL:    fake.server.URL,
		Token:      "test-token",
		HTTPClient: fake.server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	fake.client = client
	return fake
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write([]byte(body))
}

const testUserJSON = `{"login":"testuser","id":12345,"html_url":"https://github.com/testuser","type":"User"}`

const alreadyMemberJSON = `{"message":"Validation Failed","errors":[{"resource":"OrganizationInvitation","code":"unprocessable","field":"data","message":"Invitee is already a part of this organization"}],"documentation_url":"https://docs.github.com/rest/orgs/members#create-an-organization-invitation"}`

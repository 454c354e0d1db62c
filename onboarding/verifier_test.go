// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestVerifier_Found(t *testing.T) {
	var requestedPath string
	fake := newFakeGitHub(t, func(writer http.ResponseWriter, request *http.Request) {
		requestedPath = request.URL.Path
		writeJSON(writer, http.StatusOK, testUserJSON)
	})
	verifier := NewVerifier(fake.client, nil)

	profile := verifier.CheckUsername(context.Background(), "testuser")
	if profile == nil {
		t.Fatal("CheckUsername returned nil for existing user")
	}
	if requestedPath != "/users/testuser" {
		t.Errorf("path = %q, want /users/testuser", requestedPath)
	}
	if profile.Login != "testuser" || profile.ID != 12345 || profile.HTMLURL != "https://github.com/testuser" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestVerifier_CanonicalLogin(t *testing.T) {
	fake := newFakeGitHub(t, func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(writer, http.StatusOK, `{"login":"TestUser","id":7,"html_url":"https://github.com/TestUser"}`)
	})
	verifier := NewVerifier(fake.client, nil)

	profile := verifier.CheckUsername(context.Background(), "testuser")
	if profile == nil {
		t.Fatal("CheckUsername returned nil")
	}
	if profile.Login != "TestUser" {
		t.Errorf("Login = %q, want the server's canonical casing", profile.Login)
	}
}

func TestVerifier_InvalidHandleMakesNoRequest(t *testing.T) {
	fake := newFakeGitHub(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s", request.URL.Path)
	})
	verifier := NewVerifier(fake.client, nil)

	for _, candidate := range []string{
		"",
		"-leading",
		"trailing-",
		"double--hyphen",
		"has space",
		"under_score",
		"abcdefghijabcdefghijabcdefghijabcdefghij", // 40 characters
	} {
		if profile := verifier.CheckUsername(context.Background(), candidate); profile != nil {
			t.Errorf("CheckUsername(%q) = %+v, want nil", candidate, profile)
		}
		if _, err := verifier.Lookup(context.Background(), candidate); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidHandle", candidate, err)
		}
	}
	if got := fake.requests.Load(); got != 0 {
		t.Errorf("made %d requests, want 0", got)
	}
}

func TestVerifier_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`, ErrNotFound},
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`, ErrService},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`, ErrService},
		{"accepted is not ok", http.StatusAccepted, testUserJSON, ErrService},
		{"malformed body", http.StatusOK, `not json`, ErrService},
		{"missing id", http.StatusOK, `{"login":"testuser"}`, ErrService},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := newFakeGitHub(t, func(writer http.ResponseWriter, request *http.Request) {
				writeJSON(writer, test.status, test.body)
			})
			verifier := NewVerifier(fake.client, nil)

			_, err := verifier.Lookup(context.Background(), "testuser")
			if !errors.Is(err, test.want) {
				t.Errorf("Lookup error = %v, want %v", err, test.want)
			}
			if profile := verifier.CheckUsername(context.Background(), "testuser"); profile != nil {
				t.Errorf("CheckUsername = %+v, want nil", profile)
			}
		})
	}
}

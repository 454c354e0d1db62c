// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

const testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"

// signedRequest builds a request carrying Slack's v0 signature over
// body, computed as Slack does.
func signedRequest(t *testing.T, path, contentType, body, secret string, timestamp time.Time) *http.Request {
	t.Helper()
	ts := strconv.FormatInt(timestamp.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("v0:" + ts + ":" + body))

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("X-Slack-Request-Timestamp", ts)
	request.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return request
}

func newTestHTTPHandler(handler Handler) (http.Handler, *Dispatcher) {
	dispatcher := newTestDispatcher(handler)
	return NewHTTPHandler(HTTPConfig{
		SigningSecret: testSigningSecret,
		Dispatcher:    dispatcher,
	}), dispatcher
}

const messageEventBody = `{
	"token": "legacy",
	"team_id": "T123",
	"api_app_id": "A123",
	"type": "event_callback",
	"event_id": "Ev123",
	"event_time": 1700000000,
	"event": {
		"type": "message",
		"channel": "D123",
		"channel_type": "im",
		"user": "U123",
		"text": "testuser",
		"ts": "1700000000.000100"
	}
}`

func TestHTTPHandler_URLVerification(t *testing.T) {
	handler, _ := newTestHTTPHandler(&recordingHandler{})
	body := `{"token":"legacy","challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P","type":"url_verification"}`

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedRequest(t, EventsPath, "application/json", body, testSigningSecret, time.Now()))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Body.String(); got != "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P" {
		t.Errorf("body = %q, want the challenge", got)
	}
}

func TestHTTPHandler_MessageEvent(t *testing.T) {
	recording := &recordingHandler{}
	handler, dispatcher := newTestHTTPHandler(recording)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedRequest(t, EventsPath, "application/json", messageEventBody, testSigningSecret, time.Now()))
	dispatcher.Wait()

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", recorder.Code, recorder.Body.String())
	}
	if len(recording.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(recording.messages))
	}
	message := recording.messages[0]
	if message.RequesterID != "U123" || message.Text != "testuser" || message.Thread.ChannelID != "D123" {
		t.Errorf("message = %+v", message)
	}
}

func TestHTTPHandler_RetryIsNotRedispatched(t *testing.T) {
	recording := &recordingHandler{}
	handler, dispatcher := newTestHTTPHandler(recording)

	request := signedRequest(t, EventsPath, "application/json", messageEventBody, testSigningSecret, time.Now())
	request.Header.Set("X-Slack-Retry-Num", "1")
	request.Header.Set("X-Slack-Retry-Reason", "http_timeout")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	dispatcher.Wait()

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if got := recording.total(); got != 0 {
		t.Errorf("handler called %d times for a retry, want 0", got)
	}
}

func TestHTTPHandler_Interactive(t *testing.T) {
	recording := &recordingHandler{}
	handler, dispatcher := newTestHTTPHandler(recording)

	payload := `{
		"type": "block_actions",
		"user": {"id": "U123", "username": "requester"},
		"channel": {"id": "D123", "name": "directmessage"},
		"container": {"type": "message", "message_ts": "1700000001.000200", "channel_id": "D123"},
		"message": {"type": "message", "ts": "1700000001.000200", "thread_ts": "1700000000.000100"},
		"actions": [{"type": "button", "action_id": "confirm_github_yes", "block_id": "confirm_github", "value": "testuser"}]
	}`
	body := url.Values{"payload": {payload}}.Encode()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, signedRequest(t, InteractivePath, "application/x-www-form-urlencoded", body, testSigningSecret, time.Now()))
	dispatcher.Wait()

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", recorder.Code, recorder.Body.String())
	}
	if len(recording.confirms) != 1 {
		t.Fatalf("got %d confirms, want 1", len(recording.confirms))
	}
	action := recording.confirms[0]
	if action.RequesterID != "U123" || action.Value != "testuser" {
		t.Errorf("action = %+v", action)
	}
	if action.Thread.ChannelID != "D123" || action.Thread.Timestamp != "1700000000.000100" {
		t.Errorf("thread = %+v", action.Thread)
	}
}

func TestHTTPHandler_RejectsBadSignatures(t *testing.T) {
	tests := []struct {
		name    string
		request func(t *testing.T) *http.Request
	}{
		{
			name: "wrong secret",
			request: func(t *testing.T) *http.Request {
				return signedRequest(t, EventsPath, "application/json", messageEventBody, "not-the-secret", time.Now())
			},
		},
		{
			name: "stale timestamp",
			request: func(t *testing.T) *http.Request {
				return signedRequest(t, EventsPath, "application/json", messageEventBody, testSigningSecret, time.Now().Add(-10*time.Minute))
			},
		},
		{
			name: "unsigned",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, EventsPath, strings.NewReader(messageEventBody))
			},
		},
		{
			name: "tampered body",
			request: func(t *testing.T) *http.Request {
				request := signedRequest(t, EventsPath, "application/json", messageEventBody, testSigningSecret, time.Now())
				tampered := strings.Replace(messageEventBody, "testuser", "attacker", 1)
				request.Body = httptest.NewRequest(http.MethodPost, EventsPath, strings.NewReader(tampered)).Body
				return request
			},
		},
		{
			name: "unsigned interaction",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, InteractivePath, strings.NewReader("payload=%7B%7D"))
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recording := &recordingHandler{}
			handler, dispatcher := newTestHTTPHandler(recording)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, test.request(t))
			dispatcher.Wait()

			if recorder.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", recorder.Code)
			}
			if got := recording.total(); got != 0 {
				t.Errorf("handler called %d times, want 0", got)
			}
		})
	}
}

func TestHTTPHandler_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
	}{
		{"event not json", EventsPath, "application/json", `not json`},
		{"interaction without payload", InteractivePath, "application/x-www-form-urlencoded", `other=1`},
		{"interaction payload not json", InteractivePath, "application/x-www-form-urlencoded", `payload=not-json`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler, _ := newTestHTTPHandler(&recordingHandler{})
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, signedRequest(t, test.path, test.contentType, test.body, testSigningSecret, time.Now()))
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestHTTPHandler_Routes(t *testing.T) {
	handler, _ := newTestHTTPHandler(&recordingHandler{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("GET %s = %d, want 200", HealthPath, recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, EventsPath, nil))
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET %s = %d, want 405", EventsPath, recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/other", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("POST /other = %d, want 404", recorder.Code)
	}
}

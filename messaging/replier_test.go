// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"github.com/bureau-foundation/orgbot/onboarding"
)

// fakeSlackAPI records chat.postMessage form submissions.
type fakeSlackAPI struct {
	mutex    sync.Mutex
	posts    []url.Values
	response string
}

func newFakeSlackAPI(t *testing.T, response string) (*fakeSlackAPI, *slack.Client) {
	t.Helper()
	fake := &fakeSlackAPI{response: response}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !strings.HasSuffix(request.URL.Path, "/chat.postMessage") {
			t.Errorf("unexpected Slack API call %s", request.URL.Path)
		}
		if err := request.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		fake.mutex.Lock()
		fake.posts = append(fake.posts, request.PostForm)
		fake.mutex.Unlock()
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(fake.response))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BotToken: "xoxb-test",
		APIURL:   server.URL + "/",
	})
	return fake, client
}

const postOK = `{"ok":true,"channel":"D123","ts":"1700000002.000300"}`

var replyThread = onboarding.Thread{ChannelID: "D123", Timestamp: "1700000000.000100"}

func TestReplier_Reply(t *testing.T) {
	fake, client := newFakeSlackAPI(t, postOK)
	replier := NewReplier(client, nil)

	text := onboarding.ReplyInviteFailed("UADMIN")
	if err := replier.Reply(context.Background(), replyThread, text); err != nil {
		t.Fatalf("Reply: %v", err)
	}

	if len(fake.posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(fake.posts))
	}
	post := fake.posts[0]
	if got := post.Get("channel"); got != "D123" {
		t.Errorf("channel = %q, want D123", got)
	}
	if got := post.Get("thread_ts"); got != "1700000000.000100" {
		t.Errorf("thread_ts = %q, want 1700000000.000100", got)
	}
	if got := post.Get("text"); got != text {
		t.Errorf("text = %q, want %q (mentions must not be escaped)", got, text)
	}
	if got := post.Get("blocks"); got != "" {
		t.Errorf("plain reply carried blocks: %s", got)
	}
}

func TestReplier_Prompt(t *testing.T) {
	fake, client := newFakeSlackAPI(t, postOK)
	replier := NewReplier(client, nil)

	prompt := onboarding.NewPrompt(&onboarding.Profile{
		Login:   "testuser",
		ID:      12345,
		HTMLURL: "https://github.com/testuser",
	})
	if err := replier.Prompt(context.Background(), replyThread, prompt); err != nil {
		t.Fatalf("Prompt: %v", err)
	}

	if len(fake.posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(fake.posts))
	}
	post := fake.posts[0]
	if got := post.Get("text"); got != prompt.Text {
		t.Errorf("fallback text = %q, want %q", got, prompt.Text)
	}
	if got := post.Get("thread_ts"); got != "1700000000.000100" {
		t.Errorf("thread_ts = %q", got)
	}

	var blocks []map[string]any
	if err := json.Unmarshal([]byte(post.Get("blocks")), &blocks); err != nil {
		t.Fatalf("decoding blocks %q: %v", post.Get("blocks"), err)
	}
	if len(blocks) != 2 || blocks[0]["type"] != "section" || blocks[1]["type"] != "actions" {
		t.Fatalf("blocks = %v, want section then actions", blocks)
	}
	elements, _ := blocks[1]["elements"].([]any)
	if len(elements) != 2 {
		t.Fatalf("actions elements = %v, want two buttons", blocks[1]["elements"])
	}
	confirm, _ := elements[0].(map[string]any)
	if confirm["action_id"] != ActionConfirm || confirm["value"] != "testuser" {
		t.Errorf("confirm button = %v", confirm)
	}
}

func TestReplier_NoThread(t *testing.T) {
	fake, client := newFakeSlackAPI(t, postOK)
	replier := NewReplier(client, nil)

	if err := replier.Reply(context.Background(), onboarding.Thread{ChannelID: "D123"}, "hello"); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if _, present := fake.posts[0]["thread_ts"]; present {
		t.Errorf("thread_ts sent for a reply with no thread")
	}
}

func TestReplier_APIError(t *testing.T) {
	_, client := newFakeSlackAPI(t, `{"ok":false,"error":"channel_not_found"}`)
	replier := NewReplier(client, nil)

	err := replier.Reply(context.Background(), replyThread, "hello")
	if err == nil {
		t.Fatal("Reply succeeded, want error")
	}
	var postErr *PostError
	if !errors.As(err, &postErr) {
		t.Fatalf("error %T is not *PostError", err)
	}
	if postErr.Channel != "D123" {
		t.Errorf("Channel = %q, want D123", postErr.Channel)
	}
	if !IsSlackError(err, ErrCodeChannelNotFound) {
		t.Errorf("IsSlackError(%v, %q) = false", err, ErrCodeChannelNotFound)
	}
	if IsSlackError(err, ErrCodeInvalidAuth) {
		t.Errorf("IsSlackError matched the wrong code")
	}
}

func TestIsSlackError_OtherErrors(t *testing.T) {
	if IsSlackError(errors.New("channel_not_found"), ErrCodeChannelNotFound) {
		t.Error("plain error matched")
	}
	if IsSlackError(nil, ErrCodeChannelNotFound) {
		t.Error("nil matched")
	}
}

func TestReplier_LogsFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    http.Header
		body      string
		wantLevel string
		wantMsg   string
		wantCode  string
	}{
		{
			name:      "bot not in channel",
			status:    http.StatusOK,
			body:      `{"ok":false,"error":"not_in_channel"}`,
			wantLevel: "ERROR",
			wantMsg:   "slack refused message; check the bot token and its channel access",
			wantCode:  ErrCodeNotInChannel,
		},
		{
			name:      "revoked token",
			status:    http.StatusOK,
			body:      `{"ok":false,"error":"invalid_auth"}`,
			wantLevel: "ERROR",
			wantMsg:   "slack refused message; check the bot token and its channel access",
			wantCode:  ErrCodeInvalidAuth,
		},
		{
			name:      "malformed blocks",
			status:    http.StatusOK,
			body:      `{"ok":false,"error":"invalid_blocks"}`,
			wantLevel: "ERROR",
			wantMsg:   "slack rejected message blocks",
			wantCode:  ErrCodeInvalidBlocks,
		},
		{
			name:      "other api error",
			status:    http.StatusOK,
			body:      `{"ok":false,"error":"msg_too_long"}`,
			wantLevel: "WARN",
			wantMsg:   "posting slack message failed",
			wantCode:  "msg_too_long",
		},
		{
			name:      "rate limited",
			status:    http.StatusTooManyRequests,
			header:    http.Header{"Retry-After": []string{"7"}},
			wantLevel: "WARN",
			wantMsg:   "slack rate limited message",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				for key, values := range test.header {
					writer.Header()[key] = values
				}
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(test.status)
				writer.Write([]byte(test.body))
			}))
			t.Cleanup(server.Close)
			client := NewClient(ClientConfig{BotToken: "xoxb-test", APIURL: server.URL + "/"})

			var output bytes.Buffer
			replier := NewReplier(client, slog.New(slog.NewJSONHandler(&output, nil)))
			err := replier.Reply(context.Background(), replyThread, "hello")
			if err == nil {
				t.Fatal("Reply succeeded, want error")
			}

			var entry map[string]any
			if decodeErr := json.Unmarshal(output.Bytes(), &entry); decodeErr != nil {
				t.Fatalf("decoding log line %q: %v", output.String(), decodeErr)
			}
			if entry["level"] != test.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], test.wantLevel)
			}
			if entry["msg"] != test.wantMsg {
				t.Errorf("msg = %v, want %q", entry["msg"], test.wantMsg)
			}
			if entry["channel"] != "D123" {
				t.Errorf("channel = %v, want D123", entry["channel"])
			}
			if test.wantCode != "" && entry["code"] != test.wantCode {
				t.Errorf("code = %v, want %s", entry["code"], test.wantCode)
			}

			retryAfter, limited := RetryAfter(err)
			if limited != (test.status == http.StatusTooManyRequests) {
				t.Errorf("RetryAfter limited = %v", limited)
			}
			if limited && retryAfter != 7*time.Second {
				t.Errorf("RetryAfter = %v, want 7s", retryAfter)
			}
		})
	}
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/commentmod/commentmod"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	var received []SlackWebhookBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body SlackWebhookBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		received = append(received, body)
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	target := &commentmod.MockTarget{
		Kind:  "blog.entry",
		Key:   "e1",
		Title: "Launch Day",
		URL:   "https://blog.example.com/entries/e1",
	}
	cmt := commentmod.FakeComment(target.Ref())
	cmt.Body = "congrats on the launch"
	cmt.Submitter.Name = "Alice Smith"
	cmt.Submitter.Email = "alice@example.com"

	n := &SlackNotifier{SlackWebhookURL: srv.URL}
	require.NoError(n.Send(ctx, cmt, target))
	require.Len(received, 1)
	text := received[0].Text
	assert.Contains(text, "Launch Day")
	assert.Contains(text, "congrats on the launch")
	assert.Contains(text, "Alice Smith <alice@example.com>")
	assert.Contains(text, target.Permalink())

	// moderated comments are called out
	held := commentmod.FakeComment(target.Ref())
	held.IsPublic = false
	require.NoError(n.Send(ctx, held, target))
	require.Len(received, 2)
	assert.Contains(received[1].Text, "Held for moderation")
}

func TestSlackNotifierErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	target := &commentmod.MockTarget{Kind: "blog.entry", Key: "e1", Title: "Launch Day"}
	cmt := commentmod.FakeComment(target.Ref())

	// anything but an "ok" body is a failed delivery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "invalid_payload")
	}))
	defer srv.Close()
	n := &SlackNotifier{SlackWebhookURL: srv.URL}
	assert.Error(n.Send(ctx, cmt, target))

	srv500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv500.Close()
	n = &SlackNotifier{SlackWebhookURL: srv500.URL}
	assert.Error(n.Send(ctx, cmt, target))
}

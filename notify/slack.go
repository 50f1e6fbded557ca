// Package notify provides Notifier implementations for announcing new
// comments: slack incoming webhooks and plain-text email over SMTP.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/commentmod/commentmod"

	"golang.org/x/time/rate"
)

// SlackNotifier posts a short message about each kept comment to a slack
// channel via "incoming webhook".
type SlackNotifier struct {
	SlackWebhookURL string

	// optional rate limit applied before each webhook POST
	Limiter *rate.Limiter
}

var _ commentmod.Notifier = (*SlackNotifier)(nil)

func (n *SlackNotifier) Send(ctx context.Context, cmt *commentmod.Comment, target commentmod.Target) error {
	return n.sendSlackMsg(ctx, slackBody(cmt, target))
}

type SlackWebhookBody struct {
	Text string `json:"text"`
}

// Sends a simple slack message to a channel via "incoming webhook".
//
// The slack incoming webhook must be already configured in the slack workplace.
func (n *SlackNotifier) sendSlackMsg(ctx context.Context, msg string) error {
	if n.Limiter != nil {
		n.Limiter.Wait(ctx)
	}

	body, err := json.Marshal(SlackWebhookBody{Text: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.SlackWebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != 200 || buf.String() != "ok" {
		return fmt.Errorf("failed slack webhook POST request. status=%d", resp.StatusCode)
	}
	return nil
}

func slackBody(cmt *commentmod.Comment, target commentmod.Target) string {
	msg := fmt.Sprintf("💬 New comment posted on %s \"%s\"\n", cmt.Target.Kind, commentmod.TargetTitle(target))
	msg += fmt.Sprintf("From: `%s`\n", submitterLine(cmt))
	if !cmt.IsPublic {
		msg += "Held for moderation.\n"
	}
	msg += fmt.Sprintf("> %s\n", cmt.Body)
	if link := target.Permalink(); link != "" {
		msg += fmt.Sprintf("<%s|view>\n", link)
	}
	return msg
}

func submitterLine(cmt *commentmod.Comment) string {
	name := cmt.Submitter.Name
	if name == "" {
		name = "anonymous"
	}
	if cmt.Submitter.Email != "" {
		return fmt.Sprintf("%s <%s>", name, cmt.Submitter.Email)
	}
	return name
}

package akismet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/commentmod/commentmod"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func akismetHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	switch r.URL.Path {
	case "/1.1/verify-key":
		if r.PostForm.Get("key") == "sekrit" && r.PostForm.Get("blog") != "" {
			fmt.Fprint(w, "valid")
		} else {
			fmt.Fprint(w, "invalid")
		}
		return
	case "/1.1/comment-check":
		if r.PostForm.Get("api_key") != "sekrit" {
			w.Header().Set("X-akismet-debug-help", "Invalid API key")
			fmt.Fprint(w, "invalid")
			return
		}
		if r.PostForm.Get("blog") == "" || r.PostForm.Get("user_ip") == "" {
			w.Header().Set("X-akismet-debug-help", "Empty required field")
			fmt.Fprint(w, "invalid")
			return
		}
		if r.PostForm.Get("comment_content") == "trigger-500" {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if r.PostForm.Get("comment_author") == "viagra-test-123" {
			fmt.Fprint(w, "true")
			return
		}
		fmt.Fprint(w, "false")
		return
	default:
		http.NotFound(w, r)
		return
	}
}

func testClient(host string) *Client {
	return &Client{
		Client:  http.Client{},
		APIKey:  "sekrit",
		SiteURL: "https://blog.example.com",
		Host:    host,
	}
}

func TestVerifyKey(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(akismetHandler))
	defer srv.Close()

	c := testClient(srv.URL)
	valid, err := c.VerifyKey(ctx)
	assert.NoError(err)
	assert.True(valid)

	c.APIKey = "wrong"
	valid, err = c.VerifyKey(ctx)
	assert.NoError(err)
	assert.False(valid)
}

func TestCheckComment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(akismetHandler))
	defer srv.Close()

	c := testClient(srv.URL)
	target := &commentmod.MockTarget{
		Kind:      "blog.entry",
		Key:       "e1",
		URL:       "https://blog.example.com/entries/e1",
		Published: time.Now(),
	}

	cmt := commentmod.FakeComment(target.Ref())
	cmt.Body = "what a lovely article"
	spam, err := c.CheckComment(ctx, cmt, target)
	require.NoError(err)
	assert.False(spam)

	// the documented always-spam test author
	cmt.Submitter.Name = "viagra-test-123"
	spam, err = c.CheckComment(ctx, cmt, target)
	require.NoError(err)
	assert.True(spam)

	// the client satisfies the engine's checker interface
	var checker commentmod.SpamChecker = c
	spam, err = checker.IsSpam(ctx, cmt, target)
	require.NoError(err)
	assert.True(spam)
}

func TestCheckCommentErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(akismetHandler))
	defer srv.Close()

	target := &commentmod.MockTarget{Kind: "blog.entry", Key: "e1", Published: time.Now()}
	cmt := commentmod.FakeComment(target.Ref())

	// bad key: error carries the debug hint, verdict stays ham
	c := testClient(srv.URL)
	c.APIKey = "wrong"
	spam, err := c.CheckComment(ctx, cmt, target)
	assert.Error(err)
	assert.Contains(err.Error(), "Invalid API key")
	assert.False(spam)

	// server failure
	c = testClient(srv.URL)
	cmt.Body = "trigger-500"
	_, err = c.CheckComment(ctx, cmt, target)
	assert.Error(err)
}

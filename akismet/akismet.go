// Client for the Akismet comment-spam detection API.
//
// Implements the engine's SpamChecker interface. Payloads follow the
// comment-check schema: https://akismet.com/developers/detailed-docs/
package akismet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/commentmod/commentmod"
	"github.com/commentmod/commentmod/util"

	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/time/rate"
)

type Client struct {
	Client http.Client
	APIKey string
	// Public URL of the site the comments belong to ("blog" in Akismet terms)
	SiteURL string
	// Overrides the production API host, for testing. Scheme and hostname, no trailing slash.
	Host string
	// If not nil, this limiter will be used to rate-limit API requests
	Limiter *rate.Limiter
}

var _ commentmod.SpamChecker = (*Client)(nil)

func NewClient(apiKey, siteURL string) *Client {
	return &Client{
		Client:  *util.RobustHTTPClient(),
		APIKey:  apiKey,
		SiteURL: siteURL,
	}
}

func (c *Client) endpoint(method string) string {
	if c.Host != "" {
		return c.Host + "/1.1/" + method
	}
	return "https://rest.akismet.com/1.1/" + method
}

// Checks that the API key is accepted for the configured site.
func (c *Client) VerifyKey(ctx context.Context) (bool, error) {
	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("blog", c.SiteURL)

	body, _, err := c.post(ctx, "verify-key", params)
	if err != nil {
		return false, err
	}
	return body == "valid", nil
}

// Submits the comment for classification. Returns true when Akismet considers
// it spam. A malformed or unauthorized request surfaces the service's
// X-akismet-debug-help hint in the returned error.
func (c *Client) CheckComment(ctx context.Context, cmt *commentmod.Comment, target commentmod.Target) (bool, error) {
	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("blog", c.SiteURL)
	params.Set("user_ip", cmt.Submitter.IPAddress)
	params.Set("user_agent", cmt.Submitter.UserAgent)
	params.Set("referrer", "")
	params.Set("permalink", target.Permalink())
	params.Set("comment_type", "comment")
	params.Set("comment_author", cmt.Submitter.Name)
	params.Set("comment_author_email", cmt.Submitter.Email)
	params.Set("comment_content", cmt.Body)
	if !cmt.CreatedAt.IsZero() {
		params.Set("comment_date_gmt", cmt.CreatedAt.UTC().Format(time.RFC3339))
	}

	body, header, err := c.post(ctx, "comment-check", params)
	if err != nil {
		return false, err
	}
	switch body {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if help := header.Get("X-akismet-debug-help"); help != "" {
		return false, fmt.Errorf("akismet rejected the request: %s", help)
	}
	return false, fmt.Errorf("unexpected akismet response: %s", body)
}

func (c *Client) IsSpam(ctx context.Context, cmt *commentmod.Comment, target commentmod.Target) (bool, error) {
	return c.CheckComment(ctx, cmt, target)
}

func (c *Client) post(ctx context.Context, method string, params url.Values) (string, http.Header, error) {
	if c.Limiter != nil {
		c.Limiter.Wait(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint(method), strings.NewReader(params.Encode()))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "commentmod/"+versioninfo.Short())

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		akismetAPIDuration.Observe(duration.Seconds())
	}()

	res, err := c.Client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("akismet request failed: %v", err)
	}
	defer res.Body.Close()

	akismetAPICount.WithLabelValues(fmt.Sprint(res.StatusCode)).Inc()
	if res.StatusCode != 200 {
		return "", nil, fmt.Errorf("akismet request failed statusCode=%d", res.StatusCode)
	}

	respBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read akismet resp body: %v", err)
	}
	return strings.TrimSpace(string(respBytes)), res.Header, nil
}

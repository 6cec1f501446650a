package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pep299/template-blog-publisher/internal/publisher"
)

const defaultBaseURL = "https://slack.com/api"

// Client posts publishing run reports to a Slack channel.
type Client struct {
	botToken   string
	channel    string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new Slack client
func NewClient(botToken, channel string) *Client {
	return &Client{
		botToken: botToken,
		channel:  channel,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// ChatPostMessageRequest represents a Slack chat.postMessage request
type ChatPostMessageRequest struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// Published reports a successful run.
func (c *Client) Published(ctx context.Context, res *publisher.Result) error {
	return c.sendMessage(ctx, c.formatPublished(res))
}

// Failed reports a run that stopped with err.
func (c *Client) Failed(ctx context.Context, res *publisher.Result, err error) error {
	return c.sendMessage(ctx, c.formatFailed(res, err))
}

func (c *Client) timestamp() string {
	return c.now().UTC().Format("2006-01-02 15:04:05 UTC")
}

func (c *Client) formatPublished(res *publisher.Result) string {
	image := "placeholder"
	if res.AttachmentID != 0 {
		image = fmt.Sprintf("attachment %d", res.AttachmentID)
	}
	return fmt.Sprintf(`:memo: *New post published*

*%s*
Post ID: %d
Kind: %s
Category: %s
Image: %s

Run: %s
Time: %s`,
		res.Title,
		res.PostID,
		res.Kind,
		res.Category,
		image,
		res.RunID,
		c.timestamp())
}

func (c *Client) formatFailed(res *publisher.Result, err error) string {
	var b strings.Builder
	b.WriteString(":warning: *Publishing run failed*\n\n")
	if res.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", res.Category)
	}
	if res.Kind != "" {
		fmt.Fprintf(&b, "Kind: %s\n", res.Kind)
	}
	fmt.Fprintf(&b, "Error: %v\n\nRun: %s\nTime: %s", err, res.RunID, c.timestamp())
	return b.String()
}

// sendMessage sends a message to the configured channel
func (c *Client) sendMessage(ctx context.Context, text string) error {
	req := ChatPostMessageRequest{
		Channel:   c.channel,
		Text:      text,
		Username:  "Blog Publisher",
		IconEmoji: ":robot_face:",
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.botToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned status %d", resp.StatusCode)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&slackResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}

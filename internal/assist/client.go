package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Bot-authored texts for failures.
const (
	BotNotUnderstood = "Sorry, I couldn't understand your question. Please try rephrasing it."
	BotTimeout       = "The assistant took too long to answer. Please try again."
	BotUnavailable   = "Couldn't reach the server. Please try again later."
	BotEmptyInput    = "Please type a message first."
)

// Message is one line of the chat transcript.
type Message struct {
	Text      string    `json:"text"`
	FromBot   bool      `json:"fromBot"`
	Timestamp time.Time `json:"timestamp"`
}

// Client talks to an assist endpoint on the shopper's behalf.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewClient creates a client for the endpoint URL. A nil httpClient uses a
// client with a timeout slightly above the endpoint's own.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout + 2*time.Second}
	}
	return &Client{endpoint: endpoint, http: httpClient, now: time.Now}
}

// Ask sends text and returns the bot's reply. Every failure becomes a bot
// message; Ask never returns an error.
func (c *Client) Ask(ctx context.Context, text string) Message {
	if strings.TrimSpace(text) == "" {
		return c.bot(BotEmptyInput)
	}

	body, err := json.Marshal(Request{Message: text})
	if err != nil {
		return c.bot(BotUnavailable)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.bot(BotUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.bot(BotTimeout)
		}
		return c.bot(BotUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var reply Reply
		if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil || strings.TrimSpace(reply.Reply) == "" {
			return c.bot(BotNotUnderstood)
		}
		return c.bot(reply.Reply)
	}

	switch resp.StatusCode {
	case http.StatusRequestTimeout:
		return c.bot(BotTimeout)
	case http.StatusNotFound, http.StatusBadRequest:
		return c.bot(BotNotUnderstood)
	}
	var failure ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
		return c.bot("Sorry, something went wrong: " + failure.Error)
	}
	return c.bot(BotUnavailable)
}

func (c *Client) bot(text string) Message {
	return Message{Text: text, FromBot: true, Timestamp: c.now()}
}

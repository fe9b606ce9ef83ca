package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const messagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// Client sends WhatsApp messages through the Twilio REST API.
type Client struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	baseURL    string
}

func New(accountSID, authToken, from string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    fmt.Sprintf(messagesURL, accountSID),
	}
}

// Send delivers one text message to a WhatsApp recipient. A non-2xx reply
// from Twilio is an error; callers log and move on, delivery is never
// retried here.
func (c *Client) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio send: status %d: %s", resp.StatusCode, raw)
	}

	log.Debug().Str("to", to).Msg("twilio: message sent")
	return nil
}

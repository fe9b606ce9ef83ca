package watsonx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// iamTokenSource exchanges an IBM Cloud API key for a bearer token. Wrapped
// in oauth2.ReuseTokenSource so the exchange only happens when the cached
// token has expired.
type iamTokenSource struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

type iamTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *iamTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "urn:ibm:params:oauth:grant-type:apikey")
	form.Set("apikey", s.apiKey)

	resp, err := s.httpClient.Post(s.url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("iam token request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("iam token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("iam token request: status %d: %s", resp.StatusCode, raw)
	}

	var tr iamTokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("iam token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("iam token response: missing access_token")
	}

	return &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		Expiry:      time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	iamTokenURL   = "https://iam.cloud.ibm.com/identity/token"
	generationURL = "https://us-south.ml.cloud.ibm.com/ml/v1-beta/generation/text?version=2024-03-19"
	modelID       = "ibm/granite-13b-instruct-v2"
	maxNewTokens  = 150
)

// Fixed replies for upstream failures. Callers never see an error; the
// conversation carries on with an apology instead.
const (
	AuthApology     = "Sorry, I couldn't authenticate with IBM Cloud for text generation."
	ThinkingApology = "Sorry, I'm having trouble thinking right now."
)

// Client answers free-text questions through watsonx.ai. The long-lived API
// key is exchanged for a short-lived IAM bearer token, cached until expiry.
type Client struct {
	projectID     string
	tokens        oauth2.TokenSource // nil when no API key is configured
	httpClient    *http.Client
	generationURL string
}

// New builds a Client. An empty apiKey leaves the client in a degraded mode
// where Generate always returns the auth apology.
func New(apiKey, projectID string) *Client {
	return newClient(apiKey, projectID, iamTokenURL, generationURL)
}

func newClient(apiKey, projectID, tokenURL, genURL string) *Client {
	c := &Client{
		projectID:     projectID,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		generationURL: genURL,
	}
	if apiKey != "" {
		c.tokens = oauth2.ReuseTokenSource(nil, &iamTokenSource{
			apiKey:     apiKey,
			url:        tokenURL,
			httpClient: c.httpClient,
		})
	}
	return c
}

type generationRequest struct {
	ModelID    string           `json:"model_id"`
	Input      string           `json:"input"`
	Parameters generationParams `json:"parameters"`
	ProjectID  string           `json:"project_id"`
}

type generationParams struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// Generate answers a user's question as the PauraX Guide. It never fails:
// upstream errors are logged and replaced with a fixed apology string.
func (c *Client) Generate(ctx context.Context, userMessage string) string {
	if c.tokens == nil {
		log.Error().Msg("watsonx: API key not provided for IAM token generation")
		return AuthApology
	}

	token, err := c.tokens.Token()
	if err != nil {
		log.Error().Err(err).Msg("watsonx: error fetching IAM token")
		return AuthApology
	}

	payload := generationRequest{
		ModelID:    modelID,
		Input:      fmt.Sprintf(guidePrompt, userMessage),
		Parameters: generationParams{MaxNewTokens: maxNewTokens},
		ProjectID:  c.projectID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("watsonx: error encoding generation payload")
		return ThinkingApology
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generationURL, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("watsonx: error building generation request")
		return ThinkingApology
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("watsonx: error calling generation API")
		return ThinkingApology
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("watsonx: generation API failed")
		return ThinkingApology
	}

	var result generationResponse
	if err := json.Unmarshal(raw, &result); err != nil || len(result.Results) == 0 {
		log.Error().Err(err).Msg("watsonx: unexpected generation response")
		return ThinkingApology
	}

	return strings.TrimSpace(result.Results[0].GeneratedText)
}

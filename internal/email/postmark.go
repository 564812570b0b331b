package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const postmarkBaseURL = "https://api.postmarkapp.com"

// PostmarkProvider talks to the Postmark REST API directly.
type PostmarkProvider struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
	MessageID string `json:"MessageID"`
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody,omitempty"`
	HtmlBody string `json:"HtmlBody,omitempty"`
	Tag      string `json:"Tag,omitempty"`
}

func NewPostmarkProvider(apiKey, from string) *PostmarkProvider {
	return NewPostmarkProviderWithBaseURL(apiKey, from, postmarkBaseURL)
}

func NewPostmarkProviderWithBaseURL(apiKey, from, baseURL string) *PostmarkProvider {
	return &PostmarkProvider{
		apiKey:  apiKey,
		from:    from,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PostmarkProvider) SendEmail(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(postmarkEmail{
		From:     p.from,
		To:       strings.Join(email.To, ","),
		Subject:  email.Subject,
		TextBody: email.Text,
		HtmlBody: email.HTML,
		Tag:      "proposal",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	body, status, err := p.do(ctx, http.MethodPost, "/email", jsonData)
	if err != nil {
		return err
	}

	var result postmarkResponse
	if status != http.StatusOK {
		if json.Unmarshal(body, &result) == nil && result.ErrorCode != 0 {
			return fmt.Errorf("postmark error (%d): %s", result.ErrorCode, result.Message)
		}
		return fmt.Errorf("postmark API returned status %d: %s", status, string(body))
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse postmark response: %w", err)
	}
	if result.ErrorCode != 0 {
		return fmt.Errorf("postmark error (%d): %s", result.ErrorCode, result.Message)
	}
	return nil
}

func (p *PostmarkProvider) ValidateAPIKey(ctx context.Context) error {
	body, status, err := p.do(ctx, http.MethodGet, "/server", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("invalid postmark API key: received status %d: %s", status, string(body))
	}
	return nil
}

func (p *PostmarkProvider) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create postmark request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Postmark-Server-Token", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call postmark: %w", err)
	}
	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return nil, 0, fmt.Errorf("failed to read postmark response: %w", readErr)
	}
	if closeErr != nil {
		return nil, 0, fmt.Errorf("failed to close postmark response body: %w", closeErr)
	}
	return body, resp.StatusCode, nil
}

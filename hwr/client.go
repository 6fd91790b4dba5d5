package hwr

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

const apiURL = "https://cloud.myscript.com/api/v4.0/iink/batch"

const jiixMimeType = "application/vnd.myscript.jiix"

// Client talks to the recognition service.
type Client struct {
	URL            string
	ApplicationKey string
	HmacKey        string
	HTTP           *http.Client
}

func NewClient(applicationKey, hmacKey string) *Client {
	return &Client{
		URL:            apiURL,
		ApplicationKey: applicationKey,
		HmacKey:        hmacKey,
		HTTP:           &http.Client{},
	}
}

// Sign returns the hex HMAC-SHA512 of data keyed with both keys.
func (c *Client) Sign(data []byte) string {
	mac := hmac.New(sha512.New, []byte(c.ApplicationKey+c.HmacKey))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// SendRequest posts one batch request and returns the response body.
func (c *Client) SendRequest(ctx context.Context, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", jiixMimeType+", application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("applicationKey", c.ApplicationKey)
	req.Header.Set("hmac", c.Sign(data))

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: Status %d, Response: %s", res.StatusCode, string(body))
	}
	return body, nil
}

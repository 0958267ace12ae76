// Package vision provides the content analysis client used to caption
// uploaded photos. The client targets the Azure Computer Vision image
// analysis REST API and returns the highest-confidence caption, if any.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/photobook/photobook/pkg/photobook"
)

const analyzePath = "/vision/v3.2/analyze?visualFeatures=Description"

// Config options for the Azure Computer Vision client
type Config struct {
	// Endpoint is the resource base URL, e.g. https://myresource.cognitiveservices.azure.com
	Endpoint string

	// Key is the subscription key sent with every request
	Key string

	// HTTPClient overrides the default client (30s timeout) when set
	HTTPClient *http.Client

	// UsageSink receives analysis usage signals; nil means none are emitted
	UsageSink photobook.UsageSink
}

// Client calls the image analysis endpoint and implements
// photobook.Describer
type Client struct {
	endpoint   string
	key        string
	httpClient *http.Client
	sink       photobook.UsageSink
}

// New creates a new Computer Vision client
func New(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if config.Key == "" {
		return nil, errors.New("subscription key is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	sink := config.UsageSink
	if sink == nil {
		sink = photobook.NewNoopUsageSink()
	}

	return &Client{
		endpoint:   strings.TrimRight(config.Endpoint, "/"),
		key:        config.Key,
		httpClient: httpClient,
		sink:       sink,
	}, nil
}

// analyzeResponse is the subset of the analysis payload we consume
type analyzeResponse struct {
	Description struct {
		Captions []struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"captions"`
	} `json:"description"`
}

// Describe sends the image to the analyzer and returns the
// highest-confidence caption, or nil when the analyzer produced none. The
// analyzer needs the full payload, so the stream is rewound and buffered
// before the call.
func (c *Client) Describe(ctx context.Context, image io.ReadSeeker) (*photobook.Caption, error) {
	if _, err := image.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	payload, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer image: %w", err)
	}

	c.sink.AnalysisRequested(ctx, int64(len(payload)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, body)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}

	var best *photobook.Caption
	for _, candidate := range result.Description.Captions {
		if best == nil || candidate.Confidence > best.Confidence {
			best = &photobook.Caption{Text: candidate.Text, Confidence: candidate.Confidence}
		}
	}
	if best == nil {
		return nil, nil
	}

	c.sink.CaptionProduced(ctx, best.Confidence)
	return best, nil
}

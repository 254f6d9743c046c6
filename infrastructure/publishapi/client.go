package publishapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialcraft/content-agent/agent/domain"
)

// Client talks to the external social-publishing API. It implements both the
// PublishGateway and MediaLibrary ports.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type createPostResponse struct {
	ExternalID string `json:"external_id"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

type mediaResponse struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// CreatePost submits a platform-agnostic create-post request and returns the
// external post identifier.
func (c *Client) CreatePost(ctx context.Context, req domain.CreatePostRequest) (string, error) {
	if c.baseURL == "" {
		return "", domain.ConfigurationError{Reason: "PUBLISHER_BASE_URL is not set"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", domain.PublishError{Reason: fmt.Sprintf("encode request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/posts", bytes.NewReader(payload))
	if err != nil {
		return "", domain.PublishError{Reason: err.Error()}
	}
	c.decorate(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", domain.PublishError{Reason: fmt.Sprintf("publishing API unreachable: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.PublishError{Code: resp.StatusCode, Reason: errorMessage(body, resp.StatusCode)}
	}

	var out createPostResponse
	if err := json.Unmarshal(body, &out); err != nil || out.ExternalID == "" {
		return "", domain.PublishError{Code: resp.StatusCode, Reason: "malformed response from publishing API"}
	}
	return out.ExternalID, nil
}

// MediaForPost looks up media stored for an indirect post reference. A 404
// is "no media", not an error.
func (c *Client) MediaForPost(ctx context.Context, mediaItemID string) (*domain.Media, error) {
	if c.baseURL == "" {
		return nil, domain.ConfigurationError{Reason: "PUBLISHER_BASE_URL is not set"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/media/"+mediaItemID, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logrus.Debugf("[PUBLISH_API] No media stored for item %s", mediaItemID)
		return nil, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("media lookup failed (%d): %s", resp.StatusCode, errorMessage(body, resp.StatusCode))
	}

	var out mediaResponse
	if err := json.Unmarshal(body, &out); err != nil || out.URL == "" {
		return nil, fmt.Errorf("malformed media response for item %s", mediaItemID)
	}

	mediaType := domain.MediaType(out.Type)
	if mediaType != domain.MediaTypeVideo {
		mediaType = domain.MediaTypeImage
	}
	return &domain.Media{URL: out.URL, Type: mediaType}, nil
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

func errorMessage(body []byte, status int) string {
	var out apiErrorResponse
	if err := json.Unmarshal(body, &out); err == nil && out.Message != "" {
		return out.Message
	}
	return http.StatusText(status)
}

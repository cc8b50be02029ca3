package exercisedb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartgains/trainer-app/internal/config"
)

// Client fetches exercises from the RapidAPI exercise database. Used once at
// import time to seed the local exercise library; normal serving never
// touches this API.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
}

// Exercise is the provider's wire shape.
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Equipment        string   `json:"equipment"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	GifURL           string   `json:"gifUrl"`
}

// NewClient creates an exercise database client from configuration.
func NewClient(cfg config.ExerciseDBConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		host:    cfg.Host,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Exercises pages through the full catalog. The provider caps page size, so
// the import loops until a short page comes back.
func (c *Client) Exercises(ctx context.Context, limit, offset int) ([]Exercise, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return c.get(ctx, "/exercises?"+q.Encode())
}

// ExercisesByBodyPart fetches one body part's exercises.
func (c *Client) ExercisesByBodyPart(ctx context.Context, bodyPart string, limit int) ([]Exercise, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, "/exercises/bodyPart/"+url.PathEscape(bodyPart)+"?"+q.Encode())
}

func (c *Client) get(ctx context.Context, path string) ([]Exercise, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build exercisedb request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exercisedb request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read exercisedb response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exercisedb returned %d: %s", resp.StatusCode, body)
	}

	var exercises []Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("parse exercisedb response: %w", err)
	}
	return exercises, nil
}

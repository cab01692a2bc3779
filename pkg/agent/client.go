package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ModelConfig is one remote agent identity. Each supported model selector
// maps to a dedicated (agent, session) pair on the hosted platform.
type ModelConfig struct {
	AgentId   string
	SessionId string
}

// modelConfigs maps a model selector to its agent identity. Unrecognized
// selectors fall back to "default".
var modelConfigs = map[string]ModelConfig{
	"default": {
		AgentId:   "685c014868ff00bd2c532174",
		SessionId: "685c014868ff00bd2c532174-93oe69qh5v",
	},
	"gpt4o": {
		AgentId:   "6860419f07799c3de0aa089c",
		SessionId: "6860419f07799c3de0aa089c-bu34mnzhquk",
	},
	"claude": {
		AgentId:   "686042dd07b1ed02554b1a4b",
		SessionId: "686042dd07b1ed02554b1a4b-k0dm1db3nji",
	},
	"gemini": {
		AgentId:   "6860434807b1ed02554b1a4c",
		SessionId: "6860434807b1ed02554b1a4c-t4ad2kg4frf",
	},
	"groq": {
		AgentId:   "686043bd1acbe3caf17ff707",
		SessionId: "686043bd1acbe3caf17ff707-6hahfh0zio",
	},
}

// ResolveModel returns the agent identity for a model selector.
func ResolveModel(model string) ModelConfig {
	if cfg, ok := modelConfigs[model]; ok {
		return cfg
	}
	return modelConfigs["default"]
}

// APIError carries the upstream HTTP status and body so callers can
// classify quota exhaustion separately from generic agent failures.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agent api error (status %d): %s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey  string
	baseURL string
	userId  string
	client  *http.Client
}

type chatRequest struct {
	UserId    string `json:"user_id"`
	AgentId   string `json:"agent_id"`
	SessionId string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
}

func NewClient(apiKey, baseURL, userId string) *Client {
	if baseURL == "" {
		baseURL = "https://agent-prod.studio.lyzr.ai"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		userId:  userId,
		client:  &http.Client{},
	}
}

// Chat sends one message to the hosted agent and returns its raw text reply.
func (c *Client) Chat(ctx context.Context, message string, model ModelConfig) (string, error) {
	reqBody := chatRequest{
		UserId:    c.userId,
		AgentId:   model.AgentId,
		SessionId: model.SessionId,
		Message:   message,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v3/inference/chat/", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// Some agent versions answer in "response", older ones in "message".
	if chatResp.Response != "" {
		return chatResp.Response, nil
	}
	return chatResp.Message, nil
}

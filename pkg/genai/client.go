// Package genai is a thin client for an OpenAI-compatible chat completions
// API with support for tool calling and JSON-constrained output.
package genai

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
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	// maxToolRounds caps the tool-calling loop so a misbehaving model cannot
	// keep requesting tool executions forever.
	maxToolRounds = 4
)

// Tool is a named, schema-typed function the model may invoke before
// producing its final output. Parameters is a JSON Schema object describing
// the tool's arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Handler     func(ctx context.Context, arguments json.RawMessage) (interface{}, error)
}

// ToolError reports a failed tool execution during the generation loop.
type ToolError struct {
	Name string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Name, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Client calls a hosted chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new model client. Empty baseURL and model fall back to
// the OpenAI defaults.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

// Message is a single chat message on the wire.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-requested tool invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type functionDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type toolDefinition struct {
	Type     string             `json:"type"`
	Function functionDefinition `json:"function"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string           `json:"model"`
	Messages       []Message        `json:"messages"`
	Tools          []toolDefinition `json:"tools,omitempty"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// GenerateJSON runs the tool-calling loop for prompt until the model
// produces a final message and returns its content, which is requested as a
// JSON object. Tool handlers are executed locally; their results are fed
// back to the model as tool messages.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, tools []Tool) (string, error) {
	byName := make(map[string]Tool, len(tools))
	defs := make([]toolDefinition, 0, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
		defs = append(defs, toolDefinition{
			Type: "function",
			Function: functionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	messages := []Message{{Role: "user", Content: prompt}}

	for round := 0; round <= maxToolRounds; round++ {
		msg, err := c.complete(ctx, chatRequest{
			Model:          c.model,
			Messages:       messages,
			Tools:          defs,
			ResponseFormat: &responseFormat{Type: "json_object"},
		})
		if err != nil {
			return "", err
		}

		if len(msg.ToolCalls) == 0 {
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				return "", errors.New("model returned an empty message")
			}
			return content, nil
		}

		messages = append(messages, *msg)
		for _, call := range msg.ToolCalls {
			tool, ok := byName[call.Function.Name]
			if !ok {
				return "", &ToolError{Name: call.Function.Name, Err: errors.New("unknown tool")}
			}
			result, err := tool.Handler(ctx, json.RawMessage(call.Function.Arguments))
			if err != nil {
				return "", &ToolError{Name: call.Function.Name, Err: err}
			}
			body, err := json.Marshal(result)
			if err != nil {
				return "", &ToolError{Name: call.Function.Name, Err: err}
			}
			messages = append(messages, Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    string(body),
			})
		}
	}

	return "", fmt.Errorf("model did not finish within %d tool rounds", maxToolRounds)
}

func (c *Client) complete(ctx context.Context, payload chatRequest) (*Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp)
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("model response contained no choices")
	}
	return &response.Choices[0].Message, nil
}

func parseAPIError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return fmt.Errorf("model api error: %s", resp.Status)
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		return fmt.Errorf("model api error: %s", payload.Error.Message)
	}
	return fmt.Errorf("model api error: %s", resp.Status)
}

// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "encoding/json"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// ToolInfoResponse describes one tool definition.
type ToolInfoResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// ListToolsResponse represents the response for listing tools.
type ListToolsResponse struct {
	Tools []ToolInfoResponse `json:"tools"`
}

// CallToolRequest represents a tool invocation request.
type CallToolRequest struct {
	Arguments json.RawMessage `json:"arguments"`
}

// CallToolResponse represents a tool invocation result rendered as text.
type CallToolResponse struct {
	Content string `json:"content"`
}

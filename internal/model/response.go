package model

// ContentBlock is a single text block in a tool response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResponse is the envelope returned by the travel-guide endpoint.
// StructuredContent is omitted when IsError is set.
type ToolResponse struct {
	Content           []ContentBlock `json:"content"`
	StructuredContent *TravelReport  `json:"structuredContent,omitempty"`
	IsError           bool           `json:"isError"`
}

// NewTextResponse wraps a digest and its report into a success envelope.
func NewTextResponse(text string, report *TravelReport) *ToolResponse {
	return &ToolResponse{
		Content:           []ContentBlock{{Type: "text", Text: text}},
		StructuredContent: report,
	}
}

// NewErrorResponse wraps an error message into an error-flagged envelope.
func NewErrorResponse(message string) *ToolResponse {
	return &ToolResponse{
		Content: []ContentBlock{{Type: "text", Text: message}},
		IsError: true,
	}
}

// Response is a generic struct for plain API error responses
// (bad request, rate limit, auth failures).
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}

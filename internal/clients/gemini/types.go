package gemini

type requestPart struct {
	Text string `json:"text"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Enum       []string           `json:"enum,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateRequest struct {
	SystemInstruction *requestContent   `json:"systemInstruction,omitempty"`
	Contents          []requestContent  `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type responsePart struct {
	Text string `json:"text"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
	Role  string         `json:"role"`
}

type candidate struct {
	Content      responseContent `json:"content"`
	FinishReason string          `json:"finishReason"`
	Index        int             `json:"index"`
}

type generateResponse struct {
	Candidates     []candidate    `json:"candidates"`
	PromptFeedback map[string]any `json:"promptFeedback,omitempty"`
}

// commandSchema constrains structured replies to the command shapes the
// interpreter understands.
var commandSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"action": {
			Type: "STRING",
			Enum: []string{"create_expense", "update_expense", "delete_expense", "reply"},
		},
		"id":          {Type: "STRING"},
		"description": {Type: "STRING"},
		"amount":      {Type: "NUMBER"},
		"message":     {Type: "STRING"},
	},
	Required: []string{"action"},
}

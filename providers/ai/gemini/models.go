package gemini

// generateContentRequest is the request body for generateContent and
// streamGenerateContent.
type generateContentRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

// content is a role-tagged list of parts. systemInstruction omits the role.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateContentResponse is the subset of a response (or of one streamed
// chunk, which has the same shape) that we read.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *struct {
		Parts *[]struct {
			Text *string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

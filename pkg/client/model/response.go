package model

// JsonResponse is the envelope every API endpoint answers with.
type JsonResponse struct {
	Code       int            `json:"code"`
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	Result     any            `json:"result,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

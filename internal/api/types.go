package api

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	ID      string      `json:"id,omitempty"`
	Token   string      `json:"token,omitempty"`
	Name    string      `json:"name,omitempty"`
}

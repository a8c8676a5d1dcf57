package dto

// ErrorResponse is the uniform error envelope. Error holds a message fit for
// direct display; Kind disambiguates programmatically.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
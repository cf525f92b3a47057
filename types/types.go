package types

// This represents an error
type ApiError struct {
	Context map[string]string `json:"context,omitempty" description:"Any extra context for the error, if any"`
	Message string            `json:"message" description:"The error message"`
	Error   bool              `json:"error" description:"Whether or not this is an error. Always true"`
}

// Package api contains the response bodies of the contact directory that are not contacts
// themselves. Clients can decode error responses into these types.
package api

// FieldError names one violated constraint of a request.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the body of every response with a 4xx or 5xx status code. Errors is only
// set for validation failures and conflicts.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Fields returns the names of the offending fields in the order they were reported.
func (r ErrorResponse) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// Messages used in error responses.
const (
	MessageInvalidJSON      = "invalid JSON"
	MessageValidationFailed = "validation failed"
	MessageNotFound         = "NOT FOUND"
	MessageConflict         = "email already exists"
	MessageInternalError    = "internal server error"
)

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseJSON(t *testing.T) {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"message": "validation failed",
		"errors": [
			{"field": "phone", "rule": "min", "param": "9"},
			{"field": "birthday", "rule": "past"}
		]
	}`), &resp))
	assert.Equal(t, MessageValidationFailed, resp.Message)
	assert.Equal(t, []string{"phone", "birthday"}, resp.Fields())
	assert.Equal(t, "9", resp.Errors[0].Param)

	data, err := json.Marshal(ErrorResponse{Message: MessageNotFound})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "NOT FOUND"}`, string(data))
}

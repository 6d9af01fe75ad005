package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeList(t *testing.T) {
	var sizes sizeList
	require.NoError(t, sizes.Set("10, 200,3000"))
	assert.Equal(t, sizeList{10, 200, 3000}, sizes)
	assert.Equal(t, "10,200,3000", sizes.String())

	assert.Error(t, sizes.Set("10,ten"))
	assert.Error(t, sizes.Set("0"))
}

func TestRandomContactsHaveDifferentEmails(t *testing.T) {
	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal(randomContact(), &first))
	require.NoError(t, json.Unmarshal(randomContact(), &second))
	assert.NotEqual(t, first["email"], second["email"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, first["birthday"])
}

func TestBenchmarkPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &payload))
		payload["id"] = 77
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	b := benchmark{base: server.URL, client: server.Client()}
	id, duration := b.post(randomContact())
	assert.Equal(t, int64(77), id)
	assert.Positive(t, duration)
}

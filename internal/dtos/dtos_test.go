package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobCreationRequest_KeepsUnknownKeys(t *testing.T) {
	var req JobCreationRequest
	body := `{"title":"Go Developer","hr_email":"hr@x.com","requirements":["Go"],"benefits":["remote"],"_id":"spoof"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "Go Developer", req.Title)
	assert.Equal(t, []string{"Go"}, req.Requirements)
	assert.Equal(t, map[string]any{"benefits": []any{"remote"}}, req.Extra)

	job := req.ToModel()
	assert.Equal(t, req.Extra, job.Extra)
	assert.Equal(t, "hr@x.com", job.HREmail)
}

func TestJobCreationRequest_RejectsBadJSON(t *testing.T) {
	var req JobCreationRequest
	assert.Error(t, json.Unmarshal([]byte(`{"title":1}`), &req))
}

func TestApplicationCreationRequest_KeepsUnknownKeys(t *testing.T) {
	var req ApplicationCreationRequest
	body := `{"job_id":"abc","application_email":"a@x.com","cover_letter":"hi","company":"spoof"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "abc", req.JobID)
	assert.Equal(t, "a@x.com", req.ApplicationEmail)
	assert.Equal(t, map[string]any{"cover_letter": "hi"}, req.Extra)
}

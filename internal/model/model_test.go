package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEmailCanSignup(t *testing.T) {
	assert.True(t, EmailCanSignup("alice@vu.nl"))
	assert.True(t, EmailCanSignup("bob@student.vu.nl"))
	assert.False(t, EmailCanSignup("eve@gmail.com"))
	assert.False(t, EmailCanSignup("mallory@vu.nl.evil.com"))
	assert.False(t, EmailCanSignup(""))
}

func TestRandomToken(t *testing.T) {
	a := RandomToken(16)
	b := RandomToken(16)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "/", "tokens must be URL safe")
	assert.NotContains(t, a, "+", "tokens must be URL safe")
}

func TestParseSMARTData(t *testing.T) {
	data, err := ParseSMARTData(datatypes.JSON([]byte(`{"goal":"g","plan":"p"}`)))
	require.NoError(t, err)
	assert.Equal(t, "g", data.Goal)
	assert.Equal(t, "p", data.Plan)

	_, err = ParseSMARTData(datatypes.JSON([]byte(`{"goal":"g"}`)))
	assert.Error(t, err, "missing plan")

	_, err = ParseSMARTData(datatypes.JSON([]byte(`not json`)))
	assert.Error(t, err)
}

func TestParseAIFeedbackJobData(t *testing.T) {
	id := uuid.New()
	job, err := NewAIFeedbackJob(id)
	require.NoError(t, err)
	assert.Equal(t, JobTypeAIFeedback, job.JobType)
	assert.Equal(t, JobStatusPending, job.Status)

	data, err := ParseAIFeedbackJobData(job.Data)
	require.NoError(t, err)
	assert.Equal(t, id, data.AttemptID)

	// an empty payload decodes but carries no attempt reference
	_, err = ParseAIFeedbackJobData(datatypes.JSON([]byte(`{}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing attempt_id")
}

func TestJobString(t *testing.T) {
	job, err := NewAIFeedbackJob(uuid.New())
	require.NoError(t, err)
	s := job.String()
	assert.Contains(t, s, "job_type=ai_feedback")
	assert.Contains(t, s, "status=pending")
}

func TestFeedbackDataRoundTrip(t *testing.T) {
	prompt := "the prompt"
	raw, err := FeedbackData{Feedback: "well done", Prompt: &prompt, Cost: 0.002}.ToJSON()
	require.NoError(t, err)

	data, err := ParseFeedbackData(raw)
	require.NoError(t, err)
	assert.Equal(t, "well done", data.Feedback)
	require.NotNil(t, data.Prompt)
	assert.Equal(t, prompt, *data.Prompt)
	assert.False(t, data.Approved)
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSMARTFeedbackPrompt(t *testing.T) {
	prompt := BuildSMARTFeedbackPrompt("my goal", "my plan", "English")

	assert.Contains(t, prompt, FeedbackPrinciples)
	assert.Contains(t, prompt, SMARTRubric)
	assert.Contains(t, prompt, "my goal")
	assert.Contains(t, prompt, "my plan")
	assert.Contains(t, prompt, "written in English")

	// the worked example precedes the student's submission
	example := strings.Index(prompt, "An example of a SMART goal")
	submission := strings.Index(prompt, "my goal")
	assert.Greater(t, submission, example)
}

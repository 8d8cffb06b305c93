package service

import (
	"fmt"
	"strings"
)

// FeedbackPrinciples are the ground rules every generated feedback text must
// follow. Surfaced in the prompt ahead of the rubric.
const FeedbackPrinciples = `- Be constructive: name what is done well before naming what can improve.
- Be specific: point at concrete phrases in the student's goal or plan, never at the student.
- Be actionable: every point of critique comes with a concrete suggestion for improvement.
- Ask guiding questions rather than giving away a rewritten goal.
- Keep the feedback concise (at most a few short paragraphs).`

// SMARTRubric describes the assignment the student is graded against.
const SMARTRubric = `A SMART learning goal is:
- Specific: it names one clearly delimited skill or behavior to improve.
- Measurable: it is clear how achievement of the goal can be observed or verified.
- Action-oriented: it states what the student will concretely be doing when the goal is met.
- Relevant: it fits the course's assessment criteria and the student's own development.
- Time-bound: it names the moment or period in which the goal applies.
The accompanying action plan lists the concrete preparation steps the student
will take, and how intermediate progress will be checked and adjusted.`

const smartExampleGoal = `Make eye contact with the audience during my video pitch and literature presentation to better engage the viewer with my story. In the video pitch, I do this by looking closely into the camera most of the time and in the literature presentation by alternately looking at the different people in the audience, both my fellow students and teachers.`

const smartExamplePlan = `I will achieve this by not memorising my story verbatim, but rather by using keywords and by practising looking into the camera and making video recordings of this during the preparation of my pitch. I also practise my literature presentation dry where my group mates sit on opposite sides of the room. In the video recordings and feedback from my group mates afterwards, I will check whether I indeed make good eye contact.`

// BuildSMARTFeedbackPrompt assembles the single prompt sent to the LLM for one
// attempt: principles, rubric, a worked example, then the student's own goal
// and plan. language controls the language the feedback is written in.
func BuildSMARTFeedbackPrompt(goal, plan, language string) string {
	var b strings.Builder
	b.WriteString("You are a peer reviewer, tasked with giving a student feedback about an assignment.\n")
	b.WriteString("Your feedback must adhere to the following principles:\n")
	b.WriteString(FeedbackPrinciples)
	b.WriteString("\n\nThe rubric for the assignment follows (delimited by =====):\n=====\n")
	b.WriteString(SMARTRubric)
	b.WriteString("\n=====\n\n")
	b.WriteString("An example of a SMART goal and action plan follows:\n")
	b.WriteString(fmt.Sprintf("smart goal:\n%q\n\naction plan:\n%q\n=====\n\n", smartExampleGoal, smartExamplePlan))
	b.WriteString(fmt.Sprintf("Now provide feedback (written in %s) and adhering to the feedback principles on the following assignment:\n\n", language))
	b.WriteString(fmt.Sprintf("smart goal:\n%s\n\naction plan:\n%s\n", goal, plan))
	return b.String()
}

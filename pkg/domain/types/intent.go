package types

import "github.com/m-mizutani/goerr/v2"

// Intent is the category assigned to a user message by the local
// fallback classifier.
type Intent string

const (
	IntentEmergency        Intent = "emergency"
	IntentHealthConcern    Intent = "health_concern"
	IntentBehaviorIssue    Intent = "behavior_issue"
	IntentFeedingQuestion  Intent = "feeding_question"
	IntentExercisePlanning Intent = "exercise_planning"
	IntentGroomingAdvice   Intent = "grooming_advice"
	IntentTaskCreation     Intent = "task_creation"
	IntentGeneralQuestion  Intent = "general_question"
)

// Intents lists all intents in classifier priority order. Emergency is
// tested first so a message matching multiple categories resolves to the
// most severe one.
func Intents() []Intent {
	return []Intent{
		IntentEmergency,
		IntentHealthConcern,
		IntentBehaviorIssue,
		IntentFeedingQuestion,
		IntentExercisePlanning,
		IntentGroomingAdvice,
		IntentTaskCreation,
		IntentGeneralQuestion,
	}
}

// Validate checks if the Intent is a known value
func (i Intent) Validate() error {
	for _, known := range Intents() {
		if i == known {
			return nil
		}
	}
	return goerr.New("unknown intent", goerr.V("intent", i))
}

// String returns the string representation of Intent
func (i Intent) String() string {
	return string(i)
}

package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/usecase"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		name    string
		message string
		expect  types.Intent
	}{
		{
			name:    "emergency keyword",
			message: "My dog swallowed something and is choking",
			expect:  types.IntentEmergency,
		},
		{
			name:    "health concern",
			message: "Rex has been vomiting since yesterday",
			expect:  types.IntentHealthConcern,
		},
		{
			name:    "behavior issue",
			message: "why is she barking at night",
			expect:  types.IntentBehaviorIssue,
		},
		{
			name:    "feeding question",
			message: "How much food should a kitten get?",
			expect:  types.IntentFeedingQuestion,
		},
		{
			name:    "exercise planning",
			message: "how long should our daily walk be",
			expect:  types.IntentExercisePlanning,
		},
		{
			name:    "grooming advice",
			message: "when should I trim his nails",
			expect:  types.IntentGroomingAdvice,
		},
		{
			name:    "task creation",
			message: "remind me to give the medication",
			expect:  types.IntentTaskCreation,
		},
		{
			name:    "no keywords falls through to general",
			message: "hello there",
			expect:  types.IntentGeneralQuestion,
		},
		{
			name:    "case insensitive matching",
			message: "EMERGENCY! Please help",
			expect:  types.IntentEmergency,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, usecase.ClassifyIntent(tc.message)).Equal(tc.expect)
		})
	}
}

func TestClassifyIntentPriority(t *testing.T) {
	t.Run("emergency wins over feeding", func(t *testing.T) {
		// "bleeding" (emergency) and "hungry" (feeding) in one message
		intent := usecase.ClassifyIntent("He is bleeding but also seems hungry")
		gt.Value(t, intent).Equal(types.IntentEmergency)
	})

	t.Run("health wins over grooming", func(t *testing.T) {
		intent := usecase.ClassifyIntent("She keeps itching after the bath")
		gt.Value(t, intent).Equal(types.IntentHealthConcern)
	})

	t.Run("order does not depend on keyword position", func(t *testing.T) {
		a := usecase.ClassifyIntent("hungry and bleeding")
		b := usecase.ClassifyIntent("bleeding and hungry")
		gt.Value(t, a).Equal(b)
		gt.Value(t, a).Equal(types.IntentEmergency)
	})
}

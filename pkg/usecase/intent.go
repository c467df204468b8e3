package usecase

import (
	"strings"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// intentKeywords maps each intent to its keyword list. Matching is plain
// substring containment on the lower-cased message; no stemming, no
// scoring.
var intentKeywords = map[types.Intent][]string{
	types.IntentEmergency: {
		"emergency", "bleeding", "blood", "poison", "choking", "seizure",
		"collapsed", "unconscious", "hit by", "can't breathe", "cannot breathe",
		"swallowed",
	},
	types.IntentHealthConcern: {
		"sick", "vomit", "diarrhea", "pain", "limping", "fever", "not eating",
		"coughing", "itching", "lethargic", "health", "symptom",
	},
	types.IntentBehaviorIssue: {
		"barking", "biting", "aggressive", "anxious", "anxiety", "chewing",
		"scratching the", "destructive", "behavior", "behaviour",
	},
	types.IntentFeedingQuestion: {
		"food", "feed", "hungry", "diet", "meal", "nutrition", "treats",
		"how much should", "eat",
	},
	types.IntentExercisePlanning: {
		"exercise", "walk", "play", "activity", "energy", "run",
	},
	types.IntentGroomingAdvice: {
		"groom", "bath", "brush", "nail", "fur", "coat", "shedding",
	},
	types.IntentTaskCreation: {
		"remind", "task", "schedule", "appointment", "add a",
	},
}

// ClassifyIntent maps free text to an intent, used only on the local
// fallback path. Intents are tested in severity-first priority order:
// a message containing both an emergency keyword and a feeding keyword
// classifies as emergency. First matching category wins; with no match
// the intent is general_question.
func ClassifyIntent(message string) types.Intent {
	lowered := strings.ToLower(message)

	for _, intent := range types.Intents() {
		keywords, ok := intentKeywords[intent]
		if !ok {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				return intent
			}
		}
	}

	return types.IntentGeneralQuestion
}

package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/service/guideline"
)

// fallbackGenerator composes deterministic answers when the remote
// reasoning service is unreachable. It is total: every input produces
// some response, and it has no failure path.
type fallbackGenerator struct {
	guidelines *guideline.Registry
}

func newFallbackGenerator(guidelines *guideline.Registry) *fallbackGenerator {
	if guidelines == nil {
		guidelines = guideline.NewDefault()
	}
	return &fallbackGenerator{guidelines: guidelines}
}

// Generate produces the fallback reply and its raw action descriptors.
// Actions go through the same normalizer as remote ones so routing stays
// uniform regardless of where a response came from.
func (g *fallbackGenerator) Generate(message string, intent types.Intent, assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	if assistantCtx == nil {
		assistantCtx = &model.AssistantContext{}
	}

	lowered := strings.ToLower(message)

	// Numeric reasoning the canned handlers cannot cover: age extremum
	// questions are answered directly from context.
	if strings.Contains(lowered, "oldest") || strings.Contains(lowered, "youngest") {
		if reply, actions, ok := g.ageExtremum(lowered, assistantCtx); ok {
			return reply, actions
		}
	}

	switch intent {
	case types.IntentEmergency:
		return g.emergency()
	case types.IntentHealthConcern:
		return g.healthConcern(assistantCtx)
	case types.IntentBehaviorIssue:
		return g.behaviorIssue()
	case types.IntentFeedingQuestion:
		return g.feedingQuestion(assistantCtx)
	case types.IntentExercisePlanning:
		return g.exercisePlan(assistantCtx)
	case types.IntentGroomingAdvice:
		return g.groomingAdvice()
	case types.IntentTaskCreation:
		return g.taskCreation()
	default:
		return g.greeting(assistantCtx)
	}
}

func (g *fallbackGenerator) ageExtremum(lowered string, assistantCtx *model.AssistantContext) (string, []model.RawAction, bool) {
	if len(assistantCtx.Pets) == 0 {
		return "", nil, false
	}

	oldest := strings.Contains(lowered, "oldest")

	extremum := assistantCtx.Pets[0]
	for _, pet := range assistantCtx.Pets[1:] {
		if oldest && pet.Age > extremum.Age {
			extremum = pet
		}
		if !oldest && pet.Age < extremum.Age {
			extremum = pet
		}
	}

	which := "youngest"
	if oldest {
		which = "oldest"
	}
	reply := fmt.Sprintf("%s is your %s pet at %s.", extremum.Name, which, humanAge(extremum.Age))

	actions := []model.RawAction{
		{Type: types.ActionViewTips.String(), Label: "Care tips for " + extremum.Name,
			Description: fmt.Sprintf("See age-appropriate care tips for %s", extremum.Name)},
	}
	return reply, actions, true
}

// humanAge renders a fractional age: months under one year, otherwise
// whole years with the right singular/plural form.
func humanAge(age float64) string {
	if age < 1 {
		months := int(math.Round(age * 12))
		if months >= 12 {
			return "1 year old"
		}
		if months <= 1 {
			return "1 month old"
		}
		return fmt.Sprintf("%d months old", months)
	}

	years := int(age)
	if years == 1 {
		return "1 year old"
	}
	return fmt.Sprintf("%d years old", years)
}

func (g *fallbackGenerator) emergency() (string, []model.RawAction) {
	reply := "This sounds like it could be an emergency. Please contact your veterinarian or an emergency animal hospital immediately. " +
		"While waiting: keep your pet calm and warm, do not give food or water unless instructed, and bring any suspected toxin packaging with you."

	return reply, []model.RawAction{
		{Type: types.ActionEmergencyVet.String(), Label: "Find emergency vet",
			Description: "Locate the nearest emergency veterinary clinic"},
		{Type: types.ActionContact.String(), Label: "Call your vet",
			Description: "Call your regular veterinarian now"},
	}
}

func (g *fallbackGenerator) healthConcern(assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	reply := "I'm sorry to hear your pet isn't feeling well. Keep an eye on appetite, energy, and bathroom habits, and note when the symptoms started. " +
		"If symptoms persist beyond 24 hours or get worse, please see your veterinarian."
	if pet := assistantCtx.SelectedPet; pet != nil && len(pet.HealthIssues) > 0 {
		reply += fmt.Sprintf(" Since %s has a history of %s, it's worth mentioning that to the vet.",
			pet.Name, strings.Join(pet.HealthIssues, ", "))
	}

	return reply, []model.RawAction{
		{Type: types.ActionScheduleVet.String(), Label: "Schedule vet visit",
			Description: "Book an appointment with your veterinarian"},
		{Type: types.ActionHealthMonitoring.String(), Label: "Track symptoms",
			Description: "Start a symptom log to share with your vet"},
	}
}

func (g *fallbackGenerator) behaviorIssue() (string, []model.RawAction) {
	reply := "Behavior changes usually have a cause: a new environment, boredom, or sometimes an underlying health issue. " +
		"Consistency helps - reward the behavior you want and avoid reinforcing the one you don't. If it started suddenly, rule out pain with a vet check."

	return reply, []model.RawAction{
		{Type: types.ActionCareTips.String(), Label: "Behavior tips",
			Description: "Read common causes and fixes for behavior issues"},
		{Type: types.ActionVetConsultation.String(), Label: "Ask a vet",
			Description: "Consult a veterinarian about sudden behavior changes"},
	}
}

func (g *fallbackGenerator) feedingQuestion(assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	reply := "Feeding needs depend on species, age, weight, and activity level. As a rule of thumb, follow the feeding guide on your pet food and adjust for body condition. " +
		"Fresh water should always be available."
	if pet := assistantCtx.SelectedPet; pet != nil && pet.WeightKg > 0 {
		reply += fmt.Sprintf(" For %s at %.1f kg, your vet can confirm the right daily portion.", pet.Name, pet.WeightKg)
	}

	return reply, []model.RawAction{
		{Type: types.ActionDietConsultation.String(), Label: "Diet consultation",
			Description: "Get a portion plan tailored to your pet"},
		{Type: types.ActionNutritionTips.String(), Label: "Nutrition tips",
			Description: "Read feeding guidelines by species and age"},
	}
}

func (g *fallbackGenerator) exercisePlan(assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	if len(assistantCtx.Pets) == 0 {
		return "Tell me about your pets and I can suggest an exercise routine for each of them.",
			[]model.RawAction{
				{Type: types.ActionAddPet.String(), Label: "Add a pet",
					Description: "Add your pet to get tailored advice"},
			}
	}

	var sb strings.Builder
	sb.WriteString("Here's an exercise guideline for each of your pets:\n")
	for _, pet := range assistantCtx.Pets {
		species := types.NormalizeSpecies(pet.Type)
		sb.WriteString(fmt.Sprintf("- %s: %s\n", pet.Name, g.guidelines.Exercise(species, pet.Age)))
	}

	return sb.String(), []model.RawAction{
		{Type: types.ActionExercisePlan.String(), Label: "Build exercise plan",
			Description: "Turn these guidelines into a weekly plan"},
		{Type: types.ActionCreateTask.String(), Label: "Add walk reminder",
			Description: "Create a recurring exercise task"},
	}
}

func (g *fallbackGenerator) groomingAdvice() (string, []model.RawAction) {
	reply := "Regular grooming keeps skin and coat healthy: brush a few times a week, bathe only when needed with pet-safe shampoo, and check ears and nails monthly. " +
		"Long-haired breeds need more frequent brushing to prevent matting."

	return reply, []model.RawAction{
		{Type: types.ActionCareTips.String(), Label: "Grooming guide",
			Description: "Read grooming basics for your pet's coat type"},
		{Type: types.ActionCreateTask.String(), Label: "Add grooming task",
			Description: "Schedule a recurring grooming session"},
	}
}

func (g *fallbackGenerator) taskCreation() (string, []model.RawAction) {
	reply := "I can help you keep track of care tasks. Use the button below to create one, and I'll remind you when it's due."

	return reply, []model.RawAction{
		{Type: types.ActionCreateTask.String(), Label: "Create task",
			Description: "Create a new care task"},
	}
}

func (g *fallbackGenerator) greeting(assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	var reply string
	if len(assistantCtx.Pets) == 0 {
		reply = "Hi! I'm your pet-care assistant. Add a pet and I can help with health, feeding, exercise, and daily care."
	} else {
		names := make([]string, 0, len(assistantCtx.Pets))
		for _, pet := range assistantCtx.Pets {
			names = append(names, pet.Name)
		}
		reply = fmt.Sprintf("Hi! I'm here to help you take care of %s. Ask me about health, feeding, exercise, grooming, or anything else.",
			joinNames(names))
	}

	return reply, []model.RawAction{
		{Type: types.ActionViewTips.String(), Label: "Browse care tips",
			Description: "See popular pet-care topics"},
		{Type: types.ActionCreateTask.String(), Label: "Plan a task",
			Description: "Create a care task or reminder"},
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

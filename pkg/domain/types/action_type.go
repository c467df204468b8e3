package types

import "github.com/m-mizutani/goerr/v2"

// ActionType classifies a suggested follow-up action. The set is closed:
// the routing layer outside this service maps each type to a concrete
// behavior, so the assistant must only ever emit values from this list.
type ActionType string

const (
	ActionCreateTask       ActionType = "create_task"
	ActionScheduleVet      ActionType = "schedule_vet"
	ActionScheduleCheckup  ActionType = "schedule_checkup"
	ActionEmergency        ActionType = "emergency"
	ActionEmergencyVet     ActionType = "emergency_vet"
	ActionHealthCheck      ActionType = "health_check"
	ActionHealthMonitoring ActionType = "health_monitoring"
	ActionHealthTracking   ActionType = "health_tracking"
	ActionComfortCare      ActionType = "comfort_care"
	ActionVetConsultation  ActionType = "vet_consultation"
	ActionDietConsultation ActionType = "diet_consultation"
	ActionRetry            ActionType = "retry"
	ActionContact          ActionType = "contact"
	ActionContactSupport   ActionType = "contact_support"
	ActionViewTips         ActionType = "view_tips"
	ActionGeneralTips      ActionType = "general_tips"
	ActionCareTips         ActionType = "care_tips"
	ActionExercisePlan     ActionType = "exercise_plan"
	ActionNutritionTips    ActionType = "nutrition_tips"
	ActionAddPet           ActionType = "add_pet"
	ActionGeneral          ActionType = "general"
)

var actionTypes = map[ActionType]struct{}{
	ActionCreateTask:       {},
	ActionScheduleVet:      {},
	ActionScheduleCheckup:  {},
	ActionEmergency:        {},
	ActionEmergencyVet:     {},
	ActionHealthCheck:      {},
	ActionHealthMonitoring: {},
	ActionHealthTracking:   {},
	ActionComfortCare:      {},
	ActionVetConsultation:  {},
	ActionDietConsultation: {},
	ActionRetry:            {},
	ActionContact:          {},
	ActionContactSupport:   {},
	ActionViewTips:         {},
	ActionGeneralTips:      {},
	ActionCareTips:         {},
	ActionExercisePlan:     {},
	ActionNutritionTips:    {},
	ActionAddPet:           {},
	ActionGeneral:          {},
}

// IsValid reports whether the ActionType is a member of the closed set
func (a ActionType) IsValid() bool {
	_, ok := actionTypes[a]
	return ok
}

// Validate checks if the ActionType is a known value
func (a ActionType) Validate() error {
	if !a.IsValid() {
		return goerr.New("unknown action type", goerr.V("type", a))
	}
	return nil
}

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

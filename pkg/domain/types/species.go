package types

import "strings"

// Species is the kind of pet. Exercise and care guidelines are only
// defined for dogs and cats; everything else falls back to generic advice.
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesUnknown Species = "unknown"
)

// NormalizeSpecies maps a free-form pet type string to a Species
func NormalizeSpecies(s string) Species {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dog", "puppy", "canine":
		return SpeciesDog
	case "cat", "kitten", "feline":
		return SpeciesCat
	default:
		return SpeciesUnknown
	}
}

// String returns the string representation of Species
func (s Species) String() string {
	return string(s)
}

// NotificationKind distinguishes what triggered a reminder notification
type NotificationKind string

const (
	NotificationTaskOverdue    NotificationKind = "task_overdue"
	NotificationVaccinationDue NotificationKind = "vaccination_due"
)

// String returns the string representation of NotificationKind
func (n NotificationKind) String() string {
	return string(n)
}

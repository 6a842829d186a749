package models

import "strings"

// Gender codes accepted for a participant. Empty means not informed.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

var genderLabels = map[string]string{
	GenderMale:   "male",
	GenderFemale: "female",
	GenderOther:  "other",
}

type Participant struct {
	ID     int64
	Name   string
	Email  string
	Phone  string
	Gender string
}

// GenderLabel returns a lowercase label for the gender code, "" if unset.
func GenderLabel(code string) string {
	return genderLabels[code]
}

// SameEmail compares two addresses the way registrant matching does:
// surrounding whitespace ignored, case-insensitive.
func SameEmail(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

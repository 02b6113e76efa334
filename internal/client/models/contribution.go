package models

import (
	"strings"
)

// Contribution is a speaking or organisational contribution.
type Contribution struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Roles           []string `json:"roles"`
	Keywords        string   `json:"keywords,omitempty"`
	Description     string   `json:"description,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	SpeechType      string   `json:"speechType,omitempty"`
	TimeScope       string   `json:"timeScope,omitempty"`
	Audience        string   `json:"audience,omitempty"`
	PreviousTalkURL string   `json:"previousTalkUrl,omitempty"`
}

// ContributionRoles are the roles offered by the contribution form.
var ContributionRoles = []string{
	"Speaker", "Workshop Moderator", "Committee Member", "Attendee", "Reviewer", "Session Chair",
}

// SpeechTypes are the speech types offered by the contribution form.
var SpeechTypes = []string{"Keynote", "Invited Talk", "Panel Discussion", "Workshop"}

// TimeScopes are the talk lengths offered by the contribution form.
var TimeScopes = []string{"10 min", "20 min", "30 min", "45 min", "60 min"}

// RoleEnum maps a form role to its backend enum: "Session Chair" -> "SESSION_CHAIR".
func RoleEnum(role string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(role)), " ", "_")
}

// SpeechTypeEnum maps a form speech type to its backend enum. Anything
// unrecognised is a plain talk.
func SpeechTypeEnum(v string) string {
	switch strings.TrimSpace(v) {
	case "Keynote":
		return "KEYNOTE"
	case "Invited Talk":
		return "INVITED"
	}
	return "TALK"
}

// TimeScopeEnum maps "20 min" to "MIN_20".
func TimeScopeEnum(v string) string {
	m := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "min"))
	return "MIN_" + m
}

// NewContribution is the create-contribution payload, already in backend enums.
type NewContribution struct {
	Roles           []string `json:"roles"`
	Title           string   `json:"title"`
	Keywords        string   `json:"keywords"`
	Description     string   `json:"description"`
	Bio             string   `json:"bio"`
	SpeechType      string   `json:"speechType"`
	TimeScope       string   `json:"timeScope"`
	Audience        string   `json:"audience"`
	PreviousTalkURL string   `json:"previousTalkUrl,omitempty"`
}

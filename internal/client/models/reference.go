package models

// RefItem is a named, activatable reference entry (topic or paper type).
type RefItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Active is nil when the backend does not report it; treat as active.
	Active *bool `json:"active,omitempty"`
}

// IsActive treats a missing flag as active.
func (r RefItem) IsActive() bool {
	return r.Active == nil || *r.Active
}

type (
	Topic     = RefItem
	PaperType = RefItem
)

// RefUpdate is the admin payload for renaming or (de)activating an entry.
type RefUpdate struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// ConferenceSettings are the global submission windows.
type ConferenceSettings struct {
	SubmissionsOpen bool `json:"submissionsOpen"`
	CameraReadyOpen bool `json:"cameraReadyOpen"`
}

// Home is the /api/home aggregate.
type Home struct {
	SubmittedPapers []Paper        `json:"submittedPapers"`
	Contributions   []Contribution `json:"contributions"`
}

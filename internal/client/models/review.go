package models

import (
	"strings"
	"time"
)

// ReviewAssignment binds a reviewer to a paper with a due date.
type ReviewAssignment struct {
	ID         int64      `json:"id"`
	PaperID    int64      `json:"paperId"`
	PaperTitle string     `json:"paperTitle"`
	DueAt      time.Time  `json:"dueAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	Completed  bool       `json:"completed"`
	// DueSoon is the backend's own flag; nil when the backend omits it.
	DueSoon *bool `json:"dueSoon,omitempty"`
}

// IsDueSoon prefers the backend flag and otherwise flags open assignments
// due within window of now (overdue ones included). Completed assignments
// are never due soon.
func (a ReviewAssignment) IsDueSoon(now time.Time, window time.Duration) bool {
	if a.Completed {
		return false
	}
	if a.DueSoon != nil {
		return *a.DueSoon
	}
	if a.DueAt.IsZero() {
		return false
	}
	return a.DueAt.Sub(now) <= window
}

// Review is a submitted review as seen by admins.
type Review struct {
	ID       int64  `json:"id"`
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

// ReviewDecision is a reviewer's recommendation.
type ReviewDecision string

const (
	ReviewAccept              ReviewDecision = "ACCEPT"
	ReviewAcceptWithRevisions ReviewDecision = "ACCEPT_WITH_REVISIONS"
	ReviewReject              ReviewDecision = "REJECT"
)

// ParseReviewDecision accepts the decision case-insensitively.
func ParseReviewDecision(s string) (ReviewDecision, bool) {
	d := ReviewDecision(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case ReviewAccept, ReviewAcceptWithRevisions, ReviewReject:
		return d, true
	}
	return "", false
}

// ReviewSubmission is the review payload.
type ReviewSubmission struct {
	Decision ReviewDecision `json:"decision"`
	Comments string         `json:"comments"`
}

// AssignedPaper is the paper as exposed to its reviewer.
type AssignedPaper struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	PaperType string      `json:"paperType,omitempty"`
	Status    PaperStatus `json:"status"`
	Topics    []string    `json:"topics,omitempty"`
	Abstract  string      `json:"paperAbstract,omitempty"`
	FileID    *int64      `json:"fileId,omitempty"`
}

// ReviewerAssignmentRequest assigns a reviewer by id or by email.
type ReviewerAssignmentRequest struct {
	ReviewerID    int64     `json:"reviewerId,omitempty"`
	ReviewerEmail string    `json:"reviewerEmail,omitempty"`
	DueAt         time.Time `json:"dueAt"`
}

// NewReviewer is the admin payload for creating a reviewer account.
type NewReviewer = Registration

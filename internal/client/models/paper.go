// Package models defines the view-models of portal entities. The backend owns
// every entity; values here are transient copies refreshed after each mutation.
package models

import "strings"

// PaperStatus is the backend workflow status. Unknown values are kept verbatim.
type PaperStatus string

const (
	StatusDraft                PaperStatus = "DRAFT"
	StatusSubmitted            PaperStatus = "SUBMITTED"
	StatusCameraReadyPending   PaperStatus = "CAMERA_READY_PENDING"
	StatusCameraReadySubmitted PaperStatus = "CAMERA_READY_SUBMITTED"
	StatusWithdrawn            PaperStatus = "WITHDRAWN"
	StatusAccepted             PaperStatus = "ACCEPTED"
	StatusRejected             PaperStatus = "REJECTED"
	StatusRevisionsRequired    PaperStatus = "REVISIONS_REQUIRED"
)

// Normalized upper-cases and trims the status.
func (s PaperStatus) Normalized() PaperStatus {
	return PaperStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

// Label renders the status for humans: "CAMERA_READY_PENDING" -> "CAMERA READY PENDING".
func (s PaperStatus) Label() string {
	return strings.ReplaceAll(string(s.Normalized()), "_", " ")
}

// CoAuthor is an additional author attached to a paper.
type CoAuthor struct {
	ID          int64  `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	Position    string `json:"position,omitempty"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
}

// Paper is the author's view of a submission.
type Paper struct {
	ID                int64       `json:"id"`
	Title             string      `json:"title"`
	Keywords          string      `json:"keywords,omitempty"`
	Abstract          string      `json:"paperAbstract,omitempty"`
	PaperType         string      `json:"paperType,omitempty"`
	PaperTypeID       int64       `json:"paperTypeId,omitempty"`
	Topics            []string    `json:"topics,omitempty"`
	Status            PaperStatus `json:"status"`
	FileID            *int64      `json:"fileId,omitempty"`
	CameraReadyFileID *int64      `json:"cameraReadyFileId,omitempty"`
	CoAuthors         []CoAuthor  `json:"coAuthors,omitempty"`
}

// NewPaper is the create-paper payload.
type NewPaper struct {
	Title       string     `json:"title"`
	Keywords    string     `json:"keywords"`
	Abstract    string     `json:"paperAbstract"`
	PaperTypeID int64      `json:"paperTypeId"`
	TopicIDs    []int64    `json:"topicIds"`
	CoAuthors   []CoAuthor `json:"coAuthors"`
}

// CanUploadCameraReady mirrors the backend's camera-ready eligibility for
// enabling the upload action. It is a hint only; the backend decides.
func CanUploadCameraReady(status PaperStatus) bool {
	switch status.Normalized() {
	case StatusSubmitted, StatusCameraReadyPending, StatusDraft:
		return true
	}
	return false
}

// PaperStats are the dashboard counters.
type PaperStats struct {
	Total     int
	Submitted int
	Drafts    int
	Withdrawn int
}

// CountPapers computes dashboard counters. Camera-ready submissions are not
// counted as submitted papers.
func CountPapers(papers []Paper) PaperStats {
	st := PaperStats{Total: len(papers)}
	for _, p := range papers {
		s := string(p.Status.Normalized())
		switch {
		case strings.Contains(s, "SUBMITTED") && !strings.Contains(s, "CAMERA"):
			st.Submitted++
		case strings.Contains(s, "DRAFT"):
			st.Drafts++
		case strings.Contains(s, "WITHDRAW"):
			st.Withdrawn++
		}
	}
	return st
}

// FinalDecision is an admin verdict on a paper.
type FinalDecision string

const (
	DecisionAccepted          FinalDecision = "ACCEPTED"
	DecisionRejected          FinalDecision = "REJECTED"
	DecisionRevisionsRequired FinalDecision = "REVISIONS_REQUIRED"
)

// ParseFinalDecision accepts the decision case-insensitively.
func ParseFinalDecision(s string) (FinalDecision, bool) {
	d := FinalDecision(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case DecisionAccepted, DecisionRejected, DecisionRevisionsRequired:
		return d, true
	}
	return "", false
}

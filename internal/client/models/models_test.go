package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanUploadCameraReady(t *testing.T) {
	tests := []struct {
		status PaperStatus
		want   bool
	}{
		{StatusSubmitted, true},
		{StatusCameraReadyPending, true},
		{StatusDraft, true},
		{" submitted ", true},
		{StatusWithdrawn, false},
		{StatusCameraReadySubmitted, false},
		{StatusAccepted, false},
		{"", false},
		{"SOMETHING_NEW", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanUploadCameraReady(tt.status), string(tt.status))
	}
}

func TestCountPapers(t *testing.T) {
	papers := []Paper{
		{Status: StatusSubmitted},
		{Status: "submitted"},
		{Status: StatusCameraReadySubmitted},
		{Status: StatusDraft},
		{Status: StatusWithdrawn},
		{Status: StatusAccepted},
	}
	assert.Equal(t, PaperStats{Total: 6, Submitted: 2, Drafts: 1, Withdrawn: 1}, CountPapers(papers))
	assert.Equal(t, PaperStats{}, CountPapers(nil))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "CAMERA READY PENDING", StatusCameraReadyPending.Label())
	assert.Equal(t, "FUTURE STATE", PaperStatus("future_state").Label())
}

func TestContributionEnums(t *testing.T) {
	assert.Equal(t, "SESSION_CHAIR", RoleEnum("Session Chair"))
	assert.Equal(t, "SPEAKER", RoleEnum(" Speaker "))

	assert.Equal(t, "KEYNOTE", SpeechTypeEnum("Keynote"))
	assert.Equal(t, "INVITED", SpeechTypeEnum("Invited Talk"))
	assert.Equal(t, "TALK", SpeechTypeEnum("Panel Discussion"))
	assert.Equal(t, "TALK", SpeechTypeEnum(""))

	assert.Equal(t, "MIN_20", TimeScopeEnum("20 min"))
	assert.Equal(t, "MIN_45", TimeScopeEnum("45min"))
}

func TestParseDecisions(t *testing.T) {
	d, ok := ParseFinalDecision("revisions_required")
	require.True(t, ok)
	assert.Equal(t, DecisionRevisionsRequired, d)
	_, ok = ParseFinalDecision("maybe")
	assert.False(t, ok)

	r, ok := ParseReviewDecision(" accept_with_revisions")
	require.True(t, ok)
	assert.Equal(t, ReviewAcceptWithRevisions, r)
	_, ok = ParseReviewDecision("ACCEPTED")
	assert.False(t, ok)
}

func TestReviewAssignment_IsDueSoon(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 72 * time.Hour
	yes, no := true, false

	tests := []struct {
		name string
		a    ReviewAssignment
		want bool
	}{
		{"inside window", ReviewAssignment{DueAt: now.Add(24 * time.Hour)}, true},
		{"outside window", ReviewAssignment{DueAt: now.Add(10 * 24 * time.Hour)}, false},
		{"overdue", ReviewAssignment{DueAt: now.Add(-time.Hour)}, true},
		{"completed", ReviewAssignment{DueAt: now, Completed: true}, false},
		{"backend says yes", ReviewAssignment{DueAt: now.Add(30 * 24 * time.Hour), DueSoon: &yes}, true},
		{"backend says no", ReviewAssignment{DueAt: now, DueSoon: &no}, false},
		{"no due date", ReviewAssignment{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsDueSoon(now, window))
		})
	}
}

func TestList_DecodesBothShapes(t *testing.T) {
	var a List[Review]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"decision":"ACCEPT"}]`), &a))
	require.Len(t, a, 1)
	assert.Equal(t, "ACCEPT", a[0].Decision)

	var b List[Review]
	require.NoError(t, json.Unmarshal([]byte(`{"content":[{"id":2},{"id":3}],"totalElements":2}`), &b))
	require.Len(t, b, 2)
	assert.Equal(t, int64(3), b[1].ID)

	var c List[Review]
	require.NoError(t, json.Unmarshal([]byte(`null`), &c))
	assert.NotNil(t, c)
	assert.Empty(t, c)

	var d List[Review]
	require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
	assert.Empty(t, d)

	var e List[Review]
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &e))
}

func TestRefItem_IsActive(t *testing.T) {
	f := false
	assert.True(t, RefItem{}.IsActive())
	assert.False(t, RefItem{Active: &f}.IsActive())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-01T12:00:00Z", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"2025-06-01T12:00:00+02:00", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2025-06-01T12:00:00", time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)},
		{"2025-06-01T12:00:00.250", time.Date(2025, 6, 1, 12, 0, 0, 250e6, time.Local)},
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%q: got %v", tt.in, got)
	}

	_, err := ParseTimestamp("next tuesday")
	assert.Error(t, err)
}

func TestReviewAssignment_DecodesZonelessDates(t *testing.T) {
	body := `[
		{"id":1,"paperId":5,"paperTitle":"A","dueAt":"2025-06-01T12:00:00","completed":false},
		{"id":2,"paperId":6,"paperTitle":"B","dueAt":"2025-06-02","acceptedAt":"2025-05-20T08:30:00","dueSoon":true},
		{"id":3,"paperId":7,"paperTitle":"C","dueAt":"2025-06-03T09:00:00Z","acceptedAt":null,"completed":true}
	]`
	var got List[ReviewAssignment]
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 3)

	assert.Equal(t, int64(5), got[0].PaperID)
	assert.Equal(t, "A", got[0].PaperTitle)
	assert.True(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local).Equal(got[0].DueAt))
	assert.Nil(t, got[0].AcceptedAt)

	assert.True(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local).Equal(got[1].DueAt))
	require.NotNil(t, got[1].AcceptedAt)
	assert.True(t, time.Date(2025, 5, 20, 8, 30, 0, 0, time.Local).Equal(*got[1].AcceptedAt))
	require.NotNil(t, got[1].DueSoon)
	assert.True(t, *got[1].DueSoon)

	assert.True(t, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC).Equal(got[2].DueAt))
	assert.Nil(t, got[2].AcceptedAt)
	assert.True(t, got[2].Completed)

	var bad ReviewAssignment
	assert.Error(t, json.Unmarshal([]byte(`{"id":9,"dueAt":"soon"}`), &bad))
}

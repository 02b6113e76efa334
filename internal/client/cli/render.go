package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/roles"
	"github.com/dmitrijs2005/confportal/internal/client/screens"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dueSoonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	badgeBase = lipgloss.NewStyle().Padding(0, 1)

	badgeColors = map[models.PaperStatus]lipgloss.Color{
		models.StatusDraft:                "245",
		models.StatusSubmitted:            "33",
		models.StatusWithdrawn:            "160",
		models.StatusCameraReadyPending:   "214",
		models.StatusCameraReadySubmitted: "34",
	}
)

func badge(s models.PaperStatus) string {
	c, ok := badgeColors[s.Normalized()]
	if !ok {
		c = "245"
	}
	return badgeBase.Foreground(c).Render(s.Label())
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

func muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func renderPapers(w io.Writer, papers []models.Paper) {
	if len(papers) == 0 {
		muted(w, "No papers yet.")
		return
	}
	for _, p := range papers {
		fmt.Fprintf(w, "%5d  %-40s %s\n", p.ID, p.Title, badge(p.Status))
		var extra []string
		if p.PaperType != "" {
			extra = append(extra, p.PaperType)
		}
		if len(p.Topics) > 0 {
			extra = append(extra, strings.Join(p.Topics, ", "))
		}
		if p.FileID != nil {
			extra = append(extra, fmt.Sprintf("file %d", *p.FileID))
		}
		if p.CameraReadyFileID != nil {
			extra = append(extra, fmt.Sprintf("camera-ready file %d", *p.CameraReadyFileID))
		}
		if len(extra) > 0 {
			muted(w, "       %s", strings.Join(extra, " | "))
		}
		for _, a := range p.CoAuthors {
			muted(w, "       co-author %d: %s %s <%s>, %s", a.ID, a.FirstName, a.LastName, a.Email, a.Affiliation)
		}
	}
}

func renderStats(w io.Writer, s models.PaperStats) {
	fmt.Fprintf(w, "Total %d | Submitted %d | Drafts %d | Withdrawn %d\n", s.Total, s.Submitted, s.Drafts, s.Withdrawn)
}

func renderContributions(w io.Writer, cs []models.Contribution) {
	if len(cs) == 0 {
		muted(w, "No contributions yet.")
		return
	}
	for _, c := range cs {
		fmt.Fprintf(w, "%5d  %-40s %s\n", c.ID, c.Title, mutedStyle.Render(strings.Join(c.Roles, ", ")))
	}
}

func renderRefs(w io.Writer, items []models.RefItem) {
	for _, it := range items {
		state := "active"
		if !it.IsActive() {
			state = "inactive"
		}
		fmt.Fprintf(w, "%5d  %-30s %s\n", it.ID, it.Name, mutedStyle.Render(state))
	}
}

func renderAssignments(w io.Writer, rows []screens.AssignmentRow) {
	if len(rows) == 0 {
		muted(w, "No assignments.")
		return
	}
	for _, a := range rows {
		state := "new"
		switch {
		case a.Completed:
			state = "reviewed"
		case a.AcceptedAt != nil:
			state = "accepted"
		}
		line := fmt.Sprintf("%5d  paper %-5d %-30s due %s  %s", a.ID, a.PaperID, a.PaperTitle,
			a.DueAt.Local().Format("2006-01-02 15:04"), state)
		if a.DueSoonFlag {
			line += " " + dueSoonStyle.Render("DUE SOON")
		}
		fmt.Fprintln(w, line)
	}
}

func capabilityLabel(c roles.Capability) string {
	switch {
	case !c.Known():
		return "unknown"
	case c.Verified():
		return fmt.Sprintf("%t", c.Allowed())
	}
	return fmt.Sprintf("%t (unverified)", c.Allowed())
}

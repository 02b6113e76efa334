package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/services"
)

// ---- reviewer ----

func (a *App) reviewerCommands() []command {
	r := a.reviewer
	return []command{
		idCommand("accept", "accept an assignment", r.Accept),
		{name: "review", args: "<assignmentId> <decision>", summary: "submit a review (ACCEPT, ACCEPT_WITH_REVISIONS, REJECT)", minArgs: 2, run: a.cmdReview},
		idCommand("open", "show the paper of an assignment", func(ctx context.Context, id int64) error {
			p, err := r.OpenPaper(ctx, id)
			if err == nil && p != nil {
				renderAssignedPaper(a.out, *p)
			}
			return err
		}),
		{name: "papers", summary: "list every paper assigned to me", run: func(ctx context.Context, _ []string) error {
			ps, err := r.AssignedPapers(ctx)
			for _, p := range ps {
				renderAssignedPaper(a.out, p)
			}
			return err
		}},
		a.downloadCommand(r.Download),
	}
}

func (a *App) showReviewer() {
	heading(a.out, "Review assignments")
	renderAssignments(a.out, a.reviewer.Assignments())
}

func (a *App) cmdReview(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return usageError{usage: "review <assignmentId> <decision>"}
	}
	comments, err := GetMultiline(a.in, "Comments", a.out)
	if err != nil {
		return err
	}
	return a.reviewer.SubmitReview(ctx, id, args[1], comments)
}

func renderAssignedPaper(w io.Writer, p models.AssignedPaper) {
	fmt.Fprintf(w, "%5d  %-40s %s\n", p.ID, p.Title, badge(p.Status))
	if p.PaperType != "" || len(p.Topics) > 0 {
		muted(w, "       %s | %s", p.PaperType, strings.Join(p.Topics, ", "))
	}
	if p.FileID != nil {
		muted(w, "       file %d", *p.FileID)
	}
	if p.Abstract != "" {
		fmt.Fprintln(w, p.Abstract)
	}
}

// ---- admin ----

func (a *App) adminCommands() []command {
	ad := a.admin
	return []command{
		idCommand("open", "show reviewers and reviews of a paper", ad.Open),
		{name: "check", args: "<paperId> pass|fail", summary: "record the technical check", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				id, err := parseID(args[0])
				passed, ok := parseSwitch(args[1], "pass", "fail")
				if err != nil || !ok {
					return usageError{usage: "check <paperId> pass|fail"}
				}
				return ad.TechnicalCheck(ctx, id, passed)
			}},
		{name: "decide", args: "<paperId> <decision>", summary: "record the final decision", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return usageError{usage: "decide <paperId> <decision>"}
				}
				return ad.FinalDecision(ctx, id, args[1])
			}},
		{name: "assign", args: "<paperId> <reviewer> <due>", summary: "assign a reviewer by id or email; due is a date or a duration", minArgs: 3,
			run: a.cmdAssign},
		{name: "reviewer-new", summary: "create a reviewer account", run: func(ctx context.Context, _ []string) error {
			var f services.RegisterForm
			if err := a.readRegisterForm(&f); err != nil {
				return err
			}
			return ad.CreateReviewer(ctx, f)
		}},
		{name: "ref-add", args: "<topics|paper-types> <name>", summary: "create a reference entry", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				kind, ok := parseRefKind(args[0])
				if !ok {
					return usageError{usage: "ref-add <topics|paper-types> <name>"}
				}
				return a.reference.Create(ctx, kind, strings.Join(args[1:], " "))
			}},
		{name: "ref-rename", args: "<topics|paper-types> <id> <name>", summary: "rename a reference entry", minArgs: 3,
			run: func(ctx context.Context, args []string) error {
				kind, ok := parseRefKind(args[0])
				id, err := parseID(args[1])
				if !ok || err != nil {
					return usageError{usage: "ref-rename <topics|paper-types> <id> <name>"}
				}
				return a.reference.Rename(ctx, kind, id, strings.Join(args[2:], " "))
			}},
		a.refToggle("ref-on", "activate a reference entry", true),
		a.refToggle("ref-off", "deactivate a reference entry", false),
		{name: "ref-delete", args: "<topics|paper-types> <id>", summary: "delete an inactive reference entry", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				kind, ok := parseRefKind(args[0])
				id, err := parseID(args[1])
				if !ok || err != nil {
					return usageError{usage: "ref-delete <topics|paper-types> <id>"}
				}
				return a.reference.Delete(ctx, kind, id)
			}},
		{name: "settings", args: "submissions|camera-ready on|off", summary: "open or close a submission window", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				open, ok := parseSwitch(args[1], "on", "off")
				if !ok {
					return usageError{usage: "settings submissions|camera-ready on|off"}
				}
				switch args[0] {
				case "submissions":
					return a.reference.SetSubmissionsOpen(ctx, open)
				case "camera-ready":
					return a.reference.SetCameraReadyOpen(ctx, open)
				}
				return usageError{usage: "settings submissions|camera-ready on|off"}
			}},
	}
}

func (a *App) refToggle(name, summary string, active bool) command {
	usage := name + " <topics|paper-types> <id>"
	return command{name: name, args: "<topics|paper-types> <id>", summary: summary, minArgs: 2,
		run: func(ctx context.Context, args []string) error {
			kind, ok := parseRefKind(args[0])
			id, err := parseID(args[1])
			if !ok || err != nil {
				return usageError{usage: usage}
			}
			return a.reference.SetActive(ctx, kind, id, active)
		}}
}

func (a *App) cmdAssign(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return usageError{usage: "assign <paperId> <reviewer> <due>"}
	}
	due, err := parseDue(strings.Join(args[2:], " "), a.deps.Now())
	if err != nil {
		return usageError{usage: "assign <paperId> <reviewer> <due> (due: 2026-05-01, RFC3339 or 72h)"}
	}
	return a.admin.AssignReviewer(ctx, id, args[1], due)
}

func (a *App) showAdmin() {
	heading(a.out, "All papers")
	renderPapers(a.out, a.admin.Papers())

	if d := a.admin.Detail(); d != nil {
		fmt.Fprintln(a.out)
		heading(a.out, fmt.Sprintf("Paper %d: %s", d.Paper.ID, d.Paper.Title))
		fmt.Fprintln(a.out, "Reviewers:")
		if len(d.Assignments) == 0 {
			muted(a.out, "  none assigned")
		}
		for _, as := range d.Assignments {
			state := "open"
			if as.Completed {
				state = "reviewed"
			}
			fmt.Fprintf(a.out, "  assignment %d due %s %s\n", as.ID, as.DueAt.Local().Format(time.DateOnly), state)
		}
		fmt.Fprintln(a.out, "Reviews:")
		if len(d.Reviews) == 0 {
			muted(a.out, "  none yet")
		}
		for _, r := range d.Reviews {
			fmt.Fprintf(a.out, "  %d %s: %s\n", r.ID, r.Decision, r.Comments)
		}
	}

	ref := a.reference.Data()
	fmt.Fprintln(a.out)
	heading(a.out, "Topics")
	renderRefs(a.out, ref.Topics)
	heading(a.out, "Paper types")
	renderRefs(a.out, ref.PaperTypes)
	fmt.Fprintf(a.out, "Submissions open: %s | Camera-ready open: %s\n",
		onOff(ref.Settings.SubmissionsOpen), onOff(ref.Settings.CameraReadyOpen))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseSwitch(s, yes, no string) (bool, bool) {
	switch strings.ToLower(s) {
	case yes:
		return true, true
	case no:
		return false, true
	}
	return false, false
}

func parseRefKind(s string) (client.RefKind, bool) {
	switch strings.ToLower(s) {
	case "topic", "topics":
		return client.RefTopics, true
	case "type", "types", "paper-type", "paper-types":
		return client.RefPaperTypes, true
	}
	return "", false
}

// parseDue accepts a calendar date (end of that day, local time), an
// RFC3339 timestamp or a duration counted from now.
func parseDue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t.Add(24*time.Hour - time.Second), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q", s)
	}
	return now.Add(d), nil
}

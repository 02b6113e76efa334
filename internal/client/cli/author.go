package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/services"
)

// idCommand builds a command taking a single numeric id.
func idCommand(name, summary string, run func(ctx context.Context, id int64) error) command {
	return command{
		name: name, args: "<id>", summary: summary, minArgs: 1,
		run: func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return usageError{usage: name + " <id>"}
			}
			return run(ctx, id)
		},
	}
}

func (a *App) downloadCommand(download func(ctx context.Context, fileID int64) (string, error)) command {
	return idCommand("download", "save a stored file into the download directory", func(ctx context.Context, id int64) error {
		_, err := download(ctx, id)
		return err
	})
}

// ---- dashboard ----

func (a *App) dashboardCommands() []command {
	d := a.dashboard
	return []command{
		idCommand("submit", "submit a draft paper", d.SubmitPaper),
		idCommand("submit-camera-ready", "submit the camera-ready version", d.SubmitCameraReady),
		idCommand("withdraw", "withdraw a paper", d.Withdraw),
		idCommand("delete", "delete a paper", d.DeletePaper),
		idCommand("delete-contribution", "delete a contribution", d.DeleteContribution),
		a.downloadCommand(d.Download),
	}
}

func (a *App) showDashboard(ctx context.Context) {
	data := a.dashboard.Data()
	heading(a.out, "Dashboard")
	renderStats(a.out, data.Stats)
	fmt.Fprintln(a.out)
	heading(a.out, "My papers")
	renderPapers(a.out, data.Papers)
	fmt.Fprintln(a.out)
	heading(a.out, "My contributions")
	renderContributions(a.out, data.Contributions)

	if a.dashboard.Admin(ctx).Allowed() {
		muted(a.out, "Admin tools: go admin")
	}
	if a.deps.Roles.IsReviewer(ctx).Allowed() {
		muted(a.out, "Review assignments: go reviewer")
	}
}

// ---- paper ----

func (a *App) paperCommands() []command {
	p := a.paper
	return []command{
		{name: "new", summary: "fill in and submit a new paper", run: a.cmdNewPaper},
		{name: "coauthor-add", args: "<paperId>", summary: "add a co-author", minArgs: 1, run: a.cmdAddCoAuthor},
		{name: "coauthor-edit", args: "<paperId> <coAuthorId>", summary: "replace a co-author", minArgs: 2, run: a.cmdEditCoAuthor},
		{name: "coauthor-delete", args: "<paperId> <coAuthorId>", summary: "remove a co-author", minArgs: 2,
			run: func(ctx context.Context, args []string) error {
				ids, err := parseIDs(args[:2])
				if err != nil {
					return usageError{usage: "coauthor-delete <paperId> <coAuthorId>"}
				}
				return p.DeleteCoAuthor(ctx, ids[0], ids[1])
			}},
	}
}

func (a *App) showPaper() {
	data := a.paper.Data()
	heading(a.out, "Submit a paper")
	fmt.Fprintln(a.out, "Paper types:")
	renderRefs(a.out, data.PaperTypes)
	fmt.Fprintln(a.out, "Topics:")
	renderRefs(a.out, data.Topics)
	fmt.Fprintln(a.out)
	heading(a.out, "My papers")
	renderPapers(a.out, data.Papers)
}

func (a *App) cmdNewPaper(ctx context.Context, _ []string) error {
	f, closeFile, err := a.readPaperForm()
	if err != nil {
		return err
	}
	defer closeFile()
	p, err := a.paper.Submit(ctx, f)
	if err == nil || p != nil {
		renderPapers(a.out, a.paper.Data().Papers)
	}
	return err
}

// readPaperForm prompts for every field. Malformed ids are left zero so the
// form validation reports them.
func (a *App) readPaperForm() (services.PaperForm, func(), error) {
	var f services.PaperForm
	noop := func() {}

	var err error
	if f.Title, err = GetSimpleText(a.in, "Title", a.out); err != nil {
		return f, noop, err
	}
	if f.Keywords, err = GetSimpleText(a.in, "Keywords", a.out); err != nil {
		return f, noop, err
	}
	if f.Abstract, err = GetMultiline(a.in, "Abstract", a.out); err != nil {
		return f, noop, err
	}
	typeID, err := GetSimpleText(a.in, "Paper type id", a.out)
	if err != nil {
		return f, noop, err
	}
	f.PaperTypeID, _ = parseID(typeID)
	topics, err := GetList(a.in, "Topic ids (comma separated)", a.out)
	if err != nil {
		return f, noop, err
	}
	f.TopicIDs, _ = parseIDs(topics)

	for {
		more, err := GetConfirm(a.in, "Add a co-author?", a.out)
		if err != nil {
			return f, noop, err
		}
		if !more {
			break
		}
		ca, err := a.readCoAuthor()
		if err != nil {
			return f, noop, err
		}
		f.CoAuthors = append(f.CoAuthors, ca)
	}

	path, err := GetSimpleText(a.in, "PDF file path (empty to skip)", a.out)
	if err != nil || path == "" {
		return f, noop, err
	}
	file, err := os.Open(path)
	if err != nil {
		a.deps.Notify.Alert(fmt.Sprintf("Cannot open %s: %v", path, err))
		return f, noop, err
	}
	f.File = &services.Upload{Name: filepath.Base(path), Body: file}
	return f, func() { _ = file.Close() }, nil
}

func (a *App) readCoAuthor() (models.CoAuthor, error) {
	var ca models.CoAuthor
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &ca.FirstName},
		{"Last name", &ca.LastName},
		{"Email", &ca.Email},
		{"Affiliation", &ca.Affiliation},
		{"Position (optional)", &ca.Position},
		{"Country (optional)", &ca.Country},
		{"City (optional)", &ca.City},
	}
	for _, fl := range fields {
		v, err := GetSimpleText(a.in, fl.prompt, a.out)
		if err != nil {
			return ca, err
		}
		*fl.dst = v
	}
	return ca, nil
}

func (a *App) cmdAddCoAuthor(ctx context.Context, args []string) error {
	paperID, err := parseID(args[0])
	if err != nil {
		return usageError{usage: "coauthor-add <paperId>"}
	}
	ca, err := a.readCoAuthor()
	if err != nil {
		return err
	}
	return a.paper.AddCoAuthor(ctx, paperID, ca)
}

func (a *App) cmdEditCoAuthor(ctx context.Context, args []string) error {
	ids, err := parseIDs(args[:2])
	if err != nil {
		return usageError{usage: "coauthor-edit <paperId> <coAuthorId>"}
	}
	ca, err := a.readCoAuthor()
	if err != nil {
		return err
	}
	return a.paper.UpdateCoAuthor(ctx, ids[0], ids[1], ca)
}

// ---- contribution ----

func (a *App) contributionCommands() []command {
	return []command{
		{name: "new", summary: "fill in and submit a contribution", run: a.cmdNewContribution},
	}
}

func (a *App) cmdNewContribution(ctx context.Context, _ []string) error {
	f, err := a.readContributionForm()
	if err != nil {
		return err
	}
	_, err = a.contribution.Submit(ctx, f)
	return err
}

func (a *App) readContributionForm() (services.ContributionForm, error) {
	var f services.ContributionForm
	var err error
	if f.Roles, err = GetList(a.in, "Roles ("+strings.Join(models.ContributionRoles, ", ")+")", a.out); err != nil {
		return f, err
	}
	single := []struct {
		prompt string
		dst    *string
	}{
		{"Title", &f.Title},
		{"Keywords", &f.Keywords},
	}
	for _, fl := range single {
		if *fl.dst, err = GetSimpleText(a.in, fl.prompt, a.out); err != nil {
			return f, err
		}
	}
	if f.Description, err = GetMultiline(a.in, "Description", a.out); err != nil {
		return f, err
	}
	if f.Bio, err = GetMultiline(a.in, "Short bio", a.out); err != nil {
		return f, err
	}
	rest := []struct {
		prompt string
		dst    *string
	}{
		{"Speech type (" + strings.Join(models.SpeechTypes, ", ") + ")", &f.SpeechType},
		{"Time scope (" + strings.Join(models.TimeScopes, ", ") + ")", &f.TimeScope},
		{"Audience (optional)", &f.Audience},
		{"Previous talk URL (optional)", &f.PreviousTalkURL},
	}
	for _, fl := range rest {
		if *fl.dst, err = GetSimpleText(a.in, fl.prompt, a.out); err != nil {
			return f, err
		}
	}
	return f, nil
}

// ---- camera-ready ----

func (a *App) cameraReadyCommands() []command {
	return []command{
		{name: "upload", args: "<paperId> <path>", summary: "upload the camera-ready file", minArgs: 2, run: a.cmdUploadCameraReady},
		idCommand("submit", "submit the camera-ready version", a.cameraReady.Submit),
	}
}

func (a *App) showCameraReady() {
	heading(a.out, "Camera-ready")
	papers := a.cameraReady.Papers()
	renderPapers(a.out, papers)
	for _, p := range papers {
		if a.cameraReady.CanUpload(p.ID) {
			muted(a.out, "upload available for paper %d", p.ID)
		}
	}
}

func (a *App) cmdUploadCameraReady(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return usageError{usage: "upload <paperId> <path>"}
	}
	path := strings.Join(args[1:], " ")
	file, err := os.Open(path)
	if err != nil {
		a.deps.Notify.Alert(fmt.Sprintf("Cannot open %s: %v", path, err))
		return err
	}
	defer file.Close()
	return a.cameraReady.Upload(ctx, id, &services.Upload{Name: filepath.Base(path), Body: file})
}

// ---- submissions, profile, password ----

func (a *App) submissionsCommands() []command {
	return []command{a.downloadCommand(a.submissions.Download)}
}

func (a *App) showSubmissions() {
	h := a.submissions.Home()
	heading(a.out, "My submissions")
	renderPapers(a.out, h.SubmittedPapers)
	fmt.Fprintln(a.out)
	heading(a.out, "My contributions")
	renderContributions(a.out, h.Contributions)
}

func (a *App) showProfile(ctx context.Context) {
	heading(a.out, "Profile")
	fmt.Fprintf(a.out, "Email: %s\n", a.profile.Email())
	if snap, err := a.deps.Auth.Restore(ctx); err == nil && snap.DisplayName != "" {
		fmt.Fprintf(a.out, "Name:  %s\n", snap.DisplayName)
	}
	fmt.Fprintf(a.out, "Admin: %s\n", capabilityLabel(a.deps.Roles.IsAdmin(ctx)))
	fmt.Fprintf(a.out, "Reviewer: %s\n", capabilityLabel(a.deps.Roles.IsReviewer(ctx)))
}

func (a *App) passwordCommands() []command {
	return []command{
		{name: "change", summary: "set a new password", run: func(ctx context.Context, _ []string) error {
			pw, confirm, err := a.readNewPassword()
			if err != nil {
				return err
			}
			return a.password.Change(ctx, pw, confirm)
		}},
	}
}

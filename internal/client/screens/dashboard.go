package screens

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/roles"
	"github.com/dmitrijs2005/confportal/internal/filex"
)

type DashboardData struct {
	Papers        []models.Paper
	Contributions []models.Contribution
	Stats         models.PaperStats
}

// Dashboard is the author's home: own papers and contributions.
type Dashboard struct {
	d    *Deps
	m    mounted
	data latest[DashboardData]
}

func NewDashboard(d *Deps) *Dashboard { return &Dashboard{d: d} }

func (s *Dashboard) Data() DashboardData { return s.data.get() }

// Admin reports whether the admin affordance is shown. It never waits for
// the role probes.
func (s *Dashboard) Admin(ctx context.Context) roles.Capability {
	return s.d.Roles.IsAdmin(ctx)
}

func (s *Dashboard) Reset() { s.data.reset() }

func (s *Dashboard) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	return s.load(ctx, t)
}

// load reads papers and contributions concurrently; both must succeed.
func (s *Dashboard) load(ctx context.Context, t nav.Ticket) error {
	var data DashboardData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.d.API.ListPapers(gctx, 0, s.d.pageSize())
		data.Papers = p
		return err
	})
	g.Go(func() error {
		c, err := s.d.API.ListContributions(gctx, 0, s.d.pageSize())
		data.Contributions = c
		return err
	})
	if err := g.Wait(); err != nil {
		return s.d.fail(ctx, t, err, "Failed to load dashboard data")
	}
	data.Stats = models.CountPapers(data.Papers)
	return s.data.apply(t, data)
}

// mutate runs op, alerts on failure and reloads either way.
func (s *Dashboard) mutate(ctx context.Context, op func() error, fallback string) error {
	t := s.m.ticket()
	opErr := s.d.fail(ctx, t, op(), fallback)
	if err := s.load(ctx, t); err != nil && opErr == nil {
		return err
	}
	return opErr
}

func (s *Dashboard) SubmitPaper(ctx context.Context, id int64) error {
	return s.mutate(ctx, func() error { return s.d.API.SubmitPaper(ctx, id) },
		"Submission failed (check settings and required fields).")
}

func (s *Dashboard) SubmitCameraReady(ctx context.Context, id int64) error {
	return s.mutate(ctx, func() error { return s.d.API.SubmitCameraReady(ctx, id) },
		"Camera-ready submission failed.")
}

func (s *Dashboard) Withdraw(ctx context.Context, id int64) error {
	return s.mutate(ctx, func() error { return s.d.API.WithdrawPaper(ctx, id) }, "Withdraw failed.")
}

func (s *Dashboard) DeletePaper(ctx context.Context, id int64) error {
	return s.mutate(ctx, func() error { return s.d.API.DeletePaper(ctx, id) }, "Delete failed.")
}

func (s *Dashboard) DeleteContribution(ctx context.Context, id int64) error {
	return s.mutate(ctx, func() error { return s.d.API.DeleteContribution(ctx, id) }, "Delete failed.")
}

// Download saves a stored file into the download directory and returns its path.
func (s *Dashboard) Download(ctx context.Context, fileID int64) (string, error) {
	return download(ctx, s.d, s.m.ticket(), fileID)
}

func download(ctx context.Context, d *Deps, t nav.Ticket, fileID int64) (string, error) {
	name, data, err := d.API.DownloadFile(ctx, fileID)
	if err != nil {
		return "", d.fail(ctx, t, err, "Download failed.")
	}
	dir, err := filex.EnsureDir(d.DownloadDir)
	if err != nil {
		return "", d.fail(ctx, t, err, "Download failed.")
	}
	path, err := filex.WriteUnique(dir, name, data)
	if err != nil {
		return "", d.fail(ctx, t, err, "Download failed.")
	}
	d.Log.Info(ctx, "file saved", "file_id", fileID, "path", path)
	d.info(t, fmt.Sprintf("Saved %s", path))
	return path, nil
}

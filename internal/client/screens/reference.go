package screens

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/common"
)

type ReferenceData struct {
	Topics     []models.RefItem
	PaperTypes []models.RefItem
	Settings   models.ConferenceSettings
}

func (r ReferenceData) items(kind client.RefKind) []models.RefItem {
	if kind == client.RefPaperTypes {
		return r.PaperTypes
	}
	return r.Topics
}

// ReferenceScreen is the admin editor of topics, paper types and the
// conference submission windows.
type ReferenceScreen struct {
	d    *Deps
	m    mounted
	data latest[ReferenceData]
}

func NewReferenceScreen(d *Deps) *ReferenceScreen { return &ReferenceScreen{d: d} }

func (s *ReferenceScreen) Data() ReferenceData { return s.data.get() }

func (s *ReferenceScreen) Reset() { s.data.reset() }

func (s *ReferenceScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	return s.load(ctx, t)
}

func (s *ReferenceScreen) load(ctx context.Context, t nav.Ticket) error {
	var data ReferenceData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.d.API.AdminRefList(gctx, client.RefTopics)
		data.Topics = v
		return err
	})
	g.Go(func() error {
		v, err := s.d.API.AdminRefList(gctx, client.RefPaperTypes)
		data.PaperTypes = v
		return err
	})
	g.Go(func() error {
		v, err := s.d.API.Settings(gctx)
		if v != nil {
			data.Settings = *v
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return s.d.fail(ctx, t, err, "Failed to load reference data")
	}
	return s.data.apply(t, data)
}

func (s *ReferenceScreen) after(ctx context.Context, t nav.Ticket, err error, fallback string) error {
	if err != nil {
		_ = s.d.fail(ctx, t, err, fallback)
		_ = s.load(ctx, t)
		return err
	}
	return s.load(ctx, t)
}

func (s *ReferenceScreen) Create(ctx context.Context, kind client.RefKind, name string) error {
	t := s.m.ticket()
	name = strings.TrimSpace(name)
	if name == "" {
		return s.d.fail(ctx, t, common.Required("name"), "Invalid input.")
	}
	_, err := s.d.API.AdminRefCreate(ctx, kind, name)
	return s.after(ctx, t, err, "Create failed.")
}

func (s *ReferenceScreen) find(kind client.RefKind, id int64) (models.RefItem, bool) {
	items := s.Data().items(kind)
	i := slices.IndexFunc(items, func(it models.RefItem) bool { return it.ID == id })
	if i < 0 {
		return models.RefItem{}, false
	}
	return items[i], true
}

func (s *ReferenceScreen) Rename(ctx context.Context, kind client.RefKind, id int64, name string) error {
	t := s.m.ticket()
	name = strings.TrimSpace(name)
	if name == "" {
		return s.d.fail(ctx, t, common.Required("name"), "Invalid input.")
	}
	u := models.RefUpdate{Name: name}
	if it, ok := s.find(kind, id); ok {
		u.Active = it.Active
	}
	_, err := s.d.API.AdminRefUpdate(ctx, kind, id, u)
	return s.after(ctx, t, err, "Update failed.")
}

func (s *ReferenceScreen) SetActive(ctx context.Context, kind client.RefKind, id int64, active bool) error {
	t := s.m.ticket()
	it, ok := s.find(kind, id)
	if !ok {
		return s.d.fail(ctx, t, common.Invalid("id", "no such entry"), "Invalid input.")
	}
	_, err := s.d.API.AdminRefUpdate(ctx, kind, id, models.RefUpdate{Name: it.Name, Active: &active})
	return s.after(ctx, t, err, "Update failed.")
}

// Delete is refused locally while the entry is active. The backend still
// answers 409 when the entry is referenced by papers.
func (s *ReferenceScreen) Delete(ctx context.Context, kind client.RefKind, id int64) error {
	t := s.m.ticket()
	if it, ok := s.find(kind, id); ok && it.IsActive() {
		return s.d.fail(ctx, t, common.Invalid(it.Name, "deactivate before deleting"), "Invalid input.")
	}
	err := s.d.API.AdminRefDelete(ctx, kind, id)
	return s.after(ctx, t, err, "Delete failed (it may still be referenced).")
}

func (s *ReferenceScreen) SetSubmissionsOpen(ctx context.Context, open bool) error {
	st := s.Data().Settings
	st.SubmissionsOpen = open
	return s.putSettings(ctx, st)
}

func (s *ReferenceScreen) SetCameraReadyOpen(ctx context.Context, open bool) error {
	st := s.Data().Settings
	st.CameraReadyOpen = open
	return s.putSettings(ctx, st)
}

func (s *ReferenceScreen) putSettings(ctx context.Context, st models.ConferenceSettings) error {
	t := s.m.ticket()
	_, err := s.d.API.UpdateSettings(ctx, st)
	return s.after(ctx, t, err, "Saving settings failed.")
}

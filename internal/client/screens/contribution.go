package screens

import (
	"context"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/services"
)

// ContributionScreen is the contribution form. A successful submission
// returns to the dashboard.
type ContributionScreen struct {
	d *Deps
	m mounted
}

func NewContributionScreen(d *Deps) *ContributionScreen { return &ContributionScreen{d: d} }

func (s *ContributionScreen) Mount(_ context.Context, t nav.Ticket) error {
	s.m.set(t)
	return nil
}

func (s *ContributionScreen) Submit(ctx context.Context, f services.ContributionForm) (*models.Contribution, error) {
	t := s.m.ticket()
	if err := f.Validate(); err != nil {
		return nil, s.d.fail(ctx, t, err, "Invalid input.")
	}
	c, err := s.d.API.CreateContribution(ctx, f.Payload())
	if err != nil {
		return nil, s.d.fail(ctx, t, err, "Failed to submit contribution")
	}
	s.d.info(t, "Contribution submitted successfully!")
	if t.Current() {
		s.d.Nav.Navigate(nav.Dashboard)
	}
	return c, nil
}

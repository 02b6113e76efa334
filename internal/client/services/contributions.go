package services

import (
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/common"
)

// ContributionForm holds the contribution form in its display vocabulary
// ("Session Chair", "Invited Talk", "20 min").
type ContributionForm struct {
	Roles           []string
	Title           string
	Keywords        string
	Description     string
	Bio             string
	SpeechType      string
	TimeScope       string
	Audience        string
	PreviousTalkURL string
}

func (f ContributionForm) Validate() error {
	switch {
	case len(f.Roles) == 0:
		return common.Invalid("roles", "select at least one role")
	case common.Blank(f.Title):
		return common.Required("title")
	case common.Blank(f.Keywords):
		return common.Required("keywords")
	case common.Blank(f.Description):
		return common.Required("description")
	case common.Blank(f.Bio):
		return common.Required("bio")
	}
	return nil
}

// Payload maps the form onto backend enums.
func (f ContributionForm) Payload() models.NewContribution {
	roles := make([]string, 0, len(f.Roles))
	for _, r := range f.Roles {
		roles = append(roles, models.RoleEnum(r))
	}
	speech := f.SpeechType
	if speech == "" {
		speech = models.SpeechTypes[0]
	}
	scope := f.TimeScope
	if scope == "" {
		scope = "20 min"
	}
	return models.NewContribution{
		Roles:           roles,
		Title:           strings.TrimSpace(f.Title),
		Keywords:        strings.TrimSpace(f.Keywords),
		Description:     strings.TrimSpace(f.Description),
		Bio:             strings.TrimSpace(f.Bio),
		SpeechType:      models.SpeechTypeEnum(speech),
		TimeScope:       models.TimeScopeEnum(scope),
		Audience:        strings.TrimSpace(f.Audience),
		PreviousTalkURL: strings.TrimSpace(f.PreviousTalkURL),
	}
}

package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/common"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// Upload is a file picked by the user.
type Upload struct {
	Name string
	Body io.Reader
}

// PaperForm is the paper submission form.
type PaperForm struct {
	Title       string
	Keywords    string
	Abstract    string
	PaperTypeID int64
	TopicIDs    []int64
	CoAuthors   []models.CoAuthor
	File        *Upload
}

// Validate runs the checks the form enforces before any request.
func (f PaperForm) Validate() error {
	switch {
	case common.Blank(f.Title):
		return common.Required("title")
	case common.Blank(f.Keywords):
		return common.Required("keywords")
	case common.Blank(f.Abstract):
		return common.Required("abstract")
	case f.PaperTypeID == 0:
		return common.Required("paperType")
	case len(f.TopicIDs) == 0:
		return common.Invalid("topics", "select at least one topic")
	}
	for i, a := range f.CoAuthors {
		if err := ValidateCoAuthor(a); err != nil {
			return fmt.Errorf("co-author %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateCoAuthor requires first and last name, email and affiliation.
func ValidateCoAuthor(a models.CoAuthor) error {
	switch {
	case common.Blank(a.FirstName):
		return common.Required("firstName")
	case common.Blank(a.LastName):
		return common.Required("lastName")
	case common.Blank(a.Email):
		return common.Required("email")
	case common.Blank(a.Affiliation):
		return common.Required("affiliation")
	}
	return validateEmail(a.Email)
}

func (f PaperForm) payload() models.NewPaper {
	coAuthors := make([]models.CoAuthor, len(f.CoAuthors))
	copy(coAuthors, f.CoAuthors)
	return models.NewPaper{
		Title:       strings.TrimSpace(f.Title),
		Keywords:    strings.TrimSpace(f.Keywords),
		Abstract:    strings.TrimSpace(f.Abstract),
		PaperTypeID: f.PaperTypeID,
		TopicIDs:    f.TopicIDs,
		CoAuthors:   coAuthors,
	}
}

// PaperAPI is the part of the backend client used for the submission flow.
type PaperAPI interface {
	CreatePaper(ctx context.Context, p models.NewPaper) (*models.Paper, error)
	UploadPaperFile(ctx context.Context, id int64, filename string, r io.Reader) error
	SubmitPaper(ctx context.Context, id int64) error
}

type PaperService struct {
	api PaperAPI
	log logging.Logger
}

func NewPaperService(api PaperAPI, log logging.Logger) *PaperService {
	if log == nil {
		log = logging.Discard()
	}
	return &PaperService{api: api, log: log}
}

// Submit validates f, creates the paper, uploads the optional PDF and
// submits it. When a later step fails the created paper is returned with the
// error: it stays on the backend as a draft.
func (s *PaperService) Submit(ctx context.Context, f PaperForm) (*models.Paper, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	created, err := s.api.CreatePaper(ctx, f.payload())
	if err != nil {
		return nil, fmt.Errorf("create paper: %w", err)
	}
	if f.File != nil {
		if err := s.api.UploadPaperFile(ctx, created.ID, f.File.Name, f.File.Body); err != nil {
			return created, fmt.Errorf("upload paper file: %w", err)
		}
	}
	if err := s.api.SubmitPaper(ctx, created.ID); err != nil {
		return created, fmt.Errorf("submit paper: %w", err)
	}
	s.log.Info(ctx, "paper submitted", "paper_id", created.ID)
	return created, nil
}

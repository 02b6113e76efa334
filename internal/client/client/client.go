package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

// Client is the portal backend contract used by services and screens.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r models.Registration) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	Me(ctx context.Context) (string, error)
	ChangePassword(ctx context.Context, newPassword string) error
	Home(ctx context.Context) (*models.Home, error)

	ListPapers(ctx context.Context, page, size int) ([]models.Paper, error)
	CreatePaper(ctx context.Context, p models.NewPaper) (*models.Paper, error)
	DeletePaper(ctx context.Context, id int64) error
	UploadPaperFile(ctx context.Context, id int64, filename string, r io.Reader) error
	UploadCameraReady(ctx context.Context, id int64, filename string, r io.Reader) error
	SubmitPaper(ctx context.Context, id int64) error
	SubmitCameraReady(ctx context.Context, id int64) error
	WithdrawPaper(ctx context.Context, id int64) error
	AddCoAuthor(ctx context.Context, paperID int64, a models.CoAuthor) (*models.CoAuthor, error)
	UpdateCoAuthor(ctx context.Context, paperID, coAuthorID int64, a models.CoAuthor) (*models.CoAuthor, error)
	DeleteCoAuthor(ctx context.Context, paperID, coAuthorID int64) error

	ListContributions(ctx context.Context, page, size int) ([]models.Contribution, error)
	CreateContribution(ctx context.Context, c models.NewContribution) (*models.Contribution, error)
	DeleteContribution(ctx context.Context, id int64) error

	Topics(ctx context.Context) ([]models.Topic, error)
	PaperTypes(ctx context.Context) ([]models.PaperType, error)

	AdminRefList(ctx context.Context, kind RefKind) ([]models.RefItem, error)
	AdminRefCreate(ctx context.Context, kind RefKind, name string) (*models.RefItem, error)
	AdminRefUpdate(ctx context.Context, kind RefKind, id int64, u models.RefUpdate) (*models.RefItem, error)
	AdminRefDelete(ctx context.Context, kind RefKind, id int64) error
	Settings(ctx context.Context) (*models.ConferenceSettings, error)
	UpdateSettings(ctx context.Context, s models.ConferenceSettings) (*models.ConferenceSettings, error)

	AdminPapers(ctx context.Context) ([]models.Paper, error)
	AdminPaper(ctx context.Context, id int64) (*models.Paper, error)
	TechnicalCheck(ctx context.Context, id int64, passed bool) error
	FinalDecision(ctx context.Context, id int64, d models.FinalDecision) error
	AssignReviewer(ctx context.Context, paperID int64, r models.ReviewerAssignmentRequest) error
	PaperAssignments(ctx context.Context, paperID int64) ([]models.ReviewAssignment, error)
	PaperReviews(ctx context.Context, paperID int64) ([]models.Review, error)
	CreateReviewer(ctx context.Context, r models.NewReviewer) error

	MyAssignments(ctx context.Context) ([]models.ReviewAssignment, error)
	AcceptAssignment(ctx context.Context, id int64) error
	SubmitReview(ctx context.Context, id int64, r models.ReviewSubmission) error
	AssignedPaper(ctx context.Context, assignmentID int64) (*models.AssignedPaper, error)
	AssignedPapers(ctx context.Context) ([]models.AssignedPaper, error)

	DownloadFile(ctx context.Context, fileID int64) (string, []byte, error)
}

package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/client/clienttest"
	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/common"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// ---- helpers ----

type env struct {
	srv   *clienttest.Server
	api   *client.HTTPClient
	store *session.Store
	auth  AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := clienttest.NewServer(t)
	store := session.NewStore(keyvalue.NewMemoryRepository())
	api, err := client.NewHTTPClient(srv.URL(), store, logging.Discard())
	require.NoError(t, err)
	return &env{srv: srv, api: api, store: store, auth: NewAuthService(api, store, logging.Discard())}
}

// ---- fake api ----

// countingAPI records calls and fails on demand.
type countingAPI struct {
	calls     []string
	createErr error
	uploadErr error
	submitErr error
}

func (f *countingAPI) Login(context.Context, string, string) (string, error) {
	f.calls = append(f.calls, "login")
	return "tok", nil
}

func (f *countingAPI) Register(context.Context, models.Registration) (string, error) {
	f.calls = append(f.calls, "register")
	return "tok", nil
}

func (f *countingAPI) ForgotPassword(context.Context, string) error {
	f.calls = append(f.calls, "forgot")
	return nil
}

func (f *countingAPI) ResetPassword(context.Context, string, string) error {
	f.calls = append(f.calls, "reset")
	return nil
}

func (f *countingAPI) ChangePassword(context.Context, string) error {
	f.calls = append(f.calls, "change")
	return nil
}

func (f *countingAPI) CreatePaper(_ context.Context, p models.NewPaper) (*models.Paper, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Paper{ID: 7, Title: p.Title, Status: models.StatusDraft}, nil
}

func (f *countingAPI) UploadPaperFile(_ context.Context, _ int64, name string, r io.Reader) error {
	f.calls = append(f.calls, "upload:"+name)
	return f.uploadErr
}

func (f *countingAPI) SubmitPaper(context.Context, int64) error {
	f.calls = append(f.calls, "submit")
	return f.submitErr
}

func validPaper() PaperForm {
	return PaperForm{
		Title:       "On Graphs",
		Keywords:    "graphs",
		Abstract:    "We study graphs.",
		PaperTypeID: 1,
		TopicIDs:    []int64{1},
	}
}

// ---- auth ----

func TestLogin_StoresSession(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ann@example.org", "secret1", "Ann", "Lee")
	ctx := context.Background()

	identity, err := e.auth.Login(ctx, " ann@example.org ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.org", identity)

	snap, err := e.auth.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Authenticated())
	assert.Equal(t, "ann@example.org", snap.Email)
	assert.Equal(t, "Ann Lee", snap.DisplayName)
}

func TestLogin_Validation(t *testing.T) {
	api := &countingAPI{}
	svc := NewAuthService(api, session.NewStore(keyvalue.NewMemoryRepository()), nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, "  ", "pw")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Login(ctx, "a@b.c", "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, api.calls)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ann@example.org", "secret1", "Ann", "Lee")

	_, err := e.auth.Login(context.Background(), "ann@example.org", "nope")
	require.ErrorIs(t, err, client.ErrUnauthorized)

	snap, err := e.store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Authenticated())
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	form := RegisterForm{FirstName: "Bo", LastName: "Chen", Email: "bo@example.org", Password: "secret1", Confirm: "secret1"}

	identity, err := e.auth.Register(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "bo@example.org", identity)

	snap, err := e.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bo Chen", snap.DisplayName)
	assert.NotEmpty(t, snap.Token)

	_, err = e.auth.Register(ctx, form)
	require.ErrorIs(t, err, client.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	ok := RegisterForm{FirstName: "Bo", LastName: "Chen", Email: "bo@example.org", Password: "secret1", Confirm: "secret1"}
	tests := []struct {
		name  string
		edit  func(*RegisterForm)
		field string
	}{
		{"first name", func(f *RegisterForm) { f.FirstName = " " }, "firstName"},
		{"last name", func(f *RegisterForm) { f.LastName = "" }, "lastName"},
		{"email", func(f *RegisterForm) { f.Email = "" }, "email"},
		{"bad email", func(f *RegisterForm) { f.Email = "not-an-email" }, "email"},
		{"short password", func(f *RegisterForm) { f.Password, f.Confirm = "12345", "12345" }, "password"},
		{"mismatch", func(f *RegisterForm) { f.Confirm = "secret2" }, "confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &countingAPI{}
			svc := NewAuthService(api, session.NewStore(keyvalue.NewMemoryRepository()), nil)
			f := ok
			tt.edit(&f)

			_, err := svc.Register(context.Background(), f)
			require.ErrorIs(t, err, common.ErrValidation)
			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, api.calls)
		})
	}
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ann@example.org", "secret1", "Ann", "Lee")
	ctx := context.Background()
	_, err := e.auth.Login(ctx, "ann@example.org", "secret1")
	require.NoError(t, err)

	require.ErrorIs(t, e.auth.ChangePassword(ctx, "abc", "abc"), common.ErrValidation)
	require.ErrorIs(t, e.auth.ChangePassword(ctx, "abcdef", "abcdeg"), common.ErrValidation)
	require.NoError(t, e.auth.ChangePassword(ctx, "newpass", "newpass"))

	_, err = e.auth.Login(ctx, "ann@example.org", "newpass")
	require.NoError(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ann@example.org", "secret1", "Ann", "Lee")
	ctx := context.Background()

	require.ErrorIs(t, e.auth.ForgotPassword(ctx, ""), common.ErrValidation)
	require.NoError(t, e.auth.ForgotPassword(ctx, "ann@example.org"))
	tok := e.srv.ResetToken("ann@example.org")
	require.NotEmpty(t, tok)

	require.ErrorIs(t, e.auth.ResetPassword(ctx, "", "secret9", "secret9"), common.ErrValidation)
	require.ErrorIs(t, e.auth.ResetPassword(ctx, "bogus", "secret9", "secret9"), client.ErrBadRequest)
	require.NoError(t, e.auth.ResetPassword(ctx, tok, "secret9", "secret9"))

	_, err := e.auth.Login(ctx, "ann@example.org", "secret9")
	require.NoError(t, err)
}

// ---- papers ----

func TestPaperForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*PaperForm)
		field string
	}{
		{"title", func(f *PaperForm) { f.Title = "" }, "title"},
		{"keywords", func(f *PaperForm) { f.Keywords = " " }, "keywords"},
		{"abstract", func(f *PaperForm) { f.Abstract = "" }, "abstract"},
		{"paper type", func(f *PaperForm) { f.PaperTypeID = 0 }, "paperType"},
		{"topics", func(f *PaperForm) { f.TopicIDs = nil }, "topics"},
		{"co-author affiliation", func(f *PaperForm) {
			f.CoAuthors = []models.CoAuthor{{FirstName: "A", LastName: "B", Email: "a@b.c"}}
		}, "affiliation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validPaper()
			tt.edit(&f)
			err := f.Validate()
			require.ErrorIs(t, err, common.ErrValidation)
			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	require.NoError(t, validPaper().Validate())
}

func TestPaperService_Submit_Flow(t *testing.T) {
	api := &countingAPI{}
	svc := NewPaperService(api, nil)

	f := validPaper()
	f.File = &Upload{Name: "paper.pdf", Body: strings.NewReader("%PDF")}
	p, err := svc.Submit(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, []string{"create", "upload:paper.pdf", "submit"}, api.calls)

	api.calls = nil
	_, err = svc.Submit(context.Background(), validPaper())
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "submit"}, api.calls)
}

func TestPaperService_Submit_InvalidSendsNothing(t *testing.T) {
	api := &countingAPI{}
	f := validPaper()
	f.Title = ""
	_, err := NewPaperService(api, nil).Submit(context.Background(), f)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, api.calls)
}

func TestPaperService_Submit_PartialFailureKeepsDraft(t *testing.T) {
	api := &countingAPI{uploadErr: client.ErrBadRequest}
	f := validPaper()
	f.File = &Upload{Name: "x.pdf", Body: strings.NewReader("x")}

	p, err := NewPaperService(api, nil).Submit(context.Background(), f)
	require.ErrorIs(t, err, client.ErrBadRequest)
	require.NotNil(t, p)
	assert.Equal(t, []string{"create", "upload:x.pdf"}, api.calls)
}

func TestPaperService_AgainstBackend(t *testing.T) {
	e := newEnv(t)
	e.srv.AddUser("ann@example.org", "secret1", "Ann", "Lee")
	ctx := context.Background()
	_, err := e.auth.Login(ctx, "ann@example.org", "secret1")
	require.NoError(t, err)

	types, err := e.api.PaperTypes(ctx)
	require.NoError(t, err)
	topics, err := e.api.Topics(ctx)
	require.NoError(t, err)

	f := validPaper()
	f.PaperTypeID = types[0].ID
	f.TopicIDs = []int64{topics[0].ID, topics[1].ID}
	_, err = NewPaperService(e.api, nil).Submit(ctx, f)
	require.NoError(t, err)

	papers, err := e.api.ListPapers(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, models.StatusSubmitted, papers[0].Status)
	assert.ElementsMatch(t, []string{topics[0].Name, topics[1].Name}, papers[0].Topics)
}

// ---- contributions ----

func TestContributionForm(t *testing.T) {
	f := ContributionForm{
		Roles:       []string{"Speaker", "Session Chair"},
		Title:       "Keynote on Go",
		Keywords:    "go",
		Description: "talk",
		Bio:         "gopher",
		SpeechType:  "Invited Talk",
		TimeScope:   "45 min",
	}
	require.NoError(t, f.Validate())

	p := f.Payload()
	assert.Equal(t, []string{"SPEAKER", "SESSION_CHAIR"}, p.Roles)
	assert.Equal(t, "INVITED", p.SpeechType)
	assert.Equal(t, "MIN_45", p.TimeScope)

	f.SpeechType, f.TimeScope = "", ""
	p = f.Payload()
	assert.Equal(t, "KEYNOTE", p.SpeechType)
	assert.Equal(t, "MIN_20", p.TimeScope)

	f.Roles = nil
	require.ErrorIs(t, f.Validate(), common.ErrValidation)
	f.Roles = []string{"Speaker"}
	f.Bio = ""
	require.ErrorIs(t, f.Validate(), common.ErrValidation)
}

package teaser

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionnaires-go/internal/content"
	"visionnaires-go/internal/model"
)

type fakeGateway struct {
	configured  bool
	live        []model.Record
	appendErr   error
	appendCalls int
	appended    map[string]model.Property
}

func (f *fakeGateway) Configured() bool { return f.configured }

func (f *fakeGateway) ListCollection(_ context.Context, collectionID string, _ *content.SortSpec) []model.Record {
	if collectionID != "live" {
		return nil
	}
	return f.live
}

func (f *fakeGateway) AppendRecord(_ context.Context, _ string, properties map[string]model.Property) (model.Record, error) {
	f.appendCalls++
	f.appended = properties
	if f.appendErr != nil {
		return model.Record{}, f.appendErr
	}
	return model.Record{ID: "capture-1"}, nil
}

type fakeLeads struct {
	inputs  []model.LeadCreate
	created bool
	err     error
}

func (f *fakeLeads) CreateIfNotExists(_ context.Context, input model.LeadCreate) (model.Lead, bool, error) {
	f.inputs = append(f.inputs, input)
	return model.Lead{ID: "lead-1", Email: input.Email, ProjectID: input.ProjectID}, f.created, f.err
}

type fakeNotifier struct {
	leads []model.Lead
}

func (f *fakeNotifier) SendLead(lead model.Lead) {
	f.leads = append(f.leads, lead)
}

func fileHost(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/file.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 teaser"))
		case "/raw":
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte("bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func project(id, name string, file model.FileRef) model.Record {
	return model.Record{ID: id, Properties: map[string]model.Property{
		"Name":   model.TitleProperty(name),
		"Teaser": {Kind: model.KindFiles, Files: []model.FileRef{file}},
	}}
}

func newTestService(t *testing.T, gw *fakeGateway, cfg Config, options ...Option) (*Service, *httptest.Server) {
	t.Helper()
	host := fileHost(t)
	return NewService(gw, host.Client(), cfg, options...), host
}

var baseConfig = Config{LiveCollection: "live", CaptureCollection: "capture", Password: "vision"}

func kindOf(t *testing.T, err error) (Kind, string) {
	t.Helper()
	var te *Error
	require.True(t, errors.As(err, &te), "expected *teaser.Error, got %v", err)
	return te.Kind, te.Message
}

func readAll(t *testing.T, dl *Download) string {
	t.Helper()
	defer dl.Body.Close()
	data, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	return string(data)
}

func TestSubmitEmailStreamsTeaser(t *testing.T) {
	gw := &fakeGateway{configured: true}
	svc, host := newTestService(t, gw, baseConfig)
	gw.live = []model.Record{project("X", "Project Social", model.FileRef{Name: "deal.pdf", ExternalURL: host.URL + "/file.pdf"})}

	dl, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	require.NoError(t, err)
	assert.Equal(t, "deal.pdf", dl.FileName)
	assert.Equal(t, "application/pdf", dl.ContentType)
	assert.Equal(t, "%PDF-1.4 teaser", readAll(t, dl))
	assert.Empty(t, dl.Token)

	assert.Equal(t, 1, gw.appendCalls)
	assert.Equal(t, "a@b.com", gw.appended["Email"].Title[0].String())
}

func TestSubmitEmailValidation(t *testing.T) {
	cases := []struct {
		name string
		req  model.EmailCapture
		msg  string
	}{
		{"missing email", model.EmailCapture{ProjectID: "X"}, "Missing email or project ID."},
		{"missing project", model.EmailCapture{Email: "a@b.com"}, "Missing email or project ID."},
		{"no at sign", model.EmailCapture{Email: "ab.com", ProjectID: "X"}, "Invalid email format."},
		{"no tld", model.EmailCapture{Email: "a@b", ProjectID: "X"}, "Invalid email format."},
		{"whitespace", model.EmailCapture{Email: "a b@c.com", ProjectID: "X"}, "Invalid email format."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{configured: true}
			svc, _ := newTestService(t, gw, baseConfig)

			_, err := svc.SubmitEmail(context.Background(), tc.req)
			kind, msg := kindOf(t, err)
			assert.Equal(t, KindValidation, kind)
			assert.Equal(t, tc.msg, msg)
			assert.Zero(t, gw.appendCalls)
		})
	}
}

func TestSubmitEmailConfiguration(t *testing.T) {
	svc, _ := newTestService(t, &fakeGateway{}, baseConfig)
	_, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	kind, msg := kindOf(t, err)
	assert.Equal(t, KindConfiguration, kind)
	assert.Equal(t, "Server configuration error.", msg)

	cfg := baseConfig
	cfg.CaptureCollection = ""
	gw := &fakeGateway{configured: true}
	svc, _ = newTestService(t, gw, cfg)
	_, err = svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "bad", ProjectID: ""})
	kind, _ = kindOf(t, err)
	assert.Equal(t, KindConfiguration, kind)
	assert.Zero(t, gw.appendCalls)
}

func TestSubmitEmailAppendFailure(t *testing.T) {
	gw := &fakeGateway{configured: true, appendErr: errors.New("notion down")}
	notifier := &fakeNotifier{}
	svc, _ := newTestService(t, gw, baseConfig, WithNotifier(notifier))

	_, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	kind, msg := kindOf(t, err)
	assert.Equal(t, KindUpstream, kind)
	assert.Equal(t, "Failed to submit email.", msg)
	assert.ErrorContains(t, err, "notion down")
	assert.Empty(t, notifier.leads)
}

func TestSubmitEmailNotFound(t *testing.T) {
	gw := &fakeGateway{configured: true}
	svc, host := newTestService(t, gw, baseConfig)
	gw.live = []model.Record{
		{ID: "no-teaser"},
		project("gone", "Gone", model.FileRef{ExternalURL: host.URL + "/missing.pdf"}),
	}

	_, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "other"})
	kind, msg := kindOf(t, err)
	assert.Equal(t, KindNotFound, kind)
	assert.Equal(t, "Project not found.", msg)

	_, err = svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "no-teaser"})
	_, msg = kindOf(t, err)
	assert.Equal(t, "Teaser file not found.", msg)

	_, err = svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "gone"})
	kind, msg = kindOf(t, err)
	assert.Equal(t, KindNotFound, kind)
	assert.Equal(t, "File not found.", msg)
}

func TestSubmitEmailRecordsLead(t *testing.T) {
	gw := &fakeGateway{configured: true}
	leads := &fakeLeads{created: true}
	notifier := &fakeNotifier{}
	svc, host := newTestService(t, gw, baseConfig, WithLeads(leads), WithNotifier(notifier))
	gw.live = []model.Record{project("X", "Project Skin", model.FileRef{ExternalURL: host.URL + "/file.pdf"})}

	dl, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	require.NoError(t, err)
	dl.Body.Close()

	require.Len(t, leads.inputs, 1)
	assert.Equal(t, model.LeadCreate{Email: "a@b.com", ProjectID: "X", ProjectName: "Project Skin"}, leads.inputs[0])
	require.Len(t, notifier.leads, 1)
	assert.Equal(t, "lead-1", notifier.leads[0].ID)

	leads.created = false
	dl, err = svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	require.NoError(t, err)
	dl.Body.Close()
	assert.Len(t, notifier.leads, 1, "repeat leads are not announced")

	leads.err = errors.New("db down")
	dl, err = svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "c@d.com", ProjectID: "X"})
	require.NoError(t, err)
	dl.Body.Close()
	assert.Len(t, notifier.leads, 2)
}

func TestDownload(t *testing.T) {
	gw := &fakeGateway{configured: true}
	svc, host := newTestService(t, gw, baseConfig)
	gw.live = []model.Record{
		project("X", "X", model.FileRef{HostedURL: host.URL + "/raw"}),
	}

	dl, err := svc.Download(context.Background(), DownloadRequest{ID: "X", Password: "vision"})
	require.NoError(t, err)
	assert.Equal(t, "teaser.pdf", dl.FileName)
	assert.Equal(t, "application/octet-stream", dl.ContentType)
	assert.Equal(t, "bytes", readAll(t, dl))
}

func TestDownloadErrors(t *testing.T) {
	gw := &fakeGateway{configured: true}
	svc, _ := newTestService(t, gw, baseConfig)
	gw.live = []model.Record{
		project("dead", "Dead", model.FileRef{ExternalURL: "http://127.0.0.1:1/file.pdf"}),
	}

	cases := []struct {
		name string
		req  DownloadRequest
		kind Kind
		msg  string
	}{
		{"missing id", DownloadRequest{Password: "vision"}, KindValidation, "Missing id or password."},
		{"missing password", DownloadRequest{ID: "X"}, KindValidation, "Missing id or password."},
		{"wrong password", DownloadRequest{ID: "X", Password: "WRONG"}, KindAuthorization, "Invalid password."},
		{"unknown project", DownloadRequest{ID: "X", Password: "vision"}, KindNotFound, "Project not found."},
		{"unreachable host", DownloadRequest{ID: "dead", Password: "vision"}, KindUpstream, "Download failed."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Download(context.Background(), tc.req)
			kind, msg := kindOf(t, err)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestRequiredEmailStep(t *testing.T) {
	gw := &fakeGateway{configured: true}
	cfg := baseConfig
	cfg.RequireEmail = true
	tokens := NewTokens("s3cret", time.Minute)
	svc, host := newTestService(t, gw, cfg, WithTokens(tokens))
	gw.live = []model.Record{
		project("X", "X", model.FileRef{ExternalURL: host.URL + "/file.pdf"}),
		project("Y", "Y", model.FileRef{ExternalURL: host.URL + "/file.pdf"}),
	}

	_, err := svc.Download(context.Background(), DownloadRequest{ID: "X", Password: "vision"})
	kind, msg := kindOf(t, err)
	assert.Equal(t, KindAuthorization, kind)
	assert.Equal(t, "Email verification required.", msg)

	dl, err := svc.SubmitEmail(context.Background(), model.EmailCapture{Email: "a@b.com", ProjectID: "X"})
	require.NoError(t, err)
	dl.Body.Close()
	require.NotEmpty(t, dl.Token)

	dl, err = svc.Download(context.Background(), DownloadRequest{ID: "X", Password: "vision", Token: dl.Token})
	require.NoError(t, err)
	dl.Body.Close()

	token, err := tokens.Issue("X", "a@b.com")
	require.NoError(t, err)
	_, err = svc.Download(context.Background(), DownloadRequest{ID: "Y", Password: "vision", Token: token})
	kind, _ = kindOf(t, err)
	assert.Equal(t, KindAuthorization, kind)
}

func TestTeaserURL(t *testing.T) {
	gw := &fakeGateway{configured: true, live: []model.Record{
		project("X", "X", model.FileRef{ExternalURL: "https://host/file.pdf", HostedURL: "https://s3/file.pdf"}),
		{ID: "bare"},
	}}
	svc := NewService(gw, http.DefaultClient, baseConfig)

	url, err := svc.TeaserURL(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, "https://host/file.pdf", url)

	_, err = svc.TeaserURL(context.Background(), "")
	kind, msg := kindOf(t, err)
	assert.Equal(t, KindValidation, kind)
	assert.Equal(t, "Missing id.", msg)

	_, err = svc.TeaserURL(context.Background(), "nope")
	_, msg = kindOf(t, err)
	assert.Equal(t, "Not found.", msg)

	_, err = svc.TeaserURL(context.Background(), "bare")
	_, msg = kindOf(t, err)
	assert.Equal(t, "Teaser file not found.", msg)
}

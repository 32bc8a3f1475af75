// Package teaser implements the gated teaser download: an email capture
// step followed by a shared-password check that streams the deal's teaser
// file from wherever the record points.
package teaser

import (
	"context"
	"crypto/subtle"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"

	"visionnaires-go/internal/model"
	"visionnaires-go/internal/normalizer"
)

const (
	defaultFileName    = "teaser.pdf"
	defaultContentType = "application/octet-stream"
	emailProperty      = "Email"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Config struct {
	LiveCollection    string
	CaptureCollection string
	Password          string
	RequireEmail      bool
}

type Service struct {
	gateway  Gateway
	files    Doer
	cfg      Config
	tokens   *Tokens
	leads    LeadRecorder
	notifier Notifier
}

type Option func(*Service)

func WithTokens(tokens *Tokens) Option {
	return func(s *Service) {
		s.tokens = tokens
	}
}

func WithLeads(leads LeadRecorder) Option {
	return func(s *Service) {
		s.leads = leads
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func NewService(gateway Gateway, files Doer, cfg Config, options ...Option) *Service {
	s := &Service{gateway: gateway, files: files, cfg: cfg}
	for _, option := range options {
		option(s)
	}
	return s
}

// Download is an open teaser file. The caller must close Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	// Token proves the email step to the password step. Empty when tokens
	// are not configured.
	Token string
}

type DownloadRequest struct {
	ID       string
	Password string
	Token    string
}

// TeaserURL returns the teaser file URL of a live transaction.
func (s *Service) TeaserURL(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", failure(KindValidation, msgMissingID, nil)
	}
	rec, ok := s.findProject(ctx, id)
	if !ok {
		return "", failure(KindNotFound, msgNotFound, nil)
	}
	att, ok := normalizer.Attachment(rec.Property(normalizer.PropTeaser))
	if !ok {
		return "", failure(KindNotFound, msgTeaserNotFound, nil)
	}
	return att.URL, nil
}

// SubmitEmail records the requester's email in the capture collection and
// opens the project's teaser.
func (s *Service) SubmitEmail(ctx context.Context, req model.EmailCapture) (*Download, error) {
	if !s.gateway.Configured() {
		log.Printf("[teaser] content service credential not set")
		return nil, failure(KindConfiguration, msgServerConfig, nil)
	}
	if s.cfg.CaptureCollection == "" || s.cfg.LiveCollection == "" {
		log.Printf("[teaser] capture or live transactions collection not set")
		return nil, failure(KindConfiguration, msgServerConfig, nil)
	}

	if req.Email == "" || req.ProjectID == "" {
		return nil, failure(KindValidation, msgMissingEmail, nil)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, failure(KindValidation, msgInvalidEmail, nil)
	}

	if _, err := s.gateway.AppendRecord(ctx, s.cfg.CaptureCollection, map[string]model.Property{
		emailProperty: model.TitleProperty(req.Email),
	}); err != nil {
		log.Printf("[teaser] email capture failed for project %s: %v", req.ProjectID, err)
		return nil, failure(KindUpstream, msgSubmitFailed, err)
	}

	rec, found := s.findProject(ctx, req.ProjectID)
	projectName := ""
	if found {
		projectName = normalizer.Text(rec.Property(normalizer.PropName))
	}
	s.recordLead(ctx, model.LeadCreate{Email: req.Email, ProjectID: req.ProjectID, ProjectName: projectName})

	if !found {
		return nil, failure(KindNotFound, msgProjectNotFound, nil)
	}
	dl, err := s.open(ctx, rec, msgSubmitFailed)
	if err != nil {
		return nil, err
	}

	if s.tokens != nil {
		token, err := s.tokens.Issue(req.ProjectID, req.Email)
		if err != nil {
			dl.Body.Close()
			return nil, failure(KindUpstream, msgSubmitFailed, err)
		}
		dl.Token = token
	}
	return dl, nil
}

// Download checks the shared password and opens the project's teaser.
func (s *Service) Download(ctx context.Context, req DownloadRequest) (*Download, error) {
	if req.ID == "" || req.Password == "" {
		return nil, failure(KindValidation, msgMissingParams, nil)
	}
	if s.cfg.Password == "" {
		log.Printf("[teaser] download password not set")
		return nil, failure(KindConfiguration, msgServerConfig, nil)
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) != 1 {
		return nil, failure(KindAuthorization, msgInvalidPassword, nil)
	}

	if s.cfg.RequireEmail {
		if s.tokens == nil {
			log.Printf("[teaser] email step required but token secret not set")
			return nil, failure(KindConfiguration, msgServerConfig, nil)
		}
		if req.Token == "" {
			return nil, failure(KindAuthorization, msgEmailRequired, nil)
		}
		if err := s.tokens.Verify(req.Token, req.ID); err != nil {
			return nil, failure(KindAuthorization, msgEmailRequired, err)
		}
	}

	rec, ok := s.findProject(ctx, req.ID)
	if !ok {
		return nil, failure(KindNotFound, msgProjectNotFound, nil)
	}
	return s.open(ctx, rec, msgDownloadFailed)
}

func (s *Service) findProject(ctx context.Context, id string) (model.Record, bool) {
	for _, rec := range s.gateway.ListCollection(ctx, s.cfg.LiveCollection, nil) {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.Record{}, false
}

// open resolves the record's teaser and starts fetching it. fetchFailure is
// the message reported when the file host cannot be reached at all.
func (s *Service) open(ctx context.Context, rec model.Record, fetchFailure string) (*Download, error) {
	att, ok := normalizer.Attachment(rec.Property(normalizer.PropTeaser))
	if !ok {
		return nil, failure(KindNotFound, msgTeaserNotFound, nil)
	}
	name := att.Name
	if name == "" {
		name = defaultFileName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
	if err != nil {
		return nil, failure(KindUpstream, fetchFailure, err)
	}
	resp, err := s.files.Do(req)
	if err != nil {
		log.Printf("[teaser] fetch %s failed: %v", rec.ID, err)
		return nil, failure(KindUpstream, fetchFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		log.Printf("[teaser] fetch %s: unexpected status %d", rec.ID, resp.StatusCode)
		return nil, failure(KindNotFound, msgFileNotFound, nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return &Download{Body: resp.Body, ContentType: contentType, FileName: name}, nil
}

// recordLead mirrors the capture to the ledger and notifier. Neither can
// fail the request.
func (s *Service) recordLead(ctx context.Context, input model.LeadCreate) {
	lead := model.Lead{
		Email:       input.Email,
		ProjectID:   input.ProjectID,
		ProjectName: input.ProjectName,
		CreatedAt:   time.Now().UTC(),
	}

	if s.leads != nil {
		saved, created, err := s.leads.CreateIfNotExists(ctx, input)
		switch {
		case err != nil:
			log.Printf("[teaser] lead ledger insert failed: %v", err)
		case !created:
			log.Printf("[teaser] repeat lead: project=%s", input.ProjectID)
			return
		default:
			lead = saved
		}
	}

	if s.notifier != nil {
		s.notifier.SendLead(lead)
	}
}

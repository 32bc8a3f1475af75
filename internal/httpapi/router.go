package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"visionnaires-go/internal/services/listing"
	"visionnaires-go/internal/services/teaser"
)

type Handler struct {
	listing *listing.Service
	teaser  *teaser.Service
}

func NewHandler(listing *listing.Service, teaser *teaser.Service) *Handler {
	return &Handler{listing: listing, teaser: teaser}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(legacyRedirects)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Get("/current-transactions", h.handleCurrentTransactions)
		r.Get("/track-records", h.handleTrackRecords)
		r.Get("/track-records/{id}", h.handleTrackRecord)
		r.Get("/portfolio/{slug}", h.handlePortfolio)

		r.Get("/get-teaser-url", h.handleTeaserURL)
		r.Get("/download-teaser", h.handleDownload)
		r.Post("/submit-email-teaser", h.handleSubmitEmail)
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

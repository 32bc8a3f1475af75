package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"visionnaires-go/internal/services/listing"
)

const (
	sourceDatabase = "notion_database"
	sourcePage     = "notion_page"

	msgNotConfigured       = "Database ID not configured"
	msgTrackRecordNotFound = "Track record not found"
	msgPortfolioNotFound   = "Project not found"
)

func (h *Handler) handleCurrentTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.listing.CurrentTransactions(r.Context())
	if err != nil {
		respondListingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"projects": result.Records,
		"entries":  result.Entries,
		"count":    len(result.Records),
		"source":   sourceDatabase,
	})
}

func (h *Handler) handleTrackRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.listing.TrackRecords(r.Context())
	if err != nil {
		respondListingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"projects":     result.Records,
		"trackRecords": result.Records,
		"entries":      result.Entries,
		"count":        len(result.Records),
		"source":       sourceDatabase,
	})
}

func (h *Handler) handleTrackRecord(w http.ResponseWriter, r *http.Request) {
	detail, err := h.listing.TrackRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": msgTrackRecordNotFound})
			return
		}
		respondListingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"project": detail.Record,
		"blocks":  detail.Blocks,
		"entry":   detail.Entry,
		"html":    detail.HTML,
		"source":  sourcePage,
	})
}

func (h *Handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	detail, err := h.listing.Portfolio(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": msgPortfolioNotFound})
			return
		}
		respondListingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "project": detail})
}

// respondListingError keeps listing failures on 200 so the pages render
// their empty state.
func respondListingError(w http.ResponseWriter, err error) {
	message := err.Error()
	if errors.Is(err, listing.ErrNotConfigured) {
		message = msgNotConfigured
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": false, "error": message})
}

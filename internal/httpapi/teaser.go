package httpapi

import (
	"encoding/json"
	"net/http"

	"visionnaires-go/internal/model"
	"visionnaires-go/internal/services/teaser"
)

const msgInvalidBody = "Invalid request body."

// maxCaptureBody bounds the email capture request.
const maxCaptureBody = 1 << 14

func (h *Handler) handleTeaserURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.teaser.TeaserURL(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		respondTeaserError(w, err, false)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	token := query.Get("token")
	if token == "" {
		token = r.Header.Get(downloadTokenHeader)
	}

	dl, err := h.teaser.Download(r.Context(), teaser.DownloadRequest{
		ID:       query.Get("id"),
		Password: query.Get("password"),
		Token:    token,
	})
	if err != nil {
		respondTeaserError(w, err, false)
		return
	}
	streamDownload(w, dl)
}

func (h *Handler) handleSubmitEmail(w http.ResponseWriter, r *http.Request) {
	var req model.EmailCapture
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCaptureBody)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	dl, err := h.teaser.SubmitEmail(r.Context(), req)
	if err != nil {
		respondTeaserError(w, err, true)
		return
	}
	streamDownload(w, dl)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"visionnaires-go/internal/services/teaser"
)

const downloadTokenHeader = "X-Download-Token"

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondTeaserError reports a download flow failure. withDetails adds the
// underlying cause for upstream failures.
func respondTeaserError(w http.ResponseWriter, err error, withDetails bool) {
	var terr *teaser.Error
	if !errors.As(err, &terr) {
		log.Printf("[http] unclassified teaser error: %v", err)
		respondError(w, http.StatusInternalServerError, "Download failed.")
		return
	}

	status := http.StatusInternalServerError
	switch terr.Kind {
	case teaser.KindValidation:
		status = http.StatusBadRequest
	case teaser.KindAuthorization:
		status = http.StatusUnauthorized
	case teaser.KindNotFound:
		status = http.StatusNotFound
	case teaser.KindConfiguration, teaser.KindUpstream:
		status = http.StatusInternalServerError
	}

	body := map[string]string{"error": terr.Message}
	if withDetails && terr.Kind == teaser.KindUpstream && terr.Err != nil {
		body["details"] = terr.Err.Error()
	}
	respondJSON(w, status, body)
}

func streamDownload(w http.ResponseWriter, dl *teaser.Download) {
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(dl.FileName, `"`, "")))
	if dl.Token != "" {
		w.Header().Set(downloadTokenHeader, dl.Token)
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, dl.Body); err != nil {
		log.Printf("[http] stream %s interrupted: %v", dl.FileName, err)
	}
}

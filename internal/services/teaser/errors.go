package teaser

import "fmt"

type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindValidation
	KindAuthorization
	KindNotFound
	KindUpstream
)

// Error is a failure of the download flow that is reported to the caller.
// Message is shown to the user verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func failure(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

const (
	msgServerConfig    = "Server configuration error."
	msgMissingID       = "Missing id."
	msgMissingParams   = "Missing id or password."
	msgMissingEmail    = "Missing email or project ID."
	msgInvalidEmail    = "Invalid email format."
	msgInvalidPassword = "Invalid password."
	msgEmailRequired   = "Email verification required."
	msgNotFound        = "Not found."
	msgProjectNotFound = "Project not found."
	msgTeaserNotFound  = "Teaser file not found."
	msgFileNotFound    = "File not found."
	msgDownloadFailed  = "Download failed."
	msgSubmitFailed    = "Failed to submit email."
)

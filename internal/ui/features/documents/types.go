// Package documents provides the document upload feature.
package documents

// MaxUploadSize bounds the multipart body of a file selection.
const MaxUploadSize = 25 << 20

// FormSignals represents the signals sent from the upload form.
type FormSignals struct {
	Emails string `json:"emails"`
}

package documents

import (
	"context"
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Element ids patched by the upload actions.
const (
	NoticeID = "upload-notice"
	FilesID  = "upload-files"
)

// UploadPage renders the upload form.
func UploadPage(d *state.Draft, notice components.Notice) templ.Component {
	return components.Component(func(ctx context.Context, w *components.Writer) {
		signals, _ := json.Marshal(FormSignals{Emails: d.Emails})

		w.Open("section", "id", "upload-document", "class", "panel", "data-signals", string(signals))
		w.Elem("h1", "Upload Document")
		w.Elem("div", "Files will be scanned for viruses before upload", "class", "alert")
		w.Render(ctx, components.NoticeBox(NoticeID, notice))

		w.Void("input",
			"id", "emails",
			"type", "text",
			"class", "input",
			"placeholder", "Enter recipient emails, separated by commas",
			"data-bind:emails", "",
			"data-on:input__debounce.400ms", "@post('/upload-document/emails')",
		)

		w.Open("form",
			"id", "upload-file-form",
			"class", "upload-area",
			"enctype", "multipart/form-data",
			"data-on:change", "@post('/upload-document/file', {contentType: 'form'})",
		)
		w.Open("label", "for", "file")
		w.Elem("h3", "Drag and drop files here")
		w.Elem("p", "or click to select files", "class", "muted")
		w.Close("label")
		w.Void("input", "id", "file", "name", "file", "type", "file", "class", "file-input")
		w.Close("form")

		w.Render(ctx, FileList(d))
		w.Close("section")
	})
}

// FileList renders the selected file and the submit button.
func FileList(d *state.Draft) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("div", "id", FilesID, "class", "file-list")
		if !d.HasFile() {
			w.Close("div")
			return
		}

		w.Elem("h3", "Selected File")
		w.Open("div", "class", "file-item")
		w.Open("div", "class", "file-info")
		w.Elem("div", d.FileName, "class", "file-name")
		w.Elem("div", common.FormatFileSize(d.FileSize), "class", "file-size")
		w.Close("div")
		w.Elem("button", "Remove",
			"type", "button",
			"class", "delete-button",
			"aria-label", "Remove file",
			"data-on:click", "@post('/upload-document/remove')",
		)
		w.Close("div")

		w.Elem("button", "Upload file",
			"type", "button",
			"class", "upload-button",
			"data-indicator:uploading", "",
			"data-attr:disabled", "$uploading || $emails.trim() === ''",
			"data-on:click", "@post('/upload-document/submit')",
		)
		w.Close("div")
	})
}

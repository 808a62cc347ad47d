package components

import (
	"context"
	"encoding/json"

	"github.com/a-h/templ"
)

// ShellURL returns the URL of a shell endpoint for a tab.
func ShellURL(tabID, action string) string {
	return "/shell/" + tabID + "/" + action
}

// Document renders a complete HTML page. Pages behind the shell get the
// chrome and a live connection to the shell stream; public pages get
// neither.
func Document(data PageData, body templ.Component) templ.Component {
	return Component(func(ctx context.Context, w *Writer) {
		signals, err := json.Marshal(ShellSignalsFor(data))
		if err != nil {
			w.err = err
			return
		}

		w.Raw("<!doctype html>")
		w.Open("html", "lang", "en")
		w.Open("head")
		w.Void("meta", "charset", "utf-8")
		w.Void("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		w.Elem("title", data.Title+" - "+AppName)
		w.Void("link", "rel", "stylesheet", "href", "/static/app.css")
		w.Open("script", "type", "module", "src", DatastarScript)
		w.Close("script")
		w.Close("head")

		live := data.View.ShowChrome && data.TabID != ""
		w.Open("body", Attrs(
			[]string{"class", "page-" + data.Page.String(), "data-signals", string(signals)},
			If(live,
				"data-init", "$viewportWidth = window.innerWidth; @get('"+ShellURL(data.TabID, "sse")+"')",
				"data-on:resize__window__debounce.150ms", "$viewportWidth = window.innerWidth; @post('"+ShellURL(data.TabID, "resize")+"')",
			),
		)...)

		if data.IsDev {
			w.Open("div", "id", "hotreload", "data-init", "@get('/reload', {retryMaxCount: 1000})")
			w.Close("div")
		}

		w.Render(ctx, Chrome(data))

		w.Open("main", Attrs(
			[]string{"id", "content", "class", "content"},
			If(data.View.ShowChrome,
				"style", insetStyle(data.View.ContentInset),
				"data-attr:style", "'margin-left:' + $contentInset + 'px'",
			),
		)...)
		w.Render(ctx, body)
		w.Close("main")

		w.Close("body")
		w.Close("html")
	})
}

func insetStyle(inset int) string {
	return "margin-left:" + itoa(inset) + "px"
}

package components

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// ChromeID is the element patched on every layout transition.
const ChromeID = "chrome"

// Chrome renders the sidebar, the top bar and the narrow-viewport overlay.
// Hidden chrome renders an empty container.
func Chrome(data PageData) templ.Component {
	return Component(func(_ context.Context, w *Writer) {
		v := data.View
		w.Open("div", "id", ChromeID, "class", "chrome "+v.State.String())
		if !v.ShowChrome {
			w.Close("div")
			return
		}

		w.Open("header", "id", "topbar", "class", "topbar")
		if !v.SidebarOpen {
			w.Elem("button", "☰",
				"type", "button",
				"class", "icon-button",
				"aria-label", "Open sidebar",
				"data-on:click", "@post('"+ShellURL(data.TabID, "open")+"')",
			)
		}
		w.Elem("a", AppName, "href", "/upload-document", "class", "brand")
		if data.User != "" {
			w.Elem("span", data.User, "class", "user")
		}
		w.Close("header")

		if v.SidebarOpen {
			w.Open("nav", "id", "sidebar", "class", "sidebar", "style", "width:"+itoa(data.SidebarWidth)+"px")
			w.Elem("button", "×",
				"type", "button",
				"class", "icon-button close",
				"aria-label", "Close sidebar",
				"data-on:click", "@post('"+ShellURL(data.TabID, "close")+"')",
			)
			w.Open("ul")
			for _, item := range data.Nav {
				w.Open("li")
				w.Elem("a", item.Label, Attrs(
					[]string{
						"href", item.Href,
						"data-on:click", "$path = '" + item.Href + "'; @post('" + ShellURL(data.TabID, "navigate") + "')",
					},
					If(item.Active, "class", "active", "aria-current", "page"),
				)...)
				w.Close("li")
			}
			w.Close("ul")
			w.Close("nav")
		}

		if v.Overlay {
			w.Open("div",
				"id", "sidebar-overlay",
				"class", "overlay",
				"data-on:click", "@post('"+ShellURL(data.TabID, "close")+"')",
			)
			w.Close("div")
		}

		w.Close("div")
	})
}

// NoticeBox renders a notice into the element with the given id. An empty
// notice renders the empty container so it can be patched later.
func NoticeBox(id string, n Notice) templ.Component {
	return Component(func(_ context.Context, w *Writer) {
		if n.Empty() {
			w.Open("div", "id", id, "class", "notice-slot")
			w.Close("div")
			return
		}
		w.Open("div", "id", id, "class", "notice-slot")
		w.Elem("div", n.Message, "class", "notice notice-"+string(n.Kind), "role", "alert")
		w.Close("div")
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

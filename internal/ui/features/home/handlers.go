package home

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	renderer *common.Renderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(renderer *common.Renderer) *Handlers {
	return &Handlers{renderer: renderer}
}

// HomePage renders the marketing page. The slideshow advances on the client.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "Home", homeView(h.renderer.User(r)))
}

// nextSlide is the client expression advancing the slideshow.
func nextSlide(n int) string {
	return fmt.Sprintf("$slide = ($slide + 1) %% %d", n)
}

func homeView(user string) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("div", "id", "home", "class", "marketing",
			"data-signals", `{"slide": 0}`,
			"data-on-interval__duration."+durationModifier(SlideInterval), nextSlide(len(Slides)))

		w.Open("header", "class", "marketing-header")
		w.Elem("h1", components.AppName, "class", "logo")
		w.Open("div", "class", "button-group")
		if user != "" {
			w.Elem("a", "Go to uploads", "href", "/upload-document", "class", "button primary")
		} else {
			w.Elem("a", "Sign In", "href", "/sign-in", "class", "button")
			w.Elem("a", "Sign Up", "href", "/sign-up", "class", "button primary")
		}
		w.Close("div")
		w.Close("header")

		w.Open("section", "id", "slideshow", "class", "slideshow")
		for i, s := range Slides {
			attrs := components.Attrs(
				[]string{"class", "slide", "data-show", fmt.Sprintf("$slide === %d", i)},
				components.If(i > 0, "style", "display: none"),
			)
			w.Open("div", attrs...)
			w.Elem("h2", s.Title, "class", "tagline")
			w.Elem("p", s.Description)
			w.Close("div")
		}
		w.Close("section")

		w.Open("section", "class", "features")
		for _, f := range Features {
			w.Open("div", "class", "feature")
			w.Elem("h3", f.Title)
			w.Elem("p", f.Description)
			w.Close("div")
		}
		w.Close("section")
		w.Close("div")
	})
}

// durationModifier formats d for a Datastar duration modifier, e.g. "5s".
func durationModifier(d time.Duration) string {
	ms := d.Milliseconds()
	if ms%1000 == 0 {
		return fmt.Sprintf("%ds", ms/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

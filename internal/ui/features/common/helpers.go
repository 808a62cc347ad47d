// Package common provides shared types and utilities for UI features.
package common

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ViewportCookie remembers the last reported viewport width.
const ViewportCookie = "viewport_width"

// viewportHint is the client hint browsers send when asked to.
const viewportHint = "Sec-CH-Viewport-Width"

// ViewportWidth returns the viewport width for a first render: the cookie
// set by the resize endpoint, then the client hint, then fallback.
func ViewportWidth(r *http.Request, fallback int) int {
	if c, err := r.Cookie(ViewportCookie); err == nil {
		if w, ok := parseWidth(c.Value); ok {
			return w
		}
	}
	if w, ok := parseWidth(r.Header.Get(viewportHint)); ok {
		return w
	}
	return fallback
}

// SetViewportCookie stores width for the next first render.
func SetViewportCookie(w http.ResponseWriter, width int) {
	http.SetCookie(w, &http.Cookie{
		Name:     ViewportCookie,
		Value:    strconv.Itoa(width),
		Path:     "/",
		MaxAge:   86400 * 365,
		SameSite: http.SameSiteLaxMode,
	})
}

func parseWidth(s string) (int, bool) {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// FormatFileSize renders a byte count in binary units, e.g. "1.5 KiB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

// FormatWhen renders t relative to now, e.g. "3 minutes ago".
func FormatWhen(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// DisplayName returns the name to show for a signed-in user: the name when
// known, else the local part of the email, title-cased. A Caser holds state,
// so each call builds its own.
func DisplayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(local)
	return cases.Title(language.English).String(strings.Join(strings.Fields(local), " "))
}

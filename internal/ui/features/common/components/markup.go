// Package components provides the shared HTML components of the UI: the page
// document, the shell chrome and notices.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes escaped HTML. The first write error sticks and is returned by
// the enclosing component.
type Writer struct {
	w   io.Writer
	err error
}

// Component adapts fn to a templ component.
func Component(fn func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &Writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

// Raw writes s unescaped.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s as escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Open writes a start tag. attrs are name/value pairs; an empty value writes
// a bare boolean attribute.
func (w *Writer) Open(tag string, attrs ...string) {
	w.Raw("<" + tag)
	w.attrs(attrs)
	w.Raw(">")
}

// Void writes an element without content, such as input or link.
func (w *Writer) Void(tag string, attrs ...string) {
	w.Open(tag, attrs...)
}

// Close writes an end tag.
func (w *Writer) Close(tag string) {
	w.Raw("</" + tag + ">")
}

// Elem writes an element holding escaped text.
func (w *Writer) Elem(tag, text string, attrs ...string) {
	w.Open(tag, attrs...)
	w.Text(text)
	w.Close(tag)
}

// Render writes a child component.
func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) attrs(attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		w.Raw(" " + attrs[i])
		if v := attrs[i+1]; v != "" {
			w.Raw(`="` + templ.EscapeString(v) + `"`)
		}
	}
}

// If returns attrs when cond holds, for optional attributes.
func If(cond bool, attrs ...string) []string {
	if cond {
		return attrs
	}
	return nil
}

// Attrs concatenates attribute lists.
func Attrs(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

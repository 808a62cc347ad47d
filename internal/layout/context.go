package layout

import "context"

type viewKey struct{}

// WithView returns a context carrying a read-only layout snapshot for pages.
func WithView(ctx context.Context, v View) context.Context {
	return context.WithValue(ctx, viewKey{}, v)
}

// ViewFrom returns the snapshot stored by WithView.
func ViewFrom(ctx context.Context) (View, bool) {
	v, ok := ctx.Value(viewKey{}).(View)
	return v, ok
}

package internal

import (
	"context"
	"maps"
	"net/http"
	"time"
)

type resultKind uint8

const (
	resultProps resultKind = iota
	resultRedirect
	resultNotFound
)

// Redirect sends the client elsewhere instead of rendering the page.
type Redirect struct {
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent,omitempty"`
	// StatusCode overrides the status derived from Permanent.
	StatusCode int `json:"statusCode,omitempty"`
}

// Status returns the HTTP status for the redirect: StatusCode when set,
// otherwise 308 for permanent and 307 for temporary redirects.
func (r Redirect) Status() int {
	switch {
	case r.StatusCode != 0:
		return r.StatusCode
	case r.Permanent:
		return http.StatusPermanentRedirect
	default:
		return http.StatusTemporaryRedirect
	}
}

// Result is the outcome of a server-props or static-props pass:
// props to render, a redirect, or not-found.
// The zero value renders empty props.
type Result struct {
	props      Props
	deferred   func(ctx context.Context) (Props, error)
	redirect   Redirect
	revalidate time.Duration
	kind       resultKind
}

// PropsResult renders the page with props.
func PropsResult(props Props) Result {
	return Result{kind: resultProps, props: props}
}

// DeferredProps renders the page with props computed by fn after the
// customization callback returns.
func DeferredProps(fn func(ctx context.Context) (Props, error)) Result {
	return Result{kind: resultProps, deferred: fn}
}

// RedirectResult short-circuits the render with a redirect.
func RedirectResult(r Redirect) Result {
	return Result{kind: resultRedirect, redirect: r}
}

// NotFoundResult short-circuits the render with a 404.
func NotFoundResult() Result {
	return Result{kind: resultNotFound}
}

// WithRevalidate sets how long a generated static page stays fresh.
// Zero keeps it until the process restarts.
func (r Result) WithRevalidate(d time.Duration) Result {
	r.revalidate = d
	return r
}

func (r Result) IsProps() bool    { return r.kind == resultProps }
func (r Result) IsRedirect() bool { return r.kind == resultRedirect }
func (r Result) IsNotFound() bool { return r.kind == resultNotFound }

// Props returns the resolved props. Deferred props are only available
// after the adapter that produced the result resolved them.
func (r Result) Props() Props {
	return r.props
}

// Redirect returns the redirect and whether the result is one.
func (r Result) Redirect() (Redirect, bool) {
	return r.redirect, r.kind == resultRedirect
}

// Revalidate returns the freshness interval of a static result.
func (r Result) Revalidate() time.Duration {
	return r.revalidate
}

// resolve awaits deferred props and overlays extra on top of them.
// Short-circuit results are returned untouched.
func (r Result) resolve(ctx context.Context, extra Props) (Result, error) {
	if r.kind != resultProps {
		return r, nil
	}

	props := r.props
	if r.deferred != nil {
		p, err := r.deferred(ctx)
		if err != nil {
			return Result{}, err
		}
		props = p
	}

	r.props = mergeProps(props, extra)
	r.deferred = nil
	return r, nil
}

// mergeProps copies base and overlays extra. Neither input is modified.
func mergeProps(base, extra Props) Props {
	out := make(Props, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

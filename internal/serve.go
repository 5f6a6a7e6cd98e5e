package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/hydrate/pkg/htmx"
)

// pageHandler serves one compiled route.
func (a *App) pageHandler(rt *route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w, htmx.IsHTMX(r))
		r = r.WithContext(withRoute(r.Context(), rt.page.Pattern))

		res, err := a.pageResult(r.Context(), rw, r, rt)
		if err == nil {
			err = a.respond(rw, r, rt, res)
		}
		if err != nil {
			a.handleError(rw, r, err)
		}

		a.logger.DebugContext(r.Context(), "page served",
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.Status()),
			slog.Int64("size", rw.Size()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// pageResult runs the props function of the route. Query values passed to
// page code include the path parameters, as routers report them.
func (a *App) pageResult(ctx context.Context, w http.ResponseWriter, r *http.Request, rt *route) (Result, error) {
	params := rt.pathParams(r)
	query := r.URL.Query()
	maps.Copy(query, params)
	locales := a.locales.Resolve(r)

	switch {
	case rt.page.Server != nil:
		return rt.page.Server(ctx, &ServerContext{
			Locales:     locales,
			Request:     r,
			Response:    w,
			Route:       rt.page.Pattern,
			ResolvedURL: r.URL.RequestURI(),
			Params:      params,
			Query:       query,
		})
	case rt.page.Static != nil:
		return a.staticResult(ctx, rt, params, locales)
	case rt.page.Initial != nil:
		props, err := rt.page.Initial(ctx, &InitialContext{
			Locales:  locales,
			Request:  r,
			Response: w,
			Pathname: rt.page.Pattern,
			AsPath:   r.URL.RequestURI(),
			Query:    query,
		})
		if err != nil {
			return Result{}, err
		}
		return PropsResult(props), nil
	default:
		return PropsResult(nil), nil
	}
}

// respond writes the result in the shape the request asked for:
// props JSON for client navigations, the bare page for htmx swaps and a
// full document otherwise.
func (a *App) respond(w http.ResponseWriter, r *http.Request, rt *route, res Result) error {
	propsOnly := r.Header.Get(PropsHeader) != ""

	if rd, ok := res.Redirect(); ok {
		if propsOnly {
			return writeJSON(w, http.StatusOK, map[string]Redirect{"redirect": rd})
		}
		htmx.RedirectWithStatus(w, r, rd.Destination, rd.Status())
		return nil
	}

	if res.IsNotFound() {
		if propsOnly {
			return writeJSON(w, http.StatusNotFound, map[string]bool{"notFound": true})
		}
		if a.notFoundHandler != nil {
			a.notFoundHandler(w, r)
			return nil
		}
		return ErrNotFound("page not found")
	}

	if res.Revalidate() > 0 {
		w.Header().Set("Cache-Control", "s-maxage="+strconv.Itoa(int(res.Revalidate().Seconds()))+", stale-while-revalidate")
	}

	props := res.Props()
	if propsOnly {
		return writeJSON(w, http.StatusOK, PageProps{PageProps: props})
	}

	body := a.runtime.Root(props, rt.page.Render)
	if htmx.IsHTMX(r) {
		htmx.PushURL(w, r.URL.RequestURI())
	} else {
		locales := a.locales.Resolve(r)
		query := r.URL.Query()
		maps.Copy(query, rt.pathParams(r))
		body = a.document(DocumentData{
			Body: body,
			Lang: locales.Locale,
			Data: HydrationData{
				Page:          rt.page.Pattern,
				Query:         query,
				Props:         PageProps{PageProps: props},
				Locale:        locales.Locale,
				Locales:       locales.Available,
				DefaultLocale: locales.DefaultLocale,
			},
		})
	}

	var buf bytes.Buffer
	if err := body.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}


package hydrate

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/hydrate/internal"
	"github.com/dmitrymomot/hydrate/pkg/cache"
	"github.com/dmitrymomot/hydrate/pkg/logger"
	"github.com/dmitrymomot/hydrate/pkg/state"
)

// Type aliases - public API
type (
	// Env tells whether code runs on the server or in a client session.
	Env = internal.Env

	// Event is a lifecycle event: a state event dispatched with the
	// normalized page context.
	Event = internal.Event

	// Props are page props as delivered to a page.
	Props = internal.Props

	// Runtime binds lifecycle events to page props functions.
	Runtime = internal.Runtime

	// RuntimeOption configures a Runtime.
	RuntimeOption = internal.RuntimeOption

	// Enhancer wraps events so they run at most once per scope.
	Enhancer = internal.Enhancer

	// EnhancerOption configures an Enhancer.
	EnhancerOption = internal.EnhancerOption

	// EnhanceOptions selects the wrapping applied by an Enhancer.
	EnhanceOptions = internal.EnhanceOptions

	// ScopeManager keeps the client session scope in sync with snapshots.
	ScopeManager = internal.ScopeManager

	// Scope is an isolated set of store values.
	Scope = state.Scope

	// Model is a settled scope with its serialized props.
	Model = internal.Model

	// PageContext is the normalized context passed to page events.
	PageContext = internal.PageContext

	// StaticPageContext is the normalized context of static generation.
	StaticPageContext = internal.StaticPageContext

	// Locales carries the negotiated locale of a request.
	Locales = internal.Locales

	// Navigation describes a client-side transition.
	Navigation = internal.Navigation

	// InitialContext is the raw context of an initial-props pass.
	InitialContext = internal.InitialContext

	// ServerContext is the raw context of a server-props request.
	ServerContext = internal.ServerContext

	// StaticContext is the raw context of a static generation.
	StaticContext = internal.StaticContext

	// InitialPropsConfig configures the InitialProps binder.
	InitialPropsConfig = internal.InitialPropsConfig

	// SharedConfig configures the ServerProps and StaticProps binders.
	SharedConfig = internal.SharedConfig

	// InitialPage, ServerPage and StaticPage declare one page per binder.
	InitialPage = internal.InitialPage
	ServerPage  = internal.ServerPage
	StaticPage  = internal.StaticPage

	// InitialPropsFunc, ServerPropsFunc and StaticPropsFunc are bound props
	// functions.
	InitialPropsFunc = internal.InitialPropsFunc
	ServerPropsFunc  = internal.ServerPropsFunc
	StaticPropsFunc  = internal.StaticPropsFunc

	// Result is the outcome of a server or static props function.
	Result = internal.Result

	// Redirect describes a redirect outcome.
	Redirect = internal.Redirect

	// App serves pages over HTTP.
	App = internal.App

	// Option configures an App.
	Option = internal.Option

	// RunOption configures App.Run.
	RunOption = internal.RunOption

	// Page declares a routable page.
	Page = internal.Page

	// PageRender renders a page from its props.
	PageRender = internal.PageRender

	// Router is the interface handlers use to declare pages and routes.
	Router = internal.Router

	// Handler declares pages on a router.
	Handler = internal.Handler

	// Middleware wraps an http.Handler.
	Middleware = internal.Middleware

	// ErrorHandler renders page errors.
	ErrorHandler = internal.ErrorHandler

	// CheckFunc probes a dependency for the readiness endpoint.
	CheckFunc = internal.CheckFunc

	// DocumentFunc wraps a rendered page in an HTML document.
	DocumentFunc = internal.DocumentFunc

	// DocumentData is what a DocumentFunc receives.
	DocumentData = internal.DocumentData

	// HydrationData is the JSON payload embedded in every document.
	HydrationData = internal.HydrationData

	// PageProps is the props envelope of documents and props responses.
	PageProps = internal.PageProps

	// StaticEntry is a cached static page outcome.
	StaticEntry = internal.StaticEntry

	// ExtractorSource reads one value from a request.
	ExtractorSource = internal.ExtractorSource

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// ContextExtractor adds context values to log records.
	ContextExtractor = logger.ContextExtractor
)

// Environments.
const (
	EnvServer = internal.EnvServer
	EnvClient = internal.EnvClient
)

// Wire names.
const (
	InitialStateKey   = internal.InitialStateKey
	HydrationScriptID = internal.HydrationScriptID
	PropsHeader       = internal.PropsHeader
)

// Errors.
var (
	ErrInvalidEvent   = internal.ErrInvalidEvent
	ErrNoScope        = internal.ErrNoScope
	ErrInvalidPattern = internal.ErrInvalidPattern
	ErrInvalidResult  = internal.ErrInvalidResult
	ErrInvalidState   = internal.ErrInvalidState
)

// Runtime

// NewRuntime creates a runtime with its own enhancer and scope manager.
//
//	rt := hydrate.NewRuntime(hydrate.RuntimeEnv(hydrate.EnvServer), hydrate.RuntimeLogger(log))
//	bind := rt.ServerProps(hydrate.SharedConfig{SharedEvents: []hydrate.Event{appStarted}})
func NewRuntime(opts ...RuntimeOption) *Runtime {
	return internal.NewRuntime(opts...)
}

// RuntimeEnv sets the environment. Defaults to EnvServer.
func RuntimeEnv(env Env) RuntimeOption { return internal.RuntimeEnv(env) }

// RuntimeLogger sets the runtime logger.
func RuntimeLogger(l *slog.Logger) RuntimeOption { return internal.RuntimeLogger(l) }

// RuntimeEnhancer shares an enhancer between runtimes.
func RuntimeEnhancer(e *Enhancer) RuntimeOption { return internal.RuntimeEnhancer(e) }

// RuntimeScopes sets the scope manager.
func RuntimeScopes(m *ScopeManager) RuntimeOption { return internal.RuntimeScopes(m) }

// NewEnhancer creates an Enhancer.
func NewEnhancer(opts ...EnhancerOption) *Enhancer { return internal.NewEnhancer(opts...) }

// WithEphemeralRecords keeps run-once records out of snapshots.
func WithEphemeralRecords() EnhancerOption { return internal.WithEphemeralRecords() }

// NewScopeManager creates a scope manager for env.
func NewScopeManager(env Env) *ScopeManager { return internal.NewScopeManager(env) }

// StartModel dispatches events into scope in order and serializes it.
func StartModel(ctx context.Context, events []Event, payload any, scope *state.Scope) (*Model, error) {
	return internal.StartModel(ctx, events, payload, scope)
}

// IsEvent reports whether v is a usable lifecycle event.
func IsEvent(v any) bool { return internal.IsEvent(v) }

// WithScope stores scope in ctx.
func WithScope(ctx context.Context, scope *state.Scope) context.Context {
	return internal.WithScope(ctx, scope)
}

// ScopeFromContext returns the scope a page renders against.
func ScopeFromContext(ctx context.Context) (*state.Scope, bool) {
	return internal.ScopeFromContext(ctx)
}

// Normalizers

// NormalizeNavigation builds the PageContext of a client transition.
func NormalizeNavigation(env Env, nav *Navigation) PageContext {
	return internal.NormalizeNavigation(env, nav)
}

// NormalizeInitial builds the PageContext of an initial-props pass.
func NormalizeInitial(env Env, c *InitialContext) PageContext {
	return internal.NormalizeInitial(env, c)
}

// NormalizeServer builds the PageContext of a server-props request.
func NormalizeServer(c *ServerContext) PageContext { return internal.NormalizeServer(c) }

// NormalizeStatic builds the StaticPageContext of a static generation.
func NormalizeStatic(c *StaticContext) StaticPageContext { return internal.NormalizeStatic(c) }

// Results

// PropsResult renders the page with props.
func PropsResult(props Props) Result { return internal.PropsResult(props) }

// DeferredProps renders the page with props computed after the events settled.
func DeferredProps(fn func(ctx context.Context) (Props, error)) Result {
	return internal.DeferredProps(fn)
}

// RedirectResult redirects instead of rendering.
func RedirectResult(r Redirect) Result { return internal.RedirectResult(r) }

// NotFoundResult answers 404 instead of rendering.
func NotFoundResult() Result { return internal.NotFoundResult() }

// App

// New creates an App.
//
//	app := hydrate.New(
//	    hydrate.WithRuntime(rt),
//	    hydrate.WithMiddleware(middlewares.RequestID()),
//	    hydrate.WithPages(home, post),
//	)
//	err := app.Run(":8080")
func New(opts ...Option) *App { return internal.New(opts...) }

// WithRuntime binds the App to rt.
func WithRuntime(rt *Runtime) Option { return internal.WithRuntime(rt) }

// WithLogger sets the App logger.
func WithLogger(l *slog.Logger) Option { return internal.WithLogger(l) }

// WithMiddleware adds global middleware in order.
func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

// WithHandlers registers handlers declaring pages.
func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

// WithPages registers pages directly.
func WithPages(pages ...Page) Option { return internal.WithPages(pages...) }

// WithDocument replaces the document wrapping full renders.
func WithDocument(fn DocumentFunc) Option { return internal.WithDocument(fn) }

// WithStaticCache sets the static page cache.
func WithStaticCache(c cache.Cache[StaticEntry]) Option { return internal.WithStaticCache(c) }

// NewRedisStaticCache stores static pages in Redis.
func NewRedisStaticCache(client redis.UniversalClient, opts ...cache.RedisOption) cache.Cache[StaticEntry] {
	return internal.NewRedisStaticCache(client, opts...)
}

// WithLocales enables locale negotiation.
func WithLocales(defaultLocale string, supported []string, sources ...ExtractorSource) Option {
	return internal.WithLocales(defaultLocale, supported, sources...)
}

// WithHealthChecks mounts the liveness and readiness endpoints.
func WithHealthChecks(checks map[string]CheckFunc) Option { return internal.WithHealthChecks(checks) }

// WithErrorHandler sets the page error handler.
func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

// WithNotFoundHandler sets the 404 handler.
func WithNotFoundHandler(h http.HandlerFunc) Option { return internal.WithNotFoundHandler(h) }

// WithStaticFiles serves files from fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// DefaultDocument is the document used unless WithDocument is given.
func DefaultDocument(d DocumentData) templ.Component { return internal.DefaultDocument(d) }

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption { return internal.Logger(l) }

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }

// PrerenderTimeout bounds static page generation at startup.
func PrerenderTimeout(d time.Duration) RunOption { return internal.PrerenderTimeout(d) }

// SkipPrerender starts serving without generating static pages first.
func SkipPrerender() RunOption { return internal.SkipPrerender() }

// StartupHook runs fn before the server accepts requests.
func StartupHook(fn func(context.Context) error) RunOption { return internal.StartupHook(fn) }

// ShutdownHook runs fn during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }

// Extractors

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

// FromCookie reads a cookie.
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

// RouteExtractor adds the matched page pattern to log records.
func RouteExtractor() ContextExtractor { return internal.RouteExtractor() }

// ScopeExtractor adds the active scope ID to log records.
func ScopeExtractor() ContextExtractor { return internal.ScopeExtractor() }

// Errors

// NewHTTPError creates an error answered with code.
func NewHTTPError(code int, message string) *HTTPError { return internal.NewHTTPError(code, message) }

// ErrNotFound creates a 404 error.
func ErrNotFound(message string) *HTTPError { return internal.ErrNotFound(message) }

// ErrInternal creates a 500 error wrapping err.
func ErrInternal(message string, err error) *HTTPError { return internal.ErrInternal(message, err) }

// AsHTTPError extracts an HTTPError from err.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// Params

// Value parses the first value of name from a query or params set.
func Value[T internal.Scalar](values url.Values, name string) T {
	return internal.Value[T](values, name)
}

// ValueDefault is like Value but falls back to def.
func ValueDefault[T internal.Scalar](values url.Values, name string, def T) T {
	return internal.ValueDefault(values, name, def)
}

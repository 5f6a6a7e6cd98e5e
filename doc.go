// Package hydrate runs state models during server rendering and hands the
// settled state to the page.
//
// Pages declare lifecycle events built with package state. A binder on a
// [Runtime] turns them into a props function: the events are dispatched
// into a scope with the normalized page context, the scope is serialized
// into the props and the page renders from a scope restored from that
// snapshot.
//
//	var (
//	    appStarted  = state.NewEvent[hydrate.PageContext]("app/started")
//	    postOpened  = state.NewEvent[hydrate.PageContext]("post/opened")
//	)
//
//	rt := hydrate.NewRuntime()
//	bind := rt.ServerProps(hydrate.SharedConfig{SharedEvents: []hydrate.Event{appStarted}})
//
//	app := hydrate.New(
//	    hydrate.WithRuntime(rt),
//	    hydrate.WithPages(hydrate.Page{
//	        Pattern: "/blog/[slug]",
//	        Server:  bind(hydrate.ServerPage{PageEvent: postOpened}),
//	        Render:  views.Post,
//	    }),
//	)
//	log.Fatal(app.Run(":8080"))
//
// Three binders mirror the three ways a page gets data:
//
//   - InitialProps: computed per navigation; shared events may run once
//     per session scope
//   - ServerProps: computed per request; may redirect or answer 404
//   - StaticProps: computed at build time or on revalidation and cached
//
// On the client, a [ScopeManager] keeps one session scope and merges each
// new page snapshot into it, so state survives navigations.
package hydrate

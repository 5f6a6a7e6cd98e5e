// Package state is a small reactive-state engine with isolated scopes.
//
// Units (events, stores and effects) are declared once, usually at package
// level, and form a process-wide graph. Values never live in the units
// themselves: every read and write goes through a [Scope], so two scopes
// forked from the same graph never observe each other's writes.
//
// # Units
//
//	pageStarted := state.NewEvent[PageContext]("blog/pageStarted")
//
//	loadPostFx := state.NewEffect("blog/loadPostFx", func(ctx context.Context, slug string) (*Post, error) {
//	    return api.PostBySlug(ctx, slug)
//	})
//
//	$post := state.Restore(loadPostFx.DoneData, (*Post)(nil), state.WithSID("blog/post"))
//
//	state.Forward(
//	    state.Map(pageStarted, func(pc PageContext) string { return pc.Params.Get("slug") }),
//	    loadPostFx,
//	)
//
// # Settlement
//
// [AllSettled] dispatches a payload into a scope and blocks until the whole
// derived computation has quiesced, including effect handlers and everything
// their results trigger. Pure steps (reducers, filters, mappers) run on the
// calling goroutine; effect handlers run on their own goroutines and report
// back to the dispatch loop.
//
//	scope := state.Fork()
//	if err := state.AllSettled(ctx, pageStarted, scope, pc); err != nil {
//	    return err
//	}
//	post := $post.Get(scope)
//
// Effect failures and panics inside pure steps do not stop the graph; they are
// collected and returned from AllSettled joined with [errors.Join].
//
// # Snapshots
//
// [Serialize] extracts the values of every touched store that carries a sid,
// plus values the scope was forked with. [Fork] with [WithValues] builds a new
// scope from such a snapshot. Values are decoded lazily into the store type, so
// snapshots that went through JSON (map[string]any, float64 numbers) work the
// same as in-process ones. Composite values are cloned on the way in, so a
// forked scope never aliases the scope it was built from.
package state

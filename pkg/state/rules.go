package state

import "fmt"

// Forward launches to with every value from.
func Forward[T any](from Unit[T], to Unit[T]) {
	from.unit().link(func(k *kernel, v any) {
		k.launch(to.unit(), v)
	})
}

// Map declares an event that fires with fn applied to every value of from.
func Map[T, R any](from Unit[T], fn func(T) R) *Event[R] {
	out := NewEvent[R]("")
	from.unit().link(func(k *kernel, v any) {
		k.launch(out.n, fn(cast[T](v)))
	})
	return out
}

// Filter declares an event that fires with the values of from that pass pred.
func Filter[T any](from Unit[T], pred func(T) bool) *Event[T] {
	out := NewEvent[T]("")
	from.unit().link(func(k *kernel, v any) {
		if pred(cast[T](v)) {
			k.launch(out.n, v)
		}
	})
	return out
}

// Sample reads source after clock fires and the writes of that tick land and, if filter passes, launches
// target with fn(source, clock). A nil filter always passes. A nil source
// reads as the zero S.
func Sample[S, C, R any](clock Unit[C], source *Store[S], filter func(S, C) bool, fn func(S, C) R, target Unit[R]) {
	clock.unit().link(func(k *kernel, v any) {
		k.barrier(func() {
			var s S
			if source != nil {
				s = source.Get(k.scope)
			}
			c := cast[C](v)
			if filter != nil && !filter(s, c) {
				return
			}
			k.launch(target.unit(), fn(s, c))
		})
	})
}

// Gate forwards every payload of clock unchanged to target while allow
// returns true for the current gate value. Both events must carry the same
// payload type; it is the erased counterpart of Sample for AnyEvent lists.
func Gate(clock AnyEvent, gate *Store[bool], allow func(open bool) bool, target AnyEvent) {
	from, to := clock.unit(), target.unit()
	if from.typ != to.typ {
		panic(fmt.Sprintf("state: gate %s -> %s: payload types differ (%s, %s)", from, to, from.typ, to.typ))
	}
	from.link(func(k *kernel, v any) {
		if allow(gate.Get(k.scope)) {
			k.launch(to, v)
		}
	})
}

// Flag sets store to true every time on fires.
func Flag(store *Store[bool], on AnyEvent) {
	on.unit().link(func(k *kernel, _ any) {
		k.launch(store.n, true)
	})
}

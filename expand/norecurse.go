// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"github.com/ezrec/apmos/mir"
)

// MarkNoRecurse marks each function that provably never re-enters itself.
// A call to a function outside the set leaves the property unprovable, so
// the mark stays off. The mark gates static call-frame reservation.
func MarkNoRecurse(fns []*mir.Function) {
	byName := map[string]*mir.Function{}
	for _, fn := range fns {
		byName[fn.Name] = fn
	}

	for _, fn := range fns {
		fn.NoRecurse = !mayReenter(fn, byName)
	}
}

// mayReenter reports whether fn can reach itself through the call graph,
// treating any unknown callee as able to call anything.
func mayReenter(fn *mir.Function, byName map[string]*mir.Function) bool {
	seen := map[string]bool{}
	work := fn.Callees()

	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]

		if name == fn.Name {
			return true
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		callee, known := byName[name]
		if !known {
			return true
		}
		work = append(work, callee.Callees()...)
	}

	return false
}

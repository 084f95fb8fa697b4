package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkNoRecurse(t *testing.T) {
	assert := assert.New(t)

	fns := parseFns(t,
		"func @leaf",
		"entry:",
		"\trts",

		"func @self",
		"entry:",
		"\tjsr @self",
		"\trts",

		"func @caller",
		"entry:",
		"\tjsr @leaf",
		"\trts",

		"func @outside",
		"entry:",
		"\tjsr @somewhere",
		"\trts",

		"func @ping",
		"entry:",
		"\tjsr @pong",
		"\trts",

		"func @pong",
		"entry:",
		"\tjsr @ping",
		"\trts",
	)

	MarkNoRecurse(fns)

	marks := map[string]bool{}
	for _, fn := range fns {
		marks[fn.Name] = fn.NoRecurse
	}

	assert.True(marks["leaf"])
	assert.True(marks["caller"])

	// Direct recursion, mutual recursion, and calls outside the visible
	// set all block the proof.
	assert.False(marks["self"])
	assert.False(marks["ping"])
	assert.False(marks["pong"])
	assert.False(marks["outside"])
}

func TestMarkNoRecurse_Deep(t *testing.T) {
	assert := assert.New(t)

	fns := parseFns(t,
		"func @a",
		"entry:",
		"\tjsr @b",
		"\trts",

		"func @b",
		"entry:",
		"\tjsr @c",
		"\trts",

		"func @c",
		"entry:",
		"\tjsr @a",
		"\trts",

		"func @d",
		"entry:",
		"\tjsr @b",
		"\trts",
	)

	MarkNoRecurse(fns)

	for _, fn := range fns {
		switch fn.Name {
		case "a", "b", "c":
			assert.False(fn.NoRecurse, fn.Name)
		case "d":
			// Calling into a cycle is fine as long as the cycle cannot
			// come back.
			assert.True(fn.NoRecurse, fn.Name)
		}
	}
}

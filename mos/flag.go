package mos

// Flag is a bitmask over the processor status flags.
type Flag uint8

const (
	FLAG_C = Flag(1 << 0) // carry / borrow
	FLAG_Z = Flag(1 << 1) // zero
	FLAG_V = Flag(1 << 2) // overflow
	FLAG_N = Flag(1 << 3) // negative

	FLAG_NONE = Flag(0)
	FLAG_ALL  = FLAG_C | FLAG_Z | FLAG_V | FLAG_N
)

// Has returns true if all flags in other are set in fl.
func (fl Flag) Has(other Flag) bool {
	return fl&other == other
}

// String returns the flag set as a compact "czvn" subset, or "-" when empty.
func (fl Flag) String() (out string) {
	names := []struct {
		bit  Flag
		name string
	}{
		{FLAG_C, "c"},
		{FLAG_Z, "z"},
		{FLAG_V, "v"},
		{FLAG_N, "n"},
	}

	for _, fn := range names {
		if fl.Has(fn.bit) {
			out += fn.name
		}
	}

	if out == "" {
		out = "-"
	}

	return
}

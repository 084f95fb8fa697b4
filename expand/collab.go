package expand

import (
	"github.com/ezrec/apmos/mos"
)

// Span is an instruction live range within one block, used as advisory
// metadata on register reservations.
type Span struct {
	Block string
	First int
	Last  int
}

// Scavenger reserves a free register of the requested class for a live
// range, or fails. Failure is recoverable: it surfaces as an allocation
// failure so the upstream allocator can spill and retry.
type Scavenger interface {
	Reserve(class mos.RegClass, span Span) (mos.Reg, error)
}

// Layout exposes the finalized frame layout: the base register, byte
// offset, and size of each frame slot.
type Layout interface {
	Resolve(slot int) (base mos.Reg, offset int, size int, err error)
}

// Reservation records one scavenged register and its advisory live range.
type Reservation struct {
	Reg  mos.Reg
	Span Span
}

// ListScavenger hands out registers from a fixed free list and records each
// reservation for the downstream verifier.
type ListScavenger struct {
	Free     []mos.Reg
	Reserved []Reservation
}

// Reserve takes the first free register of the class.
func (sc *ListScavenger) Reserve(class mos.RegClass, span Span) (reg mos.Reg, err error) {
	for n, r := range sc.Free {
		if r.Class() != class {
			continue
		}
		sc.Free = append(sc.Free[:n], sc.Free[n+1:]...)
		sc.Reserved = append(sc.Reserved, Reservation{Reg: r, Span: span})
		return r, nil
	}

	return mos.REG_NONE, ErrNoFreeReg
}

// StaticLayout places frame slots back to back from a base pointer.
type StaticLayout struct {
	Base    mos.Reg
	offsets []int
	sizes   []int
}

// NewStaticLayout lays out the given slot sizes in order from base.
func NewStaticLayout(base mos.Reg, slots []int) (ly *StaticLayout) {
	ly = &StaticLayout{Base: base}

	off := 0
	for _, size := range slots {
		ly.offsets = append(ly.offsets, off)
		ly.sizes = append(ly.sizes, size)
		off += size
	}

	return
}

// Resolve returns the finalized (base, offset, size) of a frame slot.
func (ly *StaticLayout) Resolve(slot int) (base mos.Reg, offset int, size int, err error) {
	if slot < 0 || slot >= len(ly.offsets) {
		err = ErrSlotRange
		return
	}
	return ly.Base, ly.offsets[slot], ly.sizes[slot], nil
}

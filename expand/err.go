package expand

import (
	"errors"

	"github.com/ezrec/apmos/translate"
)

var f = translate.From

var (
	// Contract violations; all fatal.
	ErrPseudoUnknown = errors.New(f("pseudo unknown"))
	ErrNoForm        = errors.New(f("no legal concrete form"))
	ErrWidth         = errors.New(f("operand width mismatch"))
	ErrCapability    = errors.New(f("capability unsupported"))
	ErrFrameMarker   = errors.New(f("frame marker unmatched"))
	ErrFusion        = errors.New(f("compare and terminator not adjacent"))
	ErrScratchBusy   = errors.New(f("scratch pointers exhausted"))
	ErrSlotRange     = errors.New(f("frame slot out of range"))

	// Collaborator errors
	ErrNoFreeReg = errors.New(f("no free register"))

	// Verifier errors
	ErrPseudoRemains = errors.New(f("pseudo instruction remains"))
	ErrTermShape     = errors.New(f("block terminator malformed"))
	ErrEdge          = errors.New(f("control flow edge inconsistent"))
	ErrContractDef   = errors.New(f("expansion exceeds declared contract"))
)

// ErrContract is a fatal contract violation, naming the offending function,
// block, and instruction.
type ErrContract struct {
	Func  string
	Block string
	Inst  string
	Err   error
}

func (err ErrContract) Error() string {
	return f("func @%v block %v '%v' %v", err.Func, err.Block, err.Inst, err.Err)
}

func (err ErrContract) Unwrap() error {
	return err.Err
}

// ErrScavenge reports a register scavenging failure during 16-bit immediate
// materialization. It is the one recoverable condition: the caller may spill
// and retry rather than abort.
type ErrScavenge struct {
	Func string
	Inst string
	Err  error
}

func (err *ErrScavenge) Error() string {
	return f("func @%v '%v' allocation failed: %v", err.Func, err.Inst, err.Err)
}

func (err *ErrScavenge) Unwrap() error {
	return err.Err
}

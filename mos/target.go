package mos

import (
	"errors"
	"io"

	"github.com/BurntSushi/toml"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tier is a hardware capability tier. Higher tiers are strict supersets.
type Tier int

//go:generate go tool stringer -linecomment -type=Tier
const (
	TIER_BASE  = Tier(0) // base
	TIER_CMOS  = Tier(1) // cmos
	TIER_UNDOC = Tier(2) // undoc
)

// UnmarshalText decodes a tier from its name, for TOML target descriptions.
func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "base":
		*t = TIER_BASE
	case "cmos":
		*t = TIER_CMOS
	case "undoc":
		*t = TIER_UNDOC
	default:
		return ErrTierUnknown(text)
	}
	return nil
}

// Target describes one compilation target variant: its capability tier,
// named feature switches, and addressing limits.
type Target struct {
	Name             string          `toml:"name"`
	Tier             Tier            `toml:"tier"`
	IndexRange       int             `toml:"index_range"`        // maximum (zp),y displacement
	StaticStackLimit int             `toml:"static_stack_limit"` // maximum statically reserved call-frame bytes
	Features         map[string]bool `toml:"features"`

	predCache map[string]bool
}

// NewTarget creates a target at the given tier with default limits.
func NewTarget(tier Tier) (tg *Target) {
	tg = &Target{
		Name:             tier.String(),
		Tier:             tier,
		IndexRange:       255,
		StaticStackLimit: 256,
	}

	if tier >= TIER_UNDOC {
		tg.Features = map[string]bool{"dcp": true}
	}

	return
}

// LoadTarget reads a TOML target description from a file.
func LoadTarget(path string) (tg *Target, err error) {
	tg = NewTarget(TIER_BASE)
	_, err = toml.DecodeFile(path, tg)
	if err != nil {
		return nil, err
	}
	return
}

// DecodeTarget reads a TOML target description from a stream.
func DecodeTarget(r io.Reader) (tg *Target, err error) {
	tg = NewTarget(TIER_BASE)
	_, err = toml.NewDecoder(r).Decode(tg)
	if err != nil {
		return nil, err
	}
	return
}

// Eval evaluates a capability predicate against the target. Predicates are
// Starlark expressions over the bindings tier, base, cmos, undoc, and one
// boolean per named feature; unnamed features read as False. The empty
// predicate is always true.
func (tg *Target) Eval(pred string) (ok bool, err error) {
	if pred == "" {
		return true, nil
	}

	if cached, hit := tg.predCache[pred]; hit {
		return cached, nil
	}

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	env := starlark.StringDict{
		"tier":  starlark.MakeInt(int(tg.Tier)),
		"base":  starlark.MakeInt(int(TIER_BASE)),
		"cmos":  starlark.MakeInt(int(TIER_CMOS)),
		"undoc": starlark.MakeInt(int(TIER_UNDOC)),
	}
	for name, value := range tg.Features {
		env[name] = starlark.Bool(value)
	}

	val, err := starlark.EvalOptions(&opts, &thread, "pred", pred, env)
	if err != nil {
		// Unknown feature names read as disabled.
		var unresolved resolve.ErrorList
		if errors.As(err, &unresolved) {
			return false, nil
		}
		return false, ErrPredicate{Pred: pred, Err: err}
	}

	ok = bool(val.Truth())

	if tg.predCache == nil {
		tg.predCache = map[string]bool{}
	}
	tg.predCache[pred] = ok

	return
}

// Has returns true if the concrete opcode is available on this target.
func (tg *Target) Has(op Op) (ok bool, err error) {
	attr, valid := op.Attr()
	if !valid {
		return false, ErrOpUnknown(op)
	}
	return tg.Eval(attr.Pred)
}

// Select picks the admissible candidate form with the highest declared
// priority. A candidate is admissible when its capability predicate holds
// and it clobbers no flag in live. Equal priority resolves first-declared.
func (tg *Target) Select(cands []Candidate, live Flag) (best *Candidate, err error) {
	for n := range cands {
		cand := &cands[n]

		if cand.Def&live != FLAG_NONE {
			continue
		}

		ok, err := tg.Eval(cand.Pred)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if best == nil || cand.Prio > best.Prio {
			best = cand
		}
	}

	if best == nil {
		err = ErrNoCandidate
	}

	return
}

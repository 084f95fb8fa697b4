// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expand

import (
	"log"

	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

// Call-frame aggregation. Paired reservation markers bracket each call
// site; pairs nest like balanced parentheses across sites. One whole
// function scan computes the maximum region any path needs. When that
// region can be permanently reserved in the frame, every marker is deleted;
// otherwise each pair rewrites into explicit soft-stack pointer adjustments
// around its call.

// frameSite is one matched marker pair.
type frameSite struct {
	setupBlock   int
	setupInst    int
	destroyBlock int
	destroyInst  int
	bytes        int // requested at this site
	need         int // bytes plus the prior maximum seen on this path
}

// aggregateFrames consumes every frame marker in the function. Markers must
// pair up; an unmatched release aborts.
func (p *pass) aggregateFrames() error {
	fn := p.fn

	var open []frameSite
	var sites []frameSite

	for bi, b := range fn.Blocks {
		for ii := range b.Insts {
			in := &b.Insts[ii]

			switch in.Op {
			case mos.P_FRAMESETUP:
				bytes := int(in.Args[0].Imm)
				prior := int(in.Args[1].Imm)
				open = append(open, frameSite{
					setupBlock: bi,
					setupInst:  ii,
					bytes:      bytes,
					need:       bytes + prior,
				})

			case mos.P_FRAMEDESTROY:
				if len(open) == 0 {
					return p.contract(b, in, ErrFrameMarker)
				}
				site := open[len(open)-1]
				open = open[:len(open)-1]
				site.destroyBlock = bi
				site.destroyInst = ii
				sites = append(sites, site)
			}
		}
	}

	if len(open) != 0 {
		b := fn.Blocks[open[len(open)-1].setupBlock]
		return p.contract(b, &b.Insts[open[len(open)-1].setupInst], ErrFrameMarker)
	}

	if len(sites) == 0 {
		return nil
	}

	max := 0
	for _, site := range sites {
		if site.need > max {
			max = site.need
		}
	}

	static := fn.NoRecurse && max <= p.Target.StaticStackLimit
	if p.Verbose {
		log.Printf("%v: call frames aggregate to %v bytes (static %v)", fn.Name, max, static)
	}

	if static {
		// Call sites rely on the permanently reserved region.
		fn.StaticStack = true
		fn.CallFrameSize = max
		p.rewriteMarkers(sites, func(site frameSite, destroy bool) []mir.Inst {
			return nil
		})
		return nil
	}

	p.rewriteMarkers(sites, func(site frameSite, destroy bool) []mir.Inst {
		return spAdjust(site.bytes, !destroy)
	})

	return nil
}

// rewriteMarkers splices each marker's replacement in place, rewriting
// within each block from the bottom up so earlier indices stay valid.
func (p *pass) rewriteMarkers(sites []frameSite, seq func(site frameSite, destroy bool) []mir.Inst) {
	type edit struct {
		block, inst int
		insts       []mir.Inst
	}

	var edits []edit
	for _, site := range sites {
		edits = append(edits,
			edit{site.setupBlock, site.setupInst, seq(site, false)},
			edit{site.destroyBlock, site.destroyInst, seq(site, true)},
		)
	}

	for n := range edits {
		for m := n + 1; m < len(edits); m++ {
			a, b := &edits[n], &edits[m]
			if b.block > a.block || (b.block == a.block && b.inst > a.inst) {
				*a, *b = *b, *a
			}
		}
	}

	for _, e := range edits {
		b := p.fn.Blocks[e.block]
		if len(e.insts) == 0 {
			b.Remove(e.inst)
		} else {
			b.Splice(e.inst, e.insts)
		}
	}
}

// spAdjust grows (down) or shrinks the soft stack by delta bytes. The stack
// pointer is a zero-page pair; both carry steps stay byte-adjacent.
func spAdjust(delta int, grow bool) []mir.Inst {
	sp := mos.REG_SP

	if grow {
		return []mir.Inst{
			impl(mos.OP_SEC),
			zp(mos.OP_LDA, sp.Lo()),
			imm(mos.OP_SBC, uint8(delta)),
			zp(mos.OP_STA, sp.Lo()),
			zp(mos.OP_LDA, sp.Hi()),
			imm(mos.OP_SBC, uint8(delta>>8)),
			zp(mos.OP_STA, sp.Hi()),
		}
	}

	return []mir.Inst{
		impl(mos.OP_CLC),
		zp(mos.OP_LDA, sp.Lo()),
		imm(mos.OP_ADC, uint8(delta)),
		zp(mos.OP_STA, sp.Lo()),
		zp(mos.OP_LDA, sp.Hi()),
		imm(mos.OP_ADC, uint8(delta>>8)),
		zp(mos.OP_STA, sp.Hi()),
	}
}

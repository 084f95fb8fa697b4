// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mir

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/apmos/mos"
)

// Parser reads the textual ".mir" function form.
type Parser struct {
	Verbose bool
}

var reFunc = regexp.MustCompile(`^func\s+@([A-Za-z_][\w.]*)(\s+norecurse)?$`)
var reSlot = regexp.MustCompile(`^slot\s+f(\d+)\s+(\d+)$`)
var reLabel = regexp.MustCompile(`^([A-Za-z_][\w.]*):$`)
var reFrame = regexp.MustCompile(`^\[f(\d+)(?:\+(\d+))?\]$`)

// Parse reads zero or more functions from r.
func (ps *Parser) Parse(r io.Reader) (fns []*Function, err error) {
	var fn *Function
	var b *Block

	scanner := bufio.NewScanner(r)
	lineno := 0

	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if n := strings.IndexByte(line, ';'); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		err = func() error {
			switch {
			case strings.HasPrefix(line, "func"):
				m := reFunc.FindStringSubmatch(line)
				if m == nil {
					return ErrFuncSyntax
				}
				fn = &Function{Name: m[1], NoRecurse: m[2] != ""}
				b = nil
				fns = append(fns, fn)

			case strings.HasPrefix(line, "slot"):
				if fn == nil {
					return ErrFuncMissing
				}
				m := reSlot.FindStringSubmatch(line)
				if m == nil {
					return ErrSlotSyntax
				}
				slot, _ := strconv.Atoi(m[1])
				size, _ := strconv.Atoi(m[2])
				for len(fn.Slots) <= slot {
					fn.Slots = append(fn.Slots, 0)
				}
				fn.Slots[slot] = size

			case reLabel.MatchString(line):
				if fn == nil {
					return ErrFuncMissing
				}
				label := reLabel.FindStringSubmatch(line)[1]
				if fn.Block(label) != nil {
					return ErrLabelDuplicate
				}
				b = &Block{Label: label}
				fn.Blocks = append(fn.Blocks, b)

			default:
				if b == nil {
					return ErrFuncMissing
				}
				in, err := ParseInst(line)
				if err != nil {
					return err
				}
				if ps.Verbose {
					log.Printf("%v: %v", b.Label, in.String())
				}
				b.Append(in)
			}
			return nil
		}()

		if err != nil {
			return nil, ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	for _, fn := range fns {
		fn.RecalcPreds()
	}

	return
}

// ParseInst parses one instruction line.
func ParseInst(line string) (in Inst, err error) {
	name, rest, _ := strings.Cut(line, " ")

	op, ok := mos.OpByName(name)
	if !ok {
		err = ErrOpcodeInvalid(name)
		return
	}

	var parts []string
	rest = strings.TrimSpace(rest)
	if rest != "" {
		for _, part := range strings.Split(rest, ",") {
			parts = append(parts, strings.TrimSpace(part))
		}
	}

	in.Op = op

	if op.IsPseudo() {
		for _, part := range parts {
			o, perr := parseOperand(part)
			if perr != nil {
				err = perr
				return
			}
			in.Args = append(in.Args, o)
		}
		err = applyShapes(&in)
		return
	}

	// Concrete instruction: a single address-ish operand, possibly carrying
	// a trailing ",x" or ",y" index, plus branch target labels.
	var index string
	if n := len(parts); n > 1 && (parts[n-1] == "x" || parts[n-1] == "y") {
		index = parts[n-1]
		parts = parts[:n-1]
	}

	for _, part := range parts {
		indirect := false
		if strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")") {
			indirect = true
			part = part[1 : len(part)-1]
		}

		o, perr := parseOperand(part)
		if perr != nil {
			err = perr
			return
		}
		in.Args = append(in.Args, o)

		if indirect {
			in.Mode = mos.MODE_INDY
		}
	}

	if in.Mode != mos.MODE_INDY {
		in.Mode = modeFor(op, in.Args, index)
	}

	if !op.Legal(in.Mode) {
		err = ErrModeIllegal{Op: op.String(), Mode: in.Mode.String()}
		return
	}

	return
}

// modeFor infers the addressing mode from the parsed operands.
func modeFor(op mos.Op, args []Operand, index string) mos.Mode {
	if len(args) == 0 {
		return mos.MODE_IMPL
	}

	switch args[0].Kind {
	case OPERAND_IMM:
		return mos.MODE_IMM
	case OPERAND_ADDR:
		switch index {
		case "x":
			return mos.MODE_ABSX
		case "y":
			return mos.MODE_ABSY
		}
		return mos.MODE_ABS
	case OPERAND_LABEL:
		if op.IsBranch() || op == mos.OP_BRA {
			return mos.MODE_REL
		}
		return mos.MODE_ABS
	case OPERAND_REG:
		if args[0].Reg == mos.REG_A {
			return mos.MODE_IMPL // lsr a
		}
		switch index {
		case "x":
			return mos.MODE_ZPX
		case "y":
			return mos.MODE_ZPY
		}
		return mos.MODE_ZP
	}

	return mos.MODE_NONE
}

// parseOperand parses one operand token.
func parseOperand(part string) (o Operand, err error) {
	switch {
	case part == "":
		err = ErrOperandInvalid(part)

	case part[0] == '#':
		value, width, verr := parseValue(part[1:])
		if verr != nil {
			err = verr
			return
		}
		o = MakeImm(width, value)

	case part[0] == '$':
		value, _, verr := parseValue(part)
		if verr != nil {
			err = verr
			return
		}
		o = MakeAddr(uint16(value))

	case part[0] == '@':
		o = MakeLabel(part[1:])

	case part[0] == '[':
		m := reFrame.FindStringSubmatch(part)
		if m == nil {
			err = ErrOperandInvalid(part)
			return
		}
		slot, _ := strconv.Atoi(m[1])
		off := 0
		if m[2] != "" {
			off, _ = strconv.Atoi(m[2])
		}
		o = MakeFrame(slot, off)

	default:
		reg, ok := mos.RegByName(part)
		if !ok {
			err = ErrOperandInvalid(part)
			return
		}
		o = MakeReg(reg)
	}

	return
}

// parseValue parses "$hh"-style hex or decimal numbers, inferring a 16-bit
// width from four or more hex digits.
func parseValue(text string) (value int64, width mos.Width, err error) {
	width = mos.WIDTH_8

	if strings.HasPrefix(text, "$") {
		digits := text[1:]
		value, err = strconv.ParseInt(digits, 16, 64)
		if err != nil {
			return 0, 0, ErrOperandInvalid(text)
		}
		if len(digits) >= 4 {
			width = mos.WIDTH_16
		}
		return
	}

	value, err = strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, 0, ErrOperandInvalid(text)
	}
	if value > 0xff || value < -128 {
		width = mos.WIDTH_16
	}

	return
}

// applyShapes stamps operand roles and widths from the pseudo catalog.
func applyShapes(in *Inst) error {
	attr, ok := in.Op.Pseudo()
	if !ok {
		return ErrOpcodeInvalid(in.Op.String())
	}

	n := 0
	for _, shape := range attr.Shapes {
		for {
			if n >= len(in.Args) {
				if shape.Optional || shape.Variadic {
					break
				}
				return ErrOperandInvalid(in.Op.String())
			}

			o := &in.Args[n]
			o.Role = shape.Role
			if shape.Width != mos.WIDTH_NONE && o.Kind == OPERAND_IMM {
				o.Width = shape.Width
			}
			n++

			if !shape.Variadic {
				break
			}
		}
	}

	return nil
}

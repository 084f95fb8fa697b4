// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"

	"github.com/ezrec/apmos/expand"
	"github.com/ezrec/apmos/mir"
	"github.com/ezrec/apmos/mos"
)

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	atexit.Exit(1)
}

func main() {
	var target string
	var output string
	var base int
	var verbose bool

	flag.StringVar(&target, "t", env.Str("APMOS_TARGET", ""), "Target description (.toml), or a tier name")
	flag.StringVar(&output, "o", "-", "Expanded output")
	flag.IntVar(&base, "b", env.Int("APMOS_FRAME_BASE", 1), "Pointer pair anchoring the frame slots")
	flag.BoolVar(&verbose, "v", env.Bool("APMOS_VERBOSE"), "Verbose mode")

	flag.Parse()
	defer atexit.Exit(0)

	if flag.NArg() == 0 {
		fatalf("%v: no input files", os.Args[0])
	}

	tg, err := loadTarget(target)
	if err != nil {
		fatalf("%v: %v", target, err)
	}

	var fns []*mir.Function
	for _, path := range flag.Args() {
		inf, err := os.Open(path)
		if err != nil {
			fatalf("%v: %v", path, err)
		}

		parser := &mir.Parser{Verbose: verbose}
		parsed, err := parser.Parse(inf)
		inf.Close()
		if err != nil {
			fatalf("%v: %v", path, err)
		}

		fns = append(fns, parsed...)
	}

	expand.MarkNoRecurse(fns)

	for _, fn := range fns {
		slots := make([]int, len(fn.Slots))
		copy(slots, fn.Slots)

		engine := expand.New(tg,
			&expand.ListScavenger{Free: []mos.Reg{mos.REG_X, mos.REG_Y}},
			expand.NewStaticLayout(mos.RS(base), slots),
		)
		engine.Verbose = verbose

		if err := engine.Expand(fn); err != nil {
			fatalf("%v: %v", fn.Name, err)
		}
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	for _, fn := range fns {
		if _, err := ouf.WriteString(fn.String() + "\n"); err != nil {
			fatalf("%v: %v", output, err)
		}
	}
}

// loadTarget accepts a TOML target description path, a bare tier name, or
// nothing for the base tier.
func loadTarget(name string) (*mos.Target, error) {
	switch name {
	case "":
		return mos.NewTarget(mos.TIER_BASE), nil
	case "base":
		return mos.NewTarget(mos.TIER_BASE), nil
	case "cmos":
		return mos.NewTarget(mos.TIER_CMOS), nil
	case "undoc":
		return mos.NewTarget(mos.TIER_UNDOC), nil
	}
	return mos.LoadTarget(name)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/retroenv/retrogolib/buildinfo"
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

func main() {
	var compile string
	var rom string
	var output string
	var listing bool
	var frames int
	var cycles int
	var seed int64
	var legacy bool
	var verbose bool
	var show_version bool

	flag.StringVar(&compile, "c", "", ".c8s file to assemble")
	flag.StringVar(&rom, "r", "", ".ch8 ROM file to run")
	flag.StringVar(&output, "o", "", "Save the ROM image to file, do not execute")
	flag.BoolVar(&listing, "l", false, "Print the assembly listing")
	flag.IntVar(&frames, "frames", 0, "Run headless for N frames, then print the display")
	flag.IntVar(&cycles, "cycles", emulator.CYCLES_PER_FRAME, "Instructions per frame")
	flag.Int64Var(&seed, "seed", 0, "Random seed, 0 for a time seeded source")
	flag.BoolVar(&legacy, "legacy", false, "COSMAC VIP shift and store/read quirks")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&show_version, "version", false, "Print the version")

	flag.Parse()

	if show_version {
		fmt.Printf("chip8 %s\n", buildinfo.Version(version, commit, date))
		return
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 && len(rom) == 0 {
		log.Fatalf("%v: One of -c or -r is required", os.Args[0])
	}

	if verbose {
		log.WithField("version", buildinfo.Version(version, commit, date)).Info("chip8")
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.CyclesPerFrame = cycles
	if seed != 0 {
		emu.Seed(seed)
	}
	if legacy {
		emu.Cpu.Quirks = cpu.Quirks{
			ShiftUsesVy:       true,
			MemoryIncrementsI: true,
		}
	}

	// Assemble a new program.
	if len(compile) != 0 {
		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		prog, err := asm.Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		emu.Program = prog

		if listing {
			err = prog.Listing(os.Stdout)
			if err != nil {
				log.Fatalf("listing: %v", err)
			}
		}

		if len(output) != 0 {
			err = saveRom(output, prog.Binary())
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}
	}

	// Load a ROM image.
	if len(rom) != 0 {
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		err = emu.Rom.Unmarshal(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("reset: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if frames > 0 {
		err = runHeadless(ctx, emu, frames)
		if err == nil {
			fmt.Print(emu.Screen.String())
		}
	} else {
		err = runTerminal(ctx, emu)
	}

	var er *emulator.ErrRuntime
	if errors.As(err, &er) {
		for address, code := range emu.Backtrace() {
			log.WithField("address", fmt.Sprintf("%03X", address)).Error(code.String())
		}
		log.Error(emu.Cpu.String())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}

// saveRom writes a ROM image.
func saveRom(path string, data []byte) (err error) {
	outf, err := os.Create(path)
	if err != nil {
		return
	}

	rom := &io.Rom{Data: data}
	err = rom.Marshal(outf)
	if err != nil {
		outf.Close()
		return
	}

	err = outf.Close()
	return
}

// runHeadless runs frames without a terminal, stopping early when the
// program halts.
func runHeadless(ctx context.Context, emu *emulator.Emulator, frames int) (err error) {
	for range frames {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Frame()
		if err != nil || done {
			return
		}
	}

	return
}

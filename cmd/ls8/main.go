// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/io"
)

const usageStatus = 2

func main() {
	var compile string
	var save bool
	var output string
	var listing bool
	var configPath string
	var maxSteps int
	var dump string
	var resume string
	var verbose bool

	log.SetFlags(0)

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Save compiled program as .ls8, do not execute")
	flag.StringVar(&output, "o", "-", "Output for -s")
	flag.BoolVar(&listing, "l", false, "Print a disassembly listing, do not execute")
	flag.StringVar(&configPath, "config", "", "ls8.toml machine configuration")
	flag.IntVar(&maxSteps, "m", -1, "Maximum instructions to execute (0 is unlimited)")
	flag.StringVar(&dump, "dump", "", "Write the final machine state to a snapshot file")
	flag.StringVar(&resume, "resume", "", "Resume from a snapshot file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Printf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
		flag.Usage()
		os.Exit(usageStatus)
	}

	if flag.NArg() == 1 && len(compile) != 0 {
		log.Printf("%v: -c and %v are exclusive", os.Args[0], flag.Arg(0))
		flag.Usage()
		os.Exit(usageStatus)
	}

	if flag.NArg() == 0 && len(compile) == 0 && len(resume) == 0 {
		flag.Usage()
		os.Exit(usageStatus)
	}

	config := emulator.DefaultConfig()
	if len(configPath) != 0 {
		var err error
		config, err = emulator.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if maxSteps >= 0 {
		config.MaxSteps = maxSteps
	}
	if verbose {
		config.Verbose = true
	}

	err := config.Validate()
	if err != nil {
		log.Fatalf("%v", err)
	}

	emu := emulator.NewEmulator(config)

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: config.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if flag.NArg() == 1 {
		path := flag.Arg(0)
		inf, err := os.Open(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		defer inf.Close()

		emu.Rom, err = io.ParseRom(inf)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	if save {
		if emu.Program == nil {
			log.Fatalf("%v: -s requires -c", os.Args[0])
		}
		err = saveRom(emu.Program.Rom(), output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if len(resume) != 0 {
		data, err := os.ReadFile(resume)
		if err != nil {
			log.Fatalf("%v: %v", resume, err)
		}
		snapshot, err := emulator.UnmarshalSnapshot(data)
		if err != nil {
			log.Fatalf("%v: %v", resume, err)
		}
		err = emu.Restore(snapshot)
		if err != nil {
			log.Fatalf("%v: %v", resume, err)
		}
	}

	if listing {
		for address, ins := range cpu.Disassemble(emu.Cpu.Memory) {
			fmt.Printf("%02X: %-12v ; % 02X\n", address, ins, ins.Bytes())
		}
		return
	}

	emu.Console.Output = os.Stdout

	err = emu.Run()
	reason := emulator.Reason(err)
	if err != nil {
		log.Printf("%v: %v", reason, err)
		log.Print(emu.Cpu.Trace())
	}

	if len(dump) != 0 {
		data, err := emulator.MarshalSnapshot(emu.Snapshot())
		if err == nil {
			err = os.WriteFile(dump, data, 0o644)
		}
		if err != nil {
			log.Printf("%v: %v", dump, err)
		}
	}

	os.Exit(reason.Status())
}

// saveRom writes a Rom image to a path, or stdout for "-".
func saveRom(rom *io.Rom, path string) (err error) {
	if path == "-" {
		_, err = rom.WriteTo(os.Stdout)
		return
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	_, err = rom.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()
	return
}

// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Command mspm0ctl is a small bench tool for exercising FlashCore and
// DmemDap directly from the command line, without a host debug-adapter
// framework attached. It is a convenience harness for manual testing
// against real hardware (or, with -fake, an in-process stand-in), not
// a replacement for that framework's own scripting layer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jetsetilly/mspm0adapter/dap/dmem"
	"github.com/jetsetilly/mspm0adapter/flash/mspm0"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "probe":
		err = runProbe(os.Args[2:])
	case "erase":
		err = runErase(os.Args[2:])
	case "program":
		err = runProgram(os.Args[2:])
	case "protect":
		err = runProtect(os.Args[2:])
	case "protect-check":
		err = runProtectCheck(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "dap":
		err = runDap(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "mspm0ctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: mspm0ctl <command> [args]

commands:
  probe          -base <main|nonmain|data> [-device path] [-fake]
  erase          -base <...> -first <n> -count <n> [-device path] [-fake] [-halted]
  program        -base <...> -offset <n> -file <path> [-device path] [-fake] [-halted]
  protect        -base <...> -first <n> -last <n> -set <0|1> [-device path] [-fake]
  protect-check  -base <...> [-device path] [-fake]
  info           -base <...> [-device path] [-fake]
  dap info       [-device path]
  dap -interactive [-device path]`)
}

func parseBase(s string) (mspm0.BaseAddress, error) {
	switch s {
	case "main":
		return mspm0.MAIN, nil
	case "nonmain":
		return mspm0.NONMAIN, nil
	case "data":
		return mspm0.DATA, nil
	default:
		return 0, fmt.Errorf("unrecognised bank %q (want main, nonmain, or data)", s)
	}
}

// openBank takes the already-parsed values of the common
// -base/-device/-fake/-halted flags and returns a probed bank plus the
// bus/halt collaborators it was probed with, so the caller can go on
// to issue further operations against the same bus.
func openBank(base, devicePath string, fake, halted bool) (*mspm0.Bank, mspm0.TargetBus, mspm0.HaltState, func() error, error) {
	baseAddr, err := parseBase(base)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var bus mspm0.TargetBus
	var closeFn func() error = func() error { return nil }

	if fake {
		bus = newFakeBus()
	} else {
		mb, err := newMemBus(devicePath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		bus = mb
		closeFn = mb.Close
	}

	bank, err := mspm0.NewBank(baseAddr)
	if err != nil {
		closeFn()
		return nil, nil, nil, nil, err
	}
	if err := bank.Probe(bus); err != nil {
		closeFn()
		return nil, nil, nil, nil, err
	}

	return bank, bus, fixedHalt{halted: halted}, closeFn, nil
}

func runProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	base := fs.String("base", "main", "bank to probe: main, nonmain, data")
	device := fs.String("device", "/dev/mem", "device path")
	fake := fs.Bool("fake", false, "use an in-process fake bus instead of real hardware")
	fs.Parse(args)

	bank, _, _, closeFn, err := openBank(*base, *device, *fake, false)
	if err != nil {
		return err
	}
	defer closeFn()

	info, err := bank.Info()
	if err != nil {
		return err
	}
	fmt.Println(info)
	return nil
}

func runInfo(args []string) error {
	return runProbe(args)
}

func runErase(args []string) error {
	fs := flag.NewFlagSet("erase", flag.ExitOnError)
	base := fs.String("base", "main", "bank: main, nonmain, data")
	device := fs.String("device", "/dev/mem", "device path")
	fake := fs.Bool("fake", false, "use an in-process fake bus instead of real hardware")
	halted := fs.Bool("halted", false, "assert the target is already halted")
	first := fs.Int("first", 0, "first sector index")
	count := fs.Int("count", 1, "number of sectors to erase")
	fs.Parse(args)

	bank, bus, halt, closeFn, err := openBank(*base, *device, *fake, *halted)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := bank.Erase(bus, halt, *first, *first+*count, logKeepAlive); err != nil {
		return err
	}
	fmt.Printf("erased sectors [%d, %d)\n", *first, *first+*count)
	return nil
}

func runProgram(args []string) error {
	fs := flag.NewFlagSet("program", flag.ExitOnError)
	base := fs.String("base", "main", "bank: main, nonmain, data")
	device := fs.String("device", "/dev/mem", "device path")
	fake := fs.Bool("fake", false, "use an in-process fake bus instead of real hardware")
	halted := fs.Bool("halted", false, "assert the target is already halted")
	offset := fs.Uint("offset", 0, "byte offset within the bank")
	path := fs.String("file", "", "path of the binary image to program")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-file is required")
	}
	data, err := os.ReadFile(*path)
	if err != nil {
		return err
	}

	bank, bus, halt, closeFn, err := openBank(*base, *device, *fake, *halted)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := bank.Write(bus, halt, uint32(*offset), data, logKeepAlive); err != nil {
		return err
	}
	fmt.Printf("programmed %d bytes at offset %#x\n", len(data), *offset)
	return nil
}

func runProtect(args []string) error {
	fs := flag.NewFlagSet("protect", flag.ExitOnError)
	base := fs.String("base", "main", "bank: main, nonmain, data")
	device := fs.String("device", "/dev/mem", "device path")
	fake := fs.Bool("fake", false, "use an in-process fake bus instead of real hardware")
	first := fs.Int("first", 0, "first sector index")
	last := fs.Int("last", 1, "sector index one past the last sector (half-open range)")
	set := fs.Int("set", 1, "1 to protect, 0 to clear")
	fs.Parse(args)

	bank, bus, _, closeFn, err := openBank(*base, *device, *fake, false)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := bank.Protect(bus, *first, *last, *set); err != nil {
		return err
	}
	fmt.Printf("sectors [%d, %d) protection set to %d\n", *first, *last, *set)
	return nil
}

func runProtectCheck(args []string) error {
	fs := flag.NewFlagSet("protect-check", flag.ExitOnError)
	base := fs.String("base", "main", "bank: main, nonmain, data")
	device := fs.String("device", "/dev/mem", "device path")
	fake := fs.Bool("fake", false, "use an in-process fake bus instead of real hardware")
	fs.Parse(args)

	bank, bus, _, closeFn, err := openBank(*base, *device, *fake, false)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := bank.ProtectCheck(bus); err != nil {
		return err
	}
	for i, s := range bank.Sectors {
		fmt.Printf("sector %4d: protected=%s erased=%s\n", i, s.Protected, s.Erased)
	}
	return nil
}

func runDap(args []string) error {
	fs := flag.NewFlagSet("dap", flag.ExitOnError)
	device := fs.String("device", "/dev/mem", "device path")
	interactive := fs.Bool("interactive", false, "start a raw-terminal interactive session")

	if len(args) > 0 && args[0] == "info" {
		args = args[1:]
		fs.Parse(args)
		cfg := dmem.NewConfig()
		cfg.SetDevicePath(*device)
		cfg.Info(os.Stdout)
		return nil
	}

	fs.Parse(args)
	cfg := dmem.NewConfig()
	cfg.SetDevicePath(*device)
	dap := dmem.New(cfg, nil)

	if *interactive {
		return runInteractive(dap)
	}

	usage()
	return nil
}

// logKeepAlive is the KeepAlive callback passed into long-running
// erase/program operations; the CLI has no event loop to starve, so it
// just prints a progress dot.
func logKeepAlive() {
	fmt.Print(".")
}

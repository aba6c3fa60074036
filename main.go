package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"snestor/cart"
	"snestor/emu"
	"snestor/emu/debugger"
	"snestor/emu/log"
	"snestor/hw"
)

func main() {
	log.SetOutput(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))

	args := parseArgs(os.Args[1:])
	cfg := loadConfig(args)

	switch args.mode {
	case romInfosMode:
		rom, err := cart.OpenAs(args.RomInfos.RomPath, args.RomInfos.Mapping.Mapping)
		checkf(err, "failed to read rom")
		fmt.Print(rom)
	case checkMode:
		checkMain(args.Check, cfg)
	case disasmMode:
		disasmMain(args.Disasm, cfg)
	case versionMode:
		printVersion()
	case runMode:
		runMain(args.Run, cfg)
	}
}

func loadConfig(args CLI) emu.Config {
	var (
		cfg emu.Config
		err error
	)
	if args.Config != "" {
		cfg, err = emu.LoadConfig(args.Config)
		checkf(err, "failed to load config %s", args.Config)
	} else {
		cfg = emu.LoadConfigOrDefault()
	}

	// --log has precedence over the config file.
	if args.Log == 0 && len(cfg.Log.Modules) > 0 {
		var lm logModMask
		checkf(lm.set(cfg.Log.Modules), "invalid log modules in config")
	}
	return cfg
}

func openRom(path string, m cart.Mapping, cfg emu.Config) *cart.Rom {
	if m == cart.Auto {
		m = cfg.Mapping
	}
	rom, err := cart.OpenAs(path, m)
	checkf(err, "failed to read rom %s", path)
	return rom
}

// runMain runs the emulator directly with the given rom.
func runMain(args Run, cfg emu.Config) {
	rom := openRom(args.RomPath, args.Mapping.Mapping, cfg)

	if args.Trace != nil {
		defer args.Trace.Close()
		cfg.TraceOut = args.Trace
	}
	if args.SharedBus {
		cfg.Emulation.SharedBus = true
	}

	console, err := emu.PowerUp(rom, cfg)
	checkf(err, "failed to power up")
	log.AddContext(console.CPU)

	var dbg *debugger.Debugger
	if args.CallStack || len(args.Watch) > 0 {
		dbg = debugger.New(console.CPU, console.Bus)
		dbg.Reset()
		for _, w := range args.Watch {
			addr, acc, err := debugger.ParseWatch(w)
			checkf(err, "invalid --watch")
			checkf(dbg.Watch(addr, acc), "invalid --watch")
		}
		if len(args.Watch) > 0 {
			log.EnableDebugModules(log.ModDbg.Mask())
		}
		console.SetDebugger(dbg)
	}

	if args.LoadState != "" {
		buf, err := os.ReadFile(args.LoadState)
		checkf(err, "failed to read state")
		checkf(console.LoadState(buf), "failed to load state %s", args.LoadState)
	}

	if args.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(args.CPUProfile), profile.NoShutdownHook).Stop()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		console.Stop()
	}()

	runErr := console.Run(args.Frames)

	if args.SaveState != "" {
		checkf(os.WriteFile(args.SaveState, console.SaveState(), 0644), "failed to save state")
	}
	if dbg != nil && args.CallStack {
		printCallStack(dbg)
	}
	checkf(runErr, "emulation error")

	fmt.Printf("%d frames, %d cycles, %d ROM writes, CPU %s\n",
		console.Frames(), console.CPU.Cycles, console.Bus.ROMWrites, console.CPU.State())
}

func printCallStack(dbg *debugger.Debugger) {
	fmt.Println("call stack:")
	for _, f := range dbg.CallStack() {
		fmt.Printf("  %-20s %s\n", f[0], f[1])
	}
	for _, msg := range dbg.Breaks() {
		fmt.Printf("break: %s\n", msg)
	}
}

type checkResult struct {
	path   string
	frames int64
	writes uint64
	state  hw.State
	err    error
}

func (r checkResult) String() string {
	if r.err != nil {
		return fmt.Sprintf("FAIL %s: %s", r.path, r.err)
	}
	return fmt.Sprintf("ok   %s: %d frames, %d ROM writes, CPU %s", r.path, r.frames, r.writes, r.state)
}

// checkMain runs each rom on its own console, concurrently.
func checkMain(args Check, cfg emu.Config) {
	results := make([]checkResult, len(args.RomPaths))

	var g errgroup.Group
	for i, path := range args.RomPaths {
		i, path := i, path
		g.Go(func() error {
			results[i] = checkRom(path, args.Frames, cfg)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		fmt.Println(r)
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		fatalf("%d/%d roms failed", failed, len(results))
	}
}

func checkRom(path string, frames int, cfg emu.Config) checkResult {
	res := checkResult{path: path}
	rom, err := cart.OpenAs(path, cfg.Mapping)
	if err != nil {
		res.err = err
		return res
	}
	console, err := emu.PowerUp(rom, cfg)
	if err != nil {
		res.err = err
		return res
	}
	res.err = console.Run(max(frames, 1))
	res.frames = console.Frames()
	res.writes = console.Bus.ROMWrites
	res.state = console.CPU.State()
	return res
}

func disasmMain(args Disasm, cfg emu.Config) {
	rom := openRom(args.RomPath, args.Mapping.Mapping, cfg)
	console, err := emu.PowerUp(rom, cfg)
	checkf(err, "failed to power up")

	pc := console.CPU.PC24()
	var sb strings.Builder
	for i := 0; i < args.Count; i++ {
		op := console.CPU.Disasm(pc)
		sb.WriteString(op.String())
		sb.WriteByte('\n')
		pc = pc&0xFF0000 | uint32(uint16(pc)+uint16(len(op.Buf)))
	}
	fmt.Print(sb.String())
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("snestor", version)
}

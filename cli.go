package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"snestor/cart"
	"snestor/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM
	romInfosMode             // Show ROM infos
	checkMode                // Run several ROMs headless, report
	disasmMode               // Disassemble from the reset vector
	versionMode              // Show snestor version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run ROM in emulator."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Check    Check    `cmd:"" help:"Run ROMs for a few frames and report CPU errors."`
		Disasm   Disasm   `cmd:"" help:"Disassemble ROM code from the reset vector."`
		Version  Version  `cmd:"" help:"Show snestor version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `name:"config" help:"${config_help}" type:"path"`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"ROM to run." required:"true" type:"existingfile"`

		Mapping    mapping  `name:"mapping" help:"${mapping_help}" placeholder:"auto|lorom|hirom|exhirom"`
		Frames     int      `name:"frames" help:"Number of frames to run, 0 runs until the CPU stops." default:"0"`
		CPUProfile string   `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
		Trace      *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		LoadState  string   `name:"load-state" help:"Load a state saved with --save-state before running." type:"existingfile"`
		SaveState  string   `name:"save-state" help:"Save the console state when emulation stops." type:"path"`
		SharedBus  bool     `name:"shared-bus" help:"Serialize register space accesses."`
		CallStack  bool     `name:"callstack" help:"Track calls and print the call stack when emulation stops."`
		Watch      []string `name:"watch" help:"${watch_help}" placeholder:"ADDR[:r|w|rw]"`
	}

	RomInfos struct {
		RomPath string  `arg:"" name:"/path/to/rom" type:"existingfile"`
		Mapping mapping `name:"mapping" help:"${mapping_help}" placeholder:"auto|lorom|hirom|exhirom"`
	}

	Check struct {
		RomPaths []string `arg:"" name:"/path/to/rom" type:"existingfile"`
		Frames   int      `name:"frames" help:"Number of frames to run for each ROM." default:"60"`
	}

	Disasm struct {
		RomPath string  `arg:"" name:"/path/to/rom" type:"existingfile"`
		Mapping mapping `name:"mapping" help:"${mapping_help}" placeholder:"auto|lorom|hirom|exhirom"`
		Count   int     `name:"count" short:"n" help:"Number of instructions." default:"32"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"cpuprofile_help": "Write CPU profile in directory.",
	"log_help":        "Enable logging for specified modules.",
	"config_help":     "Configuration file (default: snestor/config.toml in user config directory).",
	"mapping_help":    "Force cartridge mapping, bypassing header detection.",
	"watch_help":      "Log accesses to a memory location, mirrors included (repeatable).",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("snestor"),
		kong.Description("SNES CPU and bus emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "rom-infos":
		cfg.mode = romInfosMode
	case "check":
		cfg.mode = checkMode
	case "disasm":
		cfg.mode = disasmMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return lm.set(strings.Split(tok.Value.(string), ","))
}

func (lm *logModMask) set(names []string) error {
	var all, none bool
	for _, name := range names {
		switch name = strings.TrimSpace(name); name {
		case "":
		case "all":
			all = true
		case "no":
			none = true
		default:
			mod, ok := log.ModuleByName(name)
			if !ok {
				return fmt.Errorf("unknown log module %q (see --help)", name)
			}
			*lm |= logModMask(mod.Mask())
		}
	}

	switch {
	case none && (all || *lm != 0):
		return errors.New("'no' can't be combined with other log modules")
	case none:
		log.Disable()
		return nil
	case all:
		*lm = logModMask(log.ModuleMaskAll)
	}
	log.EnableDebugModules(log.ModuleMask(*lm))
	return nil
}

type mapping struct {
	cart.Mapping
}

// Decode implements kong.MapperValue interface.
func (m *mapping) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return m.UnmarshalText([]byte(tok.Value.(string)))
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode opens FILE, or selects stdout ("stdout" or "-") or stderr.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout", "-":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}

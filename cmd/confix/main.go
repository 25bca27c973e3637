package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/tevino/abool/v2"

	"confix/interpreter-go/pkg/debugger"
	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/interpreter"
	"confix/interpreter-go/pkg/syntax"
)

const cliToolVersion = "confix 0.1.0"

// lastSettingsEnv overrides where the previous settings path is remembered.
const lastSettingsEnv = "CONFIX_LAST_SETTINGS"

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// promptSession is the terminal used for input() and the debug menu.
type promptSession interface {
	Prompt(prompt string) (string, error)
	Close() error
}

var newPromptSession = func() promptSession { return &linerSession{} }

// linerSession opens the terminal on first use, so programs that never
// prompt leave it untouched.
type linerSession struct {
	state *liner.State
}

func (s *linerSession) Prompt(prompt string) (string, error) {
	if s.state == nil {
		s.state = liner.NewLiner()
		s.state.SetCtrlCAborts(true)
	}
	line, err := s.state.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		s.state.AppendHistory(line)
	}
	return line, nil
}

func (s *linerSession) Close() error {
	if s.state == nil {
		return nil
	}
	return s.state.Close()
}

type cliOptions struct {
	settings    string
	bases       interpreter.Bases
	debug       bool
	stopOnError bool
	dump        bool
	program     string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	argv := append([]string{"confix"}, args...)
	opts, optind, err := getopt.Getopts(argv, "s:i:o:a:dxShV")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		printUsage()
		return 1
	}

	cli := cliOptions{bases: interpreter.DefaultBases()}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			printUsage()
			return 0
		case 'V':
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		case 's':
			cli.settings = opt.Value
		case 'd':
			cli.debug = true
		case 'x':
			cli.stopOnError = true
		case 'S':
			cli.dump = true
		case 'i', 'o', 'a':
			base, err := parseBase(opt.Value)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s -%c: %v\n", red("error:"), opt.Option, err)
				return 1
			}
			switch opt.Option {
			case 'i':
				cli.bases.Input = base
			case 'o':
				cli.bases.Output = base
			case 'a':
				cli.bases.Assign = base
			}
		}
	}

	if cli.dump {
		return dumpSettings(cli.settings)
	}

	positional := argv[optind:]
	if len(positional) != 1 {
		printUsage()
		return 1
	}
	cli.program = positional[0]
	return execute(cli)
}

func parseBase(text string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid base %q", text)
	}
	if err := driver.ValidateBase(base); err != nil {
		return 0, err
	}
	return base, nil
}

func execute(cli cliOptions) int {
	cfg, err := resolveSettings(cli.settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("failed to load settings:"), err)
		return 1
	}

	program, err := driver.LoadProgram(cli.program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("failed to load program:"), err)
		return 1
	}

	session := newPromptSession()
	defer session.Close()

	interp, err := interpreter.New(cfg, interpreter.Options{Bases: cli.bases, Input: session})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		return 1
	}

	interrupted := abool.New()
	stopSignals := notifyInterrupt(interrupted)
	defer stopSignals()

	runOpts := interpreter.ProgramOptions{
		StopOnError: cli.stopOnError,
		Interrupted: interrupted.IsSet,
	}
	if cli.debug {
		runOpts.Breakpoint = debugger.New(interp.Symbols(), session, os.Stdout).Breakpoint
	}

	failures, err := interp.ExecuteProgram(program, runOpts)
	for _, failure := range failures {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), failure)
	}
	if err != nil {
		switch {
		case errors.Is(err, debugger.ErrQuit):
			return 0
		case errors.Is(err, interpreter.ErrInterrupted):
			fmt.Fprintln(os.Stderr, yellow("interrupted"))
			return 130
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", red("debugger:"), err)
		return 1
	}
	if len(failures) > 0 {
		return 1
	}
	return 0
}

// dumpSettings prints the settings a run would use, in the YAML format.
func dumpSettings(path string) int {
	cfg, err := resolveSettings(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("failed to load settings:"), err)
		return 1
	}
	data, err := driver.EncodeSettingsYAML(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}

// notifyInterrupt sets flag on SIGINT so the run stops before the next
// statement. The returned func releases the handler.
func notifyInterrupt(flag *abool.AtomicBool) func() {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, os.Interrupt)
	go func() {
		select {
		case <-sigc:
			flag.Set()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigc)
		close(done)
	}
}

// resolveSettings loads the settings file named on the command line and
// remembers it, falls back to the remembered file, and finally to the
// default syntax.
func resolveSettings(path string) (*syntax.Config, error) {
	recordPath := lastSettingsPath()
	if path != "" {
		cfg, err := driver.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		record := driver.LastSettings{SettingsFile: path}
		if digest, err := driver.SettingsDigest(path); err == nil {
			record.Digest = digest
		}
		if err := driver.SaveLastSettings(recordPath, record); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", yellow("warning:"), err)
		}
		return cfg, nil
	}

	last, err := driver.LoadLastSettings(recordPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s %v\n", yellow("warning:"), err)
		}
		return syntax.Default(), nil
	}
	if changed, err := last.Changed(); err == nil && changed {
		fmt.Fprintf(os.Stderr, "%s %s changed since it was last used\n", yellow("warning:"), last.SettingsFile)
	}
	return driver.LoadSettings(last.SettingsFile)
}

func lastSettingsPath() string {
	if path := strings.TrimSpace(os.Getenv(lastSettingsEnv)); path != "" {
		return path
	}
	return driver.DefaultLastSettingsFile
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  confix [-s settings] [-i base] [-o base] [-a base] [-d] [-x] <program>")
	fmt.Fprintln(os.Stderr, "  confix [-s settings] -S")
	fmt.Fprintln(os.Stderr, "  confix -h | -V")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -s settings  syntax settings file (.txt line format or .yml)")
	fmt.Fprintln(os.Stderr, "  -i base      radix for input() replies (default 10)")
	fmt.Fprintln(os.Stderr, "  -o base      radix for output() (default 10)")
	fmt.Fprintln(os.Stderr, "  -a base      radix for literals in statements (default 16)")
	fmt.Fprintln(os.Stderr, "  -d           open the debug menu at #BREAKPOINT markers")
	fmt.Fprintln(os.Stderr, "  -x           stop at the first failing statement")
	fmt.Fprintln(os.Stderr, "  -S           print the resolved settings as YAML and exit")
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/golang/glog"
	"github.com/peterh/liner"

	"github.com/daios-ai/mua/internal/config"
	"github.com/daios-ai/mua/mua"
)

const appName = "mua"

var (
	banner   = fmt.Sprintf("MUA %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", mua.Version)
	helpText = `REPL commands:
  :reset   Discard the pending statement
  :help    Show this help
  :quit    Exit the REPL
`
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	// glog registers its flags on the default set; each subcommand re-exports them.
	_ = flag.Set("logtostderr", "true")
	_ = flag.CommandLine.Parse(nil)

	code := dispatch(os.Args[1:])
	glog.Flush()
	os.Exit(code)
}

func dispatch(args []string) int {
	if len(args) < 1 {
		usage(os.Stderr)
		return 2
	}
	switch cmd := args[0]; cmd {
	case "run":
		return cmdRun(args[1:], os.Stdin, os.Stdout, os.Stderr)
	case "repl":
		return cmdRepl(args[1:])
	case "version":
		fmt.Println(mua.Version)
		return 0
	case "-h", "--help", "help":
		usage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage(os.Stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `MUA %s

Usage:
  %s run [--config file] [file|-]     Run a program (stdin when no file is given).
  %s repl [--config file]             Start the REPL.
  %s version                          Print the version

Logging flags (-v, -logtostderr, ...) are accepted by run and repl.
`, mua.Version, appName, appName, appName)
}

// newFlagSet creates a subcommand flag set carrying --config and glog's flags.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to a YAML config file (default $HOME/"+config.FileName+")")
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		fs.Var(f.Value, f.Name, f.Usage)
	})
	return fs, cfgPath
}

// loadConfig resolves the config. A broken implicit config is only warned
// about; a broken explicit one is fatal.
func loadConfig(explicit string) (*config.Config, error) {
	cfg, err := config.Resolve(explicit)
	if err == nil {
		return cfg, nil
	}
	if explicit != "" {
		return nil, err
	}
	glog.Warningf("ignoring config: %v", err)
	return config.Default(), nil
}

func preload(ip *mua.Interpreter, cfg *config.Config) error {
	for _, p := range cfg.PreloadPaths() {
		glog.V(1).Infof("preloading %s", p)
		if err := ip.LoadFile(p); err != nil {
			return fmt.Errorf("preload %s: %w", p, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

// cmdRun evaluates a file, or stdin when no file (or "-") is given. In the
// stdin case the program and the data read by read/readlist share the stream.
func cmdRun(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, cfgPath := newFlagSet("run", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "usage: %s run [--config file] [file|-]\n", appName)
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	ip := mua.NewInterpreter(
		mua.WithInput(mua.NewLineReader(stdin)),
		mua.WithOutput(stdout),
		mua.WithMaxDepth(cfg.MaxDepth),
	)
	if err := preload(ip, cfg); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	file := fs.Arg(0)
	if file == "" || file == "-" {
		err = ip.Run(nil)
	} else {
		err = ip.LoadFile(file)
	}
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// prompter is the part of *liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// linerInput lets read/readlist prompt through the REPL's line editor.
type linerInput struct{ p prompter }

func (li linerInput) ReadLine() (string, error) { return li.p.Prompt("") }

func cmdRepl(args []string) int {
	fs, cfgPath := newFlagSet("repl", os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hist := cfg.HistoryPath(); hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				glog.Warningf("cannot write history %s: %v", hist, err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		glog.Flush()
		os.Exit(130)
	}()

	ip := mua.NewInterpreter(
		mua.WithInput(linerInput{ln}),
		mua.WithOutput(os.Stdout),
		mua.WithMaxDepth(cfg.MaxDepth),
	)
	if err := preload(ip, cfg); err != nil {
		report(os.Stderr, cfg, err)
	}

	replLoop(ip, ln, os.Stdout, os.Stderr, cfg)
	return 0
}

// replLoop reads lines until EOF or :quit. A statement is accepted as soon
// as the lexer reports it complete; failures are reported and the loop goes on.
func replLoop(ip *mua.Interpreter, p prompter, stdout, stderr io.Writer, cfg *config.Config) {
	lx := ip.NewLexer()
	for {
		prompt := cfg.Prompt
		if lx.Source() != "" {
			prompt = cfg.ContinuationPrompt
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			lx.Reset()
			continue
		}
		if err != nil {
			report(stderr, cfg, err)
			return
		}

		switch strings.TrimSpace(line) {
		case ":quit":
			return
		case ":reset":
			lx.Reset()
			continue
		case ":help":
			fmt.Fprint(stdout, helpText)
			continue
		}

		src := lx.Source() + line + "\n"
		if err := lx.AppendLine(line); err != nil {
			report(stderr, cfg, mua.WrapErrorWithSource(err, src))
			continue
		}
		if !lx.IsComplete() {
			continue
		}
		if len(lx.Tokens()) == 0 {
			lx.Reset()
			continue
		}
		p.AppendHistory(strings.Join(strings.Fields(src), " "))
		if _, err := ip.Accept(lx); err != nil {
			report(stderr, cfg, err)
		}
	}
}

func report(w io.Writer, cfg *config.Config, err error) {
	msg := strings.TrimRight(err.Error(), "\n")
	if cfg.Color {
		msg = red(msg)
	}
	fmt.Fprintln(w, msg)
}

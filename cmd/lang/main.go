package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BUGO07/lang/pkg/driver"
	"github.com/BUGO07/lang/pkg/interpreter"
	"github.com/BUGO07/lang/pkg/typechecker"
)

const cliToolVersion = "lang-cli 0.1.0-dev"

type executionMode int

const (
	modeRun executionMode = iota
	modeCheck
)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	trace  bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr, trace: os.Getenv("LANG_TRACE") == "1"}
	return c.run(args)
}

func (c *cli) run(args []string) int {
	args = c.stripFlags(args)
	if len(args) == 0 {
		c.printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return 0
	case "run":
		return c.runEntry(args[1:], modeRun)
	case "check":
		return c.runEntry(args[1:], modeCheck)
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(c.stderr, "unknown flag %s\n", args[0])
			return 1
		}
		return c.runEntry(args, modeRun)
	}
}

// stripFlags removes the global --trace flag wherever it appears.
func (c *cli) stripFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--trace" {
			c.trace = true
			continue
		}
		out = append(out, arg)
	}
	return out
}

func (c *cli) runEntry(args []string, mode executionMode) int {
	if len(args) > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := loadManifestFrom(".")
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrManifestNotFound):
			manifest = nil
		case len(args) == 1:
			fmt.Fprintf(c.stderr, "warning: unable to load manifest (%v); falling back to direct file execution\n", err)
			manifest = nil
		default:
			fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
			return 1
		}
	}

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintf(c.stderr, "%s requires a manifest target or program file (%s not found)\n", modeCommandLabel(mode), driver.ManifestFileName)
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(c.stderr, "manifest error: %v\n", err)
			return 1
		}
		return c.execute(target.Main, mode)
	}

	if manifest != nil {
		if target, ok := manifest.FindTarget(args[0]); ok {
			return c.execute(target.Main, mode)
		}
	}
	return c.execute(args[0], mode)
}

func (c *cli) execute(entry string, mode executionMode) int {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		fmt.Fprintf(c.stderr, "%s requires a program file\n", modeCommandLabel(mode))
		return 1
	}

	program, err := driver.LoadProgram(entry)
	if err != nil {
		fmt.Fprintln(c.stderr, driver.DescribeError(entry, err))
		return 1
	}
	if err := typechecker.New().CheckProgram(program); err != nil {
		fmt.Fprintln(c.stderr, driver.DescribeError(entry, err))
		return 1
	}
	if mode == modeCheck {
		fmt.Fprintln(c.stdout, "check: ok")
		return 0
	}

	opts := interpreter.Options{Stdout: c.stdout}
	if c.trace {
		opts.Trace = c.stderr
	}
	if err := interpreter.NewWithOptions(opts).Interpret(program); err != nil {
		if code, ok := interpreter.ExitCodeFromError(err); ok {
			return code
		}
		fmt.Fprintln(c.stderr, driver.DescribeError(entry, err))
		return 1
	}
	return 0
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func modeCommandLabel(mode executionMode) string {
	switch mode {
	case modeCheck:
		return "lang check"
	default:
		return "lang run"
	}
}

func (c *cli) printUsage() {
	fmt.Fprintf(c.stderr, `usage:
  lang run [target|file.yml]   analyze and run a program tree
  lang check [target|file.yml] analyze only
  lang --version

flags:
  --trace   log each top-level statement to stderr (also LANG_TRACE=1)

Without a file, the default target of the nearest %s is used.
`, driver.ManifestFileName)
}

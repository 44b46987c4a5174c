package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"

	"github.com/mgomes/coreobject/coreobj"
	"github.com/mgomes/coreobject/internal/config"
	"github.com/mgomes/coreobject/internal/hierarchy"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:], cfg, logger, os.Stdout)
	case "classes":
		return classesCommand(args[2:], os.Stdout)
	case "repl":
		return replCommand(args[2:], cfg, logger)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func loadRegistry(path string, logger *slog.Logger) (*hierarchy.Registry, error) {
	doc, err := hierarchy.LoadFile(path)
	if err != nil {
		return nil, err
	}
	registry, err := hierarchy.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", filepath.Base(path), err)
	}
	logger.Debug("hierarchy loaded", "path", path, "classes", len(doc.Classes))
	return registry, nil
}

func runCommand(args []string, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	className := fs.String("class", cfg.DefaultClass, "class to instantiate (defaults to the last class in the file)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("coreobj run: hierarchy path required")
	}
	registry, err := loadRegistry(remaining[0], logger)
	if err != nil {
		return err
	}
	name := *className
	if name == "" {
		names := registry.Names()
		name = names[len(names)-1]
	}
	cl, ok := registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w %s", hierarchy.ErrUnknownClass, name)
	}
	ctorArgs := make([]coreobj.Value, len(remaining)-1)
	for i, raw := range remaining[1:] {
		ctorArgs[i] = coreobj.NewString(raw)
	}
	inst, err := cl.Create(ctorArgs...)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	logger.Debug("instance created", "class", name, "id", cl.ID())
	raw, err := jsonAPI.Marshal(inst)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}

func classesCommand(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("coreobj classes: hierarchy path required")
	}
	registry, err := loadRegistry(args[0], slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, newSession(registry, nil).describeClasses())
	return err
}

func replCommand(args []string, cfg config.Config, logger *slog.Logger) error {
	registry := hierarchy.NewRegistry()
	if len(args) > 0 {
		var err error
		if registry, err = loadRegistry(args[0], logger); err != nil {
			return err
		}
	}
	sess := newSession(registry, logger)
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runREPL(sess, cfg)
	}
	return runBatch(sess, os.Stdin, os.Stdout)
}

// runBatch evaluates one command per line. Blank lines and lines starting
// with # are skipped; the first failing command stops the run.
func runBatch(sess *session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := sess.eval(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
	return scanner.Err()
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-class NAME] <hierarchy.yaml> [args...]")
	fmt.Fprintln(os.Stderr, "    build the hierarchy, create an instance and print it as JSON")
	fmt.Fprintln(os.Stderr, "  classes <hierarchy.yaml>")
	fmt.Fprintln(os.Stderr, "    list classes with their parent chains")
	fmt.Fprintln(os.Stderr, "  repl [hierarchy.yaml]")
	fmt.Fprintln(os.Stderr, "    interactive session; reads commands from stdin when it is not a terminal")
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  COREOBJ_LOG_LEVEL, COREOBJ_NO_COLOR, COREOBJ_DEFAULT_CLASS")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// Command voxeledit creates, edits, inspects and archives voxel chunk files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"mini-voxel/internal/config"
	"mini-voxel/internal/storage"

	"github.com/xlab/closer"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(e *env, args []string) error
}

var commands = map[string]command{
	"new":      {"new <out>", cmdNew},
	"gen":      {"gen [-seed n] [-mode flat|noise] <out>", cmdGen},
	"set":      {"set <file> x,y,z <block>", cmdSet},
	"fill":     {"fill <file> <y> <block>", cmdFill},
	"mesh":     {"mesh [-obj out.obj] <file>...", cmdMesh},
	"pick":     {"pick <file> ox,oy,oz dx,dy,dz", cmdPick},
	"export":   {"export <file> <out.vxz>", cmdExport},
	"import":   {"import <in.vxz> <out>", cmdImport},
	"save":     {"save <file> <name>", cmdSave},
	"load":     {"load <name> <out>", cmdLoad},
	"list":     {"list", cmdList},
	"delete":   {"delete <name>", cmdDelete},
	"simulate": {"simulate [-move x,z] [-jump] [-realtime] <file> <ticks>", cmdSimulate},
	"stats":    {"stats [file]", cmdStats},
}

// env is what every command runs against.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer

	store *storage.WorldStore
}

// worldStore opens the configured world library on first use.
func (e *env) worldStore() (*storage.WorldStore, error) {
	if e.store != nil {
		return e.store, nil
	}
	s, err := storage.OpenWorldStore(e.cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	e.store = s
	return s, nil
}

func (e *env) close() {
	if e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("close world store", "err", err)
	}
	e.store = nil
}

func main() {
	e := &env{out: os.Stdout}
	closer.Bind(e.close)
	closer.Checked(func() error {
		err := run(e, os.Args[1:], os.Stderr)
		if errors.Is(err, errUsage) {
			return err
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "voxeledit:", err)
		}
		return err
	}, false)
	closer.Close()
}

// run parses global flags, configures e and dispatches to a command.
func run(e *env, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("voxeledit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		printUsage(stderr)
		return errUsage
	}
	if err := cmd.run(e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "usage: voxeledit", cmd.usage)
		}
		return err
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: voxeledit [-config file] <command> [args]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
}

// needArgs checks the positional argument count of a command.
func needArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d arguments, got %d (%s)", errUsage, n, len(args), strings.Join(args, " "))
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

// Command soundobjects exports scene sound sources as object based audio.
//
// Usage:
//
//	soundobjects export [flags] <scene.yaml> <output.wav>
//	soundobjects inspect <file.wav>
//	soundobjects spot [flags] <scene.yaml> <sound-dir>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
)

var Version = "dev"

const usage = `usage: soundobjects <command> [flags] [args]

commands:
  export   write a scene's sound sources to a broadcast wave file with ADM metadata
  inspect  print the chunks and metadata of an exported file
  spot     place clips from a sound directory on the sources of a scene
  version  print the version
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "export":
		err = exportCmd(ctx, args[1:], stdout, stderr)
	case "inspect":
		err = inspectCmd(args[1:], stdout, stderr)
	case "spot":
		err = spotCmd(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, Version)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

func newFlagSet(name, args string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: soundobjects %s [flags] %s\n\nflags:\n%s", name, args, fs.FlagUsages())
	}

	return fs
}

func positional(fs *pflag.FlagSet, names ...string) ([]string, error) {
	if fs.NArg() != len(names) {
		fs.Usage()
		return nil, fmt.Errorf("%w: %s needs <%s>, got %d arguments", errUsage, fs.Name(), strings.Join(names, "> <"), fs.NArg())
	}

	return fs.Args(), nil
}

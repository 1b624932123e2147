// Command xnet is the thin peripheral surface over the four decoders
// and the traversal engine: decode a design to the universal model,
// trace a net or pin, or report resource stats for a decode. Argument
// parsing itself stays on the standard library's flag package, the way
// the teacher's samples/*/main.go hardcode their own small option sets
// rather than reach for a CLI framework.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/wiretrace/xnet/internal/logging"
)

func main() {
	defer atexit.Exit(0)
	atexit.Register(func() { logging.Default.V(1).Info("xnet exiting") })

	if len(os.Args) < 2 {
		usage()
		atexitFailure()
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:])
	case "trace":
		err = runTrace(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		usage()
		atexitFailure()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "xnet: %v\n", err)
		atexitFailure()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: xnet <decode|trace> [flags] <path> [args...]")
	fmt.Fprintln(os.Stderr, "  decode <path>                 decode a design to the universal model (JSON)")
	fmt.Fprintln(os.Stderr, "  trace  <path> <net-or-pin>    run an XNET traversal and print a report")
}

func atexitFailure() {
	atexit.Exit(1)
}

// commonFlags are shared between decode and trace.
type commonFlags struct {
	config string
	stats  bool
}

func addCommonFlags(fs *flag.FlagSet, c *commonFlags) {
	fs.StringVar(&c.config, "config", "xnet.yaml", "path to an optional traversal-defaults config file")
	fs.BoolVar(&c.stats, "stats", false, "report wall time, resident set size, and CPU count after the command")
}

package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/wiretrace/xnet/internal/config"
	"github.com/wiretrace/xnet/internal/logging"
	"github.com/wiretrace/xnet/netlist"
	"github.com/wiretrace/xnet/traversal"
)

func runTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	var common commonFlags
	addCommonFlags(fs, &common)
	skip := fs.String("skip", "", "comma-separated refdes prefixes to skip, e.g. TP,FID")
	includeDNS := fs.Bool("include-dns", false, "include do-not-stuff components in the traversal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("trace: expected <path> <net-or-pin>")
	}
	path, spec := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Load(common.config)
	if err != nil {
		return fmt.Errorf("trace: loading config: %w", err)
	}

	opts := traversal.Options{
		SkipTypes:     mergeSkipTypes(cfg.Traversal.SkipTypeSet(), *skip),
		IncludeDNS:    *includeDNS || cfg.Traversal.IncludeDNS,
		ExtraStopNets: cfg.Traversal.StopNetSet(),
	}

	var result *traversal.AggregatedResult
	err = withStats(common.stats, func() error {
		model, err := decodeAny(path)
		if err != nil {
			return err
		}
		result, err = traverseSpec(model, spec, opts)
		return err
	})
	if err != nil {
		return err
	}

	logging.Default.V(1).Info("trace complete",
		"starting_point", result.StartingPoint, "total_components", result.TotalComponents)

	return renderReport(result)
}

// traverseSpec dispatches to the pin-shape or net-shape query depending
// on spec's shape (spec §4.5.6: "REFDES.PIN" vs a bare net name).
func traverseSpec(model *netlist.Model, spec string, opts traversal.Options) (*traversal.AggregatedResult, error) {
	if strings.Contains(spec, ".") {
		return traversal.TraverseFromPin(model, spec, opts)
	}
	return traversal.TraverseFromNet(model, spec, opts)
}

func mergeSkipTypes(base map[string]bool, flagValue string) map[string]bool {
	merged := make(map[string]bool, len(base))
	for k := range base {
		merged[k] = true
	}
	for _, prefix := range strings.Split(flagValue, ",") {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			merged[prefix] = true
		}
	}
	return merged
}

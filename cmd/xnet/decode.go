package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wiretrace/xnet/altium"
	"github.com/wiretrace/xnet/cadence"
	"github.com/wiretrace/xnet/discover"
	"github.com/wiretrace/xnet/internal/logging"
	"github.com/wiretrace/xnet/netlist"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var common commonFlags
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("decode: expected a design path")
	}
	path := fs.Arg(0)

	var model *netlist.Model
	err := withStats(common.stats, func() error {
		m, err := decodeAny(path)
		if err != nil {
			return err
		}
		model = m
		return nil
	})
	if err != nil {
		return err
	}

	if issues := model.Verify(); len(issues) > 0 {
		logging.Default.V(0).Info("decoded model has invariant issues", "count", len(issues))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(model)
}

// decodeAny classifies path and runs the matching decoder (spec §6's
// three input-file-handle shapes). An Altium project (.PrjPcb) decodes
// its first referenced schematic; merging a project's full sheet set
// into one model is left to a future CLI iteration.
func decodeAny(path string) (*netlist.Model, error) {
	kind, err := discover.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case discover.AltiumSchDoc:
		return altium.DecodeSchDoc(path, logging.Default)

	case discover.AltiumProject:
		docs, err := discover.AltiumSchematics(path)
		if err != nil {
			return nil, err
		}
		return altium.DecodeSchDoc(docs[0], logging.Default)

	case discover.CadenceDesign:
		companions, err := discover.FindCadenceCompanions(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		loc := cadenceLocator{companions}
		return cadence.DecodeProject(loc, logging.Default)

	default:
		return nil, fmt.Errorf("decode: %q is not a recognized design file", path)
	}
}

// cadenceLocator adapts a discover.CadenceCompanions triple to
// cadence.FileLocator.
type cadenceLocator struct {
	companions *discover.CadenceCompanions
}

func (l cadenceLocator) Open(name string) (io.ReadCloser, error) {
	switch name {
	case "pstxnet.dat":
		return os.Open(l.companions.NetConn)
	case "pstxprt.dat":
		return os.Open(l.companions.Part)
	case "pstchip.dat":
		return os.Open(l.companions.Chip)
	default:
		return nil, fmt.Errorf("cadence locator: unknown file %q", name)
	}
}

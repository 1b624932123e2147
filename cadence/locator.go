package cadence

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/wiretrace/xnet/netlist"
)

// FileLocator opens the three fixed Cadence project files by name
// ("pstxnet.dat", "pstxprt.dat", "pstchip.dat"), abstracting over
// whether they live on disk, inside an archive, or in a test fixture.
type FileLocator interface {
	Open(name string) (io.ReadCloser, error)
}

// DecodeProject reads and joins a Cadence project's three text netlist
// files via loc, producing a *netlist.Model per spec §4.4.
func DecodeProject(loc FileLocator, log logr.Logger) (*netlist.Model, error) {
	netConns, err := parseNetConnFile(loc)
	if err != nil {
		return nil, err
	}
	parts, partNames, err := parsePartFile(loc)
	if err != nil {
		return nil, err
	}
	chips, err := parseChipFile(loc)
	if err != nil {
		return nil, err
	}

	log.V(1).Info("parsed cadence project",
		"nets", len(netConns), "parts", len(parts), "chips", len(chips))

	return Join(netConns, parts, partNames, chips), nil
}

func parseNetConnFile(loc FileLocator) (NetConnections, error) {
	f, err := loc.Open("pstxnet.dat")
	if err != nil {
		return nil, fmt.Errorf("cadence: %w", err)
	}
	defer f.Close()
	return ParseNetConnections(f)
}

func parsePartFile(loc FileLocator) (map[string]*PartInfo, map[string]string, error) {
	f, err := loc.Open("pstxprt.dat")
	if err != nil {
		return nil, nil, fmt.Errorf("cadence: %w", err)
	}
	defer f.Close()
	return ParsePartFile(f)
}

func parseChipFile(loc FileLocator) ([]*ChipPart, error) {
	f, err := loc.Open("pstchip.dat")
	if err != nil {
		return nil, fmt.Errorf("cadence: %w", err)
	}
	defer f.Close()
	return ParseChipFile(f)
}

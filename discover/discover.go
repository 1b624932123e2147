// Package discover is a thin wrapper over the core decoders (C1-C4):
// it locates the files a decode needs and classifies which decoder a
// given path belongs to, the way easyconf sits as a thin layer over
// confignew and dummy without touching their logic itself.
package discover

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Kind names the decoder a discovered input belongs to.
type Kind int

const (
	Unknown Kind = iota
	AltiumProject
	AltiumSchDoc
	CadenceDesign
)

var altiumMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ErrUnsupportedFormat is returned when a path's extension isn't among
// the known set (spec §7 "Unsupported format").
var ErrUnsupportedFormat = errors.New("discover: unsupported format")

// ErrNoNetlistFound is returned when a Cadence companion triple or an
// Altium schematic can't be located from a starting path (spec §7 "No
// matching netlist discovered").
var ErrNoNetlistFound = errors.New("discover: no matching netlist found")

// DetectFormat classifies path by extension and, for files claiming to
// be CFB containers, by magic-byte sniffing (spec §6 "Format
// signatures accepted").
func DetectFormat(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".prjpcb":
		return AltiumProject, nil
	case ".schdoc":
		if err := checkAltiumMagic(path); err != nil {
			return Unknown, err
		}
		return AltiumSchDoc, nil
	case ".dsn", ".cpm":
		return CadenceDesign, nil
	default:
		return Unknown, fmt.Errorf("%w: %q (known: .PrjPcb, .SchDoc, .dsn, .cpm)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func checkAltiumMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 8)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("discover: reading CFB header: %w", err)
	}
	for i, b := range altiumMagic {
		if header[i] != b {
			return fmt.Errorf("discover: %q is not a compound-file container", path)
		}
	}
	return nil
}

// AltiumSchematics parses project's DocumentPath= lines (spec §6,
// "an INI-like text file") and returns the absolute paths of the
// referenced schematic documents, relative to the project's directory.
func AltiumSchematics(project string) ([]string, error) {
	f, err := os.Open(project)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(project)
	var docs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "DocumentPath=") {
			continue
		}
		rel := strings.TrimPrefix(line, "DocumentPath=")
		rel = strings.TrimSpace(rel)
		if rel == "" {
			continue
		}
		docs = append(docs, filepath.Join(dir, rel))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("discover: reading project file: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %q names no DocumentPath= entries", ErrNoNetlistFound, project)
	}
	return docs, nil
}

// CadenceCompanions is the discovered triple of sibling .dat files a
// Cadence design decode needs.
type CadenceCompanions struct {
	NetConn string // pstxnet.dat
	Part    string // pstxprt.dat
	Chip    string // pstchip.dat
}

var cadenceCompanionNames = [3]string{"pstxnet.dat", "pstxprt.dat", "pstchip.dat"}

// FindCadenceCompanions walks the subtree rooted at start looking for
// pstxnet.dat, pstxprt.dat, and pstchip.dat (spec §6, "discoverable via
// a subtree walk from the design file's directory"). All three must be
// found under the same directory; the first directory containing a
// complete triple wins.
func FindCadenceCompanions(start string) (*CadenceCompanions, error) {
	found := make(map[string]map[string]string) // dir -> lowercase name -> actual path
	var dirOrder []string                       // dirs in walk order

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		lower := strings.ToLower(d.Name())
		for _, want := range cadenceCompanionNames {
			if lower != want {
				continue
			}
			dir := filepath.Dir(path)
			if found[dir] == nil {
				found[dir] = make(map[string]string)
				dirOrder = append(dirOrder, dir)
			}
			found[dir][want] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: walking %q: %w", start, err)
	}

	for _, dir := range dirOrder {
		byName := found[dir]
		if len(byName) != len(cadenceCompanionNames) {
			continue
		}
		return &CadenceCompanions{
			NetConn: byName["pstxnet.dat"],
			Part:    byName["pstxprt.dat"],
			Chip:    byName["pstchip.dat"],
		}, nil
	}
	return nil, fmt.Errorf("%w: incomplete pstxnet.dat/pstxprt.dat/pstchip.dat triple under %q", ErrNoNetlistFound, start)
}

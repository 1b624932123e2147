package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/process"

	"github.com/wiretrace/xnet/internal/logging"
)

// withStats runs fn, and when enabled prints wall-clock time, the
// resident set size read once fn has returned (not the peak reached
// while it ran), and CPU count afterward (spec's supplemented --stats flag, addressing
// §5's note that large Altium decodes block the request thread).
func withStats(enabled bool, fn func() error) error {
	if !enabled {
		return fn()
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	rss, rssErr := residentSetBytes()
	cores, coreErr := cpu.Counts(true)

	fmt.Fprintf(os.Stderr, "--- stats ---\n")
	fmt.Fprintf(os.Stderr, "wall time:  %s\n", elapsed)
	if rssErr == nil {
		fmt.Fprintf(os.Stderr, "RSS:        %.1f MiB\n", float64(rss)/(1024*1024))
	} else {
		logging.Default.V(1).Info("could not read RSS", "error", rssErr)
	}
	if coreErr == nil {
		fmt.Fprintf(os.Stderr, "CPU count:  %d\n", cores)
	} else {
		logging.Default.V(1).Info("could not read CPU count", "error", coreErr)
	}

	return err
}

func residentSetBytes() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

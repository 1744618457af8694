package cmd

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// effectiveThreads resolves the --threads setting: 0 means one worker per
// physical core, with logical CPU count as the fallback when the platform
// refuses to say.
func effectiveThreads(n int) int {
	if n > 0 {
		return n
	}
	if c, err := cpu.Counts(false); err == nil && c > 0 {
		return c
	}
	return runtime.NumCPU()
}

// Package hostinfo probes coarse host capabilities used to select a
// performance profile.
package hostinfo

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// fallbackMemoryMB is assumed when total memory cannot be determined
// (non-Linux hosts, restricted containers). Deliberately conservative so an
// unknown host lands in a lower profile rather than a higher one.
const fallbackMemoryMB = 2048

// Facts are the host capabilities the profile selector inspects.
type Facts struct {
	Cores    int
	MemoryMB int
}

// Collect probes the current host. Deterministic for a given host and
// cheap enough to call once per process start.
func Collect() Facts {
	return Facts{
		Cores:    runtime.NumCPU(),
		MemoryMB: totalMemoryMB(),
	}
}

// totalMemoryMB reads MemTotal from /proc/meminfo. Any failure yields the
// conservative fallback.
func totalMemoryMB() int {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return fallbackMemoryMB
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			break
		}
		return kb / 1024
	}
	return fallbackMemoryMB
}

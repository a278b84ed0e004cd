package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yumyai/rlkscan/logger"
	"go.uber.org/zap"
)

// ReadTopology parses a per-residue topology report, one protein per line:
//
//	protein  topology_string
//
// The i-th character of the string is residue i+1's topology code. When a
// protein shows up twice the last record wins.
func ReadTopology(r io.Reader) (map[string]string, error) {
	topo := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			logger.Warn("Skipping short topology line", zap.Int("line", lineno))
			continue
		}

		topo[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topology report: %w", err)
	}

	return topo, nil
}

// LoadTopology reads a topology report from disk.
func LoadTopology(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology report: %w", err)
	}
	defer f.Close()

	return ReadTopology(f)
}

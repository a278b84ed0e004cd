package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SequenceLengths scans a FASTA stream and records each record's residue
// count, keyed by the first word of its header. Lengths are all the topology
// length check needs; the sequences themselves are never kept.
func SequenceLengths(r io.Reader) (map[string]int, error) {
	lengths := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	current := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("FASTA header with no identifier")
			}
			current = fields[0]
			lengths[current] = 0
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("sequence data before first FASTA header")
		}
		lengths[current] += len(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read FASTA: %w", err)
	}

	return lengths, nil
}

// LoadSequenceLengths reads a proteome FASTA from disk.
func LoadSequenceLengths(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA: %w", err)
	}
	defer f.Close()

	return SequenceLengths(f)
}

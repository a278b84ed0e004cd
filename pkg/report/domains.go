// Parsers for the text reports the external tools emit. The tools themselves
// are black boxes (see pkg/scan); everything here is line-oriented text.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yumyai/rlkscan/logger"
	"go.uber.org/zap"
)

// DomainRecord is one raw domain-scan hit, before any merging or filtering.
type DomainRecord struct {
	Protein string
	Label   string
	EValue  float64
	Start   int
	End     int
}

// ReadDomainTable parses a whitespace-separated domain-scan report:
//
//	protein  label  e_value  start  end
//
// Lines starting with '#' are comments. Malformed lines are logged and
// skipped; one bad hit never fails the report.
func ReadDomainTable(r io.Reader) ([]DomainRecord, error) {
	var records []DomainRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			logger.Warn("Skipping short domain-scan line", zap.Int("line", lineno))
			continue
		}

		evalue, err := ParseEValue(fields[2])
		if err != nil {
			logger.Warn("Skipping domain-scan line with bad e-value",
				zap.Int("line", lineno), zap.String("e_value", fields[2]))
			continue
		}
		start, err1 := strconv.Atoi(fields[3])
		end, err2 := strconv.Atoi(fields[4])
		if err1 != nil || err2 != nil {
			logger.Warn("Skipping domain-scan line with bad coordinates",
				zap.Int("line", lineno))
			continue
		}

		records = append(records, DomainRecord{
			Protein: fields[0],
			Label:   fields[1],
			EValue:  evalue,
			Start:   start,
			End:     end,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read domain-scan report: %w", err)
	}

	return records, nil
}

// LoadDomainTable reads a domain-scan report from disk.
func LoadDomainTable(path string) ([]DomainRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open domain-scan report: %w", err)
	}
	defer f.Close()

	return ReadDomainTable(f)
}

// ParseEValue parses a reported significance value. E-values go down to
// 1e-300 and beyond; correctly-rounded float64 keeps their ordering through
// the subnormal range, and a value too small to represent is taken as 0
// (maximally significant), which still orders correctly against every
// threshold in use.
func ParseEValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}

	var ne *strconv.NumError
	if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) && v == 0 {
		return 0, nil // underflow
	}
	return 0, err
}

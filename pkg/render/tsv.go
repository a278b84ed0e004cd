// Tab-separated output tables. Every table is built in memory first and
// written in one call, so an error part-way through a run never leaves a
// truncated table behind.
package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yumyai/rlkscan/pkg/model"
)

// WriteDomainTable writes the intermediate final-domain table: one row per
// surviving interval per protein, proteins in lexical order.
//
//	Name  Label  Start  End
func WriteDomainTable(path string, hits model.HitTable) error {
	var buf bytes.Buffer
	buf.WriteString("Name\tLabel\tStart\tEnd\n")

	for _, protein := range hits.Proteins() {
		for _, hit := range hits[protein] {
			fmt.Fprintf(&buf, "%s\t%s\t%d\t%d\n", protein, hit.Label, hit.Start, hit.End)
		}
	}

	return writeWhole(path, buf.Bytes())
}

// WriteRLKTable writes an RLK-flow classification table (primary or
// secondary, same schema).
//
//	Name  Type  ECD  KD_count
func WriteRLKTable(path string, rows []model.Classification) error {
	var buf bytes.Buffer
	buf.WriteString("Name\tType\tECD\tKD_count\n")

	for _, row := range rows {
		fmt.Fprintf(&buf, "%s\t%s\t%s\t%d\n", row.Protein, row.Class, row.ECD, row.KDCount)
	}

	return writeWhole(path, buf.Bytes())
}

// WriteRLPTable writes the RLP classification table. No kinase concept in
// this flow, so no KD_count column.
//
//	Name  Type  ECD
func WriteRLPTable(path string, rows []model.Classification) error {
	var buf bytes.Buffer
	buf.WriteString("Name\tType\tECD\n")

	for _, row := range rows {
		fmt.Fprintf(&buf, "%s\t%s\t%s\n", row.Protein, row.Class, row.ECD)
	}

	return writeWhole(path, buf.Bytes())
}

func writeWhole(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write table %s: %w", path, err)
	}
	return nil
}

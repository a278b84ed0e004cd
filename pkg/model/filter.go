package model

import (
	"sort"

	"github.com/yumyai/rlkscan/logger"
	"go.uber.org/zap"
)

// SortByEValue orders every protein's hits ascending by e-value. The sort is
// stable so that ties keep the report order, which decides who claims
// territory first in FilterOverlaps.
func SortByEValue(hits HitTable) {
	for _, list := range hits {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].EValue < list[j].EValue
		})
	}
}

// FilterOverlaps walks each protein's e-value-sorted hits and keeps a hit
// only when its range does not touch any position already claimed by a more
// significant hit. Running it again on its own output drops nothing.
func FilterOverlaps(hits HitTable) {
	for protein, list := range hits {
		claimed := NewIntervalSet()
		kept := list[:0]

		for _, hit := range list {
			span := NewIntervalSet()
			if err := span.AddRange(hit.Start, hit.End); err != nil {
				logger.Warn("Skipping hit with reversed bounds",
					zap.String("protein", protein),
					zap.String("label", hit.Label),
					zap.Error(err))
				continue
			}
			if !claimed.Intersect(span).IsEmpty() {
				continue
			}
			_ = claimed.AddRange(hit.Start, hit.End)
			kept = append(kept, hit)
		}

		hits[protein] = kept
	}
}

// SortByStart orders every protein's surviving hits by start position, so
// the classifier sees domains in N-to-C order.
func SortByStart(hits HitTable) {
	for _, list := range hits {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Start < list[j].Start
		})
	}
}

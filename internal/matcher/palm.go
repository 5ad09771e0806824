package matcher

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

// loweRatio is the nearest/second-nearest cutoff for Lowe's ratio test.
// A nearest neighbor only counts as a good match when it is clearly
// closer than the runner-up.
const loweRatio = 0.75

// ComparePalm compares two ORB descriptor sets. For every row of a it
// finds the two nearest rows of b by Hamming distance and applies Lowe's
// ratio test; the score is goodMatches / min(|a|,|b|). Higher ratio is
// better; a candidate matches when ratio >= threshold.
//
// Rows of a cannot run the ratio test when b has fewer than two rows;
// they simply contribute no good match. An empty side yields ratio 0.0
// and never matches.
func ComparePalm(a, b domain.PalmDescriptors, threshold float64) Comparison {
	if err := validateDescriptors(a); err != nil {
		return Comparison{Outcome: Failed, Err: err}
	}
	if err := validateDescriptors(b); err != nil {
		return Comparison{Outcome: Failed, Err: err}
	}

	total := min(len(a), len(b))
	if total == 0 {
		return Comparison{Outcome: NoMatch, Score: 0.0}
	}

	good := 0
	if len(b) >= 2 {
		for _, row := range a {
			nearest, second := twoNearest(row, b)
			if float64(nearest) < loweRatio*float64(second) {
				good++
			}
		}
	}

	ratio := float64(good) / float64(total)

	outcome := NoMatch
	if ratio >= threshold {
		outcome = Match
	}

	return Comparison{Outcome: outcome, Score: ratio}
}

// twoNearest returns the two smallest Hamming distances from row to the
// rows of set. Caller guarantees len(set) >= 2.
func twoNearest(row []byte, set domain.PalmDescriptors) (nearest, second int) {
	nearest, second = math.MaxInt, math.MaxInt
	for _, candidate := range set {
		d := hamming(row, candidate)
		switch {
		case d < nearest:
			second = nearest
			nearest = d
		case d < second:
			second = d
		}
	}
	return nearest, second
}

// hamming counts differing bits between two 32-byte descriptor rows,
// four uint64 words at a time.
func hamming(a, b []byte) int {
	count := 0
	for off := 0; off < domain.DescriptorWidth; off += 8 {
		wa := binary.LittleEndian.Uint64(a[off:])
		wb := binary.LittleEndian.Uint64(b[off:])
		count += bits.OnesCount64(wa ^ wb)
	}
	return count
}

func validateDescriptors(d domain.PalmDescriptors) error {
	for i, row := range d {
		if len(row) != domain.DescriptorWidth {
			return fmt.Errorf("descriptor row %d has %d bytes, want %d", i, len(row), domain.DescriptorWidth)
		}
	}
	return nil
}

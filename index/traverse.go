package index

import "github.com/gasparian/onex-go/distance"

// TraverseOrder returns the group lengths that must be examined for a query
// of queryLength, expanding outward from queryLength while the Sakoe-Chiba
// band of the longer of the two lengths (queryLength for shorter candidates,
// the candidate itself for longer ones) still spans the difference. totalLength
// is the maximum sub-sequence length present in the dataset (inclusive).
func TraverseOrder(queryLength, totalLength int, bandRatio float64) []int {
	order := []int{queryLength}
	low := queryLength - 1
	high := queryLength + 1
	lowStop := low < 2
	highStop := high > totalLength

	for !(lowStop && highStop) {
		if !lowStop {
			r := distance.BandSize(queryLength, bandRatio)
			if low+r >= queryLength {
				order = append(order, low)
				low--
				if low < 2 {
					lowStop = true
				}
			} else {
				lowStop = true
			}
		}

		if !highStop {
			r := distance.BandSize(high, bandRatio)
			if queryLength+r >= high {
				order = append(order, high)
				high++
				if high > totalLength {
					highStop = true
				}
			} else {
				highStop = true
			}
		}
	}
	return order
}

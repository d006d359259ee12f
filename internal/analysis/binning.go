package analysis

import (
	"math"
	"sort"

	"goeda/domain/report"
)

// SturgesBinCount picks a histogram bin count from the sample size:
// ceil(log2(n)) + 1, with a floor of one bin
func SturgesBinCount(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// Histogram bins values into binCount equal-width intervals. Bin i covers
// [min+i*width, min+(i+1)*width); the last bin is closed at max, and a value
// sitting exactly on an interior boundary falls into the upper bin.
//
// Degenerate inputs fall back rather than failing: an empty value sequence
// yields zero bins, and max == min yields a single closed bin [v, v]
// holding every value.
func Histogram(values []float64, binCount int) []report.Bin {
	return HistogramWithLabel(values, nil, binCount)
}

// HistogramWithLabel is Histogram with an aligned label sequence: labels[i]
// belongs to values[i]. Labels equal to 1 count positive and 0 negative;
// any other label (including NaN for unlabeled rows) is excluded from the
// rate. Bins that received at least one labeled value carry a positive
// rate; pass nil labels for plain frequency bins.
func HistogramWithLabel(values, labels []float64, binCount int) []report.Bin {
	if len(values) == 0 || binCount <= 0 {
		return nil
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	if minVal == maxVal {
		bins := []report.Bin{{Lower: minVal, Upper: maxVal}}
		attachRates(bins, values, labels, func(float64) int { return 0 })
		return bins
	}

	width := (maxVal - minVal) / float64(binCount)
	bins := make([]report.Bin, binCount)
	for i := range bins {
		bins[i].Lower = minVal + float64(i)*width
		bins[i].Upper = minVal + float64(i+1)*width
	}
	// The last interval is closed at the observed max
	bins[binCount-1].Upper = maxVal

	assign := func(v float64) int {
		idx := int((v - minVal) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}
	attachRates(bins, values, labels, assign)

	return bins
}

// attachRates assigns each value to its bin, counting frequencies and label
// outcomes, then fills per-bin positive rates where labeled rows landed
func attachRates(bins []report.Bin, values, labels []float64, assign func(float64) int) {
	positives := make([]int, len(bins))
	labeled := make([]int, len(bins))

	for i, v := range values {
		idx := assign(v)
		bins[idx].Count++
		if labels == nil {
			continue
		}
		switch labels[i] {
		case 1:
			positives[idx]++
			labeled[idx]++
		case 0:
			labeled[idx]++
		}
	}

	for i := range bins {
		if labeled[i] > 0 {
			rate := float64(positives[i]) / float64(labeled[i])
			bins[i].PositiveRate = &rate
		}
	}
}

// QuantileBins partitions values into binCount equal-frequency chunks:
// ascending sort, contiguous chunks of ceil(n/binCount) values, last chunk
// possibly shorter. Bin bounds are each chunk's observed min and max, not
// theoretical boundaries, so adjacent bins may share a bound on heavily
// duplicated inputs. Fewer than binCount bins come back when n < binCount.
// An empty value sequence yields zero bins.
func QuantileBins(values []float64, binCount int) []report.Bin {
	return QuantileBinsWithLabel(values, nil, binCount)
}

// QuantileBinsWithLabel is QuantileBins with an aligned label sequence,
// interpreted as in HistogramWithLabel. Labels travel with their values
// through the sort.
func QuantileBinsWithLabel(values, labels []float64, binCount int) []report.Bin {
	if len(values) == 0 || binCount <= 0 {
		return nil
	}

	type pair struct {
		value float64
		label float64
	}
	pairs := make([]pair, len(values))
	for i, v := range values {
		pairs[i].value = v
		if labels != nil {
			pairs[i].label = labels[i]
		} else {
			pairs[i].label = math.NaN()
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	chunkSize := int(math.Ceil(float64(len(pairs)) / float64(binCount)))

	var bins []report.Bin
	for start := 0; start < len(pairs); start += chunkSize {
		end := start + chunkSize
		if end > len(pairs) {
			end = len(pairs)
		}
		chunk := pairs[start:end]

		bin := report.Bin{
			Lower: chunk[0].value,
			Upper: chunk[len(chunk)-1].value,
			Count: len(chunk),
		}

		positives, labeled := 0, 0
		for _, p := range chunk {
			switch p.label {
			case 1:
				positives++
				labeled++
			case 0:
				labeled++
			}
		}
		if labeled > 0 {
			rate := float64(positives) / float64(labeled)
			bin.PositiveRate = &rate
		}

		bins = append(bins, bin)
	}

	return bins
}

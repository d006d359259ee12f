package analysis

import (
	"math"
	"testing"
)

func TestSturgesBinCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{100, 8},
		{891, 11},
	}

	for _, tt := range tests {
		if got := SturgesBinCount(tt.n); got != tt.want {
			t.Errorf("Expected %d bins for n=%d, got %d", tt.want, tt.n, got)
		}
	}
}

func TestHistogram_EqualWidth(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	bins := Histogram(values, 5)

	if len(bins) != 5 {
		t.Fatalf("Expected 5 bins, got %d", len(bins))
	}

	// Width 2 over [0, 10]: boundary values land in the upper bin, the
	// observed max closes the last bin
	wantCounts := []int{2, 2, 2, 2, 3}
	total := 0
	for i, bin := range bins {
		if bin.Count != wantCounts[i] {
			t.Errorf("Expected bin %d count %d, got %d", i, wantCounts[i], bin.Count)
		}
		total += bin.Count
	}
	if total != len(values) {
		t.Errorf("Expected counts to sum to %d, got %d", len(values), total)
	}

	if bins[0].Lower != 0 || bins[0].Upper != 2 {
		t.Errorf("Expected first bin [0, 2), got [%f, %f)", bins[0].Lower, bins[0].Upper)
	}
	if bins[4].Upper != 10 {
		t.Errorf("Expected last bin closed at 10, got %f", bins[4].Upper)
	}
}

func TestHistogram_InteriorBoundaryGoesUp(t *testing.T) {
	// min=0 max=4, 2 bins of width 2: the value 2 sits exactly on the
	// interior boundary and belongs to the upper bin
	bins := Histogram([]float64{0, 2, 4}, 2)

	if bins[0].Count != 1 {
		t.Errorf("Expected lower bin to hold only 0, got count %d", bins[0].Count)
	}
	if bins[1].Count != 2 {
		t.Errorf("Expected upper bin to hold 2 and 4, got count %d", bins[1].Count)
	}
}

func TestHistogram_MaxInLastBin(t *testing.T) {
	bins := Histogram([]float64{1, 2, 3, 4, 5}, 4)

	last := bins[len(bins)-1]
	if last.Count == 0 {
		t.Error("Expected the observed max inside the final closed bin")
	}
	if last.Upper != 5 {
		t.Errorf("Expected final bin upper bound 5, got %f", last.Upper)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	t.Run("empty values", func(t *testing.T) {
		if bins := Histogram(nil, 5); bins != nil {
			t.Errorf("Expected zero bins for no values, got %d", len(bins))
		}
	})

	t.Run("zero bin count", func(t *testing.T) {
		if bins := Histogram([]float64{1, 2}, 0); bins != nil {
			t.Errorf("Expected zero bins for bin count 0, got %d", len(bins))
		}
	})

	t.Run("single repeated value", func(t *testing.T) {
		bins := Histogram([]float64{7, 7, 7}, 4)
		if len(bins) != 1 {
			t.Fatalf("Expected a single degenerate bin, got %d", len(bins))
		}
		if bins[0].Lower != 7 || bins[0].Upper != 7 || bins[0].Count != 3 {
			t.Errorf("Expected closed bin [7, 7] with count 3, got %+v", bins[0])
		}
	})
}

func TestHistogramWithLabel_Rates(t *testing.T) {
	// Bin width 2 over [0, 4): values 0,1 in the lower bin, 2,3,4 in the
	// upper. Lower bin labels: 1 and 0 -> 50%. Upper bin: 1, NaN, 0 -> the
	// unlabeled value is excluded, 50%.
	values := []float64{0, 1, 2, 3, 4}
	labels := []float64{1, 0, 1, math.NaN(), 0}

	bins := HistogramWithLabel(values, labels, 2)

	if len(bins) != 2 {
		t.Fatalf("Expected 2 bins, got %d", len(bins))
	}
	for i, bin := range bins {
		if bin.PositiveRate == nil {
			t.Fatalf("Expected a rate on bin %d", i)
		}
		if *bin.PositiveRate != 0.5 {
			t.Errorf("Expected rate 0.5 on bin %d, got %f", i, *bin.PositiveRate)
		}
	}
}

func TestHistogramWithLabel_UnlabeledBinHasNoRate(t *testing.T) {
	values := []float64{0, 10}
	labels := []float64{1, math.NaN()}

	bins := HistogramWithLabel(values, labels, 2)

	if bins[0].PositiveRate == nil || *bins[0].PositiveRate != 1 {
		t.Error("Expected rate 1 on the labeled bin")
	}
	if bins[1].PositiveRate != nil {
		t.Errorf("Expected no rate on the unlabeled bin, got %f", *bins[1].PositiveRate)
	}
}

func TestHistogram_NilLabelsMeansNoRates(t *testing.T) {
	for _, bin := range Histogram([]float64{1, 2, 3, 4}, 2) {
		if bin.PositiveRate != nil {
			t.Error("Expected frequency-only bins without labels")
		}
	}
}

func TestQuantileBins_CeilChunks(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}

	bins := QuantileBins(values, 3)

	// ceil(10/3) = 4 values per chunk: 4, 4, then the 2 left over
	if len(bins) != 3 {
		t.Fatalf("Expected 3 bins, got %d", len(bins))
	}

	wantCounts := []int{4, 4, 2}
	wantBounds := [][2]float64{{1, 4}, {5, 8}, {9, 10}}
	for i, bin := range bins {
		if bin.Count != wantCounts[i] {
			t.Errorf("Expected bin %d count %d, got %d", i, wantCounts[i], bin.Count)
		}
		if bin.Lower != wantBounds[i][0] || bin.Upper != wantBounds[i][1] {
			t.Errorf("Expected bin %d bounds [%f, %f], got [%f, %f]",
				i, wantBounds[i][0], wantBounds[i][1], bin.Lower, bin.Upper)
		}
	}
}

func TestQuantileBins_FewerValuesThanBins(t *testing.T) {
	bins := QuantileBins([]float64{3, 1}, 5)

	if len(bins) != 2 {
		t.Fatalf("Expected 2 single-value bins, got %d", len(bins))
	}
	if bins[0].Lower != 1 || bins[0].Upper != 1 || bins[1].Lower != 3 || bins[1].Upper != 3 {
		t.Errorf("Expected bins [1, 1] and [3, 3], got %+v", bins)
	}
}

func TestQuantileBins_DuplicatesMayShareBounds(t *testing.T) {
	bins := QuantileBins([]float64{5, 5, 5, 5, 1, 9}, 3)

	if len(bins) != 3 {
		t.Fatalf("Expected 3 bins, got %d", len(bins))
	}
	// Sorted [1 5 5 5 5 9] in chunks of 2: [1 5] [5 5] [5 9]
	if bins[0].Upper != 5 || bins[1].Lower != 5 {
		t.Errorf("Expected adjacent bins sharing the bound 5, got %+v", bins)
	}
}

func TestQuantileBins_Empty(t *testing.T) {
	if bins := QuantileBins(nil, 4); bins != nil {
		t.Errorf("Expected zero bins for no values, got %d", len(bins))
	}
}

func TestQuantileBinsWithLabel_Rates(t *testing.T) {
	// Sorted pairs: (1,0) (2,1) | (3,1) (4,1) -> rates 0.5 and 1.0
	values := []float64{4, 3, 2, 1}
	labels := []float64{1, 1, 1, 0}

	bins := QuantileBinsWithLabel(values, labels, 2)

	if len(bins) != 2 {
		t.Fatalf("Expected 2 bins, got %d", len(bins))
	}
	if bins[0].PositiveRate == nil || *bins[0].PositiveRate != 0.5 {
		t.Errorf("Expected rate 0.5 on the first bin, got %+v", bins[0])
	}
	if bins[1].PositiveRate == nil || *bins[1].PositiveRate != 1.0 {
		t.Errorf("Expected rate 1.0 on the second bin, got %+v", bins[1])
	}
}

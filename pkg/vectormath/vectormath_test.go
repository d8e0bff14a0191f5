package vectormath

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 2},
			b:    []float64{-1, -2},
			want: -1,
		},
		{
			name: "zero vector left",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "zero vector right",
			a:    []float64{1, 2, 3},
			b:    []float64{0, 0, 0},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	vecs := [][]float64{
		{0.3, 0.7, 0.1},
		{-1, 5, 2},
		{100, 0.001, -3},
	}
	for _, a := range vecs {
		for _, b := range vecs {
			got := CosineSimilarity(a, b)
			if got < -1-1e-9 || got > 1+1e-9 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, out of [-1, 1]", a, b, got)
			}
		}
		if self := CosineSimilarity(a, a); math.Abs(self-1) > 1e-9 {
			t.Errorf("CosineSimilarity(a, a) = %v, want 1", self)
		}
	}
}

func TestCosineSimilarityMismatchedLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched lengths")
		}
	}()
	CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
}

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want float64
	}{
		{
			name: "perfect positive correlation",
			x:    []float64{1, 2, 3, 4},
			y:    []float64{2, 4, 6, 8},
			want: 1,
		},
		{
			name: "perfect negative correlation",
			x:    []float64{1, 2, 3},
			y:    []float64{3, 2, 1},
			want: -1,
		},
		{
			name: "no variance in x",
			x:    []float64{2, 2, 2},
			y:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "no variance in y",
			x:    []float64{1, 2, 3},
			y:    []float64{5, 5, 5},
			want: 0,
		},
		{
			name: "empty series",
			x:    nil,
			y:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PearsonCorrelation(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PearsonCorrelation() = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("PearsonCorrelation() = %v, must be finite", got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{
			name:   "scales to unit range",
			values: []float64{2, 4, 6},
			want:   []float64{0, 0.5, 1},
		},
		{
			name:   "all equal returns input unchanged",
			values: []float64{3, 3, 3},
			want:   []float64{3, 3, 3},
		},
		{
			name:   "empty",
			values: nil,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Normalize()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []float64{1, 2, 3}
	Normalize(in)
	if in[0] != 1 || in[1] != 2 || in[2] != 3 {
		t.Errorf("Normalize mutated its input: %v", in)
	}
}

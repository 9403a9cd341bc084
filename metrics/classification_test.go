package metrics

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect predictions",
			yTrue: []int{0, 1, 2, 1},
			yPred: []int{0, 1, 2, 1},
			want:  1.0,
		},
		{
			name:  "Half correct",
			yTrue: []int{0, 0, 1, 1},
			yPred: []int{0, 1, 0, 1},
			want:  0.5,
		},
		{
			name:  "All wrong",
			yTrue: []int{0, 0},
			yPred: []int{1, 1},
			want:  0.0,
		},
		{
			name:    "Empty input",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
		{
			name:    "Length mismatch",
			yTrue:   []int{0, 1},
			yPred:   []int{0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Accuracy() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Accuracy() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 1, 2}
	yPred := []int{0, 1, 1, 1, 0, 2}

	cm, err := ConfusionMatrix(yTrue, yPred, 3)
	if err != nil {
		t.Fatalf("ConfusionMatrix() error = %v", err)
	}

	want := [][]float64{
		{1, 1, 0},
		{1, 2, 0},
		{0, 0, 1},
	}
	for i := range want {
		for j := range want[i] {
			if got := cm.At(i, j); got != want[i][j] {
				t.Errorf("cm[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestConfusionMatrixOutOfRange(t *testing.T) {
	if _, err := ConfusionMatrix([]int{0, 3}, []int{0, 0}, 2); err == nil {
		t.Error("ConfusionMatrix() error = nil for out-of-range true label")
	}
	if _, err := ConfusionMatrix([]int{0, 1}, []int{0, -1}, 2); err == nil {
		t.Error("ConfusionMatrix() error = nil for out-of-range predicted label")
	}
}

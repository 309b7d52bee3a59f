package align

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dsmod/dsp/deltasigma"
	"github.com/cwbudde/algo-dsmod/internal/testutil"
)

func TestRMSE(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, -2, 3}, []float64{1, -2, 3}, 0},
		{"empty", nil, nil, 0},
		{"known", []float64{0, 0}, []float64{3, 4}, math.Sqrt(12.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSE(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}

			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RMSE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSELengthMismatch(t *testing.T) {
	_, err := RMSE([]float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestTruncate(t *testing.T) {
	a, b := Truncate([]float64{1, 2, 3}, []float64{4, 5})

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("lengths = %d, %d, want 2, 2", len(a), len(b))
	}

	if a[1] != 2 || b[1] != 5 {
		t.Errorf("unexpected values: %v, %v", a, b)
	}
}

func TestBestOffsetValidation(t *testing.T) {
	pulses := testutil.AlternatingPulses(deltasigma.FullScale, 2, 64)

	_, err := BestOffset(pulses, []float64{0}, 0)
	if err == nil {
		t.Error("expected error for zero max offset")
	}

	_, err = BestOffset(pulses, []float64{0}, 10, WithLeak(2))
	if err == nil {
		t.Error("expected error for invalid leak")
	}

	_, err = BestOffset(pulses, []float64{0}, 10, WithParallelism(0))
	if err == nil {
		t.Error("expected error for zero parallelism")
	}
}

func TestBestOffsetEmptyPulses(t *testing.T) {
	res, err := BestOffset(nil, []float64{1, 2}, 10)
	if err != nil {
		t.Fatal(err)
	}

	if res.Offset != 0 || res.RMSE != 0 || len(res.Reconstructed) != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestBestOffsetNeverWorseThanZero(t *testing.T) {
	signal := testutil.DeterministicSine(1000, 44100, 10000, 200)
	pulses := deltasigma.ModulateFirstOrder(deltasigma.Sharpen(signal))

	res, err := BestOffset(pulses, signal, 64)
	if err != nil {
		t.Fatal(err)
	}

	// Baseline: the same demodulation path at offset zero.
	approx, err := deltasigma.Demodulate(pulses, deltasigma.DefaultLeakFirstOrder)
	if err != nil {
		t.Fatal(err)
	}

	a, b := Truncate(signal, approx)

	base, err := RMSE(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if res.RMSE > base {
		t.Errorf("best RMSE %v worse than offset-0 RMSE %v", res.RMSE, base)
	}

	if res.Offset < 0 || res.Offset >= 64 {
		t.Errorf("offset %d out of range", res.Offset)
	}

	if len(res.Reconstructed) != len(signal) {
		t.Errorf("reconstructed len = %d, want %d", len(res.Reconstructed), len(signal))
	}
}

func TestBestOffsetParallelismAgrees(t *testing.T) {
	signal := testutil.DeterministicSine(2000, 44100, 8000, 100)
	pulses := deltasigma.ModulateSecondOrder(deltasigma.Interpolate(signal))

	sequential, err := BestOffset(pulses, signal, 50,
		WithLeak(deltasigma.DefaultLeakSecondOrder), WithParallelism(1))
	if err != nil {
		t.Fatal(err)
	}

	parallel, err := BestOffset(pulses, signal, 50,
		WithLeak(deltasigma.DefaultLeakSecondOrder), WithParallelism(8))
	if err != nil {
		t.Fatal(err)
	}

	if sequential.Offset != parallel.Offset || sequential.RMSE != parallel.RMSE {
		t.Errorf("sequential (%d, %v) != parallel (%d, %v)",
			sequential.Offset, sequential.RMSE, parallel.Offset, parallel.RMSE)
	}
}

func BenchmarkBestOffset(b *testing.B) {
	signal := testutil.DeterministicSine(1000, 44100, 10000, 200)
	pulses := deltasigma.ModulateFirstOrder(deltasigma.Sharpen(signal))

	b.ReportAllocs()

	for b.Loop() {
		_, err := BestOffset(pulses, signal, 32)
		if err != nil {
			b.Fatal(err)
		}
	}
}

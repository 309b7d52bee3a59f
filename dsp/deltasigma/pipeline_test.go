package deltasigma

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-dsmod/internal/testutil"
)

func TestNewPipelineDefaults(t *testing.T) {
	pipe, err := NewPipeline()
	if err != nil {
		t.Fatal(err)
	}

	if pipe.Order() != OrderSecond {
		t.Errorf("Order() = %v, want OrderSecond", pipe.Order())
	}

	if pipe.Method() != MethodInterpolate {
		t.Errorf("Method() = %v, want MethodInterpolate", pipe.Method())
	}

	k1, k2, k3 := pipe.Leaks()
	if k1 != DefaultLeakSecondOrder || k2 != DefaultLeakSecondOrder || k3 != DefaultLeakSecondOrder {
		t.Errorf("Leaks() = %v, %v, %v, want all %v", k1, k2, k3, DefaultLeakSecondOrder)
	}

	if pipe.ReduceWindow() != 0 {
		t.Errorf("ReduceWindow() = %d, want 0", pipe.ReduceWindow())
	}
}

func TestNewPipelineFirstOrderPairing(t *testing.T) {
	pipe, err := NewPipeline(WithOrder(OrderFirst))
	if err != nil {
		t.Fatal(err)
	}

	if pipe.Method() != MethodSharpen {
		t.Errorf("Method() = %v, want MethodSharpen", pipe.Method())
	}

	k1, _, _ := pipe.Leaks()
	if k1 != DefaultLeakFirstOrder {
		t.Errorf("leak = %v, want %v", k1, DefaultLeakFirstOrder)
	}
}

func TestNewPipelineOverrides(t *testing.T) {
	pipe, err := NewPipeline(
		WithOrder(OrderFirst),
		WithMethod(MethodInterpolate),
		WithLeak(0.5),
	)
	if err != nil {
		t.Fatal(err)
	}

	if pipe.Method() != MethodInterpolate {
		t.Errorf("Method() = %v, want MethodInterpolate", pipe.Method())
	}

	k1, k2, k3 := pipe.Leaks()
	if k1 != 0.5 || k2 != 0.5 || k3 != 0.5 {
		t.Errorf("Leaks() = %v, %v, %v, want all 0.5", k1, k2, k3)
	}
}

func TestNewPipelineValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bad order", []Option{WithOrder(Order(7))}},
		{"bad method", []Option{WithMethod(Method(7))}},
		{"bad leak", []Option{WithLeak(1.5)}},
		{"bad stage leak", []Option{WithStageLeaks(0.5, -1, 0.5)}},
		{"bad window", []Option{WithReduceWindow(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.opts...)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPipelineNilOption(t *testing.T) {
	pipe, err := NewPipeline(nil, WithOrder(OrderFirst), nil)
	if err != nil {
		t.Fatal(err)
	}

	if pipe.Order() != OrderFirst {
		t.Errorf("Order() = %v, want OrderFirst", pipe.Order())
	}
}

func TestPipelineQuantizeLengths(t *testing.T) {
	signal := testutil.DeterministicSine(1000, 44100, 10000, 100)

	for _, order := range []Order{OrderFirst, OrderSecond} {
		pipe, err := NewPipeline(WithOrder(order))
		if err != nil {
			t.Fatal(err)
		}

		pulses := pipe.Quantize(signal)
		if len(pulses) != len(signal)*Oversample {
			t.Errorf("%v: pulse len = %d, want %d", order, len(pulses), len(signal)*Oversample)
		}

		testutil.RequireBinary(t, pulses, FullScale)

		approx := pipe.Dequantize(pulses)
		if len(approx) != len(signal) {
			t.Errorf("%v: reconstructed len = %d, want %d", order, len(approx), len(signal))
		}
	}
}

func TestPipelineQuantizeWithReduction(t *testing.T) {
	pipe, err := NewPipeline(WithReduceWindow(48))
	if err != nil {
		t.Fatal(err)
	}

	// 10 samples give 320 pulses; reduction pads up to 336.
	pulses := pipe.Quantize(testutil.DeterministicSine(1000, 44100, 10000, 10))
	if len(pulses) != 336 {
		t.Errorf("pulse len = %d, want 336", len(pulses))
	}

	testutil.RequireBinary(t, pulses, FullScale)
}

func TestPipelineRoundTripQuality(t *testing.T) {
	// A band-limited tone must come back substantially better than
	// silence would: the modulator/demodulator pair is not just passing
	// shaped noise.
	signal := testutil.DeterministicSine(1000, 44100, 10000, 1000)

	pipe, err := NewPipeline(WithOrder(OrderSecond))
	if err != nil {
		t.Fatal(err)
	}

	original, approx := pipe.RoundTrip(signal)

	var errSq, sigSq float64
	for i := range original {
		d := original[i] - approx[i]
		errSq += d * d
		sigSq += original[i] * original[i]
	}

	rmse := math.Sqrt(errSq / float64(len(original)))
	rms := math.Sqrt(sigSq / float64(len(original)))

	testutil.RequireFinite(t, approx)

	if rmse >= rms/2 {
		t.Errorf("round-trip RMSE = %v, want well below signal RMS %v", rmse, rms)
	}
}

func TestPipelineEmptySignal(t *testing.T) {
	pipe, err := NewPipeline()
	if err != nil {
		t.Fatal(err)
	}

	if got := pipe.Quantize(nil); len(got) != 0 {
		t.Errorf("Quantize(nil) len = %d, want 0", len(got))
	}

	if got := pipe.Dequantize(nil); len(got) != 0 {
		t.Errorf("Dequantize(nil) len = %d, want 0", len(got))
	}
}

func TestOrderString(t *testing.T) {
	if OrderFirst.String() != "FirstOrder" || OrderSecond.String() != "SecondOrder" {
		t.Errorf("got %q, %q", OrderFirst.String(), OrderSecond.String())
	}

	if Order(0).Valid() {
		t.Error("Order(0) should not be valid")
	}
}

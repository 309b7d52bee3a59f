package align

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-dsmod/dsp/deltasigma"
)

// ErrLengthMismatch indicates that the two signals passed to [RMSE] differ
// in length. Callers comparing a reconstruction against its original must
// truncate both to the shared length first (see [Truncate]); RMSE never
// truncates silently.
var ErrLengthMismatch = errors.New("align: length mismatch")

// RMSE returns the root-mean-square error between two equal-length
// signals. Two empty signals compare as 0.
func RMSE(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	if len(a) == 0 {
		return 0, nil
	}

	var sumSq float64
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(a))), nil
}

// Truncate trims both signals to their shared length. It returns subslices
// of the inputs; no samples are copied.
func Truncate(a, b []float64) ([]float64, []float64) {
	n := min(len(a), len(b))
	return a[:n], b[:n]
}

// Result holds the outcome of a [BestOffset] search.
type Result struct {
	// Offset is the circular left rotation of the pulse stream that
	// minimized RMSE. Ties resolve to the lowest offset.
	Offset int
	// RMSE is the error at that offset.
	RMSE float64
	// Reconstructed is the demodulated signal at the winning offset,
	// truncated to the original's length.
	Reconstructed []float64
}

type searchConfig struct {
	k1, k2, k3 float64
	workers    int
}

// SearchOption configures a [BestOffset] search.
type SearchOption func(*searchConfig) error

// WithLeak sets the leak coefficient used by the per-offset demodulation
// passes (default [deltasigma.DefaultLeakFirstOrder]).
func WithLeak(k float64) SearchOption {
	return WithStageLeaks(k, k, k)
}

// WithStageLeaks sets independent per-stage leak coefficients for the
// demodulation passes.
func WithStageLeaks(k1, k2, k3 float64) SearchOption {
	return func(cfg *searchConfig) error {
		for _, k := range [...]float64{k1, k2, k3} {
			if !(k > 0 && k < 1) {
				return fmt.Errorf("align: leak coefficient must be in (0, 1): %f", k)
			}
		}

		cfg.k1, cfg.k2, cfg.k3 = k1, k2, k3

		return nil
	}
}

// WithParallelism bounds the number of concurrent demodulation workers
// (default runtime.NumCPU). The result is identical for any worker count.
func WithParallelism(n int) SearchOption {
	return func(cfg *searchConfig) error {
		if n <= 0 {
			return fmt.Errorf("align: parallelism must be > 0: %d", n)
		}

		cfg.workers = n

		return nil
	}
}

// BestOffset tries every circular left rotation of pulses in
// [0, maxOffset), demodulates each, and returns the offset minimizing the
// RMSE against original (both sides truncated to their shared length).
// Each rotation gets fresh demodulator state, so the search result never
// depends on evaluation order.
func BestOffset(pulses, original []float64, maxOffset int, opts ...SearchOption) (Result, error) {
	cfg := searchConfig{
		k1:      deltasigma.DefaultLeakFirstOrder,
		k2:      deltasigma.DefaultLeakFirstOrder,
		k3:      deltasigma.DefaultLeakFirstOrder,
		workers: runtime.NumCPU(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return Result{}, err
		}
	}

	if maxOffset <= 0 {
		return Result{}, fmt.Errorf("align: max offset must be > 0: %d", maxOffset)
	}

	if len(pulses) == 0 {
		return Result{Reconstructed: []float64{}}, nil
	}

	errs := make([]float64, maxOffset)

	var wg sync.WaitGroup

	workers := min(cfg.workers, maxOffset)
	for w := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			rotated := make([]float64, len(pulses))

			for offset := w; offset < maxOffset; offset += workers {
				rotateInto(rotated, pulses, offset)
				errs[offset] = offsetRMSE(rotated, original, cfg)
			}
		}()
	}

	wg.Wait()

	best := 0
	for offset, e := range errs {
		if e < errs[best] {
			best = offset
		}
	}

	// One more pass to materialize the winning reconstruction.
	rotated := make([]float64, len(pulses))
	rotateInto(rotated, pulses, best)

	approx := demodulate(rotated, cfg)
	trimmed, _ := Truncate(approx, original)

	return Result{Offset: best, RMSE: errs[best], Reconstructed: trimmed}, nil
}

func demodulate(pulses []float64, cfg searchConfig) []float64 {
	d, err := deltasigma.NewDemodulatorStages(cfg.k1, cfg.k2, cfg.k3)
	if err != nil {
		return []float64{}
	}

	return d.Process(pulses)
}

func offsetRMSE(rotated, original []float64, cfg searchConfig) float64 {
	a, b := Truncate(original, demodulate(rotated, cfg))

	e, err := RMSE(a, b)
	if err != nil {
		return math.Inf(1)
	}

	return e
}

// rotateInto writes the circular left rotation of src by offset into dst.
func rotateInto(dst, src []float64, offset int) {
	offset %= len(src)
	n := copy(dst, src[offset:])
	copy(dst[n:], src[:offset])
}

// Package noisespec measures how a delta-sigma modulator distributes
// quantization noise across frequency.
//
// Oversampled noise shaping only pays off if the quantization noise ends
// up above the band of interest, where the reconstruction filter removes
// it. Analyze computes the power spectrum of a pulse stream (or any
// signal) and splits it at the in-band edge, the fraction 1/(2*Oversample)
// of the pulse-rate spectrum that maps onto the base-rate band. Comparing
// the in-band noise fraction of first- and second-order modulator output
// makes the steeper shaping of the second-order loop directly visible.
package noisespec

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsmod/dsp/deltasigma"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Config holds analysis parameters.
type Config struct {
	// FFTSize is the transform length. Zero selects the next power of
	// two at or above the signal length.
	FFTSize int
	// Oversample is the oversampling factor defining the in-band edge.
	// Zero selects [deltasigma.Oversample].
	Oversample int
}

// Result holds the band split of a power spectrum.
type Result struct {
	// TotalPower is the summed power of all non-negative-frequency bins.
	TotalPower float64
	// InBandPower is the power at or below the in-band edge.
	InBandPower float64
	// OutBandPower is the power above the in-band edge.
	OutBandPower float64
	// InBandFraction is InBandPower / TotalPower (0 for an all-zero
	// signal).
	InBandFraction float64
	// InBandFractionDB is the fraction expressed in dB (10*log10).
	InBandFractionDB float64
}

// Analyze windows the signal (Hann), transforms it, and splits the power
// spectrum at the in-band edge. An empty signal yields a zero Result.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, nil
	}

	oversample := cfg.Oversample
	if oversample == 0 {
		oversample = deltasigma.Oversample
	}

	if oversample < 1 {
		return Result{}, fmt.Errorf("noisespec: oversample must be >= 1: %d", cfg.Oversample)
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < len(signal) {
		return Result{}, fmt.Errorf("noisespec: FFT size %d smaller than signal length %d", fftSize, len(signal))
	}

	inData := make([]complex128, fftSize)
	for i, x := range signal {
		// Hann window, applied inline.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(signal))))
		inData[i] = complex(x*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("noisespec: %w", err)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, inData)
	if err != nil {
		return Result{}, fmt.Errorf("noisespec: %w", err)
	}

	binCount := fftSize/2 + 1

	re := make([]float64, binCount)
	im := make([]float64, binCount)

	for i := range binCount {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, binCount)
	vecmath.Power(power, re, im)

	// The pulse-rate band [0, Nyquist] folds down to the base-rate band
	// below bin Nyquist/oversample.
	edge := (binCount - 1) / oversample

	var res Result
	for i, p := range power {
		res.TotalPower += p
		if i <= edge {
			res.InBandPower += p
		} else {
			res.OutBandPower += p
		}
	}

	if res.TotalPower > 0 {
		res.InBandFraction = res.InBandPower / res.TotalPower
		res.InBandFractionDB = 10 * math.Log10(res.InBandFraction)
	} else {
		res.InBandFractionDB = math.Inf(-1)
	}

	return res, nil
}

// AnalyzeError computes the band split of the reconstruction error between
// two equal-length signals. Length alignment is the caller's
// responsibility, as with the RMSE evaluator.
func AnalyzeError(original, approx []float64, cfg Config) (Result, error) {
	if len(original) != len(approx) {
		return Result{}, fmt.Errorf("noisespec: length mismatch: %d vs %d", len(original), len(approx))
	}

	diff := make([]float64, len(original))
	for i := range diff {
		diff[i] = original[i] - approx[i]
	}

	return Analyze(diff, cfg)
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}

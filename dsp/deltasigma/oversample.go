package deltasigma

import "fmt"

const (
	// Oversample is the fixed expansion factor between the base sample
	// rate and the pulse rate.
	Oversample = 32

	// FullScale is the magnitude of every pulse emitted by a modulator,
	// matching the positive end of the 16-bit sample range.
	FullScale = 1 << 15
)

// Method selects the oversampling strategy used ahead of modulation.
type Method int

const (
	// MethodInterpolate linearly interpolates between successive input
	// samples. Used by the second-order reference configuration.
	MethodInterpolate Method = iota
	// MethodSharpen extrapolates each sample pair to boost high
	// frequencies before quantization, compensating the attenuation the
	// 1-bit quantizer introduces. Used by the first-order reference
	// configuration.
	MethodSharpen

	methodCount // sentinel for validation
)

var methodNames = [methodCount]string{
	"Interpolate", "Sharpen",
}

// String returns the name of the oversampling method.
func (m Method) String() string {
	if m >= 0 && m < methodCount {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", m)
}

// Valid reports whether m is a known oversampling method.
func (m Method) Valid() bool {
	return m >= 0 && m < methodCount
}

// Upsample expands signal by the Oversample factor using the given method.
// Unknown methods fall back to interpolation. The output length is always
// len(signal) * Oversample; an empty input yields an empty output.
func Upsample(signal []float64, method Method) []float64 {
	if method == MethodSharpen {
		return Sharpen(signal)
	}
	return Interpolate(signal)
}

// Interpolate expands signal by the Oversample factor using linear
// interpolation. Input samples sit at output indices that are multiples of
// Oversample; intermediate indices are interpolated between the bracketing
// pair. The final sample is held since no successor exists.
func Interpolate(signal []float64) []float64 {
	out := make([]float64, len(signal)*Oversample)

	for i, s := range signal {
		base := i * Oversample
		if i == len(signal)-1 {
			for j := range Oversample {
				out[base+j] = s
			}
			break
		}

		step := (signal[i+1] - s) / Oversample
		for j := range Oversample {
			out[base+j] = s + float64(j)*step
		}
	}

	return out
}

// Sharpen expands signal by the Oversample factor using linear
// extrapolation: each consecutive pair (s[i], s[i+1]) contributes the value
// 3*s[i] - 2*s[i+1], repeated Oversample times. Extrapolating against the
// following sample amplifies high frequencies, pre-emphasizing the content
// that 1-bit quantization would otherwise attenuate. The final sample is
// held for the last block.
func Sharpen(signal []float64) []float64 {
	out := make([]float64, len(signal)*Oversample)

	for i, s := range signal {
		v := s
		if i < len(signal)-1 {
			v = 3*s - 2*signal[i+1]
		}

		base := i * Oversample
		for j := range Oversample {
			out[base+j] = v
		}
	}

	return out
}

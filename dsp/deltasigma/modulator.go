package deltasigma

// Modulator is the per-sample interface shared by the 1-bit quantizer
// variants. ProcessSample consumes one oversampled input sample and
// returns either +FullScale or -FullScale; no other magnitude is ever
// produced. Reset clears all loop-carried state.
type Modulator interface {
	ProcessSample(x float64) float64
	Reset()
}

// Modulate runs m over an already-oversampled signal and returns the pulse
// stream. The output has exactly the input's length.
func Modulate(m Modulator, oversampled []float64) []float64 {
	out := make([]float64, len(oversampled))
	for i, x := range oversampled {
		out[i] = m.ProcessSample(x)
	}

	return out
}

// ModulateFirstOrder quantizes an oversampled signal with a fresh
// first-order modulator.
func ModulateFirstOrder(oversampled []float64) []float64 {
	return Modulate(NewFirstOrder(), oversampled)
}

// ModulateSecondOrder quantizes an oversampled signal with a fresh
// second-order modulator.
func ModulateSecondOrder(oversampled []float64) []float64 {
	return Modulate(NewSecondOrder(), oversampled)
}

// FirstOrder is a first-order error-feedback delta-sigma modulator. The
// quantization error of each decision is carried into the next input, so
// the running error never drifts by more than one quantization step for
// in-range input.
type FirstOrder struct {
	err float64
}

// NewFirstOrder returns a first-order modulator with zero error state.
func NewFirstOrder() *FirstOrder {
	return &FirstOrder{}
}

// ProcessSample quantizes one sample to ±FullScale.
//
// The decision threshold is inclusive (inp >= 0 goes high). This differs
// from the second-order variant's strict comparison on purpose; the tie
// direction is part of each loop's noise-shaping behavior.
func (m *FirstOrder) ProcessSample(x float64) float64 {
	inp := x + m.err

	out := float64(-FullScale)
	if inp >= 0 {
		out = FullScale
	}

	m.err = inp - out

	return out
}

// Reset clears the carried quantization error.
func (m *FirstOrder) Reset() {
	m.err = 0
}

// SecondOrder is a second-order delta-sigma modulator built from two
// cascaded integrators with a sign-based decision. Second-order shaping
// pushes quantization noise further out of band than first-order error
// feedback at the same oversampling factor.
type SecondOrder struct {
	integrator  float64
	integrator2 float64
}

// NewSecondOrder returns a second-order modulator with zero integrator
// state.
func NewSecondOrder() *SecondOrder {
	return &SecondOrder{}
}

// ProcessSample quantizes one sample to ±FullScale.
//
// The decision reads integrator2 before this step's updates; feeding the
// pre-update value into the comparison is what makes the loop second
// order. Ties (integrator2 == 0) go low.
func (m *SecondOrder) ProcessSample(x float64) float64 {
	m.integrator += x

	delta := float64(-FullScale)
	if m.integrator2 > 0 {
		delta = FullScale
	}

	m.integrator -= delta
	m.integrator2 += m.integrator - delta

	return delta
}

// Reset clears both integrators.
func (m *SecondOrder) Reset() {
	m.integrator = 0
	m.integrator2 = 0
}

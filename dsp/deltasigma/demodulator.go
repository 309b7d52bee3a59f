package deltasigma

import "fmt"

const (
	// DefaultLeakFirstOrder is the leak coefficient paired with the
	// first-order (sharpened) reference configuration.
	DefaultLeakFirstOrder = 0.0253
	// DefaultLeakSecondOrder is the leak coefficient paired with the
	// second-order (interpolated) reference configuration.
	DefaultLeakSecondOrder = 0.15
)

// Demodulator reconstructs an approximate signal from a pulse stream. It
// cascades three single-pole leaky integrators y = y*(1-k) + k*v, then
// decimates by averaging every Oversample filtered samples into one
// output sample. Cascading three identical poles gives a steeper roll-off
// than a single stage.
type Demodulator struct {
	k1, k2, k3 float64

	y1, y2, y3 float64
	period     float64
	count      int
}

// NewDemodulator creates a demodulator with the same leak coefficient k on
// all three stages. k must satisfy 0 < k < 1.
func NewDemodulator(k float64) (*Demodulator, error) {
	return NewDemodulatorStages(k, k, k)
}

// NewDemodulatorStages creates a demodulator with independent per-stage
// leak coefficients. Each must satisfy 0 < k < 1.
func NewDemodulatorStages(k1, k2, k3 float64) (*Demodulator, error) {
	for _, k := range [...]float64{k1, k2, k3} {
		if !(k > 0 && k < 1) {
			return nil, fmt.Errorf("deltasigma: leak coefficient must be in (0, 1): %f", k)
		}
	}

	return &Demodulator{k1: k1, k2: k2, k3: k3}, nil
}

// Demodulate reconstructs pulses with a fresh triple-cascade demodulator
// using leak coefficient k on all stages.
func Demodulate(pulses []float64, k float64) ([]float64, error) {
	d, err := NewDemodulator(k)
	if err != nil {
		return nil, err
	}

	return d.Process(pulses), nil
}

// ProcessPulse consumes one pulse. When it completes a block of Oversample
// pulses it returns the decimated output sample and true; otherwise it
// returns 0 and false.
func (d *Demodulator) ProcessPulse(v float64) (float64, bool) {
	d.y1 = d.y1*(1-d.k1) + d.k1*v
	d.y2 = d.y2*(1-d.k2) + d.k2*d.y1
	d.y3 = d.y3*(1-d.k3) + d.k3*d.y2

	d.period += d.y3
	d.count++

	if d.count < Oversample {
		return 0, false
	}

	out := d.period / Oversample
	d.period = 0
	d.count = 0

	return out, true
}

// Process filters and decimates a whole pulse stream. The output length is
// len(pulses)/Oversample; remainder pulses past the last full block feed
// the filter state but produce no output sample.
func (d *Demodulator) Process(pulses []float64) []float64 {
	out := make([]float64, 0, len(pulses)/Oversample)

	for _, v := range pulses {
		sample, ok := d.ProcessPulse(v)
		if ok {
			out = append(out, sample)
		}
	}

	return out
}

// Reset clears the integrator cascade and the decimation accumulator.
func (d *Demodulator) Reset() {
	d.y1, d.y2, d.y3 = 0, 0, 0
	d.period = 0
	d.count = 0
}

// Leaks returns the three per-stage leak coefficients.
func (d *Demodulator) Leaks() (k1, k2, k3 float64) {
	return d.k1, d.k2, d.k3
}

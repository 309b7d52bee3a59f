package deltasigma

// Pipeline bundles one quantize/dequantize configuration: modulator order,
// oversampling method, reconstruction leaks, and optional frequency
// reduction. It holds no signal state; every Quantize and Dequantize call
// constructs fresh zero-initialized modulator and demodulator state, so a
// Pipeline may be shared across channels processed concurrently.
type Pipeline struct {
	cfg config
}

// NewPipeline creates a pipeline. Defaults follow the second-order
// reference configuration (interpolating upsampler, leak 0.15); selecting
// [OrderFirst] without explicit overrides switches to the first-order
// pairing (sharpening upsampler, leak 0.0253).
func NewPipeline(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	// Resolve the per-order reference pairings for anything not set
	// explicitly.
	if !cfg.methodSet {
		if cfg.order == OrderFirst {
			cfg.method = MethodSharpen
		} else {
			cfg.method = MethodInterpolate
		}
	}

	if !cfg.leakSet {
		k := DefaultLeakSecondOrder
		if cfg.order == OrderFirst {
			k = DefaultLeakFirstOrder
		}

		cfg.k1, cfg.k2, cfg.k3 = k, k, k
	}

	return &Pipeline{cfg: cfg}, nil
}

// Quantize upsamples and modulates signal into a 1-bit pulse stream. With
// frequency reduction disabled the output length is exactly
// len(signal) * Oversample; with a reduce window that does not divide that
// length the stream is padded up to the next window multiple.
func (p *Pipeline) Quantize(signal []float64) []float64 {
	var mod Modulator
	if p.cfg.order == OrderFirst {
		mod = NewFirstOrder()
	} else {
		mod = NewSecondOrder()
	}

	pulses := Modulate(mod, Upsample(signal, p.cfg.method))

	if p.cfg.reduceWindow > 0 {
		// Window size already validated by the option.
		reduced, err := ReduceFrequency(pulses, p.cfg.reduceWindow)
		if err == nil {
			pulses = reduced
		}
	}

	return pulses
}

// Dequantize reconstructs an approximate signal from a pulse stream using
// the configured leak coefficients. Output length is
// len(pulses)/Oversample.
func (p *Pipeline) Dequantize(pulses []float64) []float64 {
	// Leaks were validated when the pipeline was built.
	d, err := NewDemodulatorStages(p.cfg.k1, p.cfg.k2, p.cfg.k3)
	if err != nil {
		return []float64{}
	}

	return d.Process(pulses)
}

// RoundTrip quantizes and dequantizes signal, returning the reconstruction
// and the original truncated to their shared length. The truncation is the
// explicit alignment step required before comparing the two with an
// equal-length error metric.
func (p *Pipeline) RoundTrip(signal []float64) (original, approx []float64) {
	approx = p.Dequantize(p.Quantize(signal))

	n := min(len(signal), len(approx))

	return signal[:n], approx[:n]
}

// Order returns the configured modulator order.
func (p *Pipeline) Order() Order { return p.cfg.order }

// Method returns the resolved oversampling method.
func (p *Pipeline) Method() Method { return p.cfg.method }

// Leaks returns the resolved per-stage leak coefficients.
func (p *Pipeline) Leaks() (k1, k2, k3 float64) {
	return p.cfg.k1, p.cfg.k2, p.cfg.k3
}

// ReduceWindow returns the frequency-reduction window size (0 when
// reduction is disabled).
func (p *Pipeline) ReduceWindow() int { return p.cfg.reduceWindow }

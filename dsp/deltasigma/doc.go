// Package deltasigma implements 1-bit delta-sigma modulation and
// reconstruction for oversampled audio signals.
//
// The encode path expands a signal by a fixed Oversample factor (linear
// interpolation or extrapolation-based sharpening), then quantizes the
// oversampled signal to a binary ±FullScale pulse stream using either a
// first-order error-feedback modulator or a second-order integrator
// cascade. The decode path reconstructs an approximation of the original
// signal with three cascaded single-pole leaky integrators followed by
// block-averaging decimation.
//
// A pulse stream can additionally be passed through [ReduceFrequency],
// which regroups each fixed-size window so that all low pulses precede all
// high pulses. This lowers the pulse-to-pulse toggle rate (and thus the
// switching frequency of a driving output stage) while preserving the
// per-window duty cycle exactly.
//
// # Usage
//
//	pipe, err := deltasigma.NewPipeline(deltasigma.WithOrder(deltasigma.OrderSecond))
//	pulses := pipe.Quantize(signal)
//	approx := pipe.Dequantize(pulses)
//
// All state lives in the modulator/demodulator values created per call;
// independent channels can be processed concurrently with independent
// values. Within one channel processing is strictly sequential: every
// sample decision depends on state mutated by the previous one.
//
// Known limitation: the modulator accumulators are not clamped. A
// pathological constant bias beyond full scale can grow them without
// bound; guarding this would alter the noise-shaping behavior, so it is
// deliberately left unguarded.
package deltasigma

package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// AlternatingPulses generates a pulse stream that toggles between
// +fullScale and -fullScale every period samples.
func AlternatingPulses(fullScale float64, period, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if (i/period)%2 == 0 {
			out[i] = fullScale
		} else {
			out[i] = -fullScale
		}
	}
	return out
}

// Toggles counts the adjacent sample pairs with different values, a proxy
// for the switching frequency of a pulse stream.
func Toggles(pulses []float64) int {
	var count int
	for i := 1; i < len(pulses); i++ {
		if pulses[i] != pulses[i-1] {
			count++
		}
	}
	return count
}

// CountLow returns the number of negative (low) pulses in the stream.
func CountLow(pulses []float64) int {
	var count int
	for _, v := range pulses {
		if v < 0 {
			count++
		}
	}
	return count
}

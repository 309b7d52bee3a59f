package deltasigma

import "fmt"

// ReduceFrequency regroups the pulses inside each fixed-size window so
// that all low pulses precede all high pulses. The count of each polarity
// per window is unchanged, so the per-window duty cycle (and thus the DC
// content) is preserved while the pulse-to-pulse toggle rate drops to at
// most one transition per window.
//
// If the stream length is not a multiple of window, the final window is
// padded with low pulses before regrouping; the padding is visible in the
// output length, which is always rounded up to the next multiple of
// window.
func ReduceFrequency(pulses []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("deltasigma: reduce window must be > 0: %d", window)
	}

	if len(pulses) == 0 {
		return []float64{}, nil
	}

	padded := ((len(pulses) + window - 1) / window) * window
	out := make([]float64, padded)

	for base := 0; base < padded; base += window {
		low := window - min(window, len(pulses)-base) // padding counts as low
		for i := base; i < base+window && i < len(pulses); i++ {
			if pulses[i] < 0 {
				low++
			}
		}

		for i := range window {
			if i < low {
				out[base+i] = -FullScale
			} else {
				out[base+i] = FullScale
			}
		}
	}

	return out, nil
}

// Package align evaluates delta-sigma round-trip fidelity and searches for
// the pulse-stream phase offset that minimizes it.
//
// The reconstruction filter introduces group delay, so the decoded signal
// lags the original by a small, configuration-dependent number of pulses.
// [BestOffset] models this clock/phase uncertainty by circularly rotating
// the pulse stream, demodulating each rotation, and keeping the offset
// whose RMSE against the original signal is smallest. The search is brute
// force and deterministic; the per-offset passes are independent and can
// be fanned out over a bounded worker pool.
package align

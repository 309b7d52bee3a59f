package deltasigma

import "fmt"

// Order selects the modulator loop order.
type Order int

const (
	// OrderFirst selects the first-order error-feedback modulator.
	OrderFirst Order = iota + 1
	// OrderSecond selects the second-order integrator-cascade modulator.
	OrderSecond
)

// String returns the name of the modulator order.
func (o Order) String() string {
	switch o {
	case OrderFirst:
		return "FirstOrder"
	case OrderSecond:
		return "SecondOrder"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Valid reports whether o is a known modulator order.
func (o Order) Valid() bool {
	return o == OrderFirst || o == OrderSecond
}

type config struct {
	order        Order
	method       Method
	methodSet    bool
	k1, k2, k3   float64
	leakSet      bool
	reduceWindow int
}

func defaultConfig() config {
	return config{
		order: OrderSecond,
	}
}

// Option configures a [Pipeline].
type Option func(*config) error

// WithOrder selects the modulator loop order (default [OrderSecond]).
func WithOrder(o Order) Option {
	return func(cfg *config) error {
		if !o.Valid() {
			return fmt.Errorf("deltasigma: invalid modulator order: %d", o)
		}

		cfg.order = o

		return nil
	}
}

// WithMethod overrides the oversampling method. Without this option the
// method follows the order's reference pairing: interpolation for the
// second-order loop, sharpening for the first-order loop.
func WithMethod(m Method) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("deltasigma: invalid oversampling method: %d", m)
		}

		cfg.method = m
		cfg.methodSet = true

		return nil
	}
}

// WithLeak sets the same leak coefficient on all three reconstruction
// stages (0 < k < 1). Without it the leak follows the order's reference
// pairing: [DefaultLeakSecondOrder] or [DefaultLeakFirstOrder].
func WithLeak(k float64) Option {
	return WithStageLeaks(k, k, k)
}

// WithStageLeaks sets independent leak coefficients for the three
// reconstruction stages (each 0 < k < 1).
func WithStageLeaks(k1, k2, k3 float64) Option {
	return func(cfg *config) error {
		for _, k := range [...]float64{k1, k2, k3} {
			if !(k > 0 && k < 1) {
				return fmt.Errorf("deltasigma: leak coefficient must be in (0, 1): %f", k)
			}
		}

		cfg.k1, cfg.k2, cfg.k3 = k1, k2, k3
		cfg.leakSet = true

		return nil
	}
}

// WithReduceWindow enables duty-preserving frequency reduction on the
// quantized stream, regrouping pulses in windows of the given size
// (must be > 0). Zero disables reduction (the default).
func WithReduceWindow(window int) Option {
	return func(cfg *config) error {
		if window < 0 {
			return fmt.Errorf("deltasigma: reduce window must be >= 0: %d", window)
		}

		cfg.reduceWindow = window

		return nil
	}
}

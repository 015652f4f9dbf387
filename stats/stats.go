package stats

import "math"

// TradingDaysPerYear is the annualization convention for the Sharpe ratio.
const TradingDaysPerYear = 252

// Returns produces the simple percentage change between consecutive prices.
// The result has length len(prices)-1. Pure function.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, prices[i]/prices[i-1]-1.0)
	}
	return out
}

// Mean returns the arithmetic mean, 0.0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// SampleVariance returns the n-1 denominator variance around mu. A single
// observation yields 0.0 rather than dividing by zero.
func SampleVariance(xs []float64, mu float64) float64 {
	if len(xs) < 2 {
		return 0.0
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}

// Sharpe computes the annualized Sharpe-like ratio of a realized P&L series:
// sample mean over sample standard deviation, scaled by sqrt(252). An empty
// series or a zero standard deviation returns 0.0 rather than failing.
func Sharpe(pnl []float64) float64 {
	if len(pnl) == 0 {
		return 0.0
	}
	mu := Mean(pnl)
	sd := math.Sqrt(SampleVariance(pnl, mu))
	if sd == 0 {
		return 0.0
	}
	return (mu / sd) * math.Sqrt(TradingDaysPerYear)
}

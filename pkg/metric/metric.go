// Package metric holds the numeric helpers behind the chart annotations:
// extrema, regression, moving averages and change percentages.
package metric

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Trend is an ordinary least squares fit of y against row index
type Trend struct {
	Intercept float64
	Slope     float64
}

// At returns the fitted value at index i
func (t Trend) At(i int) float64 {
	return t.Intercept + t.Slope*float64(i)
}

// LinearTrend regresses values on their position, so spacing is even in
// index space regardless of the x values. It needs at least two values.
func LinearTrend(values []float64) (Trend, bool) {
	if len(values) < 2 {
		return Trend{}, false
	}

	index := make([]float64, len(values))
	for i := range index {
		index[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(index, values, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Trend{}, false
	}
	return Trend{Intercept: alpha, Slope: beta}, true
}

// FocusDomain pads the value range by half of it on each side, clamping the
// lower bound at zero. It needs at least two values.
func FocusDomain(values []float64) (lo, hi float64, ok bool) {
	if len(values) < 2 {
		return 0, 0, false
	}

	min, max := extent(values)
	pad := (max - min) * 0.5
	lo = math.Max(0, math.Floor(min-pad))
	hi = math.Ceil(max + pad)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi, true
}

// PercentChange returns the change from first to last in percent, rounded to
// the one decimal it is shown with. A change that rounds away is exactly 0.
func PercentChange(first, last float64) (float64, bool) {
	if first == 0 {
		return 0, false
	}
	pct := math.Round((last-first)/math.Abs(first)*1000) / 10
	if pct == 0 {
		return 0, true
	}
	return pct, true
}

// FormatChange renders a change with an explicit sign and one decimal
func FormatChange(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// Mean returns the arithmetic mean, zero for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// MovingAverage returns the simple moving average of values over period.
// The first period-1 entries are warmup and are reported as invalid.
func MovingAverage(values []float64, period int) (averages []float64, warmup int) {
	if period < 2 || len(values) < period {
		return nil, 0
	}
	return talib.Sma(values, period), period - 1
}

func extent(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

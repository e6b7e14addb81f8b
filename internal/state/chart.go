package state

import "fmt"

// fallbackWeekly is charted until any weekly samples are recorded.
var fallbackWeekly = []float64{65, 72, 78, 85}

// Chart is a labelled series for the weekly progress chart.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChartData builds the weekly chart for p. An empty WeeklyProgress is
// replaced by a fixed sample series.
func ChartData(p Progress) Chart {
	values := p.WeeklyProgress
	if len(values) == 0 {
		values = fallbackWeekly
	}

	labels := make([]string, len(values))
	for i := range values {
		labels[i] = fmt.Sprintf("Week %d", i+1)
	}
	return Chart{Labels: labels, Values: append([]float64{}, values...)}
}

// TopAchievements returns up to n achievements in insertion order.
func TopAchievements(p Progress, n int) []Achievement {
	if len(p.Achievements) < n {
		n = len(p.Achievements)
	}
	return append([]Achievement{}, p.Achievements[:n]...)
}

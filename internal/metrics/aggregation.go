package metrics

import (
	"sort"
	"time"
)

// Summary aggregates metrics for one run.
type Summary struct {
	Count        int           `json:"count"`
	TotalCostUSD float64       `json:"total_cost_usd"`
	TotalTime    time.Duration `json:"total_time"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`

	EntriesFound     int `json:"entries_found"`
	EntriesExtracted int `json:"entries_extracted"`
	EntriesDropped   int `json:"entries_dropped"`

	AvgCostUSD     float64 `json:"avg_cost_usd"`
	AvgTimeSeconds float64 `json:"avg_time_seconds"`
}

// Summarize aggregates a set of metrics.
func Summarize(metrics []Metric) *Summary {
	s := &Summary{Count: len(metrics)}
	for _, m := range metrics {
		s.TotalCostUSD += m.CostUSD
		s.TotalTime += time.Duration(m.ExecutionSeconds * float64(time.Second))
		if m.Success {
			s.SuccessCount++
		} else {
			s.ErrorCount++
		}
		s.EntriesFound += m.EntriesFound
		s.EntriesExtracted += m.EntriesExtracted
		s.EntriesDropped += m.EntriesDropped
	}

	if s.Count > 0 {
		s.AvgCostUSD = s.TotalCostUSD / float64(s.Count)
		s.AvgTimeSeconds = s.TotalTime.Seconds() / float64(s.Count)
	}

	return s
}

// Summary summarizes everything the recorder has seen.
func (r *Recorder) Summary() *Summary {
	return Summarize(r.List())
}

// ByStage groups the recorder's metrics by stage and summarizes each group.
func (r *Recorder) ByStage() map[string]*Summary {
	return groupBy(r.List(), func(m Metric) string { return m.Stage })
}

// ByProvider groups the recorder's metrics by provider and summarizes each
// group. Metrics without a provider (extraction) are excluded.
func (r *Recorder) ByProvider() map[string]*Summary {
	var withProvider []Metric
	for _, m := range r.List() {
		if m.Provider != "" {
			withProvider = append(withProvider, m)
		}
	}
	return groupBy(withProvider, func(m Metric) string { return m.Provider })
}

func groupBy(metrics []Metric, key func(Metric) string) map[string]*Summary {
	groups := make(map[string][]Metric)
	for _, m := range metrics {
		k := key(m)
		groups[k] = append(groups[k], m)
	}

	out := make(map[string]*Summary, len(groups))
	for k, ms := range groups {
		out[k] = Summarize(ms)
	}
	return out
}

// SortedKeys returns map keys in sorted order for stable reporting.
func SortedKeys(m map[string]*Summary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

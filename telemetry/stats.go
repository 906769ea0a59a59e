package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-" json:"-"`
	WindowEndFrame   int32   `csv:"window_end" json:"window_end"`
	SimTimeSec       float64 `csv:"sim_time" json:"sim_time"`
	Frames           int     `csv:"frames" json:"frames"`

	// Sphere state at window end
	Particles int    `csv:"particles" json:"particles"`
	Mode      string `csv:"mode" json:"mode"`
	Effect    string `csv:"effect" json:"effect"`

	// Interaction during window
	ContactFrames int     `csv:"contact_frames" json:"contact_frames"`
	ContactRatio  float64 `csv:"contact_ratio" json:"contact_ratio"`

	// Kinetic energy per frame (sum of v^2/2 over particles)
	EnergyMean float64 `csv:"energy_mean" json:"energy_mean"`
	EnergyMax  float64 `csv:"energy_max" json:"energy_max"`

	// Displacement from rest (sampled at window end)
	DispMean float64 `csv:"disp_mean" json:"disp_mean"`
	DispStd  float64 `csv:"disp_std" json:"disp_std"`
	DispP50  float64 `csv:"disp_p50" json:"disp_p50"`
	DispP90  float64 `csv:"disp_p90" json:"disp_p90"`
	DispMax  float64 `csv:"disp_max" json:"disp_max"`

	// Discrete events during window
	Resets        int `csv:"resets" json:"resets"`
	Rebuilds      int `csv:"rebuilds" json:"rebuilds"`
	ModeSwitches  int `csv:"mode_switches" json:"mode_switches"`
	EffectChanges int `csv:"effect_changes" json:"effect_changes"`
	RemoteConfigs int `csv:"remote_configs" json:"remote_configs"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DisplacementStats summarizes per-particle distances from rest.
type DisplacementStats struct {
	Mean, Std, P50, P90, Max float64
}

// ComputeDisplacementStats calculates mean, population std, percentiles and
// max. values is sorted in place.
func ComputeDisplacementStats(values []float64) DisplacementStats {
	if len(values) == 0 {
		return DisplacementStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	sort.Float64s(values)

	return DisplacementStats{
		Mean: mean,
		Std:  std,
		P50:  Percentile(values, 0.50),
		P90:  Percentile(values, 0.90),
		Max:  floats.Max(values),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.String("mode", s.Mode),
		slog.String("effect", s.Effect),
		slog.Int("contact_frames", s.ContactFrames),
		slog.Float64("contact_ratio", s.ContactRatio),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_max", s.EnergyMax),
		slog.Float64("disp_mean", s.DispMean),
		slog.Float64("disp_std", s.DispStd),
		slog.Float64("disp_p50", s.DispP50),
		slog.Float64("disp_p90", s.DispP90),
		slog.Float64("disp_max", s.DispMax),
		slog.Int("resets", s.Resets),
		slog.Int("rebuilds", s.Rebuilds),
		slog.Int("mode_switches", s.ModeSwitches),
		slog.Int("effect_changes", s.EffectChanges),
		slog.Int("remote_configs", s.RemoteConfigs),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

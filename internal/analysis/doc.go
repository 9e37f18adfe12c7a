// Package analysis inspects recorded orb sessions.
//
//   - [PowerSpectrum]: magnitude spectrum of a uniformly sampled series
//   - [DominantFrequency]: strongest non-DC frequency of a series
//   - [Series]: extracts a named column from recorded frames
//
// The breathing scale of an undisturbed orb oscillates at 1/period, so
//
//	sx, _ := analysis.Series(frames, "sx")
//	f := analysis.DominantFrequency(sx, fps)
//
// recovers the configured period as 1/f.
package analysis

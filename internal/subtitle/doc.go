// Package subtitle handles the subtitle documents passed to the burn-in renderer.
//
// It covers three steps:
//   - decoding uploaded bytes through a fixed fallback chain (Decode)
//   - classifying decoded text as cue (SRT) or line (LRC) format (Classify)
//   - converting cue documents to line documents (ConvertSRTToLRC)
//
// The conversion is lossy and one-way: cue end times and styling are dropped.
package subtitle

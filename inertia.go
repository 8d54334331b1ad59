package arm

// EffectiveInertia returns one weight per segment throttling how fast that
// segment may rotate.
//
// For segment i it sums, over every segment j from i to the tip, the mean
// squared distance between sampled points of j and the start of i times the
// length of j, then divides by twice the square of the chain length from
// the tip through i. Segments near the root swing more distal mass and get
// larger weights.
//
// Weights depend on the current pose and must be recomputed after joints
// move.
func EffectiveInertia(chain *Chain) []float64 {
	segments := chain.Segments()
	weights := make([]float64, len(segments))

	cumulative := 0.0
	for i := len(segments) - 1; i >= 0; i-- {
		pivot := segments[i].Start()
		cumulative += segments[i].Length()

		moment := 0.0
		for _, b := range segments[i:] {
			start, end := b.Start(), b.End()
			sum := 0.0
			for _, t := range inertiaSamples {
				d := start.Lerp(end, t).Sub(pivot)
				sum += d.Dot(d)
			}
			moment += sum / float64(len(inertiaSamples)) * b.Length()
		}

		weights[i] = moment / (2 * cumulative * cumulative)
	}
	return weights
}

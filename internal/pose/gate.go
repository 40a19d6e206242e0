package pose

// MinVisibility is the confidence threshold below which a landmark is
// treated as unreliable and excluded from angle computation.
const MinVisibility = 0.5

// Visible reports whether every one of the given landmark indices can be
// trusted for analysis. A landmark without a visibility score is trusted by
// default; one with a score below MinVisibility fails the gate.
// Out-of-range indices fail the gate rather than panic.
func Visible(f *Frame, indices ...int) bool {
	if f == nil {
		return false
	}
	for _, i := range indices {
		if !ValidIndex(i) {
			return false
		}
		v := f.Points[i].Visibility
		if v != nil && *v < MinVisibility {
			return false
		}
	}
	return true
}

package histogram

// allSamples is the index of the running sum that every sample in a bucket is appended to. Band sums follow it, one
// per configured percentile.
const allSamples = 0

// A bucket aggregates the samples recorded during one span of time.
type bucket struct {
	// Seconds since the histogram was created when the bucket started filling
	startOffset uint32
	sums        []RunningSum
	valueRange  Range
}

func newBucket(startOffset uint32, bands int) *bucket {
	sums := make([]RunningSum, 1, bands+1)
	return &bucket{
		startOffset: startOffset,
		sums:        sums,
		valueRange:  newRange(),
	}
}

// record widens the bucket's range and appends the value to its all-samples sum.
func (b *bucket) record(value uint64) {
	b.valueRange.widen(value)
	b.sums[allSamples].Append(value)
}

// band returns the running sum for the 1-based band index, creating any missing sums up to it.
func (b *bucket) band(index int) *RunningSum {
	for len(b.sums) <= index {
		b.sums = append(b.sums, RunningSum{})
	}
	return &b.sums[index]
}

// sum returns a copy of the running sum at index, or an empty sum if it was never created.
func (b *bucket) sum(index int) RunningSum {
	if index < len(b.sums) {
		return b.sums[index]
	}
	return RunningSum{}
}

func (b *bucket) sampleCount() uint32 {
	return b.sums[allSamples].Count
}

// age returns how many seconds have elapsed since the bucket started, as of elapsed.
func (b *bucket) age(elapsed uint32) uint32 {
	if elapsed < b.startOffset {
		return 0
	}
	return elapsed - b.startOffset
}

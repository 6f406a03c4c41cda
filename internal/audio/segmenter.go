package audio

// Split cuts a mono waveform into ordered, contiguous, non-overlapping
// segments of at most maxChunkMs milliseconds. The segments cover the input
// exactly once: no frame is dropped or duplicated at a boundary. A waveform
// shorter than maxChunkMs yields a single segment equal to the whole; the
// final segment may be shorter than maxChunkMs.
func Split(w Waveform, maxChunkMs int64) []Segment {
	totalFrames := w.Frames()
	if totalFrames == 0 || maxChunkMs <= 0 {
		return nil
	}

	framesPerChunk := int(maxChunkMs * int64(w.SampleRate) / 1000)
	if framesPerChunk < 1 {
		framesPerChunk = 1
	}
	block := w.blockAlign()

	var segments []Segment
	for start := 0; start < totalFrames; start += framesPerChunk {
		end := start + framesPerChunk
		if end > totalFrames {
			end = totalFrames
		}
		segments = append(segments, Segment{
			Index:   len(segments),
			StartMs: framesToMs(start, w.SampleRate),
			EndMs:   framesToMs(end, w.SampleRate),
			Audio: Waveform{
				SampleRate: w.SampleRate,
				Channels:   w.Channels,
				Data:       w.Data[start*block : end*block],
			},
		})
	}
	return segments
}

func framesToMs(frames, rate int) int64 {
	return int64(frames) * 1000 / int64(rate)
}

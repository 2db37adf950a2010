package alignment

import "math"

const (
	// fallbackCharDuration paces characters when the recognizer gives no timing.
	fallbackCharDuration = 0.2
	// minPunctSpan is the shortest span given to a punctuation-only token.
	minPunctSpan = 0.04
)

type window struct {
	start, end float64
}

func (w window) mid() float64 {
	return (w.start + w.end) / 2
}

// charTimings assigns a window to every script character. Matched characters
// take their recognizer window; the rest are interpolated between the nearest
// anchors, extrapolated from a single anchor, or spread across the recognizer
// range when nothing matched.
func charTimings(script []scriptChar, match []int, whisper []whisperChar) []window {
	out := make([]window, len(script))
	if len(script) == 0 {
		return out
	}
	avg := averageCharDuration(whisper)

	var anchors []int
	for k, j := range match {
		if j >= 0 {
			out[k] = window{whisper[j].start, whisper[j].end}
			anchors = append(anchors, k)
		}
	}

	if len(anchors) == 0 {
		spreadProportionally(out, whisper, avg)
		return monotonicWindows(out)
	}

	next := 0
	for k := range out {
		if match[k] >= 0 {
			continue
		}
		for next < len(anchors) && anchors[next] < k {
			next++
		}
		hasPrev, hasNext := next > 0, next < len(anchors)
		var center float64
		switch {
		case hasPrev && hasNext:
			p, q := anchors[next-1], anchors[next]
			f := float64(k-p) / float64(q-p)
			center = out[p].mid() + f*(out[q].mid()-out[p].mid())
		case hasPrev:
			p := anchors[next-1]
			center = out[p].mid() + float64(k-p)*avg
		default:
			q := anchors[next]
			center = out[q].mid() - float64(q-k)*avg
		}
		start, end := math.Max(0, center-avg/2), center+avg/2
		if hasPrev && hasNext {
			// Stay inside the gap between the anchors when there is one.
			lo, hi := out[anchors[next-1]].end, out[anchors[next]].start
			if hi > lo {
				start = math.Min(math.Max(start, lo), hi)
				end = math.Min(math.Max(end, lo), hi)
			}
		}
		out[k] = window{start, math.Max(start, end)}
	}
	return monotonicWindows(out)
}

func averageCharDuration(whisper []whisperChar) float64 {
	if len(whisper) == 0 {
		return fallbackCharDuration
	}
	var total float64
	for _, c := range whisper {
		total += c.end - c.start
	}
	avg := total / float64(len(whisper))
	if avg <= 0 {
		return fallbackCharDuration
	}
	return avg
}

func spreadProportionally(out []window, whisper []whisperChar, avg float64) {
	n := float64(len(out))
	rangeStart, rangeEnd := 0.0, avg*n
	if len(whisper) > 0 {
		rangeStart = whisper[0].start
		rangeEnd = whisper[len(whisper)-1].end
		for _, c := range whisper {
			rangeStart = math.Min(rangeStart, c.start)
			rangeEnd = math.Max(rangeEnd, c.end)
		}
		if rangeEnd <= rangeStart {
			rangeEnd = rangeStart + avg*n
		}
	}
	step := (rangeEnd - rangeStart) / n
	for k := range out {
		out[k] = window{rangeStart + float64(k)*step, rangeStart + float64(k+1)*step}
	}
}

// monotonicWindows pushes later windows forward so starts and ends never
// decrease.
func monotonicWindows(ws []window) []window {
	for k := 1; k < len(ws); k++ {
		if ws[k].start < ws[k-1].start {
			ws[k].start = ws[k-1].start
		}
		if ws[k].end < ws[k-1].end {
			ws[k].end = ws[k-1].end
		}
		if ws[k].end < ws[k].start {
			ws[k].end = ws[k].start
		}
	}
	return ws
}

// timePunctuationTokens gives tokens without core characters a span between
// their timed neighbours. Consecutive runs share the gap evenly.
func timePunctuationTokens(tokens []TimedToken, fallbackStart float64) {
	for i := 0; i < len(tokens); {
		if tokens[i].TotalCoreChars > 0 {
			i++
			continue
		}
		j := i
		for j < len(tokens) && tokens[j].TotalCoreChars == 0 {
			j++
		}
		count := float64(j - i)

		var lo, hi float64
		hasPrev, hasNext := i > 0, j < len(tokens)
		switch {
		case hasPrev && hasNext:
			lo, hi = tokens[i-1].End, tokens[j].Start
		case hasPrev:
			lo = tokens[i-1].End
			hi = lo + count*minPunctSpan
		case hasNext:
			hi = tokens[j].Start
			lo = math.Max(0, hi-count*minPunctSpan)
		default:
			lo = fallbackStart
			hi = lo + count*minPunctSpan
		}
		span := math.Max((hi-lo)/count, minPunctSpan)
		for k := i; k < j; k++ {
			tokens[k].Start = lo + float64(k-i)*span
			tokens[k].End = tokens[k].Start + span
		}
		i = j
	}
}

// monotonicTokens enforces start >= previous end and end >= start.
func monotonicTokens(tokens []TimedToken) {
	for i := range tokens {
		if i > 0 && tokens[i].Start < tokens[i-1].End {
			tokens[i].Start = tokens[i-1].End
		}
		if tokens[i].End < tokens[i].Start {
			tokens[i].End = tokens[i].Start
		}
	}
}

func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}

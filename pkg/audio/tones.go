package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// note is one step of a ringtone pattern; a zero frequency is a rest
type note struct {
	freq float64
	dur  time.Duration
}

// patterns keep under a second since the alert is restarted every second
var patterns = map[string][]note{
	"Default":       {{880, 150 * time.Millisecond}, {0, 80 * time.Millisecond}, {880, 150 * time.Millisecond}, {0, 80 * time.Millisecond}, {1175, 250 * time.Millisecond}},
	"Morning Birds": {{2093, 60 * time.Millisecond}, {2637, 60 * time.Millisecond}, {0, 120 * time.Millisecond}, {2349, 60 * time.Millisecond}, {3136, 90 * time.Millisecond}, {0, 200 * time.Millisecond}, {2637, 60 * time.Millisecond}},
	"Soft Piano":    {{523, 220 * time.Millisecond}, {659, 220 * time.Millisecond}, {784, 360 * time.Millisecond}},
	"Funky Bass":    {{98, 120 * time.Millisecond}, {0, 60 * time.Millisecond}, {98, 120 * time.Millisecond}, {147, 180 * time.Millisecond}, {131, 240 * time.Millisecond}},
	"Synth":         {{440, 100 * time.Millisecond}, {554, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {880, 300 * time.Millisecond}},
	"Forest Wind":   {{196, 400 * time.Millisecond}, {220, 400 * time.Millisecond}},
	"Ocean Waves":   {{110, 450 * time.Millisecond}, {0, 100 * time.Millisecond}, {123, 350 * time.Millisecond}},
	"Beep 1":        {{1000, 200 * time.Millisecond}, {0, 200 * time.Millisecond}, {1000, 200 * time.Millisecond}},
	"Beep 2":        {{1500, 100 * time.Millisecond}, {0, 100 * time.Millisecond}, {1500, 100 * time.Millisecond}, {0, 100 * time.Millisecond}, {1500, 100 * time.Millisecond}},
}

const (
	amplitude = 0.3 * math.MaxInt16
	// fade in and out of each note to avoid clicks
	ramp = 5 * time.Millisecond
)

// patternFor returns the pattern of a ringtone, falling back to Default
func patternFor(ringtone string) []note {
	if p, ok := patterns[ringtone]; ok {
		return p
	}
	return patterns["Default"]
}

// synthesize renders a pattern as signed 16 bit little endian PCM
func synthesize(pattern []note, f Format) []byte {
	var total int
	for _, n := range pattern {
		total += samples(n.dur, f.SampleRate)
	}

	frame := 2 * f.Channels
	buf := make([]byte, total*frame)
	rampLen := samples(ramp, f.SampleRate)

	pos := 0
	for _, n := range pattern {
		count := samples(n.dur, f.SampleRate)
		for i := 0; i < count; i++ {
			var v float64
			if n.freq > 0 {
				env := 1.0
				if i < rampLen {
					env = float64(i) / float64(rampLen)
				} else if count-i < rampLen {
					env = float64(count-i) / float64(rampLen)
				}
				v = amplitude * env * math.Sin(2*math.Pi*n.freq*float64(i)/float64(f.SampleRate))
			}
			s := uint16(int16(v))
			for c := 0; c < f.Channels; c++ {
				binary.LittleEndian.PutUint16(buf[(pos+i)*frame+2*c:], s)
			}
		}
		pos += count
	}
	return buf
}

func samples(d time.Duration, rate int) int {
	return int(d.Seconds() * float64(rate))
}

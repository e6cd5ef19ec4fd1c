package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	sampleRate = 44100

	// toneHz is the beep pitch. High enough to cut through ambient noise.
	toneHz = 880.0

	// amplitude keeps headroom below int16 full scale.
	amplitude = 0.6

	// rampSamples fades each beep in and out to avoid clicks.
	rampSamples = 441 // 10ms
)

// alertPattern synthesizes one cycle of the alert: four short beeps followed
// by a longer pause. The sound controller loops it until stopped.
func alertPattern() []byte {
	beep := tone(180 * time.Millisecond)
	gap := silence(120 * time.Millisecond)
	pause := silence(700 * time.Millisecond)

	var pattern []byte
	for i := 0; i < 4; i++ {
		pattern = append(pattern, beep...)
		if i < 3 {
			pattern = append(pattern, gap...)
		}
	}
	return append(pattern, pause...)
}

// tone renders a sine beep of the given duration as mono int16 LE samples.
func tone(d time.Duration) []byte {
	n := samples(d)
	buf := make([]byte, n*2)

	for i := 0; i < n; i++ {
		v := amplitude * math.Sin(2*math.Pi*toneHz*float64(i)/sampleRate)

		// Linear attack and release ramps.
		if i < rampSamples {
			v *= float64(i) / rampSamples
		}
		if remaining := n - 1 - i; remaining < rampSamples {
			v *= float64(remaining) / rampSamples
		}

		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return buf
}

// silence renders a rest of the given duration.
func silence(d time.Duration) []byte {
	return make([]byte, samples(d)*2)
}

func samples(d time.Duration) int {
	return int(d.Seconds() * sampleRate)
}

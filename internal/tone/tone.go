// Package tone synthesizes short sound effects as raw PCM suitable for
// Ebitengine's audio system (16-bit signed little-endian, stereo).
//
// The spa game ships no binary audio assets; every effect (water splash,
// soap bubbles, dryer hum, brush stroke, result chime) is generated at
// startup from a handful of primitives in this package. Generation is
// deterministic so tests can assert on buffer contents.
package tone

import (
	"math"
)

const (
	// attackSeconds 淡入时长，避免样本起始处的爆音
	attackSeconds = 0.005
	// bytesPerFrame 双声道 16-bit PCM：每帧 4 字节
	bytesPerFrame = 4
)

// Sine generates a pure sine tone with an exponential decay envelope.
//
// Parameters:
//   - sampleRate: output sample rate in Hz (matches the audio.Context)
//   - freq: tone frequency in Hz
//   - dur: duration in seconds
//   - vol: peak amplitude in [0,1]
func Sine(sampleRate int, freq, dur, vol float64) []byte {
	return render(sampleRate, dur, func(t, progress float64) float64 {
		return vol * math.Sin(2*math.Pi*freq*t) * decay(progress)
	})
}

// Sweep generates a sine tone whose frequency glides from `from` to `to`
// over the duration. Rising sweeps read as "bubbly", falling sweeps as
// "droopy"; both are used by the grooming phases.
func Sweep(sampleRate int, from, to, dur, vol float64) []byte {
	return render(sampleRate, dur, func(t, progress float64) float64 {
		// 相位按瞬时频率积分（线性滑频的解析积分）
		phase := 2 * math.Pi * (from*t + (to-from)*t*t/(2*dur))
		return vol * math.Sin(phase) * decay(progress)
	})
}

// Noise generates a decaying noise burst. The underlying generator is a
// small deterministic LCG rather than math/rand so repeated calls always
// produce identical buffers.
func Noise(sampleRate int, dur, vol float64) []byte {
	state := uint32(0x2545f491)
	return render(sampleRate, dur, func(t, progress float64) float64 {
		state = state*1664525 + 1013904223
		sample := float64(int32(state))/float64(math.MaxInt32) - 0.5
		return vol * sample * decay(progress)
	})
}

// Chime generates a two-harmonic bell tone; the result screen plays one
// chime per star earned.
func Chime(sampleRate int, freq, dur, vol float64) []byte {
	return render(sampleRate, dur, func(t, progress float64) float64 {
		fundamental := math.Sin(2 * math.Pi * freq * t)
		overtone := 0.4 * math.Sin(2*math.Pi*freq*2.01*t)
		return vol * (fundamental + overtone) / 1.4 * decay(progress)
	})
}

// Concat joins several PCM buffers into one sequential buffer.
func Concat(buffers ...[]byte) []byte {
	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	out := make([]byte, 0, total)
	for _, b := range buffers {
		out = append(out, b...)
	}
	return out
}

// Mix overlays several PCM buffers sample by sample, clamping to the
// 16-bit range. The result is as long as the longest input.
func Mix(buffers ...[]byte) []byte {
	maxLen := 0
	for _, b := range buffers {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}
	out := make([]byte, maxLen)
	for i := 0; i+1 < maxLen; i += 2 {
		sum := 0
		for _, b := range buffers {
			if i+1 < len(b) {
				sum += int(int16(uint16(b[i]) | uint16(b[i+1])<<8))
			}
		}
		if sum > math.MaxInt16 {
			sum = math.MaxInt16
		}
		if sum < math.MinInt16 {
			sum = math.MinInt16
		}
		out[i] = byte(uint16(int16(sum)))
		out[i+1] = byte(uint16(int16(sum)) >> 8)
	}
	return out
}

// render 以采样函数生成双声道 PCM；sample 的返回值范围为 [-1,1]
func render(sampleRate int, dur float64, sample func(t, progress float64) float64) []byte {
	frames := int(float64(sampleRate) * dur)
	if frames <= 0 {
		return nil
	}
	out := make([]byte, frames*bytesPerFrame)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(frames)

		v := sample(t, progress) * attack(t)
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		s := int16(v * math.MaxInt16)

		// 左右声道写入相同样本
		lo, hi := byte(uint16(s)), byte(uint16(s)>>8)
		out[i*bytesPerFrame+0] = lo
		out[i*bytesPerFrame+1] = hi
		out[i*bytesPerFrame+2] = lo
		out[i*bytesPerFrame+3] = hi
	}
	return out
}

// attack 起始淡入包络，消除底噪爆音
func attack(t float64) float64 {
	if t >= attackSeconds {
		return 1
	}
	return t / attackSeconds
}

// decay 指数衰减包络：progress=0 时为 1，结束时趋近 0
func decay(progress float64) float64 {
	return math.Exp(-4 * progress)
}

package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/discosculpter/components"
)

func TestWaveSample(t *testing.T) {
	tests := []struct {
		name  string
		wave  components.Waveform
		phase float64
		want  float64
	}{
		{"sine zero", components.WaveSine, 0, 0},
		{"sine quarter", components.WaveSine, 0.25, 1},
		{"square first half", components.WaveSquare, 0.2, 1},
		{"square second half", components.WaveSquare, 0.7, -1},
		{"saw start", components.WaveSaw, 0, -1},
		{"saw middle", components.WaveSaw, 0.5, 0},
		{"triangle start", components.WaveTriangle, 0, -1},
		{"triangle peak", components.WaveTriangle, 0.5, 1},
	}
	for _, tt := range tests {
		if got := waveSample(tt.wave, tt.phase, nil); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: got %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestWaveSampleNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if v := waveSample(components.WaveNoise, 0, rng); v < -1 || v > 1 {
			t.Fatalf("noise sample %f out of range", v)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	if got := advance(0.9, 0.3); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("advance(0.9, 0.3) = %f, want 0.2", got)
	}
	if got := advance(0.1, -0.3); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("advance(0.1, -0.3) = %f, want 0.8", got)
	}
}

func TestOnePoleDC(t *testing.T) {
	lp := onePole{kind: components.FilterLowpass}
	hp := onePole{kind: components.FilterHighpass}
	var l, h float64
	for i := 0; i < 44100; i++ {
		l = lp.process(1, 120, 44100)
		h = hp.process(1, 800, 44100)
	}
	if math.Abs(l-1) > 1e-6 {
		t.Errorf("lowpass DC response = %f, want 1", l)
	}
	if math.Abs(h) > 1e-6 {
		t.Errorf("highpass DC response = %f, want 0", h)
	}

	none := onePole{}
	if none.process(0.42, 100, 44100) != 0.42 {
		t.Error("no filter should pass input through")
	}
}

func TestVoiceBoundedByGain(t *testing.T) {
	r := components.AudioRecipe{Source: components.WaveSaw, Frequency: 50, Gain: 0.05}
	v := newVoice(r, beep.SampleRate(44100), 1)

	buf := make([][2]float64, 4096)
	n, ok := v.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("voice should stream forever, got n=%d ok=%v", n, ok)
	}
	for i, s := range buf {
		if math.Abs(s[0]) > 0.05+1e-12 {
			t.Fatalf("sample %d = %f exceeds gain", i, s[0])
		}
	}
}

func TestVoiceFrequencyModulation(t *testing.T) {
	// Toxic: 200 Hz sine swept +-100 Hz; output stays within gain
	r := components.AudioRecipe{
		Source: components.WaveSine, Frequency: 200, Gain: 0.1,
		Mod: components.ModFrequency, ModWave: components.WaveSaw, ModRate: 8, ModDepth: 100,
	}
	v := newVoice(r, beep.SampleRate(44100), 1)
	buf := make([][2]float64, 44100)
	v.Stream(buf)

	var peak float64
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak > 0.1+1e-12 || peak < 0.09 {
		t.Errorf("peak = %f, want close to 0.1", peak)
	}
}

func TestOneShotLength(t *testing.T) {
	sr := beep.SampleRate(44100)
	recipe, ok := SfxRecipe(components.SfxClick)
	if !ok {
		t.Fatal("click recipe missing")
	}
	o := newOneShot(recipe, sr, 1)

	total := 0
	buf := make([][2]float64, 1000)
	for {
		n, more := o.Stream(buf)
		total += n
		if !more {
			break
		}
		if total > 10*sr.N(recipe.Duration) {
			t.Fatal("one-shot never ended")
		}
	}
	if total != sr.N(recipe.Duration) {
		t.Errorf("streamed %d samples, want %d", total, sr.N(recipe.Duration))
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		name       string
		kind       components.Ramp
		a, b, u    float64
		want       float64
	}{
		{"hold", components.RampHold, 300, 900, 0.7, 300},
		{"linear mid", components.RampLinear, 200, 600, 0.5, 400},
		{"exp start", components.RampExponential, 800, 400, 0, 800},
		{"exp end", components.RampExponential, 800, 400, 1, 400},
		{"exp mid", components.RampExponential, 800, 400, 0.5, 800 / math.Sqrt2},
		{"exp through zero falls back", components.RampExponential, 1, 0, 0.5, 0.5},
	}
	for _, tt := range tests {
		if got := ramp(tt.kind, tt.a, tt.b, tt.u); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: got %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestSfxRecipesCovered(t *testing.T) {
	for _, s := range []components.Sfx{components.SfxClick, components.SfxHover, components.SfxSwitch, components.SfxError} {
		r, ok := SfxRecipe(s)
		if !ok || r.Duration <= 0 || r.GainStart <= 0 {
			t.Errorf("sfx %d has no usable recipe: %+v", s, r)
		}
	}
}

func TestRumbleBounded(t *testing.T) {
	r := newRumble(120, 0.5, beep.SampleRate(44100), 3)
	buf := make([][2]float64, 512)
	limit := 0.5 * (1 + 2*swellDepth)
	for block := 0; block < 100; block++ {
		r.Stream(buf)
		for _, s := range buf {
			if math.Abs(s[0]) > limit {
				t.Fatalf("rumble sample %f exceeds %f", s[0], limit)
			}
		}
	}
}

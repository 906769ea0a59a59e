// Package audio plays the ambient rumble, UI sounds and effect loops.
package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the device the engine streams to. The speaker package
// satisfies it through Speaker.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Suspend() error
	Resume() error
	Close()
}

// Speaker is the Output backed by the system audio device.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s beep.Streamer)                          { speaker.Play(s) }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }
func (Speaker) Suspend() error                                { return speaker.Suspend() }
func (Speaker) Resume() error                                 { return speaker.Resume() }
func (Speaker) Close()                                        { speaker.Close() }

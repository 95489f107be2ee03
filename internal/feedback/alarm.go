// Package feedback plays the completion alarm and picks grandma's messages.
package feedback

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	DefaultAlarmPath   = "alarm.mp3"
	DefaultAlarmVolume = 0.5

	resampleQuality = 4
)

// Alarm plays a single mp3 file. The file is decoded on first use and kept
// in memory; a failed load is retried on the next Play.
type Alarm struct {
	mu           sync.Mutex
	path         string
	volume       float64
	buffer       *beep.Buffer
	speakerRate  beep.SampleRate
	speakerReady bool
}

// NewAlarm creates an alarm for the mp3 at path. Volume is linear in [0, 1].
func NewAlarm(path string, volume float64) *Alarm {
	if path == "" {
		path = DefaultAlarmPath
	}
	return &Alarm{
		path:   path,
		volume: clampVolume(volume),
	}
}

// Play rewinds the sound and starts it, cutting off any earlier playback.
// It returns once playback has been queued.
func (alarm *Alarm) Play() error {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()

	if alarm.buffer == nil {
		if err := alarm.loadLocked(); err != nil {
			return err
		}
	}

	level, silent := volumeLevel(alarm.volume)
	stream := &effects.Volume{
		Streamer: alarm.buffer.Streamer(0, alarm.buffer.Len()),
		Base:     2,
		Volume:   level,
		Silent:   silent,
	}
	speaker.Clear()
	speaker.Play(stream)
	return nil
}

// SetVolume changes the playback volume for subsequent plays.
func (alarm *Alarm) SetVolume(volume float64) {
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	alarm.volume = clampVolume(volume)
}

// SetPath switches to another sound file. The new file is loaded lazily.
func (alarm *Alarm) SetPath(path string) {
	if path == "" {
		path = DefaultAlarmPath
	}
	alarm.mu.Lock()
	defer alarm.mu.Unlock()
	if path == alarm.path {
		return
	}
	alarm.path = path
	alarm.buffer = nil
}

func (alarm *Alarm) loadLocked() error {
	file, err := os.Open(alarm.path)
	if err != nil {
		return fmt.Errorf("open alarm sound: %w", err)
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("decode alarm sound %s: %w", alarm.path, err)
	}
	defer streamer.Close()

	if !alarm.speakerReady {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		alarm.speakerRate = format.SampleRate
		alarm.speakerReady = true
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  alarm.speakerRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	if format.SampleRate != alarm.speakerRate {
		buffer.Append(beep.Resample(resampleQuality, format.SampleRate, alarm.speakerRate, streamer))
	} else {
		buffer.Append(streamer)
	}
	alarm.buffer = buffer
	return nil
}

// volumeLevel converts a linear volume into the base-2 exponent used by
// effects.Volume. Zero volume is reported as silent.
func volumeLevel(volume float64) (float64, bool) {
	volume = clampVolume(volume)
	if volume == 0 {
		return 0, true
	}
	return math.Log2(volume), false
}

func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}

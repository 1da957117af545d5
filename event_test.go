package testmaker_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SonnyS10/testmaker"
)

func TestKind(t *testing.T) {
	assert.True(t, testmaker.KindImage.IsValid())
	assert.True(t, testmaker.KindAudio.IsValid())
	assert.False(t, testmaker.Kind("eye_tracking").IsValid())
	assert.Equal(t, "image", testmaker.KindImage.String())
}

func TestPosition(t *testing.T) {
	assert.True(t, testmaker.PositionCenter.IsValid())
	assert.True(t, testmaker.PositionTop.IsValid())
	assert.True(t, testmaker.PositionBottom.IsValid())
	assert.True(t, testmaker.PositionLeft.IsValid())
	assert.True(t, testmaker.PositionRight.IsValid())

	assert.Equal(
		t, testmaker.Position("120,80"), testmaker.CustomPosition(120, 80),
	)
	assert.True(t, testmaker.CustomPosition(120, 80).IsValid())
	assert.True(t, testmaker.Position("120, 80").IsValid())
	assert.True(t, testmaker.Position("-40,0").IsValid())

	assert.False(t, testmaker.Position("top-right").IsValid())
	assert.False(t, testmaker.Position("120,").IsValid())
	assert.False(t, testmaker.Position("").IsValid())
}

func TestEventAccessors(t *testing.T) {
	ev := testmaker.NewImage(
		1000, "/stimuli/target.png", 2000, testmaker.PositionCenter,
	)
	assert.Equal(t, testmaker.KindImage, ev.Kind())
	assert.Equal(t, "/stimuli/target.png", ev.Source())
	assert.Equal(t, int64(2000), ev.DurationMS())
	assert.Equal(t, int64(3000), ev.EndMS())

	cue := testmaker.NewAudio(500, "/stimuli/beep.wav", 200, 0.8)
	assert.Equal(t, testmaker.KindAudio, cue.Kind())
	assert.Equal(t, int64(700), cue.EndMS())
}

func TestEventWithoutPayload(t *testing.T) {
	ev := testmaker.Event{OnsetMS: 100}
	assert.Equal(t, testmaker.Kind(""), ev.Kind())
	assert.Equal(t, "", ev.Source())
	assert.Equal(t, int64(0), ev.DurationMS())
	assert.Equal(t, int64(100), ev.EndMS())
	assert.True(t, ev.ActiveAt(100, 0))
}

func TestOpaquePayload(t *testing.T) {
	ev := testmaker.Event{
		OnsetMS: 0,
		Data: &testmaker.Opaque{
			EventKind: "eye_tracking",
			Fields: testmaker.Fields{
				"source_path": json.RawMessage(`"/stimuli/calibration.dat"`),
				"duration_ms": json.RawMessage(`1500`),
				"sampling_hz": json.RawMessage(`120`),
			},
		},
	}
	assert.Equal(t, testmaker.Kind("eye_tracking"), ev.Kind())
	assert.Equal(t, "/stimuli/calibration.dat", ev.Source())
	assert.Equal(t, int64(1500), ev.DurationMS())
	assert.Equal(t, int64(1500), ev.EndMS())
}

func TestEventActiveAt(t *testing.T) {
	ev := testmaker.NewImage(
		1000, "/stimuli/target.png", 2000, testmaker.PositionCenter,
	)

	assert.False(t, ev.ActiveAt(999, 0))
	assert.True(t, ev.ActiveAt(1000, 0))
	assert.True(t, ev.ActiveAt(1500, 0))
	assert.True(t, ev.ActiveAt(3000, 0))
	assert.False(t, ev.ActiveAt(3001, 0))

	assert.True(t, ev.ActiveAt(999, 1))
	assert.True(t, ev.ActiveAt(3001, 1))
	assert.False(t, ev.ActiveAt(998, 1))
}

func TestZeroDurationEvent(t *testing.T) {
	ev := testmaker.NewAudio(500, "/stimuli/click.wav", 0, 1.0)
	assert.Equal(t, int64(500), ev.EndMS())
	assert.False(t, ev.ActiveAt(499, 0))
	assert.True(t, ev.ActiveAt(500, 0))
	assert.False(t, ev.ActiveAt(501, 0))
}

package testmaker_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SonnyS10/testmaker"
)

func TestEEGLabExport(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, testmaker.EEGLabCodec{}.Encode(&buf, attentionTask()))

	lines := strings.Split(buf.String(), "\r\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "# Exported from Neuroscience Test Maker", lines[0])
	assert.Equal(t, "# Test: Attention Task Demo", lines[1])
	assert.Equal(t,
		"# Description: Multi-modal attention test with synchronized "+
			"visual and auditory stimuli",
		lines[2],
	)
	assert.Equal(t, "", lines[3])
	assert.Equal(t,
		"Latency(ms)\tType\tDuration(ms)\tEventID\tStimulusFile",
		lines[4],
	)
	assert.Equal(t, "0\timage\t500\t1\tfixation_cross.png", lines[5])
	assert.Equal(t, "500\taudio\t200\t2\tbeep.wav", lines[6])
	assert.Equal(t, "1000\timage\t2000\t3\ttarget.png", lines[7])
	assert.Equal(t, "1000\taudio\t1000\t4\ttone.wav", lines[8])
	assert.Equal(t, "", lines[9])
}

func TestEEGLabRepeatedExportIdentical(t *testing.T) {
	tl := attentionTask()

	var first, second bytes.Buffer
	assert.NoError(t, testmaker.EEGLabCodec{}.Encode(&first, tl))
	assert.NoError(t, testmaker.EEGLabCodec{}.Encode(&second, tl))
	assert.Equal(t, first.String(), second.String())
}

func TestEEGLabNoStimulusFile(t *testing.T) {
	tl := testmaker.NewTimeline("Markers", "")
	tl.Add(testmaker.Event{
		OnsetMS: 100,
		Data:    &testmaker.Audio{DurationMS: 50, Volume: 1.0},
	})

	var buf bytes.Buffer
	assert.NoError(t, testmaker.EEGLabCodec{}.Encode(&buf, tl))

	lines := strings.Split(buf.String(), "\r\n")
	assert.Equal(t, "100\taudio\t50\t1\t", lines[5])
}

func TestEEGLabEmptyTimeline(t *testing.T) {
	tl := testmaker.NewTimeline("Empty", "")

	var buf bytes.Buffer
	assert.NoError(t, testmaker.EEGLabCodec{}.Encode(&buf, tl))

	lines := strings.Split(buf.String(), "\r\n")
	assert.Len(t, lines, 6)
	assert.Equal(t,
		"Latency(ms)\tType\tDuration(ms)\tEventID\tStimulusFile",
		lines[4],
	)
}

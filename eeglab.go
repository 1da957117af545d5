package testmaker

import (
	"encoding/csv"
	"io"
	"strconv"
)

// EEGLabCodec writes the tab-delimited event marker table EEGLAB's
// importevent reads. A comment block identifying the timeline precedes the
// single load-bearing header row; EEGLAB is pointed past it with skipline
type EEGLabCodec struct{}

var eeglabHeader = []string{
	"Latency(ms)", "Type", "Duration(ms)", "EventID", "StimulusFile",
}

// Format returns FormatEEGLab
func (EEGLabCodec) Format() Format {
	return FormatEEGLab
}

// Encode writes the marker table in onset order. Event IDs are positional,
// assigned 1..N at export time; StimulusFile is the bare filename of the
// source path, empty when the event has none
func (EEGLabCodec) Encode(w io.Writer, tl *Timeline) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.UseCRLF = true

	rows := [][]string{
		{"# Exported from Neuroscience Test Maker"},
		{"# Test: " + tl.Name},
		{"# Description: " + tl.Description},
		{},
		eeglabHeader,
	}
	for i, ev := range tl.events {
		rows = append(rows, []string{
			strconv.FormatInt(ev.OnsetMS, 10),
			string(ev.Kind()),
			strconv.FormatInt(ev.DurationMS(), 10),
			strconv.Itoa(i + 1),
			stimulusFile(ev.Source()),
		})
	}
	return cw.WriteAll(rows)
}

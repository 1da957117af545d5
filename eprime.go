package testmaker

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EPrimeCodec writes an E-Prime style E-DataAid export: a UTF-8 BOM, a
// sentinel-delimited header block, one tab-delimited row per trial, and the
// end-of-data sentinel. E-Merge and E-DataAid refuse files without the BOM
type EPrimeCodec struct{}

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	eprimeColumns = []string{
		"Procedure", "Trial", "Stimulus", "StimulusFile",
		"OnsetTime", "Duration", "Type", "Modality",
	}
)

// Format returns FormatEPrime
func (EPrimeCodec) Format() Format {
	return FormatEPrime
}

// Encode writes the session export. Trials are numbered 1..N in onset
// order; Stimulus is the source filename without its extension, or
// "<kind>_<trial>" when the event has no file
func (EPrimeCodec) Encode(w io.Writer, tl *Timeline) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.UseCRLF = true

	rows := [][]string{
		{"*** Header Start ***"},
		{"VersionNumber:", "1.0"},
		{"LevelName:", "Session"},
		{"Title:", tl.Name},
		{"Description:", tl.Description},
		{"Exported:", "Neuroscience Test Maker"},
		{"*** Header End ***"},
		{},
		eprimeColumns,
	}
	for i, ev := range tl.events {
		trial := strconv.Itoa(i + 1)
		stimulus := stimulusName(ev.Source())
		if stimulus == "" {
			stimulus = fmt.Sprintf("%s_%s", ev.Kind(), trial)
		}
		rows = append(rows, []string{
			"TrialProc",
			trial,
			stimulus,
			stimulusFile(ev.Source()),
			strconv.FormatInt(ev.OnsetMS, 10),
			strconv.FormatInt(ev.DurationMS(), 10),
			string(ev.Kind()),
			strings.ToUpper(string(ev.Kind())),
		})
	}
	rows = append(rows, []string{}, []string{"*** End of data ***"})
	return cw.WriteAll(rows)
}

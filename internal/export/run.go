// Package export writes headless run results and trails to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
)

type RunData struct {
	Params        tunables.Params    `json:"params"`
	StepsPerFrame int                `json:"steps_per_frame"`
	Frames        int                `json:"frames"`
	Steps         int                `json:"steps"`
	Metrics       map[string]float64 `json:"metrics"`
	Samples       []SampleData       `json:"samples,omitempty"`
}

type SampleData struct {
	Step int     `json:"step"`
	Time float64 `json:"time"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
}

func NewRunData(p tunables.Params, stepsPerFrame int, result *sim.Result) RunData {
	data := RunData{
		Params:        p,
		StepsPerFrame: stepsPerFrame,
		Frames:        result.Frames,
		Steps:         result.Steps,
		Metrics:       result.Metrics,
		Samples:       make([]SampleData, len(result.Samples)),
	}
	for i, s := range result.Samples {
		data.Samples[i] = SampleData{
			Step: s.Step,
			Time: s.Time,
			X:    s.Position.X,
			Y:    s.Position.Y,
			VX:   s.Velocity.X,
			VY:   s.Velocity.Y,
		}
	}
	return data
}

func WriteJSON(w io.Writer, data RunData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteCSV writes one row per sample with a header row.
func WriteCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "time", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Time),
			formatFloat(s.Position.X),
			formatFloat(s.Position.Y),
			formatFloat(s.Velocity.X),
			formatFloat(s.Velocity.Y),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

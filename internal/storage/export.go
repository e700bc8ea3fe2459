package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dropsim/internal/dynamo"
)

type ExportSample struct {
	ID     uint64  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Collision  string             `json:"collision"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Frames     [][]ExportSample   `json:"frames"`
	Contacts   []int              `json:"contacts"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(meta RunMetadata, result *dynamo.Result) ExportData {
	data := ExportData{
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Collision:  meta.Collision,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Frames:     make([][]ExportSample, len(result.Frames)),
		Contacts:   result.Contacts,
		Metrics:    result.Metrics,
	}
	for i, frame := range result.Frames {
		out := make([]ExportSample, len(frame))
		for j, s := range frame {
			out[j] = ExportSample{
				ID:     s.ID,
				X:      s.Pos.X,
				Y:      s.Pos.Y,
				VX:     s.Vel.X,
				VY:     s.Vel.Y,
				Radius: s.Radius,
				Color:  s.Color.Hex(),
			}
		}
		data.Frames[i] = out
	}
	return data
}

func WriteJSON(w io.Writer, meta RunMetadata, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}

func ExportJSON(path string, meta RunMetadata, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, result)
}

func ExportJSONStdout(meta RunMetadata, result *dynamo.Result) error {
	return WriteJSON(os.Stdout, meta, result)
}

// ExportCSV writes the frame table of result to path.
func ExportCSV(path string, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFramesCSV(file, result)
}

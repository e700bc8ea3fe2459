package storage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/dropsim/internal/dynamo"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteFramesCSV writes one row per particle per frame. A frame with no
// particles is kept as a single row with an empty id.
func WriteFramesCSV(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		idx := strconv.Itoa(i)
		tm := formatFloat(result.Times[i])
		if len(frame) == 0 {
			if err := w.Write([]string{idx, tm, "", "", "", "", "", "", "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, s := range frame {
			row := []string{
				idx,
				tm,
				strconv.FormatUint(s.ID, 10),
				formatFloat(s.Pos.X),
				formatFloat(s.Pos.Y),
				formatFloat(s.Vel.X),
				formatFloat(s.Vel.Y),
				formatFloat(s.Radius),
				strconv.Itoa(int(s.Color.R)),
				strconv.Itoa(int(s.Color.G)),
				strconv.Itoa(int(s.Color.B)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func parseSample(record []string) (dynamo.Sample, error) {
	var s dynamo.Sample
	id, err := strconv.ParseUint(record[2], 10, 64)
	if err != nil {
		return s, err
	}
	s.ID = id

	floats := make([]float64, 5)
	for i := range floats {
		if floats[i], err = strconv.ParseFloat(record[3+i], 64); err != nil {
			return s, err
		}
	}
	s.Pos = dynamo.Vec2{X: floats[0], Y: floats[1]}
	s.Vel = dynamo.Vec2{X: floats[2], Y: floats[3]}
	s.Radius = floats[4]

	rgb := make([]uint8, 3)
	for i := range rgb {
		c, err := strconv.ParseUint(record[8+i], 10, 8)
		if err != nil {
			return s, err
		}
		rgb[i] = uint8(c)
	}
	s.Color = dynamo.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	return s, nil
}

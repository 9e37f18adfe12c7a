package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/orbsim/internal/sim"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Frames  [][]float64 `json:"frames"`
}

func NewExportData(meta RunMetadata, frames []sim.Frame) ExportData {
	data := ExportData{
		Run:     meta,
		Columns: sim.Columns,
		Times:   make([]float64, len(frames)),
		Frames:  make([][]float64, len(frames)),
	}
	for i, f := range frames {
		data.Times[i] = f.Time.Seconds()
		data.Frames[i] = f.Values()
	}
	return data
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, frames))
}

// WriteFramesCSV writes a header of "time" plus sim.Columns, then one row
// per frame.
func WriteFramesCSV(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, sim.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{strconv.FormatFloat(f.Time.Seconds(), 'f', 6, 64)}
		for _, v := range f.Values() {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

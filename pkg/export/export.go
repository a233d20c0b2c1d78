// Package export serializes schedules to their fixed CSV form and to
// JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/inventree-tools/crewplan/core/model"
)

// Header is the fixed column set of the schedule CSV.
var Header = []string{
	"machine", "order", "part", "target_date", "location",
	"staff_id", "staff_name", "staff_location", "assigned_date",
}

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, schedule model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schedule)
}

// WriteCSV writes the schedule to w with the fixed header. The
// assigned_date column stays empty for single-day schedules.
func WriteCSV(w io.Writer, schedule model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, a := range schedule {
		rec := []string{
			a.Task.Machine,
			a.Task.Order,
			a.Task.Part,
			a.Task.TargetDate,
			a.Task.Location,
			a.Staff.ID,
			a.Staff.Name,
			a.Staff.Location,
			a.Date,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a schedule previously written by WriteCSV. Staff
// capacity is not part of the tabular form and comes back zero.
func ReadCSV(r io.Reader) (model.Schedule, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read schedule header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected schedule header: %v", header)
	}
	var schedule model.Schedule
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, model.Assignment{
			Task: model.Task{
				Machine:    rec[0],
				Order:      rec[1],
				Part:       rec[2],
				TargetDate: rec[3],
				Location:   rec[4],
			},
			Staff: model.Staff{
				ID:       rec[5],
				Name:     rec[6],
				Location: rec[7],
			},
			Date: rec[8],
		})
	}
	return schedule, nil
}

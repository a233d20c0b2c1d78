// Package roster loads the scheduling inputs: staff rosters from CSV
// and task lists flattened from machine to missing-parts mappings.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inventree-tools/crewplan/core/logger"
	"github.com/inventree-tools/crewplan/core/model"
)

// Loader reads staff rosters. Log, when set, receives warnings about
// legacy files; validation failures are always errors.
type Loader struct {
	Log logger.Logger
}

// column aliases accepted in the CSV header, first match wins
var (
	idColumns       = []string{"id", "staff_id"}
	nameColumns     = []string{"name"}
	locationColumns = []string{"location"}
	capacityColumns = []string{"capacity_per_day", "capacity"}
)

// LoadStaff parses a staff roster CSV. Rows with a missing identifier
// or an unparsable capacity value fail with a row-numbered error rather
// than silently defaulting. A roster without any capacity column is
// accepted with capacity 1 per member, and flagged through Log.
func (l Loader) LoadStaff(r io.Reader) ([]model.Staff, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idIdx, ok := findColumn(cols, idColumns)
	if !ok {
		return nil, fmt.Errorf("roster is missing an id column (id or staff_id)")
	}
	nameIdx, _ := findColumn(cols, nameColumns)
	locIdx, _ := findColumn(cols, locationColumns)
	capIdx, hasCapacity := findColumn(cols, capacityColumns)
	if !hasCapacity && l.Log != nil {
		l.Log.Warnf("roster has no capacity column, defaulting every member to 1 task/day")
	}

	var staff []model.Staff
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("roster row %d: %w", row, err)
		}
		s := model.Staff{Capacity: 1}
		s.ID = strings.TrimSpace(field(rec, idIdx))
		if s.ID == "" {
			return nil, fmt.Errorf("roster row %d: missing staff id", row)
		}
		s.Name = strings.TrimSpace(field(rec, nameIdx))
		s.Location = strings.TrimSpace(field(rec, locIdx))
		if hasCapacity {
			raw := strings.TrimSpace(field(rec, capIdx))
			if raw == "" {
				return nil, fmt.Errorf("roster row %d: missing capacity for staff %q", row, s.ID)
			}
			cap, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("roster row %d: capacity %q is not a number", row, raw)
			}
			if cap <= 0 {
				return nil, fmt.Errorf("roster row %d: capacity must be positive, got %v", row, cap)
			}
			s.Capacity = cap
		}
		staff = append(staff, s)
	}
	if len(staff) == 0 {
		return nil, fmt.Errorf("roster contains no staff rows")
	}
	return staff, nil
}

func findColumn(cols map[string]int, names []string) (int, bool) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, true
		}
	}
	return -1, false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inventree-tools/crewplan/core/model"
)

// MachineInfo is one entry of the machine to missing-parts mapping
// produced by the order pipeline. Alias keys from older exports are
// accepted alongside the canonical names.
type MachineInfo struct {
	OrderPK      orderRef `json:"order_pk"`
	Order        orderRef `json:"order"`
	MissingParts []string `json:"missing_parts"`
	Missing      []string `json:"missing"`
	TargetDate   string   `json:"target_date"`
	Target       string   `json:"target"`
	Location     string   `json:"location"`
	Loc          string   `json:"loc"`
}

// orderRef tolerates both numeric and string order references.
type orderRef string

func (o *orderRef) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*o = orderRef(s)
	return nil
}

// BuildTasks flattens a machine mapping into one Task per missing part.
// Machines are visited in sorted order so the task sequence, and with it
// the schedule output order, is deterministic.
func BuildTasks(mapping map[string]MachineInfo) []model.Task {
	machines := make([]string, 0, len(mapping))
	for m := range mapping {
		machines = append(machines, m)
	}
	sort.Strings(machines)

	var tasks []model.Task
	for _, machine := range machines {
		info := mapping[machine]
		order := string(info.OrderPK)
		if order == "" {
			order = string(info.Order)
		}
		target := info.TargetDate
		if target == "" {
			target = info.Target
		}
		loc := info.Location
		if loc == "" {
			loc = info.Loc
		}
		parts := info.MissingParts
		if len(parts) == 0 {
			parts = info.Missing
		}
		for _, p := range parts {
			tasks = append(tasks, model.Task{
				Machine:    machine,
				Order:      order,
				Part:       p,
				TargetDate: target,
				Location:   loc,
			})
		}
	}
	return tasks
}

// ReadTasks decodes a mapping JSON document and flattens it.
func ReadTasks(r io.Reader) ([]model.Task, error) {
	var mapping map[string]MachineInfo
	if err := json.NewDecoder(r).Decode(&mapping); err != nil {
		return nil, fmt.Errorf("decode task mapping: %w", err)
	}
	return BuildTasks(mapping), nil
}

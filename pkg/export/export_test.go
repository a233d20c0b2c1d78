package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventree-tools/crewplan/core/model"
)

func sampleSchedule() model.Schedule {
	return model.Schedule{
		{
			Task:  model.Task{Machine: "press-1", Order: "87", Part: "filter", TargetDate: "2026-09-05", Location: "chennai"},
			Staff: model.Staff{ID: "s1", Name: "Arun", Location: "Chennai Workshop", Capacity: 2},
			Day:   2,
			Date:  "2026-09-05",
		},
		{
			Task:  model.Task{Machine: "press-2", Order: "88", Part: "belt"},
			Staff: model.Staff{ID: "s2", Name: "Bala", Location: "Avadi", Capacity: 1},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	sched := sampleSchedule()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sched))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(sched))
	for i := range sched {
		assert.Equal(t, sched[i].Task.Machine, back[i].Task.Machine)
		assert.Equal(t, sched[i].Task.Part, back[i].Task.Part)
		assert.Equal(t, sched[i].Staff.ID, back[i].Staff.ID)
		assert.Equal(t, sched[i].Date, back[i].Date)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSchedule()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	task := decoded[0]["task"].(map[string]any)
	assert.Equal(t, "press-1", task["machine"])
	// single-day assignment has no date field
	_, hasDate := decoded[1]["date"]
	assert.False(t, hasDate)
}

func TestReadCSVRejectsForeignHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b,c\n1,2,3\n"))
	require.Error(t, err)
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"BAIXA", SeverityLow, false},
		{"baixa", SeverityLow, false},
		{"Média", SeverityMedium, false},
		{"media", SeverityMedium, false},
		{" ALTA ", SeverityHigh, false},
		{"critical", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateIncidentRequest_Validate(t *testing.T) {
	valid := func() CreateIncidentRequest {
		return CreateIncidentRequest{
			Name:        "Buraco na via",
			Description: "Buraco grande",
			Latitude:    "Bloco A",
			Severity:    SeverityPtr(SeverityHigh),
		}
	}

	r := valid()
	require.NoError(t, r.Validate())

	r = valid()
	r.Name = ""
	assert.ErrorContains(t, r.Validate(), "nome is required")

	r = valid()
	r.Description = ""
	assert.ErrorContains(t, r.Validate(), "descricao is required")

	r = valid()
	r.Latitude = ""
	assert.ErrorContains(t, r.Validate(), "latitude is required")

	r = valid()
	r.Severity = SeverityPtr("URGENTE")
	assert.ErrorContains(t, r.Validate(), "gravidade must be one of")

	r = valid()
	r.Severity = nil
	assert.NoError(t, r.Validate())
}

func TestCreateIncidentRequest_NormalizeDropsBlankImage(t *testing.T) {
	blank := "  "
	r := CreateIncidentRequest{Name: " a ", ImageURL: &blank}
	r.Normalize()
	assert.Equal(t, "a", r.Name)
	assert.Nil(t, r.ImageURL)
}

func TestCreateIncidentRequest_Incident(t *testing.T) {
	r := CreateIncidentRequest{Name: "n", Description: "d", Latitude: "l"}
	inc := r.Incident(9)
	require.NotNil(t, inc.Creator)
	assert.Equal(t, int64(9), inc.Creator.ID)
	assert.False(t, inc.Resolved)

	assert.Nil(t, r.Incident(0).Creator)
}

func TestIncident_WireFormat(t *testing.T) {
	inc := Incident{Name: "n", Description: "d", Latitude: "l", Creator: &CreatorRef{ID: 3}}
	data, err := json.Marshal(inc)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "gravidade")
	assert.Nil(t, m["gravidade"])
	assert.Equal(t, false, m["isResolved"])
	assert.Equal(t, map[string]any{"id": float64(3)}, m["criador"])
}

func TestIncidentFilter(t *testing.T) {
	incidents := []Incident{
		{ID: 1, Resolved: true, Severity: SeverityPtr(SeverityHigh)},
		{ID: 2, Resolved: false, Severity: SeverityPtr(SeverityLow)},
		{ID: 3, Resolved: false, Severity: SeverityPtr(SeverityHigh)},
		{ID: 4, Resolved: false},
	}

	ids := func(in []Incident) []int64 {
		out := make([]int64, 0, len(in))
		for _, i := range in {
			out = append(out, i.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(IncidentFilter{}.Apply(incidents)))
	assert.Equal(t, []int64{1}, ids(IncidentFilter{Status: IncidentStatusResolved}.Apply(incidents)))
	assert.Equal(t, []int64{2, 3, 4}, ids(IncidentFilter{Status: IncidentStatusPending}.Apply(incidents)))
	assert.Equal(t, []int64{3}, ids(IncidentFilter{
		Status:   IncidentStatusPending,
		Severity: SeverityPtr(SeverityHigh),
	}.Apply(incidents)))
}

func TestComputeIncidentStats(t *testing.T) {
	stats := ComputeIncidentStats([]Incident{
		{Resolved: true, Severity: SeverityPtr(SeverityHigh)},
		{Severity: SeverityPtr(SeverityMedium)},
		{Severity: SeverityPtr(SeverityLow)},
		{},
	})
	assert.Equal(t, IncidentStats{Total: 4, Resolved: 1, Pending: 3, High: 1, Medium: 1, Low: 1}, stats)
}

func TestIncidentFilter_DateRange(t *testing.T) {
	at := func(s string) *time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return &ts
	}
	day := func(s string) time.Time {
		ts, err := time.Parse(time.DateOnly, s)
		require.NoError(t, err)
		return ts
	}
	incidents := []Incident{
		{ID: 1, CreatedAt: at("2024-03-01T23:59:00Z")},
		{ID: 2, CreatedAt: at("2024-03-05T08:00:00Z")},
		{ID: 3, CreatedAt: at("2024-03-10T00:00:00Z")},
		{ID: 4},
	}

	got := IncidentFilter{From: day("2024-03-01"), To: day("2024-03-05")}.Apply(incidents)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	got = IncidentFilter{From: day("2024-03-06")}.Apply(incidents)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	assert.Len(t, IncidentFilter{}.Apply(incidents), 4, "no date bound keeps undated incidents")
}

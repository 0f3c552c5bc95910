package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentages(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []int
	}{
		{name: "simple split", values: []int{7, 3}, want: []int{70, 30}},
		{name: "thirds", values: []int{1, 1, 1}, want: []int{33, 33, 33}},
		{name: "halves round up", values: []int{1, 7}, want: []int{13, 88}},
		{name: "all zero", values: []int{0, 0}, want: []int{0, 0}},
		{name: "empty", values: nil, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentages(tt.values))
		})
	}
}

func TestBuildBarChart(t *testing.T) {
	loc := NewLocalizer(English)
	chart := BuildBarChart([]string{"Alice", "Bob"}, []int{200, 100}, "Characters per participant", MetricCharacters, nil, loc)

	assert.Equal(t, ChartBar, chart.Type)
	assert.Equal(t, []string{"Alice", "Bob"}, chart.Data.Labels)
	assert.Equal(t, []int{200, 100}, chart.Values())
	assert.Equal(t, GenerateColors(2), chart.Data.Datasets[0].BackgroundColor)
	assert.False(t, chart.Options.Plugins.Legend.Display)
	require.NotNil(t, chart.Options.Scales)
	assert.True(t, chart.Options.Scales.Y.BeginAtZero)
	assert.Equal(t, []string{"200 characters", "100 characters"}, chart.TooltipLabels)

	words := BuildBarChart([]string{"Alice"}, []int{35}, "", MetricWords, nil, loc)
	assert.Equal(t, []string{"35 words"}, words.TooltipLabels)
	assert.False(t, words.Options.Plugins.Title.Display)
}

func TestBuildPieChart(t *testing.T) {
	chart := BuildPieChart([]string{"Alice", "Bob"}, []int{7, 3}, "Messages per participant", nil)

	assert.Equal(t, ChartPie, chart.Type)
	assert.Equal(t, []int{7, 3}, chart.Values())
	assert.Nil(t, chart.Options.Scales)
	assert.True(t, chart.Options.Plugins.Legend.Display)
	assert.Equal(t, "right", chart.Options.Plugins.Legend.Position)
	require.NotNil(t, chart.Options.Plugins.Legend.Labels)
	assert.Equal(t, 14, chart.Options.Plugins.Legend.Labels.BoxWidth)
	assert.Equal(t, []string{"Alice: 7 (70%)", "Bob: 3 (30%)"}, chart.TooltipLabels)
}

func TestChartConfigJSON(t *testing.T) {
	chart := BuildPieChart([]string{"Alice"}, []int{1}, "", []string{"red"})

	encoded, err := chart.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	assert.Equal(t, "pie", decoded["type"])
	assert.Equal(t, []any{"Alice: 1 (100%)"}, decoded["tooltipLabels"])
}

func TestRankSenders(t *testing.T) {
	ranked := rankSenders([]string{"Ann", "Ben", "Cid", "Dee"}, map[string]int{"Ann": 1, "Ben": 3, "Cid": 3})

	labels, values := splitRanked(ranked)
	assert.Equal(t, []string{"Ben", "Cid", "Ann", "Dee"}, labels)
	assert.Equal(t, []int{3, 3, 1, 0}, values)
}

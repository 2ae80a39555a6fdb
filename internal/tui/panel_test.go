package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionPanel_Parse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		total   int
		want    int
		wantOK  bool
		wantErr string
	}{
		{name: "valid", value: "5", total: 45, want: 5, wantOK: true},
		{name: "surrounding spaces", value: " 12 ", total: 45, want: 12, wantOK: true},
		{name: "equal to total", value: "45", total: 45, want: 45, wantOK: true},
		{name: "empty", value: "", total: 45, wantErr: msgInvalidCount},
		{name: "zero", value: "0", total: 45, wantErr: msgInvalidCount},
		{name: "negative", value: "-3", total: 45, wantErr: msgInvalidCount},
		{name: "too many", value: "46", total: 45, wantErr: "Cannot select more than 45 rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSelectionPanel()
			p.Open()
			p.SetValue(tt.value)

			got, ok := p.Parse(tt.total)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, p.Err())
		})
	}
}

func TestSelectionPanel_OpenClearsError(t *testing.T) {
	p := NewSelectionPanel()
	p.SetError("boom")
	p.Open()
	assert.Empty(t, p.Err())
}

func TestSelectionPanel_View(t *testing.T) {
	p := NewSelectionPanel()
	p.Open()

	view := p.View(100, 3, 12, 80)
	assert.Contains(t, view, "Custom Row Selection")
	assert.Contains(t, view, "Total records: 100")
	assert.Contains(t, view, "Currently selected: 3")
	assert.Contains(t, view, "Available on this page: 12")

	full := p.View(100, 100, 12, 80)
	assert.Contains(t, full, "Maximum selection (100) reached")
	assert.NotContains(t, full, "Number of rows")
}

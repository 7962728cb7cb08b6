package panel

import (
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
)

func TestStatusToPresentation(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		wantLabel string
		wantIcon  string
		wantColor text.Color
		wantBadge string
	}{
		{name: "connected", status: "connected", wantLabel: "Connected", wantIcon: "✓", wantColor: text.FgGreen, wantBadge: BadgeSuccess},
		{name: "connected uppercase", status: "CONNECTED", wantLabel: "Connected", wantIcon: "✓", wantColor: text.FgGreen, wantBadge: BadgeSuccess},
		{name: "disconnected", status: "disconnected", wantLabel: "Disconnected", wantIcon: "✗", wantColor: text.FgYellow, wantBadge: BadgeWarning},
		{name: "failed mixed case", status: "Failed", wantLabel: "Failed", wantIcon: "✗", wantColor: text.FgRed, wantBadge: BadgeError},
		{name: "empty", status: "", wantLabel: "Unknown", wantIcon: "⏻", wantColor: text.FgHiBlack, wantBadge: BadgeNeutral},
		{name: "unrecognized", status: "starting", wantLabel: "Unknown", wantIcon: "⏻", wantColor: text.FgHiBlack, wantBadge: BadgeNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pres := StatusToPresentation(tt.status)
			assert.Equal(t, tt.wantLabel, pres.Label)
			assert.Equal(t, tt.wantIcon, pres.Icon)
			assert.Equal(t, tt.wantColor, pres.Color)
			assert.Equal(t, tt.wantBadge, pres.Badge)
		})
	}
}

// Same input must always yield the same presentation; nothing about the
// mapping may depend on prior calls.
func TestStatusToPresentationIsPure(t *testing.T) {
	first := StatusToPresentation("connected")
	StatusToPresentation("failed")
	StatusToPresentation("")
	second := StatusToPresentation("connected")
	assert.Equal(t, first, second)
}

func TestStatusPresentationRender(t *testing.T) {
	pres := StatusToPresentation("connected")
	assert.Equal(t, "✓ Connected", pres.Render(false))
	assert.Contains(t, pres.Render(true), "Connected")
}

package panel

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Avyakta000/mcp-client/internal/api"
)

// StatusPresentation describes how a connection status is rendered: the
// indicator color, the icon, the human label, and the badge variant used
// by table cells. It is a pure function of the status string so every
// component shows the same indicator for the same status.
type StatusPresentation struct {
	Label string
	Icon  string
	Color text.Color
	Badge string
}

// Badge variants used across the dashboard.
const (
	BadgeSuccess = "success"
	BadgeWarning = "warning"
	BadgeError   = "error"
	BadgeNeutral = "neutral"
)

// StatusToPresentation maps a connection status string onto its
// presentation. Comparison is case-insensitive; anything outside the three
// known states renders as the gray unknown indicator.
func StatusToPresentation(status string) StatusPresentation {
	switch api.NormalizeStatus(status) {
	case api.StatusConnected:
		return StatusPresentation{Label: "Connected", Icon: "✓", Color: text.FgGreen, Badge: BadgeSuccess}
	case api.StatusDisconnected:
		return StatusPresentation{Label: "Disconnected", Icon: "✗", Color: text.FgYellow, Badge: BadgeWarning}
	case api.StatusFailed:
		return StatusPresentation{Label: "Failed", Icon: "✗", Color: text.FgRed, Badge: BadgeError}
	default:
		return StatusPresentation{Label: "Unknown", Icon: "⏻", Color: text.FgHiBlack, Badge: BadgeNeutral}
	}
}

// Render returns the colored "icon label" indicator string.
func (p StatusPresentation) Render(color bool) string {
	if color {
		return p.Color.Sprintf("%s %s", p.Icon, p.Label)
	}
	return fmt.Sprintf("%s %s", p.Icon, p.Label)
}

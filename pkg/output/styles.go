package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colours switch automatically between light and dark terminals
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
)

// Style names
const (
	StyleHeading = "heading"
	StyleSuccess = "success"
	StyleError   = "error"
	StyleWarning = "warning"
	StyleMuted   = "muted"
)

// newStyles builds the style registry bound to w's colour profile
func newStyles(w io.Writer) map[string]lipgloss.Style {
	r := lipgloss.NewRenderer(w)
	return map[string]lipgloss.Style{
		StyleHeading: r.NewStyle().Foreground(HeadingColor).Bold(true),
		StyleSuccess: r.NewStyle().Foreground(SuccessColor).Bold(true),
		StyleError:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		StyleWarning: r.NewStyle().Foreground(WarningColor).Bold(true),
		StyleMuted:   r.NewStyle().Foreground(MutedColor),
	}
}

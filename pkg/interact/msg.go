package interact

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var Writer io.Writer = os.Stdout

var (
	green = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	red   = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	teal  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	gray  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
)

func Infof(s string, args ...any) {
	_, _ = fmt.Fprintln(Writer, InfoStringf(s, args...))
}

func Errorf(s string, args ...any) {
	_, _ = fmt.Fprintln(Writer, ErrorStringf(s, args...))
}

func Successf(s string, args ...any) {
	_, _ = fmt.Fprintln(Writer, SuccessStringf(s, args...))
}

func Error(s string) {
	_, _ = fmt.Fprintln(Writer, ErrorString(s))
}

func Info(s string) {
	_, _ = fmt.Fprintln(Writer, InfoString(s))
}

// Print writes s unstyled. Used for text the user may want to copy verbatim, like help.
func Print(s string) {
	_, _ = fmt.Fprint(Writer, s)
}

func Mutedf(s string, args ...any) {
	_, _ = fmt.Fprintln(Writer, lipgloss.NewStyle().Foreground(gray).Render(fmt.Sprintf(s, args...)))
}

func InfoStringf(s string, args ...any) string {
	return InfoString(fmt.Sprintf(s, args...))
}

func ErrorStringf(s string, args ...any) string {
	return ErrorString(fmt.Sprintf(s, args...))
}

func SuccessStringf(s string, args ...any) string {
	return SuccessString(fmt.Sprintf(s, args...))
}

func InfoString(s string) string {
	return lipgloss.NewStyle().Foreground(teal).Render(s)
}

func ErrorString(s string) string {
	return lipgloss.NewStyle().Foreground(red).Render(s)
}

func SuccessString(s string) string {
	return lipgloss.NewStyle().Foreground(green).Render(s)
}

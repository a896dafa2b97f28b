package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/wayfarer-app/wayfarer/pkg/config"
)

// SetupLogger builds the process-wide slog.Logger on top of a styled
// charmbracelet/log handler and installs it as the default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("❌").
		Bold(true).
		Padding(0, 1).
		Foreground(errorTxtColor)
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("ℹ️").
		Bold(true).
		Padding(0, 1).
		Foreground(infoTxtColor)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("⚠️").
		Bold(true).
		Padding(0, 1).
		Foreground(warnTxtColor)
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("🐛").
		Bold(true).
		Padding(0, 1).
		Foreground(debugTxtColor)

	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorTxtColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["trip_id"] = lipgloss.NewStyle().Foreground(infoTxtColor)
	styles.Keys["key"] = lipgloss.NewStyle().Foreground(debugTxtColor)

	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}

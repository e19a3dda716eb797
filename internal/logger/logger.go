package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

var useColor = isatty.IsTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func line(color, level, tag, msg string) {
	fmt.Printf("%s %s %s\n", paint(color, level), paint(colorBold, "["+tag+"]"), msg)
}

// Info logs an informational message with a component tag.
func Info(tag, msg string) { line(colorCyan, "INFO", tag, msg) }

// Success logs a completed-step message.
func Success(tag, msg string) { line(colorGreen, " OK ", tag, msg) }

// Warn logs a warning.
func Warn(tag, msg string) { line(colorYellow, "WARN", tag, msg) }

// Error logs an error.
func Error(tag, msg string) { line(colorRed, "FAIL", tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(paint(colorCyan, `  ___ __   _____   _ __   __ ___   __
 / _ \\ \ / / _ \ | '_ \ / _` + "`" + ` \ \ / /
|  __/ \ V /  __/ | | | | (_| |\ V /
 \___|  \_/ \___| |_| |_|\__,_| \_/`))
	fmt.Printf("%s %s\n\n", paint(colorBold, "eve-navigator"), version)
}

// Section prints a section divider used around load-time statistics.
func Section(title string) {
	fmt.Printf("\n%s\n", paint(colorBold, "== "+title+" =="))
}

// Stats prints a single key/count statistic under a Section.
func Stats(key string, value int) {
	fmt.Printf("  %-14s %d\n", key, value)
}

// Server announces the listen address once the HTTP surface is up.
func Server(addr string) {
	fmt.Printf("\n%s http://%s\n\n", paint(colorGreen, "Serving on"), addr)
}

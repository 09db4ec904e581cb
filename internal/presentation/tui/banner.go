package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for cove.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient scheme (teal into blue)
	s1 := termenv.String("   ___ _____   _____ ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / __/ _ \\ \\ / / _ \\").Foreground(p.Color("#38bdf8"))
	s3 := termenv.String(" | (_| (_) \\ V /  __/").Foreground(p.Color("#60a5fa"))
	s4 := termenv.String("  \\___\\___/ \\_/ \\___|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println()
}

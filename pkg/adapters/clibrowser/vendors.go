// Package clibrowser captures HTML files as PNG images by invoking a
// locally installed graphical browser in headless CLI mode.
package clibrowser

import (
	"fmt"
	"os"
	"runtime"
)

// screenshotSyntax selects how a vendor's CLI expects the screenshot
// destination to be passed.
type screenshotSyntax int

const (
	// combinedSyntax passes --screenshot=<path> as one token.
	combinedSyntax screenshotSyntax = iota
	// splitSyntax passes --screenshot <path> as two tokens.
	splitSyntax
)

// screenshotArgs renders the destination flag for this syntax.
func (s screenshotSyntax) screenshotArgs(pngPath string) []string {
	if s == combinedSyntax {
		return []string{fmt.Sprintf("--screenshot=%s", pngPath)}
	}
	return []string{"--screenshot", pngPath}
}

// other returns the alternate syntax, used for the fallback retry when
// the preferred form produced no output file.
func (s screenshotSyntax) other() screenshotSyntax {
	if s == combinedSyntax {
		return splitSyntax
	}
	return combinedSyntax
}

// vendor describes one browser family as configuration data: where it
// installs, what it is called on PATH, and which screenshot-flag
// syntax it prefers.
type vendor struct {
	name     string
	syntax   screenshotSyntax
	commands []string // PATH command names, tried in order
}

// installPaths returns well-known installation paths for this vendor
// on the current platform.
func (v vendor) installPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		switch v.name {
		case "chrome":
			return []string{
				"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
				"/Applications/Chromium.app/Contents/MacOS/Chromium",
			}
		case "edge":
			return []string{
				"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			}
		}
	case "linux":
		switch v.name {
		case "chrome":
			return []string{
				"/usr/bin/google-chrome-stable",
				"/usr/bin/google-chrome",
				"/usr/bin/chromium-browser",
				"/usr/bin/chromium",
			}
		case "edge":
			return []string{
				"/usr/bin/microsoft-edge-stable",
				"/usr/bin/microsoft-edge",
			}
		}
	case "windows":
		programFiles := os.Getenv("PROGRAMFILES")
		programFilesX86 := os.Getenv("PROGRAMFILES(X86)")
		var paths []string
		switch v.name {
		case "chrome":
			if programFiles != "" {
				paths = append(paths, programFiles+"\\Google\\Chrome\\Application\\chrome.exe")
			}
			if programFilesX86 != "" {
				paths = append(paths, programFilesX86+"\\Google\\Chrome\\Application\\chrome.exe")
			}
		case "edge":
			if programFilesX86 != "" {
				paths = append(paths, programFilesX86+"\\Microsoft\\Edge\\Application\\msedge.exe")
			}
			if programFiles != "" {
				paths = append(paths, programFiles+"\\Microsoft\\Edge\\Application\\msedge.exe")
			}
		}
		return paths
	}
	return nil
}

// vendors lists the supported browser families in discovery order.
// Chrome historically accepts the combined --screenshot=<path> form
// while Edge expects the destination as a separate token; either way
// the renderer retries with the other form when no file appears.
var vendors = []vendor{
	{
		name:     "chrome",
		syntax:   combinedSyntax,
		commands: []string{"google-chrome", "chrome", "chromium"},
	},
	{
		name:     "edge",
		syntax:   splitSyntax,
		commands: []string{"msedge", "microsoft-edge"},
	},
}

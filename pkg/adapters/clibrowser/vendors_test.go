package clibrowser

import (
	"strings"
	"testing"
)

func TestScreenshotArgsCombined(t *testing.T) {
	args := combinedSyntax.screenshotArgs("/tmp/out.png")
	if len(args) != 1 {
		t.Fatalf("expected single token, got %d", len(args))
	}
	if args[0] != "--screenshot=/tmp/out.png" {
		t.Errorf("unexpected arg: %s", args[0])
	}
}

func TestScreenshotArgsSplit(t *testing.T) {
	args := splitSyntax.screenshotArgs("/tmp/out.png")
	if len(args) != 2 {
		t.Fatalf("expected two tokens, got %d", len(args))
	}
	if args[0] != "--screenshot" || args[1] != "/tmp/out.png" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestSyntaxOther(t *testing.T) {
	if combinedSyntax.other() != splitSyntax {
		t.Error("combined should alternate to split")
	}
	if splitSyntax.other() != combinedSyntax {
		t.Error("split should alternate to combined")
	}
}

func TestVendorOrder(t *testing.T) {
	if len(vendors) < 2 {
		t.Fatalf("expected at least two vendors, got %d", len(vendors))
	}
	if vendors[0].name != "chrome" {
		t.Errorf("chrome should be tried first, got %s", vendors[0].name)
	}
	if vendors[1].name != "edge" {
		t.Errorf("edge should be second, got %s", vendors[1].name)
	}
}

func TestVendorSyntaxes(t *testing.T) {
	for _, v := range vendors {
		switch v.name {
		case "chrome":
			if v.syntax != combinedSyntax {
				t.Error("chrome should prefer the combined --screenshot= form")
			}
		case "edge":
			if v.syntax != splitSyntax {
				t.Error("edge should prefer the split --screenshot form")
			}
		}
	}
}

func TestVendorCommands(t *testing.T) {
	for _, v := range vendors {
		if len(v.commands) == 0 {
			t.Errorf("vendor %s has no PATH commands", v.name)
		}
		for _, cmd := range v.commands {
			if strings.ContainsAny(cmd, "/\\") {
				t.Errorf("vendor %s command %q should be a bare name", v.name, cmd)
			}
		}
	}
}

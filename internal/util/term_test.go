package util_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/opencatalog/catalogctl/internal/util"
)

func TestInitColorHonorsNoColorEnv(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	color.NoColor = false
	t.Setenv("NO_COLOR", "1")
	util.InitColor(false)
	if !color.NoColor {
		t.Error("NO_COLOR in the environment must disable color")
	}
}

func TestInitColorFlagDisables(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	color.NoColor = false
	util.InitColor(true)
	if !color.NoColor {
		t.Error("--no-color must disable color")
	}
}

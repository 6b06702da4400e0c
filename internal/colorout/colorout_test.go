package colorout

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// disableColor forces plain output for the duration of the test, since
// the color library would otherwise decide based on the environment.
func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// TestFprintln verifies the generic colored print helpers with known,
// unknown, and "default" color names. With color disabled, all of them
// reduce to the plain message.
func TestFprintln(t *testing.T) {
	disableColor(t)

	for _, name := range []string{"red", "RED", "green", "default", "DEFAULT", "no-such-color"} {
		var buf bytes.Buffer
		Fprintln(&buf, name, "hello")
		assert.Equal(t, "hello\n", buf.String(), "color %q", name)
	}
}

// TestFprint verifies that Fprint omits the trailing newline.
func TestFprint(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	Fprint(&buf, "yellow", "partial")
	assert.Equal(t, "partial", buf.String())
}

// TestBold verifies the bold helper.
func TestBold(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	Bold(&buf, "emphasis")
	assert.Equal(t, "emphasis\n", buf.String())
}

// TestColoredOutput verifies that a known color actually emits escape
// sequences when color is enabled.
func TestColoredOutput(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	Fprintln(&buf, "red", "alert")
	assert.Contains(t, buf.String(), "\x1b[31m")
	assert.Contains(t, buf.String(), "\x1b[0m", "color must be reset at the end")
}

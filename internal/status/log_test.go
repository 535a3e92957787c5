package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_AppendAndText(t *testing.T) {
	var l Log
	assert.True(t, l.Empty())
	assert.False(t, l.Failed())

	l.Append("Mode: dock", false)
	l.Append("xrandr --output DP-1 --off", false)

	assert.False(t, l.Failed())
	assert.Equal(t, "Mode: dock\nxrandr --output DP-1 --off", l.Text())
	assert.Len(t, l.Lines(), 2)
}

func TestLog_ErrorFlagsWholeLog(t *testing.T) {
	var l Log
	l.Append("xrandr --output DP-1 --mode 1920x1080 --rate 60", false)
	l.Append("xrandr: cannot find mode 1920x1080", true)
	l.Append("xrandr --output DP-2 --off", false)

	assert.True(t, l.Failed())
	lines := l.Lines()
	assert.False(t, lines[0].IsError)
	assert.True(t, lines[1].IsError)
	assert.False(t, lines[2].IsError)
}

func TestLog_Reset(t *testing.T) {
	var l Log
	l.Append("boom", true)
	l.Reset()

	assert.True(t, l.Empty())
	assert.False(t, l.Failed())
	assert.Equal(t, "", l.Text())
}

func TestLog_LinesIsCopy(t *testing.T) {
	var l Log
	l.Append("a", false)
	lines := l.Lines()
	lines[0].Text = "changed"
	assert.Equal(t, "a", l.Text())
}

func TestLog_ValueSemantics(t *testing.T) {
	var l Log
	l.Append("first", false)
	snapshot := l
	l.Append("second", true)

	assert.Equal(t, "first", snapshot.Text())
	assert.False(t, snapshot.Failed())
}

func TestErrorLog(t *testing.T) {
	l := ErrorLog("Error: Parsing JSON")
	assert.True(t, l.Failed())
	assert.Equal(t, "Error: Parsing JSON", l.Text())
}

func TestRenderANSI(t *testing.T) {
	assert.Empty(t, RenderANSI(Log{}))

	var ok Log
	ok.Append("Mode: solo", false)
	assert.Contains(t, RenderANSI(ok), "Mode: solo")

	var failed Log
	failed.Append("Mode: solo", false)
	failed.Append("bad mode", true)
	out := RenderANSI(failed)
	assert.Contains(t, out, "Mode: solo")
	assert.Contains(t, out, "bad mode")
}

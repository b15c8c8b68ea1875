package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default", wantInfo: true},
		{name: "verbose", verbose: true, wantDebug: true, wantInfo: true},
		{name: "quiet", quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := NewContext()
			ctx.Verbose = tt.verbose
			ctx.Quiet = tt.quiet
			ctx.SetLogOutput(&buf)

			ctx.Log("debug line")
			ctx.Info("info line")
			ctx.Error("error line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
			assert.Contains(t, out, "error line")
		})
	}
}

func TestContextJSONLogs(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.LogFormat = "json"
	ctx.SetLogOutput(&buf)

	ctx.Info("asset written", "path", "/tmp/a.bin")
	assert.Contains(t, buf.String(), `"path":"/tmp/a.bin"`)
}

func TestContextWithTimeout(t *testing.T) {
	ctx := NewContext()
	ctx.Verbose = true

	child, cancel := ctx.WithTimeout(time.Millisecond)
	defer cancel()

	assert.True(t, child.Verbose)
	<-child.Done()
	require.Error(t, child.Err())
	assert.NoError(t, ctx.Err())
}

func TestContextProgress(t *testing.T) {
	ctx := NewContext()
	ctx.Progress("no callback", 10)

	var got []int
	ctx.SetProgress(func(_ string, percent int) { got = append(got, percent) })
	ctx.Progress("half", 50)
	ctx.Progress("done", 100)
	assert.Equal(t, []int{50, 100}, got)
}

package logging

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newBufferLogger() (Logger, *zaptest.Buffer) {
	buf := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return NewLoggerFromCore(zapcore.NewCore(enc, buf, zapcore.DebugLevel)), buf
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindcloud.log")
	l, err := NewLogger(Options{Level: "debug", Format: "console", Output: path})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestLogger_FieldsAreEncoded(t *testing.T) {
	l, buf := newBufferLogger()
	l.Named("analysis").With(String("source", "stdin")).Info("done",
		Int("terms", 7),
		Uint64("generation", 3),
		Float64("score", 1.5),
		Bool("stale", false),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{`"logger":"analysis"`, `"source":"stdin"`, `"terms":7`, `"generation":3`, `"stale":false`, `"error":"boom"`} {
		assert.Contains(t, out, want)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestDefault_IgnoresNil(t *testing.T) {
	before := Default()
	SetDefault(nil)
	assert.Equal(t, before, Default())

	nop := NewNopLogger()
	SetDefault(nop)
	assert.Equal(t, nop, Default())
	assert.NoError(t, Default().Sync())
}

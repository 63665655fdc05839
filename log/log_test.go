package log

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const tsRegex = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{0,9}Z`

func TestLoggerLogfmt(t *testing.T) {
	var b bytes.Buffer
	l, err := NewLogger("chainspec", &b, FmtLogfmt, LevelDebug)
	require.NoError(t, err)

	l.Debug("building spec")
	require.Regexp(t, regexp.MustCompile(
		`level=debug ts=`+tsRegex+` caller=log_test\.go:\d{1,4} module=chainspec msg="building spec"`),
		b.String())
}

func TestLoggerJSON(t *testing.T) {
	var b bytes.Buffer
	l, err := NewLogger("chainspec", &b, FmtJSON, LevelDebug)
	require.NoError(t, err)

	l.Debug("building spec")
	require.Regexp(t, regexp.MustCompile(
		`{"caller":"log_test\.go:\d{1,4}","level":"debug","module":"chainspec","msg":"building spec","ts":"`+tsRegex+`"}\n`),
		b.String())
}

func TestLoggerInvalid(t *testing.T) {
	var b bytes.Buffer
	_, err := NewLogger("chainspec", &b, Format(255), LevelDebug)
	require.Error(t, err)
}

func TestWith(t *testing.T) {
	var b bytes.Buffer
	l, err := NewLogger("chainspec", &b, FmtJSON, LevelDebug)
	require.NoError(t, err)

	l.With("para_id", 4540).Debug("building spec")
	require.Regexp(t, regexp.MustCompile(
		`{"caller":"log_test\.go:\d{1,4}","level":"debug","module":"chainspec","msg":"building spec","para_id":4540,"ts":"`+tsRegex+`"}\n`),
		b.String())
}

func TestWithModule(t *testing.T) {
	var b bytes.Buffer
	l, err := NewLogger("chainspec", &b, FmtJSON, LevelDebug)
	require.NoError(t, err)

	l.WithModule("genesis").Debug("building spec")
	require.Regexp(t, regexp.MustCompile(
		`{"caller":"log_test\.go:\d{1,4}","level":"debug","module":"genesis","msg":"building spec","ts":"`+tsRegex+`"}\n`),
		b.String())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	require.NotPanics(t, func() {
		l.Error("dropped", "err", "nothing")
		l.With("k", "v").WithModule("m").Info("dropped")
	})
}

func TestLevels(t *testing.T) {
	for _, tc := range []struct {
		name    string
		min     Level
		logAt   func(*Logger)
		written bool
	}{
		{"debug filtered", LevelInfo, func(l *Logger) { l.Debug("x") }, false},
		{"debug written", LevelDebug, func(l *Logger) { l.Debug("x") }, true},
		{"info filtered", LevelWarn, func(l *Logger) { l.Info("x") }, false},
		{"info written", LevelInfo, func(l *Logger) { l.Info("x") }, true},
		{"warn filtered", LevelError, func(l *Logger) { l.Warn("x") }, false},
		{"warn written", LevelWarn, func(l *Logger) { l.Warn("x") }, true},
		{"error written", LevelError, func(l *Logger) { l.Error("x") }, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var b bytes.Buffer
			l, err := NewLogger("chainspec", &b, FmtJSON, tc.min)
			require.NoError(t, err)
			tc.logAt(l)
			require.Equal(t, tc.written, b.Len() != 0)
		})
	}
}

func TestLevel(t *testing.T) {
	var lvl Level
	ls := lvl.Type()

	for _, l := range strings.Split(ls[1:len(ls)-1], ",") {
		require.NoError(t, lvl.Set(l))
		require.Equal(t, l, lvl.String())
	}
	require.NoError(t, lvl.Set("warn"))
	require.Equal(t, LevelWarn, lvl)
	require.Error(t, lvl.Set("invalid"))

	lvl = Level(255)
	require.Panics(t, func() { _ = lvl.String() })
}

func TestFormat(t *testing.T) {
	var f Format
	fs := f.Type()

	for _, name := range strings.Split(fs[1:len(fs)-1], ",") {
		require.NoError(t, f.Set(name))
		require.Equal(t, name, f.String())
	}
	require.Error(t, f.Set("invalid"))

	f = Format(255)
	require.Panics(t, func() { _ = f.String() })
}

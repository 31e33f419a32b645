package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/ctxutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer) *Logger {
	t.Helper()
	l, cleanup, err := New(&config.Logger{
		Level:  int(logrus.DebugLevel),
		Format: "json",
		Output: "discard",
		Desensitization: &config.Desensitization{
			Enabled:         true,
			SensitiveFields: []string{"password", "token", "authorization"},
			MaskChar:        "*",
			FixedMaskLength: 6,
		},
	})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	l.SetOutput(buf)
	return l
}

func TestLoggerAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	ctx = ctxutil.SetScreen(ctx, "Login")
	l.Infof(ctx, "hello %s", "world")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello world", line["msg"])
	assert.Equal(t, "trace-1", line[ctxutil.TraceIDKey])
	assert.Equal(t, "Login", line[ctxutil.ScreenKey])
	assert.Equal(t, "1.2.3", line[VersionKey])
}

func TestLoggerMasksSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.EntryWithFields(context.Background(), logrus.Fields{
		"password": "hunter22",
		"jwtToken": "abc.def.ghi",
		"mobile":   "1234567890",
		"body":     map[string]any{"password": "nested"},
	}).Info("Bearer abc.def.ghi sent")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "******", line["password"])
	assert.Equal(t, "******", line["jwtToken"])
	assert.Equal(t, "1234567890", line["mobile"])
	assert.Equal(t, map[string]any{"password": "******"}, line["body"])
	assert.Equal(t, "Bearer ****** sent", line["msg"])
}

func TestDesensitizerDisabled(t *testing.T) {
	d := NewDesensitizer(&config.Desensitization{Enabled: false, SensitiveFields: []string{"password"}})
	fields := logrus.Fields{"password": "x"}
	assert.Equal(t, fields, d.DesensitizeFields(fields))
}

func TestNewRequiresOutputFile(t *testing.T) {
	_, _, err := New(&config.Logger{Output: "file"})
	assert.Error(t, err)
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := NewLogger(LogConfig{Level: level, Format: "json"})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLogger_Formatters(t *testing.T) {
	for format, want := range map[string]logrus.Formatter{
		"json":    &logrus.JSONFormatter{},
		"text":    &logrus.TextFormatter{},
		"console": &CustomFormatter{},
		"":        &CustomFormatter{},
	} {
		l, err := NewLogger(LogConfig{Level: "info", Format: format})
		require.NoError(t, err)
		assert.IsType(t, want, l.Formatter, "format %q", format)
	}
}

func TestLogRequest(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.LogRequest("req-1", "POST", "/keypair", 200, 15*time.Millisecond)
	line := decodeLine(t, buf)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "/keypair", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.EqualValues(t, 15, line["duration_ms"])
	assert.Equal(t, "Request served", line["message"])

	buf.Reset()
	l.LogRequest("req-2", "POST", "/message/sign", 400, time.Millisecond)
	line = decodeLine(t, buf)
	assert.Equal(t, "warning", line["level"])
}

func TestLogError(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.LogError("api", "sign", errors.New("boom"), logrus.Fields{"request_id": "abc"})
	line := decodeLine(t, buf)
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "api", line["component"])
	assert.Equal(t, "sign", line["operation"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "abc", line["request_id"])
}

func TestLogInstruction(t *testing.T) {
	ix := solana.NewInstruction(
		solana.TokenProgramID,
		solana.AccountMetaSlice{solana.Meta(solana.SystemProgramID).WRITE()},
		[]byte{20, 6},
	)

	l, buf := newJSONLogger(t, "info")
	l.LogInstruction("r", "create_token", ix)
	assert.Zero(t, buf.Len())

	l, buf = newJSONLogger(t, "debug")
	l.LogInstruction("r", "create_token", ix)
	line := decodeLine(t, buf)
	assert.Equal(t, "1406", line["data"])
	assert.Equal(t, solana.TokenProgramID.String(), line["program_id"])
	assert.Equal(t, "0:11111111111111111111111111111111(s=false,w=true)", line["accounts"])
}

func TestCustomFormatter(t *testing.T) {
	f := &CustomFormatter{DisableColors: true}
	entry := &logrus.Entry{
		Time:    time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "hello",
		Data:    logrus.Fields{"b": 2, "a": 1},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02 03:04:05.006 [INFO] hello | a=1 b=2\n", string(out))
}

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	l, err := NewLogger(LogConfig{Level: "info", Format: "json", LogToFile: true, LogFilePath: path})
	require.NoError(t, err)

	l.LogShutdown("test")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reason":"test"`)
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputRedirectsLoggers(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)
	defer Init()

	require.NotNil(t, Structured())
	require.NotNil(t, HumanReadable())

	Structured().Info("structured message", "key", "value")
	HumanReadable().Info("human message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "structured message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Contains(t, human.String(), "human message")
}

func TestCustomLevelNames(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)
	defer Init()

	SetLevel(LevelTrace)
	defer SetLevel(slog.LevelInfo)

	Structured().Log(context.Background(), LevelTrace, "trace message")
	assert.Contains(t, structured.String(), `"TRACE"`)

	structured.Reset()
	Structured().Log(context.Background(), LevelFatal, "fatal message")
	assert.Contains(t, structured.String(), `"FATAL"`)
}

func TestSetLevelFiltersBothLoggers(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)
	defer Init()

	SetLevel(slog.LevelWarn)
	defer SetLevel(slog.LevelInfo)

	Structured().Info("suppressed")
	HumanReadable().Info("suppressed")
	assert.Empty(t, structured.String())
	assert.Empty(t, human.String())

	Structured().Warn("kept")
	assert.Contains(t, structured.String(), "kept")
}

func TestForServiceAddsAttribute(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)
	defer Init()

	log := ForService("capture")
	require.NotNil(t, log)
	log.Info("service message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "capture", entry["service"])
}

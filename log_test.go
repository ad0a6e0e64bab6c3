package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Warn().Str("fragment", "a.yaml").Msg("skip fragment")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "skip fragment")
	assert.Contains(t, buf.String(), "fragment=a.yaml")

	buf.Reset()
	logger = newLogger(&buf, true)
	logger.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

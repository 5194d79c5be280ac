package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "production", "")

	log.Debug("hidden")
	log.Info("shown", "crop_id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"crop_id":7`)
}

func TestNewLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "local", "warn")

	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithCtxPrefersInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	tagged := New(&buf, "local", "").With("request_id", "abc")

	ctx := InjectLogger(context.Background(), tagged)
	WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
	assert.Same(t, L, WithCtx(context.Background()))
}

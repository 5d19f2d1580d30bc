package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), "prospects-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	r, err := newResource("prospects-test")
	require.NoError(t, err)

	value, ok := r.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "prospects-test", value.AsString())
}

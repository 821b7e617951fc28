package metrics_test

import (
	"context"
	"testing"

	"cohort-service/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_RegistersAllCounters(t *testing.T) {
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	require.NotNil(t, m)

	// Every operation records without panicking, updates included
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordProjectCreated(ctx)
		m.RecordProjectViewed(ctx)
		m.RecordProjectsListed(ctx)
		m.RecordProjectUpdated(ctx)
		m.RecordProjectDeleted(ctx)
		m.RecordStudentCreated(ctx)
		m.RecordStudentViewed(ctx)
		m.RecordStudentsListed(ctx)
		m.RecordStudentUpdated(ctx)
		m.RecordStudentDeleted(ctx)
	})
}

func TestMock_RecordsAreNoops(t *testing.T) {
	m := metrics.NewMock()

	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordProjectUpdated(ctx)
		m.RecordStudentUpdated(ctx)
	})
}

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecell/portal-api/internal/config"
)

type fakeCompleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCompleter) CompletePastEvents(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context has no deadline")
	}

	return 2, f.err
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(&config.SchedulerConfig{Enabled: true, CompletePastEvents: "0 0 * * * *"}, &fakeCompleter{})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Entries())
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler(&config.SchedulerConfig{Enabled: true, CompletePastEvents: "every hour"}, &fakeCompleter{})
	assert.Error(t, err)
}

func TestScheduler_CompletePastEvents(t *testing.T) {
	completer := &fakeCompleter{}
	s, err := NewScheduler(&config.SchedulerConfig{Enabled: true, CompletePastEvents: "0 0 * * * *"}, completer)
	require.NoError(t, err)

	s.CompletePastEvents()
	assert.EqualValues(t, 1, completer.calls.Load())

	completer.err = errors.New("db down")
	s.CompletePastEvents()
	assert.EqualValues(t, 2, completer.calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler(&config.SchedulerConfig{Enabled: true, CompletePastEvents: "@every 1h"}, &fakeCompleter{})
	require.NoError(t, err)

	s.Start()
	s.Stop()
}

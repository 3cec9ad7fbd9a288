package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/logging"
)

type recorderFunc func(job string, d time.Duration, success bool)

func (f recorderFunc) RecordJob(job string, d time.Duration, success bool) { f(job, d, success) }

type purger struct {
	n   int64
	err error
}

func (p purger) PurgeTokens(context.Context) (int64, error) { return p.n, p.err }

func TestRunRecordsOutcome(t *testing.T) {
	var buf bytes.Buffer
	var got []bool
	s := NewScheduler(logging.NewWithWriter(&buf, "freshcart", "debug"), recorderFunc(func(job string, _ time.Duration, ok bool) {
		require.Equal(t, "purge_refresh_tokens", job)
		got = append(got, ok)
	}))

	s.Run("purge_refresh_tokens", PurgeTokens(purger{n: 3}))
	s.Run("purge_refresh_tokens", PurgeTokens(purger{err: errors.New("db gone")}))

	require.Equal(t, []bool{true, false}, got)
	require.Contains(t, buf.String(), `"deleted":3`)
	require.Contains(t, buf.String(), "job_error")
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := NewScheduler(logging.NewWithWriter(&bytes.Buffer{}, "", "info"), nil)
	require.Error(t, s.Add("every tuesday", "x", func(context.Context) error { return nil }))
	require.NoError(t, s.Add(PurgeTokensSpec, "x", func(context.Context) error { return nil }))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

package importer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/importer"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
)

// mockSource is a test double for importer.Source. Set only the method
// fields a test needs.
type mockSource struct {
	listActivities func(ctx context.Context) ([]nikeplus.ActivitySummary, error)
	getActivity    func(ctx context.Context, id string) (*nikeplus.Activity, error)
}

func (m *mockSource) ListActivities(ctx context.Context) ([]nikeplus.ActivitySummary, error) {
	return m.listActivities(ctx)
}

func (m *mockSource) GetActivity(ctx context.Context, id string) (*nikeplus.Activity, error) {
	return m.getActivity(ctx, id)
}

var _ importer.Source = (*mockSource)(nil)

// mockDestination records submissions and fails the calls whose zero-based
// index is listed in failOn.
type mockDestination struct {
	calls     int
	submitted []healthgraph.FitnessActivity
	failOn    map[int]bool
}

func (m *mockDestination) SubmitActivity(ctx context.Context, accessToken string, activity healthgraph.FitnessActivity) error {
	call := m.calls
	m.calls++
	if m.failOn[call] {
		return errors.New("boom")
	}
	m.submitted = append(m.submitted, activity)
	return nil
}

var _ importer.Destination = (*mockDestination)(nil)

func summaryAt(id string, start time.Time) nikeplus.ActivitySummary {
	return nikeplus.ActivitySummary{ActivityID: id, StartTimeUTC: start}
}

func detailAt(id string, start time.Time) *nikeplus.Activity {
	return &nikeplus.Activity{
		ActivityID:   id,
		StartTimeUTC: start,
		Distance:     5.0,
		Duration:     1800000,
	}
}

func TestFetchAppliesCutoff(t *testing.T) {
	now := time.Date(2013, 4, 10, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -7)

	old := summaryAt("old", now.AddDate(0, 0, -10))
	recent := summaryAt("recent", now.AddDate(0, 0, -1))

	var fetched []string
	source := &mockSource{
		listActivities: func(ctx context.Context) ([]nikeplus.ActivitySummary, error) {
			return []nikeplus.ActivitySummary{old, recent}, nil
		},
		getActivity: func(ctx context.Context, id string) (*nikeplus.Activity, error) {
			fetched = append(fetched, id)
			return detailAt(id, now.AddDate(0, 0, -1)), nil
		},
	}

	activities, err := importer.New(&mockDestination{}).Fetch(context.Background(), source, &cutoff)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.True(t, activities[0].StartTime.Equal(recent.StartTimeUTC))
	// The filtered-out activity's detail is never fetched.
	assert.Equal(t, []string{"recent"}, fetched)
}

func TestFetchWithoutCutoffKeepsEverything(t *testing.T) {
	now := time.Date(2013, 4, 10, 12, 0, 0, 0, time.UTC)
	source := &mockSource{
		listActivities: func(ctx context.Context) ([]nikeplus.ActivitySummary, error) {
			return []nikeplus.ActivitySummary{
				summaryAt("a1", now.AddDate(-1, 0, 0)),
				summaryAt("a2", now.AddDate(0, 0, -1)),
			}, nil
		},
		getActivity: func(ctx context.Context, id string) (*nikeplus.Activity, error) {
			return detailAt(id, now), nil
		},
	}

	activities, err := importer.New(&mockDestination{}).Fetch(context.Background(), source, nil)

	require.NoError(t, err)
	assert.Len(t, activities, 2)
}

func TestFetchListErrorAborts(t *testing.T) {
	source := &mockSource{
		listActivities: func(ctx context.Context) ([]nikeplus.ActivitySummary, error) {
			return nil, errors.New("upstream down")
		},
	}

	_, err := importer.New(&mockDestination{}).Fetch(context.Background(), source, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list activities")
}

func TestFetchDetailErrorAborts(t *testing.T) {
	now := time.Now().UTC()
	source := &mockSource{
		listActivities: func(ctx context.Context) ([]nikeplus.ActivitySummary, error) {
			return []nikeplus.ActivitySummary{summaryAt("a1", now)}, nil
		},
		getActivity: func(ctx context.Context, id string) (*nikeplus.Activity, error) {
			return nil, errors.New("rate limited")
		},
	}

	_, err := importer.New(&mockDestination{}).Fetch(context.Background(), source, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch activity a1")
}

func TestSubmitCountsSuccesses(t *testing.T) {
	destination := &mockDestination{}
	activities := []healthgraph.FitnessActivity{
		{Type: "Running"},
		{Type: "Running"},
	}

	submitted := importer.New(destination).Submit(context.Background(), "rk-token", activities)

	assert.Equal(t, 2, submitted)
	assert.Len(t, destination.submitted, 2)
}

func TestSubmitContinuesPastFailures(t *testing.T) {
	// The second submission fails; the remaining activities still go out.
	destination := &mockDestination{failOn: map[int]bool{1: true}}
	activities := []healthgraph.FitnessActivity{
		{Type: "Running"},
		{Type: "Running"},
		{Type: "Running"},
	}

	submitted := importer.New(destination).Submit(context.Background(), "rk-token", activities)

	assert.Equal(t, 2, submitted)
}

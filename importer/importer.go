// Package importer drives the two phases of an import: fetching and
// translating the user's Nike+ history, and submitting the reviewed
// activities to Runkeeper.
package importer

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/aron/nikeplus-to-runkeeper/convert"
	"github.com/aron/nikeplus-to-runkeeper/healthgraph"
	"github.com/aron/nikeplus-to-runkeeper/nikeplus"
)

// Source lists a user's activities and fetches their full details.
type Source interface {
	ListActivities(ctx context.Context) ([]nikeplus.ActivitySummary, error)
	GetActivity(ctx context.Context, id string) (*nikeplus.Activity, error)
}

// Destination accepts translated activities.
type Destination interface {
	SubmitActivity(ctx context.Context, accessToken string, activity healthgraph.FitnessActivity) error
}

type Importer struct {
	destination Destination
}

func New(destination Destination) *Importer {
	return &Importer{
		destination: destination,
	}
}

// Fetch pulls every activity from the source, drops those starting before
// the cutoff, and translates the rest. Details are fetched one activity at
// a time; personal histories are small enough that this stays fast without
// any concurrency. Any upstream failure aborts the whole fetch.
func (i *Importer) Fetch(ctx context.Context, source Source, cutoff *time.Time) ([]healthgraph.FitnessActivity, error) {
	summaries, err := source.ListActivities(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "importer: failed to list activities")
	}

	var activities []healthgraph.FitnessActivity
	for _, summary := range summaries {
		// Skip before fetching detail so filtered-out activities cost nothing.
		if cutoff != nil && summary.StartTimeUTC.Before(*cutoff) {
			continue
		}
		detail, err := source.GetActivity(ctx, summary.ActivityID)
		if err != nil {
			return nil, errors.Wrapf(err, "importer: failed to fetch activity %s", summary.ActivityID)
		}
		activity, ok := convert.Activity(summary, detail, cutoff)
		if !ok {
			continue
		}
		activities = append(activities, *activity)
	}

	log.Printf("importer: translated %d of %d activities", len(activities), len(summaries))
	return activities, nil
}

// Submit posts each activity to the destination. A failing activity is
// logged and skipped so one bad record does not halt the batch. Returns the
// number of activities actually accepted.
func (i *Importer) Submit(ctx context.Context, accessToken string, activities []healthgraph.FitnessActivity) int {
	submitted := 0
	for _, activity := range activities {
		err := i.destination.SubmitActivity(ctx, accessToken, activity)
		if err != nil {
			log.Printf("importer: failed to submit activity starting %s: %v", activity.StartTime.Format(time.RFC3339), err)
			continue
		}
		submitted++
	}
	log.Printf("importer: submitted %d of %d activities", submitted, len(activities))
	return submitted
}

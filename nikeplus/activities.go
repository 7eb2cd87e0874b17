package nikeplus

import "context"

const activitiesPath = "/v1/me/sport/activities"

type listActivitiesResponse struct {
	Data []ActivitySummary `json:"data"`
}

// ListActivities returns summaries of every recorded activity, most recent
// first, in the order the API reports them.
func (c *Client) ListActivities(ctx context.Context) ([]ActivitySummary, error) {
	var response listActivitiesResponse
	err := c.get(ctx, activitiesPath, &response)
	if err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetActivity returns the full detail record for one activity. When the
// activity was recorded with GPS, the waypoint track is fetched as well.
func (c *Client) GetActivity(ctx context.Context, id string) (*Activity, error) {
	var activity Activity
	err := c.get(ctx, activitiesPath+"/"+id, &activity)
	if err != nil {
		return nil, err
	}

	if activity.GPS && activity.Geo == nil {
		var geo GeoData
		err = c.get(ctx, activitiesPath+"/"+id+"/gps", &geo)
		if err != nil {
			return nil, err
		}
		activity.Geo = &geo
	}

	return &activity, nil
}

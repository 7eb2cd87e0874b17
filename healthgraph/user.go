package healthgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	userPath    = "/user"
	profilePath = "/profile"
)

// User identifies the Runkeeper account an access token belongs to.
// Username is the last segment of the user's public profile URL.
type User struct {
	UserID   int
	Username string
	Fullname string
}

type userResponse struct {
	UserID int `json:"userID"`
}

type profileResponse struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
}

// GetUser fetches the identity and profile of the token's owner.
func (a *API) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var ur userResponse
	err := a.get(ctx, userPath, accessToken, &ur)
	if err != nil {
		return nil, err
	}

	var pr profileResponse
	err = a.get(ctx, profilePath, accessToken, &pr)
	if err != nil {
		return nil, err
	}

	username := pr.Profile
	if i := strings.LastIndex(username, "/"); i >= 0 {
		username = username[i+1:]
	}

	return &User{
		UserID:   ur.UserID,
		Username: username,
		Fullname: pr.Name,
	}, nil
}

// get performs an authenticated GET against the API and decodes the JSON
// response into out.
func (a *API) get(ctx context.Context, path, accessToken string, out interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiBaseURL+path, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := a.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthgraph: failed to get %s: %s", path, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

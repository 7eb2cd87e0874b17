// Package healthgraph is a client for the Runkeeper Health Graph API. It
// covers only what the importer needs: the OAuth2 authorization dance, the
// signed-in user's identity, and posting new fitness activities.
package healthgraph

import (
	"net/http"
	"net/url"
)

const (
	authBaseURL = "https://runkeeper.com/apps"
	apiBaseURL  = "https://api.runkeeper.com"
)

type API struct {
	client      *http.Client
	authBaseURL string
	apiBaseURL  string

	clientID     string
	clientSecret string
	redirectURL  string
}

func NewAPI(clientID, clientSecret, redirectURL string) *API {
	return &API{
		client:       &http.Client{},
		authBaseURL:  authBaseURL,
		apiBaseURL:   apiBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
	}
}

// AuthorizeURL returns the URL to send the user to for granting access.
// Runkeeper redirects back to the configured redirect URL with a code.
func (a *API) AuthorizeURL() string {
	q := url.Values{
		"client_id":     {a.clientID},
		"redirect_uri":  {a.redirectURL},
		"response_type": {"code"},
	}
	return a.authBaseURL + "/authorize?" + q.Encode()
}

package healthgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const tokenPath = "/token"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ExchangeToken trades an authorization code from the OAuth2 callback for
// an access token.
func (a *API) ExchangeToken(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {a.clientID},
		"client_secret": {a.clientSecret},
		"redirect_uri":  {a.redirectURL},
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authBaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := a.client.Do(request)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("healthgraph: failed to exchange token: %s", string(respBody))
	}
	var response tokenResponse
	err = json.Unmarshal(respBody, &response)
	if err != nil {
		return "", err
	}
	if response.AccessToken == "" {
		return "", fmt.Errorf("healthgraph: token response contained no access token")
	}
	return response.AccessToken, nil
}

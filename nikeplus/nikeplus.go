// Package nikeplus is a minimal client for the Nike+ API, covering login
// and activity retrieval. Authentication passes through the user's own
// email and password; the resulting access token is cached on the client.
package nikeplus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	baseURL   = "https://api.nike.com"
	loginPath = "/nsl/v2.0/user/login"
)

type Client struct {
	client  *http.Client
	baseURL string

	email    string
	password string

	accessToken string
}

func NewClient(email, password string) *Client {
	return &Client{
		client:   &http.Client{},
		baseURL:  baseURL,
		email:    email,
		password: password,
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// ensureLogin logs in on first use and caches the access token for the
// lifetime of the client.
func (c *Client) ensureLogin(ctx context.Context) error {
	if c.accessToken != "" {
		return nil
	}

	form := url.Values{
		"email":    {c.email},
		"password": {c.password},
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nikeplus: failed to log in: %s", string(respBody))
	}
	var response loginResponse
	err = json.Unmarshal(respBody, &response)
	if err != nil {
		return err
	}
	if response.AccessToken == "" {
		return fmt.Errorf("nikeplus: login response contained no access token")
	}
	c.accessToken = response.AccessToken
	return nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	err := c.ensureLogin(ctx)
	if err != nil {
		return err
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nikeplus: failed to get %s: %s", path, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

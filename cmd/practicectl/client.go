package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// newClient returns a resty client carrying the admin access key.
func newClient() *resty.Client {
	c := resty.New().SetBaseURL(apiFlag)
	if keyFlag != "" {
		c.SetAuthToken(keyFlag)
	}
	return c
}

// checkStatus converts non-2xx responses into errors with the raw body.
func checkStatus(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

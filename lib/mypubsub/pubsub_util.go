package mypubsub

import (
	"net/url"
	"strings"
)

// subscriptionSuffix derives a stable, valid subscription name part from the push endpoint.
func subscriptionSuffix(urlToPostTo string) string {
	u, err := url.Parse(urlToPostTo)
	if err != nil || u.Path == "" {
		return "push"
	}
	name := strings.Trim(strings.ReplaceAll(u.Path, "/", "-"), "-")
	if name == "" {
		return "push"
	}
	return name
}

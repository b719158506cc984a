package myhttpclient

import (
	"context"
)

//go:generate mockgen -source=api.go -package myhttpclient -destination http_sender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

// New returns a json sender that adds the given headers to every request.
func New(headers map[string]string) HTTPSender {
	return newJSONHTTPClient(headers)
}

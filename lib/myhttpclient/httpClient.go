package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/MarcGrol/storefront/lib/mylog"
)

const (
	timeout = 5 * time.Second
	debug   = false
)

type jsonHTTPClient struct {
	headers    map[string]string
	httpClient *http.Client
	logger     mylog.Logger
}

func newJSONHTTPClient(headers map[string]string) *jsonHTTPClient {
	return &jsonHTTPClient{
		headers: headers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: mylog.New("myhttpclient"),
	}
}

func (hc jsonHTTPClient) Send(c context.Context, method string, url string, body []byte) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(c, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s %s: %w", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range hc.headers {
		httpReq.Header.Set(k, v)
	}

	if debug {
		reqDump, err := httputil.DumpRequestOut(httpReq, true)
		if err == nil {
			fmt.Printf("HTTP-req:\n%s", string(reqDump))
		}
	}

	start := time.Now()
	httpResp, err := hc.httpClient.Do(httpReq)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error sending %s %s: %w", method, url, err)
	}
	defer httpResp.Body.Close()

	if debug {
		respDump, err := httputil.DumpResponse(httpResp, true)
		if err == nil {
			fmt.Printf("HTTP-resp:\n%s", string(respDump))
		}
	}

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error reading response %s %s: %w", method, url, err)
	}

	hc.logger.Log(c, "", mylog.SeverityDebug, "HTTP call %s %s -> %d (%s)", method, url, httpResp.StatusCode, time.Since(start))

	return httpResp.StatusCode, respPayload, nil
}

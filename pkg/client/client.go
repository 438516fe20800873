package client

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

// Client talks to the ftracker daemon.
type Client struct {
	socketPath string
	http       *resty.Client
}

// NewClient creates a Client that reaches the daemon over its unix socket.
func NewClient(socketPath string) *Client {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			conn, err := d.DialContext(ctx, "unix", socketPath)
			if err != nil {
				switch {
				case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ECONNREFUSED):
					return nil, ErrDaemonNotRunning
				case errors.Is(err, fs.ErrPermission):
					return nil, ErrPermissionDenied
				}
				logrus.Errorf("failed to connect to unix socket: %v", err)
				return nil, err
			}
			return conn, nil
		},
	}

	return &Client{
		socketPath: socketPath,
		http:       resty.New().SetTransport(transport).SetBaseURL("http://unix").SetTimeout(requestTimeout),
	}
}

// NewTCPClient creates a Client for a daemon listening on baseURL, e.g. http://127.0.0.1:8080.
func NewTCPClient(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
	}
}

// Send sends a request to the daemon. A non-nil body is encoded as JSON.
// The raw response body is returned for 2xx responses.
func (c *Client) Send(method string, path string, body any) ([]byte, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"unix":   c.socketPath,
	}).Debug("sending request")

	req := c.http.R()
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to send request")
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.IsError():
		return nil, &ResponseError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	return resp.Body(), nil
}

// Get sends a GET request to the daemon.
func (c *Client) Get(path string) ([]byte, error) {
	return c.Send(http.MethodGet, path, nil)
}

// Post sends a POST request with a JSON body to the daemon.
func (c *Client) Post(path string, body any) ([]byte, error) {
	return c.Send(http.MethodPost, path, body)
}

// Put sends a PUT request with a JSON body to the daemon.
func (c *Client) Put(path string, body any) ([]byte, error) {
	return c.Send(http.MethodPut, path, body)
}

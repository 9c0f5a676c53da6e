package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

// ServoClient talks to the ESP32 lock actuator over its local HTTP
// interface. Every call is bounded by the configured timeout; there is
// no automatic retry, that is the caller's decision.
type ServoClient struct {
	http *resty.Client
}

func NewServoClient(baseURL string, timeout time.Duration) *ServoClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &ServoClient{http: c}
}

func (c *ServoClient) SetAngle(ctx context.Context, angle int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("angle", strconv.Itoa(angle)).
		Get("/servo/angle")
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrDeviceTimeout, err)
		}
		return fmt.Errorf("device request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("device returned status %d", resp.StatusCode())
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

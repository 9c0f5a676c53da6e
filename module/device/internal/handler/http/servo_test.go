package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

type mockServoClient struct {
	setAngleFn func(ctx context.Context, angle int) error
	calls      []int
}

func (m *mockServoClient) SetAngle(ctx context.Context, angle int) error {
	m.calls = append(m.calls, angle)
	if m.setAngleFn != nil {
		return m.setAngleFn(ctx, angle)
	}
	return nil
}

func setupRouter(client servoClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewServoHandler(client, zap.NewNop())
	h.Register(r.Group("/api"))
	return r
}

func postAngle(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/servo/angle", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateAngle_Success(t *testing.T) {
	client := &mockServoClient{}
	r := setupRouter(client)

	w := postAngle(r, `{"angle": 90}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(client.calls) != 1 || client.calls[0] != 90 {
		t.Fatalf("expected one call with 90, got %v", client.calls)
	}
}

func TestUpdateAngle_ZeroIsValid(t *testing.T) {
	client := &mockServoClient{}
	r := setupRouter(client)

	w := postAngle(r, `{"angle": 0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(client.calls) != 1 || client.calls[0] != 0 {
		t.Fatalf("expected one call with 0, got %v", client.calls)
	}
}

func TestUpdateAngle_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing angle", `{}`},
		{"non numeric", `{"angle": "open"}`},
		{"below range", `{"angle": -1}`},
		{"above range", `{"angle": 181}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockServoClient{}
			r := setupRouter(client)

			w := postAngle(r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if len(client.calls) != 0 {
				t.Fatal("invalid requests must not reach the device")
			}
		})
	}
}

func TestUpdateAngle_DeviceTimeout(t *testing.T) {
	client := &mockServoClient{
		setAngleFn: func(_ context.Context, _ int) error {
			return fmt.Errorf("%w: dial timeout", domain.ErrDeviceTimeout)
		},
	}
	r := setupRouter(client)

	w := postAngle(r, `{"angle": 90}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestUpdateAngle_DeviceFailure(t *testing.T) {
	client := &mockServoClient{
		setAngleFn: func(_ context.Context, _ int) error {
			return errors.New("device returned status 500")
		},
	}
	r := setupRouter(client)

	w := postAngle(r, `{"angle": 90}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetStatus_ReflectsLastApplied(t *testing.T) {
	client := &mockServoClient{}
	r := setupRouter(client)

	postAngle(r, `{"angle": 45}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/servo/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["angle"] != 45 {
		t.Errorf("expected angle 45, got %d", resp["angle"])
	}
}

func TestGetStatus_FailedCommandDoesNotMoveState(t *testing.T) {
	fail := false
	client := &mockServoClient{
		setAngleFn: func(_ context.Context, _ int) error {
			if fail {
				return fmt.Errorf("%w: dial timeout", domain.ErrDeviceTimeout)
			}
			return nil
		},
	}
	r := setupRouter(client)

	postAngle(r, `{"angle": 45}`)
	fail = true
	postAngle(r, `{"angle": 120}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/servo/status", nil)
	r.ServeHTTP(w, req)

	var resp map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["angle"] != 45 {
		t.Errorf("expected angle to stay 45, got %d", resp["angle"])
	}
}

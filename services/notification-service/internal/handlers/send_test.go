package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ID-JA/bookie/services/notification-service/internal/events"
)

type stubDispatcher struct {
	delivered bool
	got       []events.Notification
}

func (s *stubDispatcher) Dispatch(_ context.Context, ev events.Notification) bool {
	s.got = append(s.got, ev)
	return s.delivered
}

func newRouter(disp Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, NewNotifyHandler(disp))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notifications/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSend_Success(t *testing.T) {
	disp := &stubDispatcher{delivered: true}
	w := post(newRouter(disp), `{"email":"g@x.com","name":"Sam","type":"checkout"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, disp.got, 1)
	assert.Equal(t, events.KindCheckout, disp.got[0].Type)
}

func TestSend_DeliveryFailure(t *testing.T) {
	w := post(newRouter(&stubDispatcher{delivered: false}), `{"email":"g@x.com","name":"Sam","type":"checkout"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send notification")
}

func TestSend_UnknownKind(t *testing.T) {
	disp := &stubDispatcher{delivered: true}
	w := post(newRouter(disp), `{"email":"g@x.com","name":"Sam","type":"bogus"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, disp.got)
}

func TestSend_MissingEmail(t *testing.T) {
	w := post(newRouter(&stubDispatcher{delivered: true}), `{"name":"Sam","type":"init"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r := newRouter(&stubDispatcher{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notification-service")
}

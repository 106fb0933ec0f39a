package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-bot/internal/usecase"
)

type stubDispatcher struct {
	calls int
	err   error
}

func (d *stubDispatcher) Dispatch() error {
	d.calls++
	return d.err
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestServer_Trigger(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		dispatchErr    error
		expectedStatus int
		expectedBody   Response
		expectedCalls  int
	}{
		{
			name:           "POST starts a job",
			method:         http.MethodPost,
			expectedStatus: http.StatusAccepted,
			expectedBody:   Response{Status: "success", Message: "Documentation job started."},
			expectedCalls:  1,
		},
		{
			name:           "POST while a job runs is rejected",
			method:         http.MethodPost,
			dispatchErr:    usecase.ErrPassInFlight,
			expectedStatus: http.StatusConflict,
			expectedBody:   Response{Status: "busy", Message: "Documentation job already running."},
			expectedCalls:  1,
		},
		{
			name:           "unexpected dispatch error",
			method:         http.MethodPost,
			dispatchErr:    errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   Response{Status: "error", Message: "Documentation job could not be started."},
			expectedCalls:  1,
		},
		{
			name:           "GET is not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   Response{Status: "error", Message: "method not allowed"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &stubDispatcher{err: tc.dispatchErr}
			srv := New("127.0.0.1:0", dispatcher, discardLogger())
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, "/trigger", nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedBody, body)
			assert.Equal(t, tc.expectedCalls, dispatcher.calls)
		})
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	dispatcher := &stubDispatcher{}
	srv := New("127.0.0.1:0", dispatcher, discardLogger())
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	assert.Error(t, srv.Start(context.Background()))

	base := "http://" + srv.Addr()
	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(base+"/trigger", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 1, dispatcher.calls)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Empty(t, srv.Addr())
}

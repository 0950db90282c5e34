package scheduleapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, 2*time.Second, nopLogger{})
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/health", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "healthy", "message": "scheduling API is running"}`))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).Health(context.Background())
		assert.NoError(t, err)
	})

	t.Run("non-200 means backend unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).Health(context.Background())
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})

	t.Run("transport failure means backend unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // сервер уже остановлен

		err := newTestClient(srv.URL).Health(context.Background())
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})
}

func TestSearchAvailabilities(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/availabilities", r.URL.Path)
			assert.Equal(t, "aetna", r.URL.Query().Get("insurance"))

			w.Header().Set("Content-Type", "application/json")
			// Обе формы временных меток: с таймзоной и без
			w.Write([]byte(`[
				{
					"id": "slot-1",
					"therapistId": "t1",
					"startTime": "2026-03-11T09:00:00-04:00",
					"endTime": "2026-03-11T10:00:00-04:00",
					"therapist": {
						"id": "t1",
						"name": "Dr. A",
						"insurancePayers": [{"id": "aetna", "name": "Aetna"}]
					}
				},
				{
					"id": "slot-2",
					"therapistId": "t2",
					"startTime": "2026-03-11T14:00:00",
					"endTime": "2026-03-11T15:00:00",
					"therapist": {
						"id": "t2",
						"name": "Dr. B",
						"insurancePayers": [{"id": "aetna", "name": "Aetna"}]
					}
				}
			]`))
		}))
		defer srv.Close()

		slots, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", nil)
		require.NoError(t, err)
		require.Len(t, slots, 2)

		assert.Equal(t, "slot-1", slots[0].ID)
		assert.Equal(t, "Dr. A", slots[0].Therapist.Name)
		assert.True(t, slots[0].Therapist.AcceptsPayer("aetna"))

		// Метка без таймзоны разбирается как локальное время
		assert.Equal(t, time.Date(2026, time.March, 11, 14, 0, 0, 0, time.Local), slots[1].StartTime)
	})

	t.Run("optional search params forwarded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "2026-03-13", q.Get("date"))
			assert.Equal(t, "pick", q.Get("datePreset"))
			assert.Equal(t, "morning,evening", q.Get("times"))
			assert.Equal(t, "true", q.Get("soonest"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		slots, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", &SearchOptions{
			Date:       "2026-03-13",
			DatePreset: "pick",
			Times:      "morning,evening",
			Soonest:    true,
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("error body with detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "Insurance parameter is required"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "", nil)
		require.ErrorIs(t, err, ErrRequestFailed)
		assert.Contains(t, err.Error(), "Insurance parameter is required")
	})

	t.Run("non-JSON error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>502 Bad Gateway</html>`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", nil)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("non-JSON success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html>hello</html>`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", nil)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", nil)
		assert.ErrorIs(t, err, ErrNetwork)
	})

	t.Run("bad timestamp in payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{
				"id": "slot-1",
				"therapistId": "t1",
				"startTime": "11/03/2026 09:00",
				"endTime": "11/03/2026 10:00",
				"therapist": {"id": "t1", "name": "Dr. A", "insurancePayers": []}
			}]`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).SearchAvailabilities(context.Background(), "aetna", nil)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestGetInsurancePayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/insurance-payers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "aetna", "name": "Aetna"},
			{"id": "bluecross", "name": "Blue Cross Blue Shield"}
		]`))
	}))
	defer srv.Close()

	payers, err := newTestClient(srv.URL).GetInsurancePayers(context.Background())
	require.NoError(t, err)
	require.Len(t, payers, 2)
	assert.Equal(t, "aetna", payers[0].ID)
	assert.Equal(t, "Blue Cross Blue Shield", payers[1].Name)
}

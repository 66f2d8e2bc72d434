package reservation

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"bella-vista/internal/logger"
	"bella-vista/internal/view"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeRepository) {
	t.Helper()

	log := logger.New("test")
	renderer, err := view.New(log)
	require.NoError(t, err)

	repo := newFakeRepository()
	handler := NewHandler(NewService(repo), renderer, log)

	r := chi.NewRouter()
	r.Get("/reservation", handler.Reservation)
	r.Post("/reservation", handler.Reservation)
	r.Get("/reservation_confirmation", handler.Confirmation)
	r.Get("/cancel_reservation", handler.Cancel)
	r.Post("/cancel_reservation", handler.Cancel)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, repo
}

func postForm(t *testing.T, server *httptest.Server, path string, values url.Values) *http.Response {
	t.Helper()
	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.PostForm(server.URL+path, values)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestReservationFlow(t *testing.T) {
	server, repo := newTestServer(t)

	resp := postForm(t, server, "/reservation", url.Values{
		"customer_name":  {"Alice"},
		"contact_number": {"555-1234"},
		"num_people":     {"4"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/reservation_confirmation?reservation_id=1", resp.Header.Get("Location"))
	require.Contains(t, repo.reservations, 1)

	// Confirmation page displays the generated id
	confResp, err := http.Get(server.URL + resp.Header.Get("Location"))
	require.NoError(t, err)
	defer confResp.Body.Close()
	body, err := io.ReadAll(confResp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "Your reservation id: 1"))
}

func TestCancelReservation(t *testing.T) {
	server, repo := newTestServer(t)

	postForm(t, server, "/reservation", url.Values{
		"customer_name":  {"Alice"},
		"contact_number": {"555-1234"},
		"num_people":     {"4"},
	})

	resp := postForm(t, server, "/cancel_reservation", url.Values{"reservation_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.NotContains(t, repo.reservations, 1)

	// Cancelling again succeeds quietly
	resp = postForm(t, server, "/cancel_reservation", url.Values{"reservation_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

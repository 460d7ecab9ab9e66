package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/app"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	cfg := app.Config{
		Port:          3000,
		Env:           "test",
		SweepInterval: time.Minute,
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	}

	testApp, err := newTestApp(cfg)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	s.server.Close()
	if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// newClient returns an HTTP client with its own cookie jar, i.e. its own
// session and therefore its own holder identity.
func (s *BaseSuite) newClient(t testing.TB) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func (s *BaseSuite) doJSON(t testing.TB, client *http.Client, method, path string, body any) *http.Response {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	require.NoError(t, err)

	return res
}

// postRaw sends a pre-built payload untouched, for webhook bodies that must
// not go through a typed request struct.
func (s *BaseSuite) postRaw(t testing.TB, client *http.Client, path, payload string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader([]byte(payload)))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", "t=1,v1=test")

	res, err := client.Do(req)
	require.NoError(t, err)

	return res
}

func decodeJSON[T any](t testing.TB, res *http.Response) T {
	defer res.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))

	return out
}

func (s *BaseSuite) createScreen(t testing.TB, client *http.Client, name string, capacity int) api.ScreenResponse {
	res := s.doJSON(t, client, http.MethodPost, "/screens", api.CreateScreenRequest{
		Name:     name,
		Capacity: capacity,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	return decodeJSON[api.ScreenResponse](t, res)
}

func (s *BaseSuite) createShowtime(t testing.TB, client *http.Client, screenID int) api.ShowtimeResponse {
	res := s.doJSON(t, client, http.MethodPost, "/showtimes", api.CreateShowtimeRequest{
		ScreenId:  screenID,
		StartTime: time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	return decodeJSON[api.ShowtimeResponse](t, res)
}

func (s *BaseSuite) getAvailability(t testing.TB, client *http.Client, showtimeID int) api.AvailabilityResponse {
	res := s.doJSON(t, client, http.MethodGet, fmt.Sprintf("/showtimes/%d/availability", showtimeID), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	return decodeJSON[api.AvailabilityResponse](t, res)
}

func bookingRequest(showtimeID int, seatNumbers []string, method string) api.CreateBookingRequest {
	return api.CreateBookingRequest{
		ShowtimeId:    showtimeID,
		SeatNumbers:   seatNumbers,
		CustomerName:  "Jamie Doe",
		CustomerEmail: "jamie@example.com",
		PaymentMethod: method,
	}
}

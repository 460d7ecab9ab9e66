package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/metinatakli/ticket-inventory-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShowtimesTestSuite struct {
	suite.Suite
	app          *Application
	screenRepo   *mocks.MockScreenRepo
	showtimeRepo *mocks.MockShowtimeRepo
	seatRepo     *mocks.MockSeatRepo
}

func (s *ShowtimesTestSuite) SetupTest() {
	s.screenRepo = new(mocks.MockScreenRepo)
	s.showtimeRepo = new(mocks.MockShowtimeRepo)
	s.seatRepo = new(mocks.MockSeatRepo)

	s.app = newTestApplication(func(a *Application) {
		a.screenRepo = s.screenRepo
		a.showtimeRepo = s.showtimeRepo
		a.seatRepo = s.seatRepo
	})
}

func TestShowtimesSuite(t *testing.T) {
	suite.Run(t, new(ShowtimesTestSuite))
}

func (s *ShowtimesTestSuite) TestCreateShowtime() {
	startTime := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	s.Run("should fail when screen does not exist", func() {
		s.SetupTest()

		s.screenRepo.On("GetByID", mock.Anything, 42).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodPost, "/showtimes", api.CreateShowtimeRequest{
			ScreenId:  42,
			StartTime: startTime,
		})

		s.app.CreateShowtimeHandler(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should derive seat counters from the provisioned layout", func() {
		s.SetupTest()

		screen := &domain.Screen{ID: 2, Name: "Screen 2", Capacity: 20}
		s.screenRepo.On("GetByID", mock.Anything, 2).Return(screen, nil)

		// Layout already provisioned; the registry short-circuits.
		s.seatRepo.On("CountByScreen", mock.Anything, 2).Return(20, nil)
		s.seatRepo.On("GetByScreen", mock.Anything, 2).Return(seatGrid(2, 20), nil)

		s.showtimeRepo.On("Create", mock.Anything, mock.MatchedBy(func(st *domain.Showtime) bool {
			return st.ScreenID == 2 && st.StartTime.Equal(startTime)
		})).Run(func(args mock.Arguments) {
			st := args.Get(1).(*domain.Showtime)
			st.ID = 5
			st.TotalSeats = 20
			st.AvailableSeats = 20
			st.Active = true
		}).Return(nil)

		w, r := executeRequest(s.T(), http.MethodPost, "/showtimes", api.CreateShowtimeRequest{
			ScreenId:  2,
			StartTime: startTime,
		})

		s.app.CreateShowtimeHandler(w, r)

		s.Equal(http.StatusCreated, w.Code)

		var resp api.ShowtimeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		s.Equal(5, resp.Id)
		s.Equal(20, resp.TotalSeats)
		s.Equal(20, resp.AvailableSeats)
		s.True(resp.Active)
	})
}

func (s *ShowtimesTestSuite) TestDeactivateShowtime() {
	s.Run("should deactivate an existing showtime", func() {
		s.SetupTest()

		s.showtimeRepo.On("Deactivate", mock.Anything, 1).Return(nil)

		w, r := executeRequest(s.T(), http.MethodDelete, "/showtimes/1", nil)
		r = withURLParams(r, map[string]string{"showtimeId": "1"})

		s.app.DeactivateShowtimeHandler(w, r)

		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("should return 404 for an unknown showtime", func() {
		s.SetupTest()

		s.showtimeRepo.On("Deactivate", mock.Anything, 99).Return(domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodDelete, "/showtimes/99", nil)
		r = withURLParams(r, map[string]string{"showtimeId": "99"})

		s.app.DeactivateShowtimeHandler(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})
}

func seatGrid(screenID, count int) []domain.Seat {
	price := decimal.NewFromInt(100)
	seats := make([]domain.Seat, 0, count)

	for i := 0; i < count; i++ {
		seats = append(seats, domain.Seat{
			ID:         i + 1,
			ScreenID:   screenID,
			SeatNumber: fmt.Sprintf("%c%d", 'A'+i/10, i%10+1),
			Row:        i/10 + 1,
			Col:        i%10 + 1,
			Category:   "STANDARD",
			Price:      price,
			Status:     domain.SeatStatusAvailable,
		})
	}

	return seats
}

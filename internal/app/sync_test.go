package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/metinatakli/ticket-inventory-system/api"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/metinatakli/ticket-inventory-system/internal/mocks"
	appvalidator "github.com/metinatakli/ticket-inventory-system/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SyncTestSuite struct {
	suite.Suite
	app          *Application
	showtimeRepo *mocks.MockShowtimeRepo
	seatRepo     *mocks.MockSeatRepo
	holdRepo     *mocks.MockHoldRepo
	syncRepo     *mocks.MockChannelSyncRepo
}

func (s *SyncTestSuite) SetupTest() {
	s.showtimeRepo = new(mocks.MockShowtimeRepo)
	s.seatRepo = new(mocks.MockSeatRepo)
	s.holdRepo = new(mocks.MockHoldRepo)
	s.syncRepo = new(mocks.MockChannelSyncRepo)

	s.app = newTestApplication(func(a *Application) {
		a.showtimeRepo = s.showtimeRepo
		a.seatRepo = s.seatRepo
		a.holdRepo = s.holdRepo
		a.syncRepo = s.syncRepo
	})
}

func TestSyncSuite(t *testing.T) {
	suite.Run(t, new(SyncTestSuite))
}

func (s *SyncTestSuite) TestApplyExternalSeatUpdate() {
	tests := []struct {
		name           string
		body           api.SyncRequest
		setupMocks     func()
		wantStatus     int
		wantApplied    int
		wantFailed     int
		wantErrMessage string
	}{
		{
			name: "should fail when status is not a seat status",
			body: api.SyncRequest{Updates: []api.SeatUpdate{
				{SeatNumber: "A1", Status: "SOLD"},
			}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrSeatStatus,
		},
		{
			name: "should fail when channel is unknown",
			body: api.SyncRequest{Updates: []api.SeatUpdate{
				{SeatNumber: "A1", Status: "BOOKED", Channel: "PHONE"},
			}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrChannel,
		},
		{
			name: "should fail when showtime does not exist",
			body: api.SyncRequest{Updates: []api.SeatUpdate{
				{SeatNumber: "A1", Status: "BOOKED"},
			}},
			setupMocks: func() {
				s.showtimeRepo.On("GetByID", mock.Anything, 1).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name: "should apply the batch and report per-seat outcomes",
			body: api.SyncRequest{Updates: []api.SeatUpdate{
				{SeatNumber: "A1", Status: "BOOKED", Channel: "POS"},
				{SeatNumber: "A2", Status: "AVAILABLE"},
				{SeatNumber: "Z9", Status: "BOOKED"},
			}},
			setupMocks: func() {
				s.showtimeRepo.On("GetByID", mock.Anything, 1).Return(activeShowtime(), nil)

				s.syncRepo.On("ApplyUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(u domain.SeatUpdate) bool {
					return u.SeatNumber == "A1"
				})).Return(&domain.SeatUpdateResult{SeatNumber: "A1", Applied: true, BookingRef: "TKT-AAAA1111"}, nil)

				s.syncRepo.On("ApplyUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(u domain.SeatUpdate) bool {
					return u.SeatNumber == "A2"
				})).Return(&domain.SeatUpdateResult{SeatNumber: "A2", Applied: true}, nil)

				s.syncRepo.On("ApplyUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(u domain.SeatUpdate) bool {
					return u.SeatNumber == "Z9"
				})).Return(&domain.SeatUpdateResult{SeatNumber: "Z9", Err: errors.New("record not found")}, nil)

				s.showtimeRepo.On("RecomputeAvailableSeats", mock.Anything, 1).Return(96, nil)
			},
			wantStatus:  http.StatusOK,
			wantApplied: 2,
			wantFailed:  1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showtimeRepo.AssertExpectations(s.T())
			defer s.syncRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/showtimes/1/sync", tt.body)
			r = withURLParams(r, map[string]string{"showtimeId": "1"})

			s.app.ApplyExternalSeatUpdateHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.SyncResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(tt.wantApplied, resp.Applied)
				s.Equal(tt.wantFailed, resp.Failed)
				s.Equal(96, resp.AvailableSeats)
				s.Len(resp.Results, 3)

				s.Equal("TKT-AAAA1111", resp.Results[0].BookingRef)
				s.True(resp.Results[1].Applied)
				s.NotNil(resp.Results[2].Error)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *SyncTestSuite) TestGetRealTimeAvailability() {
	price := decimal.NewFromInt(100)

	seats := []domain.Seat{
		{ID: 1, SeatNumber: "A1", Row: 1, Col: 1, Category: "STANDARD", Price: price, Status: domain.SeatStatusAvailable},
		{ID: 2, SeatNumber: "A2", Row: 1, Col: 2, Category: "STANDARD", Price: price, Status: domain.SeatStatusAvailable},
		{ID: 3, SeatNumber: "A3", Row: 1, Col: 3, Category: "STANDARD", Price: price, Status: domain.SeatStatusBooked},
		{ID: 4, SeatNumber: "A4", Row: 1, Col: 4, Category: "STANDARD", Price: price, Status: domain.SeatStatusAvailable},
	}

	s.Run("should mask seats under rival live holds but not the caller's own", func() {
		s.SetupTest()

		s.showtimeRepo.On("GetByID", mock.Anything, 1).Return(activeShowtime(), nil)
		s.seatRepo.On("GetByScreen", mock.Anything, 2).Return(seats, nil)

		// Seat 2 is held by a rival, seat 4 by the caller.
		s.holdRepo.On("GetLiveSeatIDs", mock.Anything, 1).Return(map[int]string{
			2: "rival-holder",
			4: "holder-1",
		}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/1/availability", nil)
		r = withURLParams(r, map[string]string{"showtimeId": "1"})
		r = withHolder(r, "holder-1")

		s.app.GetRealTimeAvailabilityHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.AvailabilityResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		s.Equal(2, resp.AvailableSeats)
		s.Require().Len(resp.Seats, 4)

		s.True(resp.Seats[0].Available)
		s.False(resp.Seats[1].Available)
		s.True(resp.Seats[1].Held)
		s.False(resp.Seats[2].Available)
		s.False(resp.Seats[2].Held)
		s.True(resp.Seats[3].Available)
		s.False(resp.Seats[3].Held)
	})

	s.Run("should not count expired holds against availability", func() {
		s.SetupTest()

		s.showtimeRepo.On("GetByID", mock.Anything, 1).Return(activeShowtime(), nil)
		s.seatRepo.On("GetByScreen", mock.Anything, 2).Return(seats, nil)

		// The repository filters on expires_at > NOW(), so an expired hold
		// simply never shows up here.
		s.holdRepo.On("GetLiveSeatIDs", mock.Anything, 1).Return(map[int]string{}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/1/availability", nil)
		r = withURLParams(r, map[string]string{"showtimeId": "1"})
		r = withHolder(r, "holder-1")

		s.app.GetRealTimeAvailabilityHandler(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp api.AvailabilityResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(3, resp.AvailableSeats)
	})
}

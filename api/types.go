// Package api holds the request and response shapes of the HTTP surface.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type GenreResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type GenreListResponse struct {
	Genres []GenreResponse `json:"genres"`
}

type CreateActorRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

type ActorResponse struct {
	Id        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type ActorListResponse struct {
	Actors []ActorResponse `json:"actors"`
}

type CreatePlayRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	GenreIds    []int  `json:"genreIds"`
	ActorIds    []int  `json:"actorIds"`
}

type PlaySummary struct {
	Id          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

type PlayListResponse struct {
	Plays    []PlaySummary `json:"plays"`
	Metadata *Metadata     `json:"metadata,omitempty"`
}

type PlayDetailResponse struct {
	Id          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
}

type CreateTheaterHallRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Rows       int    `json:"rows" validate:"required,gt=0"`
	SeatsInRow int    `json:"seatsInRow" validate:"required,gt=0"`
}

type TheaterHallResponse struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seatsInRow"`
	Capacity   int    `json:"capacity"`
}

type TheaterHallListResponse struct {
	TheaterHalls []TheaterHallResponse `json:"theaterHalls"`
}

type CreatePerformanceRequest struct {
	PlayId        int       `json:"playId" validate:"required,gt=0"`
	TheaterHallId int       `json:"theaterHallId" validate:"required,gt=0"`
	ShowTime      time.Time `json:"showTime" validate:"required"`
}

type PerformanceSummary struct {
	Id                  int       `json:"id"`
	PlayTitle           string    `json:"playTitle"`
	TheaterHall         string    `json:"theaterHall"`
	TheaterHallCapacity int       `json:"theaterHallCapacity"`
	TicketsAvailable    int       `json:"ticketsAvailable"`
	ShowTime            time.Time `json:"showTime"`
}

type PerformanceListResponse struct {
	Performances []PerformanceSummary `json:"performances"`
	Metadata     *Metadata            `json:"metadata,omitempty"`
}

type PerformanceDetailResponse struct {
	Id               int                 `json:"id"`
	PlayId           int                 `json:"playId"`
	PlayTitle        string              `json:"playTitle"`
	TheaterHall      TheaterHallResponse `json:"theaterHall"`
	ShowTime         time.Time           `json:"showTime"`
	TicketsAvailable int                 `json:"ticketsAvailable"`
	TakenSeats       map[int][]int       `json:"takenSeats"`
}

type TicketRequest struct {
	PerformanceId int `json:"performanceId" validate:"required,gt=0"`
	Row           int `json:"row"`
	Seat          int `json:"seat"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketResponse struct {
	Id            int `json:"id"`
	PerformanceId int `json:"performanceId"`
	ReservationId int `json:"reservationId"`
	Row           int `json:"row"`
	Seat          int `json:"seat"`
}

type TicketWithPerformance struct {
	Id            int                `json:"id"`
	ReservationId int                `json:"reservationId"`
	Row           int                `json:"row"`
	Seat          int                `json:"seat"`
	Performance   PerformanceSummary `json:"performance"`
}

type TicketListResponse struct {
	Tickets  []TicketWithPerformance `json:"tickets"`
	Metadata *Metadata               `json:"metadata,omitempty"`
}

type ReservationResponse struct {
	Id         int              `json:"id"`
	BookingRef string           `json:"bookingRef"`
	CreatedAt  time.Time        `json:"createdAt"`
	Tickets    []TicketResponse `json:"tickets"`
}

type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Metadata     *Metadata             `json:"metadata,omitempty"`
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomView struct {
	ID       uuid.UUID `json:"id"`
	Number   string    `json:"number"`
	Type     string    `json:"type"`
	Capacity int       `json:"capacity"`
	Price    string    `json:"price"`
	Status   string    `json:"status"`
}

type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Nights     int       `json:"nights"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ResourceView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Unit          string    `json:"unit"`
	TotalQuantity int64     `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

type MovementView struct {
	ID             uuid.UUID `json:"id"`
	ResourceID     uuid.UUID `json:"resource_id"`
	Quantity       int64     `json:"quantity"`
	Direction      string    `json:"direction"`
	Reason         string    `json:"reason"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// ReconciliationView compares the stored total with the movement history; Drift != 0 means a
// write reached the total without going through the ledger.
type ReconciliationView struct {
	ResourceID    uuid.UUID `json:"resource_id"`
	TotalQuantity int64     `json:"total_quantity"`
	MovementSum   int64     `json:"movement_sum"`
	MovementCount int64     `json:"movement_count"`
	Drift         int64     `json:"drift"`
	Consistent    bool      `json:"consistent"`
}

type WeatherView struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	Temperature     string    `json:"temperature"`
	RainProbability int       `json:"rain_probability"`
	Comment         *string   `json:"comment,omitempty"`
}

type ContactView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Body        string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type DashboardView struct {
	Rooms        int64 `json:"rooms"`
	Reservations int64 `json:"reservations"`
	Resources    int64 `json:"resources"`
}

type Cursor struct {
	After string
}

type ListResult[T any] struct {
	Items []T
	Total int64
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// ActiveBookingStatuses hold a room's dates.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCheckedIn
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type Booking struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	RoomID uint  `gorm:"column:room_id;index;not null" json:"room"`
	Room   *Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`

	GuestName       string `gorm:"size:200;not null" json:"guest_name"`
	GuestEmail      string `gorm:"size:254" json:"guest_email"`
	GuestPhone      string `gorm:"size:15" json:"guest_phone"`
	GuestAddress    string `gorm:"type:text" json:"guest_address"`
	NumberOfGuests  int    `gorm:"default:1" json:"number_of_guests"`
	SpecialRequests string `gorm:"type:text" json:"special_requests"`

	// accompanying guest names, kept as a JSON array
	AdditionalGuests datatypes.JSON `gorm:"column:additional_guests" json:"additional_guests,omitempty"`

	CheckInDate    Date          `gorm:"column:check_in_date;index;not null" json:"check_in_date"`
	CheckOutDate   Date          `gorm:"column:check_out_date;index;not null" json:"check_out_date"`
	ActualCheckIn  *time.Time    `gorm:"column:actual_check_in" json:"actual_check_in"`
	ActualCheckOut *time.Time    `gorm:"column:actual_check_out" json:"actual_check_out"`
	Status         BookingStatus `gorm:"size:20;default:pending;index" json:"status"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`

	CreatedByID *uint     `gorm:"index" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// derived on read
	Balance       decimal.Decimal `gorm:"-" json:"balance"`
	RoomNumber    string          `gorm:"-" json:"room_number"`
	RoomTypeName  RoomType        `gorm:"-" json:"room_type"`
	CreatedByName string          `gorm:"-" json:"created_by_name"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) AfterFind(tx *gorm.DB) error {
	b.Derive()
	return nil
}

// Derive fills the read-only fields computed from stored columns.
func (b *Booking) Derive() {
	b.Balance = b.TotalAmount.Sub(b.AmountPaid)
	if b.Room != nil {
		b.RoomNumber = b.Room.RoomNumber
		b.RoomTypeName = b.Room.RoomType
	}
	if b.CreatedBy != nil {
		b.CreatedByName = b.CreatedBy.FullName()
	}
}

// Nights is the length of the half-open stay [check_in, check_out).
func (b *Booking) Nights() int {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

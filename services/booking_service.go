// services/booking_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the reservation consistency rules: overlap prevention
// and the check-in/check-out state machine that keeps Room.Status in sync.
type BookingService struct {
	DB    *gorm.DB
	Locks *RoomLocks
	Now   func() time.Time
}

func NewBookingService(db *gorm.DB, locks *RoomLocks) *BookingService {
	if locks == nil {
		locks = NewRoomLocks()
	}
	return &BookingService{DB: db, Locks: locks, Now: time.Now}
}

// BookingFields is the writable part of a booking. Nil pointers are left
// untouched on update.
type BookingFields struct {
	RoomID           *uint                 `json:"room"`
	GuestName        *string               `json:"guest_name"`
	GuestEmail       *string               `json:"guest_email"`
	GuestPhone       *string               `json:"guest_phone"`
	GuestAddress     *string               `json:"guest_address"`
	NumberOfGuests   *int                  `json:"number_of_guests"`
	CheckInDate      *models.Date          `json:"check_in_date"`
	CheckOutDate     *models.Date          `json:"check_out_date"`
	TotalAmount      *decimal.Decimal      `json:"total_amount"`
	AmountPaid       *decimal.Decimal      `json:"amount_paid"`
	PaymentMethod    *string               `json:"payment_method"`
	SpecialRequests  *string               `json:"special_requests"`
	AdditionalGuests []string              `json:"additional_guests"`
	Status           *models.BookingStatus `json:"status"`
}

// BookingFilter narrows List. Zero values mean "no filter".
type BookingFilter struct {
	Status models.BookingStatus
	RoomID uint
}

// ----------------------------------------------------
// Overlap validation
// ----------------------------------------------------

// ValidateStay rejects empty or inverted stays.
func ValidateStay(checkIn, checkOut models.Date) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return invalid("check_in_date and check_out_date are required")
	}
	if !checkIn.Before(checkOut) {
		return invalid("check-out must be after check-in")
	}
	return nil
}

// findConflict returns the first active booking on roomID whose stay overlaps
// [checkIn, checkOut), ignoring excludeID. Nil when the range is free.
func findConflict(tx *gorm.DB, roomID uint, checkIn, checkOut models.Date, excludeID uint) (*models.Booking, error) {
	q := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflict models.Booking
	err := q.Order("check_in_date").First(&conflict).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return &conflict, nil
}

// checkAvailability runs the full overlap rule for a candidate stay.
func checkAvailability(tx *gorm.DB, room *models.Room, checkIn, checkOut models.Date, excludeID uint) error {
	if err := ValidateStay(checkIn, checkOut); err != nil {
		return err
	}
	conflict, err := findConflict(tx, room.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return invalid("room %s is already booked from %s to %s (booking #%d)",
			room.RoomNumber, conflict.CheckInDate, conflict.CheckOutDate, conflict.ID)
	}
	return nil
}

// lockRoom loads the room row with FOR UPDATE (ignored by sqlite).
func lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("room %d does not exist", roomID)
		}
		return nil, fmt.Errorf("failed to lock room %d: %w", roomID, err)
	}
	return &room, nil
}

func lockBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var b models.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	if err != nil {
		return nil, wrapFind(err, "booking", id)
	}
	return &b, nil
}

// ----------------------------------------------------
// Reads
// ----------------------------------------------------

func (s *BookingService) preloaded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("Room").Preload("CreatedBy")
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.preloaded(ctx).First(&b, id).Error; err != nil {
		return nil, wrapFind(err, "booking", id)
	}
	return &b, nil
}

func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := s.preloaded(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}

	list := []models.Booking{}
	if err := q.Order("check_in_date DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// CalendarView returns bookings touching the inclusive range [start, end]:
// arriving in it, leaving in it, or spanning it.
func (s *BookingService) CalendarView(ctx context.Context, start, end *models.Date) ([]models.Booking, error) {
	if start == nil || end == nil {
		return s.List(ctx, BookingFilter{})
	}
	if end.Before(*start) {
		return nil, invalid("end must not be before start")
	}

	list := []models.Booking{}
	err := s.preloaded(ctx).
		Where("(check_in_date BETWEEN ? AND ?) OR (check_out_date BETWEEN ? AND ?) OR (check_in_date < ? AND check_out_date > ?)",
			*start, *end, *start, *end, *start, *end).
		Order("check_in_date").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve calendar bookings: %w", err)
	}
	return list, nil
}

// ArrivalsOn lists bookings with the given status checking in on day.
func (s *BookingService) ArrivalsOn(ctx context.Context, day models.Date, status models.BookingStatus) ([]models.Booking, error) {
	list := []models.Booking{}
	err := s.preloaded(ctx).Where("check_in_date = ? AND status = ?", day, status).Order("id").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve arrivals: %w", err)
	}
	return list, nil
}

// DeparturesOn lists bookings with the given status checking out on day.
func (s *BookingService) DeparturesOn(ctx context.Context, day models.Date, status models.BookingStatus) ([]models.Booking, error) {
	list := []models.Booking{}
	err := s.preloaded(ctx).Where("check_out_date = ? AND status = ?", day, status).Order("id").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve departures: %w", err)
	}
	return list, nil
}

// ----------------------------------------------------
// Writes
// ----------------------------------------------------

func applyBookingFields(b *models.Booking, f BookingFields) error {
	if f.GuestName != nil {
		b.GuestName = strings.TrimSpace(*f.GuestName)
	}
	if f.GuestEmail != nil {
		b.GuestEmail = strings.TrimSpace(*f.GuestEmail)
	}
	if f.GuestPhone != nil {
		b.GuestPhone = strings.TrimSpace(*f.GuestPhone)
	}
	if f.GuestAddress != nil {
		b.GuestAddress = *f.GuestAddress
	}
	if f.NumberOfGuests != nil {
		b.NumberOfGuests = *f.NumberOfGuests
	}
	if f.CheckInDate != nil {
		b.CheckInDate = *f.CheckInDate
	}
	if f.CheckOutDate != nil {
		b.CheckOutDate = *f.CheckOutDate
	}
	if f.TotalAmount != nil {
		b.TotalAmount = *f.TotalAmount
	}
	if f.AmountPaid != nil {
		b.AmountPaid = *f.AmountPaid
	}
	if f.PaymentMethod != nil {
		b.PaymentMethod = *f.PaymentMethod
	}
	if f.SpecialRequests != nil {
		b.SpecialRequests = *f.SpecialRequests
	}
	if f.AdditionalGuests != nil {
		names := make([]string, 0, len(f.AdditionalGuests))
		for _, n := range f.AdditionalGuests {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		raw, err := json.Marshal(names)
		if err != nil {
			return fmt.Errorf("failed to encode additional guests: %w", err)
		}
		b.AdditionalGuests = datatypes.JSON(raw)
	}

	if b.GuestName == "" {
		return invalid("guest_name is required")
	}
	if b.NumberOfGuests < 1 {
		return invalid("number_of_guests must be at least 1")
	}
	if b.TotalAmount.IsNegative() || b.AmountPaid.IsNegative() {
		return invalid("amounts must not be negative")
	}
	return nil
}

// Create validates and stores a booking. The overlap check and the insert
// happen under the room lock inside one transaction.
func (s *BookingService) Create(ctx context.Context, f BookingFields, createdBy *uint) (*models.Booking, error) {
	if f.RoomID == nil || *f.RoomID == 0 {
		return nil, invalid("room is required")
	}
	if f.CheckInDate == nil || f.CheckOutDate == nil {
		return nil, invalid("check_in_date and check_out_date are required")
	}
	if err := ValidateStay(*f.CheckInDate, *f.CheckOutDate); err != nil {
		return nil, err
	}

	status := models.BookingPending
	if f.Status != nil && *f.Status != "" {
		status = *f.Status
	}
	if status != models.BookingPending && status != models.BookingConfirmed {
		return nil, invalid("a new booking must be pending or confirmed")
	}

	booking := models.Booking{
		RoomID:         *f.RoomID,
		Status:         status,
		NumberOfGuests: 1,
		CreatedByID:    createdBy,
	}
	if err := applyBookingFields(&booking, f); err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(booking.RoomID)
	defer unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, booking.RoomID)
		if err != nil {
			return err
		}
		if err := checkAvailability(tx, room, booking.CheckInDate, booking.CheckOutDate, 0); err != nil {
			return err
		}
		if booking.NumberOfGuests > room.Capacity && room.Capacity > 0 {
			return invalid("room %s holds at most %d guests", room.RoomNumber, room.Capacity)
		}
		if f.TotalAmount == nil {
			booking.TotalAmount = room.RatePerNight.Mul(decimal.NewFromInt(int64(booking.Nights())))
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking #%d created for room %d (%s → %s)", booking.ID, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
	return s.Get(ctx, booking.ID)
}

// Update edits booking fields. Status only moves through the actions below.
func (s *BookingService) Update(ctx context.Context, id uint, f BookingFields) (*models.Booking, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status != nil && *f.Status != current.Status {
		return nil, invalid("status changes go through the confirm, check_in, check_out and cancel actions")
	}

	targetRoom := current.RoomID
	if f.RoomID != nil && *f.RoomID != 0 {
		targetRoom = *f.RoomID
	}

	unlock := s.Locks.Lock(current.RoomID, targetRoom)
	defer unlock()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if targetRoom != b.RoomID && b.Status == models.BookingCheckedIn {
			return invalid("a checked-in booking cannot move rooms; check out first")
		}

		room, err := lockRoom(tx, targetRoom)
		if err != nil {
			return err
		}
		b.RoomID = targetRoom
		b.Room = nil
		if err := applyBookingFields(b, f); err != nil {
			return err
		}

		if b.Status.Active() {
			if err := checkAvailability(tx, room, b.CheckInDate, b.CheckOutDate, b.ID); err != nil {
				return err
			}
		} else if err := ValidateStay(b.CheckInDate, b.CheckOutDate); err != nil {
			return err
		}

		if err := tx.Omit("Room", "CreatedBy", "Status", "ActualCheckIn", "ActualCheckOut", "CreatedAt").Save(b).Error; err != nil {
			return fmt.Errorf("failed to update booking %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a booking. Ledger rows keep their amounts but lose the
// link; a checked-in booking releases its room.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.Locks.Lock(current.RoomID)
	defer unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).Where("booking_id = ?", id).Update("booking_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach transactions: %w", err)
		}
		if err := tx.Where("related_booking_id = ?", id).Delete(&models.CalendarEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete booking events: %w", err)
		}
		if b.Status == models.BookingCheckedIn {
			if err := setRoomStatus(tx, b.RoomID, models.RoomAvailable); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Booking{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete booking %d: %w", id, err)
		}
		return nil
	})
}

// ----------------------------------------------------
// State machine
// ----------------------------------------------------

type BookingAction string

const (
	ActionConfirm  BookingAction = "confirm"
	ActionCheckIn  BookingAction = "check_in"
	ActionCheckOut BookingAction = "check_out"
	ActionCancel   BookingAction = "cancel"
)

var allowedFrom = map[BookingAction][]models.BookingStatus{
	ActionConfirm:  {models.BookingPending},
	ActionCheckIn:  {models.BookingPending, models.BookingConfirmed},
	ActionCheckOut: {models.BookingCheckedIn},
	ActionCancel:   {models.BookingPending, models.BookingConfirmed, models.BookingCheckedIn},
}

// CanTransition reports whether action is valid from status.
func CanTransition(status models.BookingStatus, action BookingAction) bool {
	for _, s := range allowedFrom[action] {
		if s == status {
			return true
		}
	}
	return false
}

func (s *BookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	return s.Transition(ctx, id, ActionConfirm)
}

func (s *BookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	return s.Transition(ctx, id, ActionCheckIn)
}

func (s *BookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	return s.Transition(ctx, id, ActionCheckOut)
}

func (s *BookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.Transition(ctx, id, ActionCancel)
}

// Transition applies one action, updating the booking and its room in the
// same transaction. This is the only code path that writes "occupied".
func (s *BookingService) Transition(ctx context.Context, id uint, action BookingAction) (*models.Booking, error) {
	if _, ok := allowedFrom[action]; !ok {
		return nil, invalid("unknown booking action %q", action)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(current.RoomID)
	defer unlock()

	now := s.Now().UTC()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if !CanTransition(b.Status, action) {
			return invalid("cannot %s a booking that is %s", strings.ReplaceAll(string(action), "_", " "), b.Status)
		}
		room, err := lockRoom(tx, b.RoomID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		switch action {
		case ActionConfirm:
			updates["status"] = models.BookingConfirmed

		case ActionCheckIn:
			if room.Status == models.RoomMaintenance {
				return invalid("room %s is under maintenance", room.RoomNumber)
			}
			var occupant models.Booking
			err := tx.Where("room_id = ? AND status = ? AND id <> ?", room.ID, models.BookingCheckedIn, b.ID).First(&occupant).Error
			if err == nil {
				return invalid("room %s is already occupied by booking #%d", room.RoomNumber, occupant.ID)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check room occupancy: %w", err)
			}
			updates["status"] = models.BookingCheckedIn
			updates["actual_check_in"] = now
			if err := setRoomStatus(tx, room.ID, models.RoomOccupied); err != nil {
				return err
			}

		case ActionCheckOut:
			updates["status"] = models.BookingCheckedOut
			updates["actual_check_out"] = now
			if err := setRoomStatus(tx, room.ID, models.RoomAvailable); err != nil {
				return err
			}

		case ActionCancel:
			updates["status"] = models.BookingCancelled
			if b.Status == models.BookingCheckedIn {
				if err := setRoomStatus(tx, room.ID, models.RoomAvailable); err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&models.Booking{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to %s booking %d: %w", action, b.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking #%d: %s", id, action)
	return s.Get(ctx, id)
}

func setRoomStatus(tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	if err := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to set room %d %s: %w", roomID, status, err)
	}
	return nil
}

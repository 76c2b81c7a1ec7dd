package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomService struct {
	DB    *gorm.DB
	Locks *RoomLocks
}

func NewRoomService(db *gorm.DB, locks *RoomLocks) *RoomService {
	if locks == nil {
		locks = NewRoomLocks()
	}
	return &RoomService{DB: db, Locks: locks}
}

type RoomFields struct {
	RoomNumber   *string            `json:"room_number"`
	RoomType     *models.RoomType   `json:"room_type"`
	Capacity     *int               `json:"capacity"`
	RatePerNight *decimal.Decimal   `json:"rate_per_night"`
	Status       *models.RoomStatus `json:"status"`
	Description  *string            `json:"description"`
}

// RoomCounts is the number of rooms per status.
type RoomCounts struct {
	Available   int64 `json:"available_rooms"`
	Occupied    int64 `json:"occupied_rooms"`
	Maintenance int64 `json:"maintenance_rooms"`
}

func applyRoomFields(r *models.Room, f RoomFields) error {
	if f.RoomNumber != nil {
		r.RoomNumber = strings.TrimSpace(*f.RoomNumber)
	}
	if f.RoomType != nil {
		r.RoomType = *f.RoomType
	}
	if f.Capacity != nil {
		r.Capacity = *f.Capacity
	}
	if f.RatePerNight != nil {
		r.RatePerNight = *f.RatePerNight
	}
	if f.Description != nil {
		r.Description = *f.Description
	}

	if r.RoomNumber == "" {
		return invalid("room_number is required")
	}
	if !r.RoomType.Valid() {
		return invalid("room_type must be one of single, double, suite")
	}
	if r.Capacity < 1 {
		return invalid("capacity must be at least 1")
	}
	if r.RatePerNight.IsNegative() {
		return invalid("rate_per_night must not be negative")
	}
	return nil
}

// manualStatus validates a status written through room CRUD. Occupancy is
// owned by the booking check-in/check-out transitions.
func manualStatus(s models.RoomStatus) error {
	switch s {
	case models.RoomAvailable, models.RoomMaintenance:
		return nil
	case models.RoomOccupied:
		return invalid("room occupancy is set by booking check-in and check-out only")
	}
	return invalid("status must be available or maintenance")
}

func (s *RoomService) List(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	q := s.DB.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	rooms := []models.Room{}
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, wrapFind(err, "room", id)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, f RoomFields) (*models.Room, error) {
	room := models.Room{Capacity: 2, Status: models.RoomAvailable}
	if err := applyRoomFields(&room, f); err != nil {
		return nil, err
	}
	if f.Status != nil && *f.Status != "" {
		if err := manualStatus(*f.Status); err != nil {
			return nil, err
		}
		room.Status = *f.Status
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, f RoomFields) (*models.Room, error) {
	unlock := s.Locks.Lock(id)
	defer unlock()

	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockRoom(tx, id)
		if err != nil {
			if IsValidation(err) {
				return notFound("room", id)
			}
			return err
		}
		room = *locked
		if err := applyRoomFields(&room, f); err != nil {
			return err
		}
		if f.Status != nil && *f.Status != room.Status {
			if room.Status == models.RoomOccupied {
				return invalid("room %s is occupied; check the guest out first", room.RoomNumber)
			}
			if err := manualStatus(*f.Status); err != nil {
				return err
			}
			room.Status = *f.Status
		}
		if err := tx.Save(&room).Error; err != nil {
			return fmt.Errorf("failed to update room %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete refuses to drop rooms that still have bookings.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	unlock := s.Locks.Lock(id)
	defer unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockRoom(tx, id); err != nil {
			if IsValidation(err) {
				return notFound("room", id)
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Booking{}).Where("room_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count bookings for room %d: %w", id, err)
		}
		if count > 0 {
			return invalid("room has %d booking(s); delete or move them first", count)
		}
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete room %d: %w", id, err)
		}
		return nil
	})
}

// Availability lists available rooms with no active booking overlapping
// [checkIn, checkOut).
func (s *RoomService) Availability(ctx context.Context, checkIn, checkOut models.Date) ([]models.Room, error) {
	if err := ValidateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	booked := s.DB.Model(&models.Booking{}).
		Select("room_id").
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.RoomAvailable).
		Where("id NOT IN (?)", booked).
		Order("room_number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Counts(ctx context.Context) (RoomCounts, error) {
	type row struct {
		Status models.RoomStatus
		Total  int64
	}
	var rows []row
	err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return RoomCounts{}, fmt.Errorf("failed to count rooms: %w", err)
	}

	var c RoomCounts
	for _, r := range rows {
		switch r.Status {
		case models.RoomAvailable:
			c.Available = r.Total
		case models.RoomOccupied:
			c.Occupied = r.Total
		case models.RoomMaintenance:
			c.Maintenance = r.Total
		}
	}
	return c, nil
}

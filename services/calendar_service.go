package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"gorm.io/gorm"
)

type CalendarService struct {
	DB *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{DB: db}
}

type CalendarEventFields struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	EventType        *models.EventType `json:"event_type"`
	StartDatetime    *time.Time        `json:"start_datetime"`
	EndDatetime      *time.Time        `json:"end_datetime"`
	AllDay           *bool             `json:"all_day"`
	RelatedBookingID *uint             `json:"related_booking"`
}

func (s *CalendarService) preloaded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("CreatedBy").Preload("RelatedBooking")
}

// List returns events ordered by start. When both bounds are given only
// events starting within [start, end] are returned.
func (s *CalendarService) List(ctx context.Context, start, end *time.Time) ([]models.CalendarEvent, error) {
	q := s.preloaded(ctx)
	if start != nil && end != nil {
		if end.Before(*start) {
			return nil, invalid("end must not be before start")
		}
		q = q.Where("start_datetime >= ? AND start_datetime <= ?", start.UTC(), end.UTC())
	}
	list := []models.CalendarEvent{}
	if err := q.Order("start_datetime").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve calendar events: %w", err)
	}
	return list, nil
}

func (s *CalendarService) Get(ctx context.Context, id uint) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	if err := s.preloaded(ctx).First(&e, id).Error; err != nil {
		return nil, wrapFind(err, "calendar event", id)
	}
	return &e, nil
}

func (s *CalendarService) Create(ctx context.Context, f CalendarEventFields, createdBy *uint) (*models.CalendarEvent, error) {
	e := models.CalendarEvent{EventType: models.EventOther, CreatedByID: createdBy}
	if err := s.apply(ctx, &e, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Omit("CreatedBy", "RelatedBooking").Create(&e).Error; err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return s.Get(ctx, e.ID)
}

func (s *CalendarService) Update(ctx context.Context, id uint, f CalendarEventFields) (*models.CalendarEvent, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, e, f); err != nil {
		return nil, err
	}
	e.CreatedBy, e.RelatedBooking = nil, nil
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, fmt.Errorf("failed to update calendar event %d: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *CalendarService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.CalendarEvent{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete calendar event %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("calendar event", id)
	}
	return nil
}

func (s *CalendarService) apply(ctx context.Context, e *models.CalendarEvent, f CalendarEventFields) error {
	if f.Title != nil {
		e.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		e.Description = *f.Description
	}
	if f.EventType != nil && *f.EventType != "" {
		e.EventType = *f.EventType
	}
	if f.StartDatetime != nil {
		e.StartDatetime = f.StartDatetime.UTC()
	}
	if f.EndDatetime != nil {
		if f.EndDatetime.IsZero() {
			e.EndDatetime = nil
		} else {
			end := f.EndDatetime.UTC()
			e.EndDatetime = &end
		}
	}
	if f.AllDay != nil {
		e.AllDay = *f.AllDay
	}
	if f.RelatedBookingID != nil {
		if *f.RelatedBookingID == 0 {
			e.RelatedBookingID = nil
		} else {
			var count int64
			if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", *f.RelatedBookingID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check booking: %w", err)
			}
			if count == 0 {
				return invalid("booking %d does not exist", *f.RelatedBookingID)
			}
			id := *f.RelatedBookingID
			e.RelatedBookingID = &id
		}
	}

	if e.Title == "" {
		return invalid("title is required")
	}
	if !e.EventType.Valid() {
		return invalid("event_type must be one of booking, maintenance, restock, payment_due, other")
	}
	if e.StartDatetime.IsZero() {
		return invalid("start_datetime is required")
	}
	if e.EndDatetime != nil && e.EndDatetime.Before(e.StartDatetime) {
		return invalid("end_datetime must not be before start_datetime")
	}
	return nil
}

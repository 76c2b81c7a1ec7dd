package services

import (
	"testing"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, clock string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCalendarEvents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCalendarService(db)
	maintenance := models.EventMaintenance

	aircon, err := svc.Create(bg, CalendarEventFields{
		Title:         strPtr("Aircon service"),
		EventType:     &maintenance,
		StartDatetime: at("2024-06-03", "09:00"),
		EndDatetime:   at("2024-06-03", "11:00"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EventMaintenance, aircon.EventType)

	other, err := svc.Create(bg, CalendarEventFields{Title: strPtr("Staff meeting"), StartDatetime: at("2024-06-20", "15:00")}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EventOther, other.EventType)

	list, err := svc.List(bg, at("2024-06-01", "00:00"), at("2024-06-10", "00:00"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, aircon.ID, list[0].ID)

	all, err := svc.List(bg, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(bg, at("2024-06-10", "00:00"), at("2024-06-01", "00:00"))
	assert.True(t, IsValidation(err))

	_, err = svc.Update(bg, aircon.ID, CalendarEventFields{EndDatetime: at("2024-06-02", "09:00")})
	assert.True(t, IsValidation(err))
	_, err = svc.Create(bg, CalendarEventFields{Title: strPtr("no start")}, nil)
	assert.True(t, IsValidation(err))
	_, err = svc.Create(bg, CalendarEventFields{Title: strPtr("orphan"), StartDatetime: at("2024-06-01", "08:00"), RelatedBookingID: uintPtr(5)}, nil)
	assert.True(t, IsValidation(err))

	require.NoError(t, svc.Delete(bg, aircon.ID))
	assert.ErrorIs(t, svc.Delete(bg, aircon.ID), ErrNotFound)
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestOverlaps(t *testing.T) {
	jun1, jun4, jun5, jun6, jun8 := mustDate(t, "2024-06-01"), mustDate(t, "2024-06-04"), mustDate(t, "2024-06-05"), mustDate(t, "2024-06-06"), mustDate(t, "2024-06-08")

	assert.True(t, Overlaps(jun1, jun5, jun4, jun6))
	assert.True(t, Overlaps(jun4, jun6, jun1, jun5))
	assert.False(t, Overlaps(jun1, jun5, jun5, jun8), "adjacent stays share no night")
	assert.False(t, Overlaps(jun5, jun8, jun1, jun5))
	assert.True(t, Overlaps(jun1, jun8, jun4, jun5), "containment")
}

func TestNeedsRestocking(t *testing.T) {
	assert.True(t, NeedsRestocking(5, 10))
	assert.True(t, NeedsRestocking(10, 10))
	assert.False(t, NeedsRestocking(11, 10))
	assert.True(t, NeedsRestocking(0, 0))
}

func TestDateParsingAndJSON(t *testing.T) {
	d := mustDate(t, "2024-06-01")
	assert.Equal(t, "2024-06-01", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())

	fromRFC := mustDate(t, "2024-06-01T23:30:00+08:00")
	assert.True(t, d.Equal(fromRFC))

	_, err := ParseDate("06/01/2024")
	assert.Error(t, err)

	raw, err := json.Marshal(struct {
		Day  Date  `json:"day"`
		Zero Date  `json:"zero"`
		Ptr  *Date `json:"ptr"`
	}{Day: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2024-06-01","zero":null,"ptr":null}`, string(raw))

	var decoded struct {
		Day Date `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2024-12-31"}`), &decoded))
	assert.Equal(t, "2024-12-31", decoded.Day.String())
	assert.Error(t, json.Unmarshal([]byte(`{"day":"tomorrow"}`), &decoded))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-06-01 00:00:00+00:00"))
	assert.Equal(t, "2024-06-01", d.String())
	require.NoError(t, d.Scan([]byte("2024-06-02")))
	assert.Equal(t, "2024-06-02", d.String())
	require.NoError(t, d.Scan(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-03", d.String())
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))
}

func TestBookingDerivedFields(t *testing.T) {
	b := Booking{
		CheckInDate:  mustDate(t, "2024-06-01"),
		CheckOutDate: mustDate(t, "2024-06-05"),
		TotalAmount:  decimal.NewFromInt(6000),
		AmountPaid:   decimal.NewFromInt(1500),
		Room:         &Room{RoomNumber: "101", RoomType: RoomDouble},
		CreatedBy:    &User{Username: "desk", FirstName: "Lea"},
	}
	b.Derive()

	assert.Equal(t, 4, b.Nights())
	assert.True(t, decimal.NewFromInt(4500).Equal(b.Balance))
	assert.Equal(t, "101", b.RoomNumber)
	assert.Equal(t, RoomDouble, b.RoomTypeName)
	assert.Equal(t, "Lea", b.CreatedByName)
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, BookingCheckedIn.Active())
	assert.False(t, BookingCancelled.Active())
	assert.True(t, BookingCheckedOut.Terminal())
	assert.False(t, BookingStatus("lost").Valid())
	assert.True(t, RoomMaintenance.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, EventPaymentDue.Valid())
	assert.True(t, RoleAccountant.Valid())
	assert.Equal(t, "someone", (&User{Username: "someone"}).FullName())
}

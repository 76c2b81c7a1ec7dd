package models

import (
	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// Room.Status is a projection of booking check-in/check-out: only the booking
// state machine moves a room in or out of "occupied".
type Room struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	RoomNumber   string          `gorm:"column:room_number;uniqueIndex;size:10;not null" json:"room_number"`
	RoomType     RoomType        `gorm:"column:room_type;size:20" json:"room_type"`
	Capacity     int             `gorm:"default:2" json:"capacity"`
	RatePerNight decimal.Decimal `gorm:"type:decimal(12,2)" json:"rate_per_night"`
	Status       RoomStatus      `gorm:"size:20;default:available;index" json:"status"`
	Description  string          `gorm:"type:text" json:"description"`
}

func (Room) TableName() string { return "rooms" }

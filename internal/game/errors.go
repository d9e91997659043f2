package game

import "errors"

var (
	ErrNoStartRoom     = errors.New("start room not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotStarted      = errors.New("game has not been started")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrNotEquippable   = errors.New("item cannot be equipped")
	ErrSlotEmpty       = errors.New("equipment slot is empty")
)

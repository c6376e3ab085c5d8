package service

import "errors"

// Sentinel kinds for squad service errors.
var (
	ErrNoSuchSession     = errors.New("session not found")
	ErrNoSuchPlayer      = errors.New("player not found in roster")
	ErrRosterFull        = errors.New("roster already has a player for every slot")
	ErrReportUnavailable = errors.New("tactical report unavailable")
)

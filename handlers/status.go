// Copyright (c) 2025 the voteapp authors.
// MIT License; see LICENSE.

package handlers

import (
	"time"

	"github.com/voteapp-kr/server/models"
)

// ResolveStatus derives a poll's lifecycle phase from its timing window
// and the given instant. The active window is inclusive at both ends:
// a poll is active from the exact start time through the exact end time.
//
// The result is never persisted. Every read derives it again from the
// clock, so a poll crosses from upcoming to active to ended without any
// background job touching it.
func ResolveStatus(now, startTime, endTime time.Time) string {
	switch {
	case now.Before(startTime):
		return models.StatusUpcoming
	case now.After(endTime):
		return models.StatusEnded
	default:
		return models.StatusActive
	}
}

// Package matchevents defines the match topics carried on the event bus and their payloads.
package matchevents

import (
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
)

// Stream groups every match subject on the bus.
const Stream = "match"

const (
	// ScoreEntryRequestedV1 asks the service to write (or clear) one team's strokes on a hole.
	ScoreEntryRequestedV1 = "match.score.entry.requested.v1"
	// ScoreEnteredV1 reports an accepted score write.
	ScoreEnteredV1 = "match.score.entered.v1"
	// ScoreEntryFailedV1 reports a rejected score write.
	ScoreEntryFailedV1 = "match.score.entry.failed.v1"

	// PressRequestedV1 asks the service to declare presses on a completed hole.
	PressRequestedV1 = "match.press.requested.v1"
	// PressesCreatedV1 reports the presses that were declared.
	PressesCreatedV1 = "match.presses.created.v1"
	// PressFailedV1 reports a rejected press batch.
	PressFailedV1 = "match.press.failed.v1"

	// HoleCompletedV1 fires once per hole, when its last missing score is entered.
	HoleCompletedV1 = "match.hole.completed.v1"
)

type ScoreEntryRequestedPayloadV1 struct {
	MatchID    matchdomain.MatchID `json:"match_id"`
	HoleNumber int                 `json:"hole_number"`
	TeamID     matchdomain.TeamID  `json:"team_id"`
	Strokes    *int                `json:"strokes"`
}

type ScoreEnteredPayloadV1 struct {
	MatchID       matchdomain.MatchID `json:"match_id"`
	HoleNumber    int                 `json:"hole_number"`
	TeamID        matchdomain.TeamID  `json:"team_id"`
	Strokes       *int                `json:"strokes"`
	HoleCompleted bool                `json:"hole_completed"`
}

type ScoreEntryFailedPayloadV1 struct {
	MatchID    matchdomain.MatchID `json:"match_id"`
	HoleNumber int                 `json:"hole_number"`
	TeamID     matchdomain.TeamID  `json:"team_id"`
	Reason     string              `json:"reason"`
}

type PressRequestedPayloadV1 struct {
	MatchID    matchdomain.MatchID            `json:"match_id"`
	HoleNumber int                            `json:"hole_number"`
	Presses    []matchdomain.PressDeclaration `json:"presses"`
}

type PressesCreatedPayloadV1 struct {
	MatchID    matchdomain.MatchID `json:"match_id"`
	HoleNumber int                 `json:"hole_number"`
	Presses    []matchdomain.Press `json:"presses"`
}

type PressFailedPayloadV1 struct {
	MatchID    matchdomain.MatchID `json:"match_id"`
	HoleNumber int                 `json:"hole_number"`
	Reason     string              `json:"reason"`
}

// HoleCompletedPayloadV1 carries the press offer for the hole that just completed.
type HoleCompletedPayloadV1 struct {
	MatchID    matchdomain.MatchID     `json:"match_id"`
	HoleNumber int                     `json:"hole_number"`
	Offer      *matchdomain.PressOffer `json:"press_offer,omitempty"`
}

package matchhandlers

import (
	"context"
	"errors"

	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchevents "github.com/Black-And-White-Club/match-tracker/app/modules/match/events"
	"github.com/Black-And-White-Club/match-tracker/pkg/handlerwrapper"
)

// HandleScoreEntryRequested writes a score received over the bus and answers with either the
// entered or the failed topic. Infrastructure errors are returned so the router retries.
func (h *MatchHandlers) HandleScoreEntryRequested(ctx context.Context, payload *matchevents.ScoreEntryRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.EnterScore(ctx, matchservice.EnterScoreRequest{
		MatchID:    payload.MatchID,
		HoleNumber: payload.HoleNumber,
		TeamID:     payload.TeamID,
		Strokes:    payload.Strokes,
	})
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic: matchevents.ScoreEntryFailedV1,
			Payload: &matchevents.ScoreEntryFailedPayloadV1{
				MatchID:    payload.MatchID,
				HoleNumber: payload.HoleNumber,
				TeamID:     payload.TeamID,
				Reason:     (*result.Failure).Error(),
			},
		}}, nil
	}
	if !result.IsSuccess() {
		return nil, errors.New("enter score returned an empty result")
	}

	upd := *result.Success
	return []handlerwrapper.Result{{
		Topic: matchevents.ScoreEnteredV1,
		Payload: &matchevents.ScoreEnteredPayloadV1{
			MatchID:       payload.MatchID,
			HoleNumber:    upd.HoleNumber,
			TeamID:        upd.TeamID,
			Strokes:       upd.Strokes,
			HoleCompleted: upd.HoleCompleted,
		},
	}}, nil
}

// HandlePressRequested declares presses received over the bus.
func (h *MatchHandlers) HandlePressRequested(ctx context.Context, payload *matchevents.PressRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.CreatePresses(ctx, matchservice.CreatePressesRequest{
		MatchID:    payload.MatchID,
		HoleNumber: payload.HoleNumber,
		Presses:    payload.Presses,
	})
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic: matchevents.PressFailedV1,
			Payload: &matchevents.PressFailedPayloadV1{
				MatchID:    payload.MatchID,
				HoleNumber: payload.HoleNumber,
				Reason:     (*result.Failure).Error(),
			},
		}}, nil
	}
	if !result.IsSuccess() {
		return nil, errors.New("create presses returned an empty result")
	}

	return []handlerwrapper.Result{{
		Topic: matchevents.PressesCreatedV1,
		Payload: &matchevents.PressesCreatedPayloadV1{
			MatchID:    payload.MatchID,
			HoleNumber: payload.HoleNumber,
			Presses:    *result.Success,
		},
	}}, nil
}

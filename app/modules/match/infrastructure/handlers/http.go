package matchhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	matchservice "github.com/Black-And-White-Club/match-tracker/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/match-tracker/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/match-tracker/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/match-tracker/pkg/results"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type scoreBody struct {
	Strokes *int `json:"strokes"`
}

type pressesBody struct {
	Presses []matchdomain.PressDeclaration `json:"presses"`
}

type renameBody struct {
	Name string `json:"name"`
}

type clearResponse struct {
	Deleted int `json:"deleted"`
}

// traced runs an HTTP handler inside a server span named after it.
func (h *MatchHandlers) traced(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", chi.RouteContext(r.Context()).RoutePattern()),
			),
		)
		defer span.End()
		if id := chi.URLParam(r, "matchID"); id != "" {
			span.SetAttributes(attribute.String("match_id", id))
		}
		next(w, r.WithContext(ctx))
	}
}

func (h *MatchHandlers) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchservice.CreateMatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.CreateMatch(r.Context(), req)
	writeResult(h, w, r, http.StatusCreated, result, err)
}

func (h *MatchHandlers) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	filter := matchdb.ListFilter(r.URL.Query().Get("filter"))
	result, err := h.service.ListMatches(r.Context(), filter)
	if result.IsSuccess() && *result.Success == nil {
		empty := []matchdomain.Match{}
		result.Success = &empty
	}
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleClearMatches(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClearMatches(r.Context())
	if err != nil || !result.IsSuccess() {
		writeResult(h, w, r, http.StatusOK, result, err)
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Deleted: *result.Success})
}

func (h *MatchHandlers) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMatch(r.Context(), matchID(r))
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteMatch(r.Context(), matchID(r))
	if err != nil || !result.IsSuccess() {
		writeResult(h, w, r, http.StatusOK, result, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandlers) HandleEnterScore(w http.ResponseWriter, r *http.Request) {
	hole, ok := holeNumber(w, r)
	if !ok {
		return
	}
	var body scoreBody
	if !h.decode(w, r, &body) {
		return
	}
	result, err := h.service.EnterScore(r.Context(), matchservice.EnterScoreRequest{
		MatchID:    matchID(r),
		HoleNumber: hole,
		TeamID:     matchdomain.TeamID(chi.URLParam(r, "teamID")),
		Strokes:    body.Strokes,
	})
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleCreatePresses(w http.ResponseWriter, r *http.Request) {
	hole, ok := holeNumber(w, r)
	if !ok {
		return
	}
	var body pressesBody
	if !h.decode(w, r, &body) {
		return
	}
	result, err := h.service.CreatePresses(r.Context(), matchservice.CreatePressesRequest{
		MatchID:    matchID(r),
		HoleNumber: hole,
		Presses:    body.Presses,
	})
	writeResult(h, w, r, http.StatusCreated, result, err)
}

func (h *MatchHandlers) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMatchStatus(r.Context(), matchID(r))
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleRenameTeam(w http.ResponseWriter, r *http.Request) {
	var body renameBody
	if !h.decode(w, r, &body) {
		return
	}
	result, err := h.service.RenameTeam(r.Context(), matchID(r), matchdomain.TeamID(chi.URLParam(r, "teamID")), body.Name)
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleCompleteMatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CompleteMatch(r.Context(), matchID(r))
	writeResult(h, w, r, http.StatusOK, result, err)
}

func (h *MatchHandlers) HandleExportScorecard(w http.ResponseWriter, r *http.Request) {
	id := matchID(r)
	result, err := h.service.ExportScorecard(r.Context(), id)
	h.writeFile(w, r, result, err,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("match-%s.xlsx", id),
	)
}

func (h *MatchHandlers) HandleScoreChart(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RenderScoreChart(r.Context(), matchID(r))
	h.writeFile(w, r, result, err, "image/png", "")
}

func (h *MatchHandlers) writeFile(w http.ResponseWriter, r *http.Request, result matchservice.FileResult, err error, contentType, filename string) {
	if err != nil || !result.IsSuccess() {
		writeResult(h, w, r, http.StatusOK, result, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(*result.Success); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write file response", slog.Any("error", err))
	}
}

func (h *MatchHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeResult maps an operation result onto a response: success with okStatus, a business
// failure with its mapped 4xx status, an infrastructure error with 500.
func writeResult[S any](h *MatchHandlers, w http.ResponseWriter, r *http.Request, okStatus int, result results.OperationResult[S, error], err error) {
	switch {
	case err != nil:
		span := trace.SpanFromContext(r.Context())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(r.Context(), "Request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	case result.IsFailure():
		failure := *result.Failure
		writeJSON(w, failureStatus(failure), errorResponse{Error: failure.Error()})
	case result.IsSuccess():
		writeJSON(w, okStatus, *result.Success)
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "empty result"})
	}
}

func failureStatus(err error) int {
	switch {
	case errors.Is(err, matchservice.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, matchservice.ErrMatchCompleted),
		errors.Is(err, matchdomain.ErrMatchStarted),
		errors.Is(err, matchdomain.ErrClearCompletedHole),
		errors.Is(err, matchdomain.ErrHoleNotComplete),
		errors.Is(err, matchdomain.ErrPressesDisabled):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func matchID(r *http.Request) matchdomain.MatchID {
	return matchdomain.MatchID(chi.URLParam(r, "matchID"))
}

func holeNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "hole must be a number"})
		return 0, false
	}
	return n, true
}

package rating

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"signal-feed/internal/common/pagination"
	"signal-feed/internal/domain/entity"
	"signal-feed/internal/handler/http/pathutil"
	"signal-feed/internal/handler/http/respond"
	"signal-feed/internal/observability/logging"
	"signal-feed/internal/observability/metrics"
	ratingUC "signal-feed/internal/usecase/rating"
)

var (
	errInvalidBody     = errors.New("invalid request body")
	errIsPositiveUnset = &entity.ValidationError{Field: "is_positive", Message: "is_positive is required"}
)

// decodeInput reads the brief id, session header and JSON body. It writes
// the error response itself and returns false on any failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (ratingUC.Input, bool) {
	briefID, err := pathutil.ParseID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return ratingUC.Input{}, false
	}

	var body Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too long"))
			return ratingUC.Input{}, false
		}
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return ratingUC.Input{}, false
	}
	if body.IsPositive == nil {
		respond.SafeError(w, http.StatusBadRequest, errIsPositiveUnset)
		return ratingUC.Input{}, false
	}

	return ratingUC.Input{
		BriefID:    briefID,
		SessionID:  r.Header.Get(SessionHeader),
		IsPositive: *body.IsPositive,
		Feedback:   body.Feedback,
	}, true
}

// fail writes err and records the rejected or failed outcome.
func fail(w http.ResponseWriter, logger *slog.Logger, op string, err error, notFound ...error) {
	code := respond.Fail(w, err, notFound...)
	switch {
	case code >= 500:
		metrics.RecordRating(metrics.RatingFailed)
		logger.Error("Failed to "+op+" rating", "error", err.Error(), "status", code)
	default:
		metrics.RecordRating(metrics.RatingRejected)
		logger.Info("Rating rejected", "op", op, "error", err.Error(), "status", code)
	}
}

type SubmitHandler struct {
	Svc    *ratingUC.Service
	Logger *slog.Logger
}

// ServeHTTP 評価登録（作成または更新）
// @Summary      ブリーフ評価の登録
// @Description  セッションごとに1件。既に評価済みの場合は内容を更新します。
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id           path    int     true  "ブリーフ ID"
// @Param        X-Session-ID header  string  true  "セッション ID"
// @Param        rating       body    Request true  "評価"
// @Success      201 {object} pagination.Single[DTO] "Created"
// @Success      200 {object} pagination.Single[DTO] "Updated"
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      404 {string} string "brief not found"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Router       /briefs/{id}/ratings [post]
func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	in, ok := decodeInput(w, r)
	if !ok {
		metrics.RecordRating(metrics.RatingRejected)
		return
	}

	rt, created, err := h.Svc.Submit(r.Context(), in)
	if err != nil {
		fail(w, logger, "submit", err, ratingUC.ErrBriefNotFound)
		return
	}

	code, outcome := http.StatusOK, metrics.RatingUpdated
	if created {
		code, outcome = http.StatusCreated, metrics.RatingCreated
	}
	metrics.RecordRating(outcome)
	logger.Info("Rating submitted", "brief_id", in.BriefID, "created", created, "is_positive", rt.IsPositive)

	respond.JSON(w, code, pagination.Single[DTO]{Data: toDTO(rt)})
}

type UpdateHandler struct {
	Svc    *ratingUC.Service
	Logger *slog.Logger
}

// ServeHTTP 評価更新
// @Summary      ブリーフ評価の更新
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id           path    int     true  "ブリーフ ID"
// @Param        X-Session-ID header  string  true  "セッション ID"
// @Param        rating       body    Request true  "評価"
// @Success      200 {object} pagination.Single[DTO]
// @Failure      400 {string} string "Bad request - invalid input"
// @Failure      404 {string} string "rating not found"
// @Router       /briefs/{id}/ratings [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	in, ok := decodeInput(w, r)
	if !ok {
		metrics.RecordRating(metrics.RatingRejected)
		return
	}

	rt, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		fail(w, logger, "update", err, ratingUC.ErrRatingNotFound)
		return
	}

	metrics.RecordRating(metrics.RatingUpdated)
	respond.JSON(w, http.StatusOK, pagination.Single[DTO]{Data: toDTO(rt)})
}

type GetHandler struct {
	Svc    *ratingUC.Service
	Logger *slog.Logger
}

// ServeHTTP 自分の評価取得
// @Summary      セッションの評価取得
// @Tags         ratings
// @Produce      json
// @Param        id           path    int     true  "ブリーフ ID"
// @Param        X-Session-ID header  string  true  "セッション ID"
// @Success      200 {object} pagination.Single[DTO]
// @Failure      400 {string} string "invalid id"
// @Failure      404 {string} string "rating not found"
// @Router       /briefs/{id}/ratings [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	briefID, err := pathutil.ParseID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	rt, err := h.Svc.Get(r.Context(), briefID, r.Header.Get(SessionHeader))
	if err != nil {
		if code := respond.Fail(w, err, ratingUC.ErrRatingNotFound); code >= 500 {
			logger.Error("Failed to get rating", "brief_id", briefID, "error", err.Error())
		}
		return
	}

	respond.JSON(w, http.StatusOK, pagination.Single[DTO]{Data: toDTO(rt)})
}

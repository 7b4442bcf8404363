package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

// Services groups the usecases the handlers expose.
type Services struct {
	Competitions *usecase.CompetitionService
	Matches      *usecase.MatchService
	Teams        *usecase.TeamService
	Players      *usecase.PlayerService
	Fixtures     *usecase.FixtureService
	Standings    *usecase.StandingService
	Transfers    *usecase.TransferService
	Areas        *usecase.AreaService
	Highlights   *usecase.HighlightService
	Auth         *usecase.AuthService
}

type Handler struct {
	competitions *usecase.CompetitionService
	matches      *usecase.MatchService
	teams        *usecase.TeamService
	players      *usecase.PlayerService
	fixtures     *usecase.FixtureService
	standings    *usecase.StandingService
	transfers    *usecase.TransferService
	areas        *usecase.AreaService
	highlights   *usecase.HighlightService
	auth         *usecase.AuthService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		competitions: services.Competitions,
		matches:      services.Matches,
		teams:        services.Teams,
		players:      services.Players,
		fixtures:     services.Fixtures,
		standings:    services.Standings,
		transfers:    services.Transfers,
		areas:        services.Areas,
		highlights:   services.Highlights,
		auth:         services.Auth,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%w: invalid %s (%s)", usecase.ErrInvalidInput, lowerFirst(first.Field()), first.Tag())
		}
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// fail logs a failed operation and writes the error envelope. Server side
// failures log at error level, client mistakes at warn.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

// cachePolicy is the shared-cache hint sent with successful responses.
type cachePolicy struct {
	SMaxAge              int
	StaleWhileRevalidate int
}

func newCachePolicy(sMaxAge int) cachePolicy {
	return cachePolicy{SMaxAge: sMaxAge, StaleWhileRevalidate: 2 * sMaxAge}
}

var (
	matchesCache             = newCachePolicy(30)
	fixturesCache            = newCachePolicy(15)
	competitionStandingCache = newCachePolicy(300)
	standingsCache           = newCachePolicy(1800)
	defaultCache             = newCachePolicy(3600)
	areasCache               = cachePolicy{SMaxAge: 3600, StaleWhileRevalidate: 86400}
)

func (p cachePolicy) header() string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", p.SMaxAge, p.StaleWhileRevalidate)
}

func writeCached(ctx context.Context, w http.ResponseWriter, policy cachePolicy, data any) {
	w.Header().Set("Cache-Control", policy.header())
	writeSuccess(ctx, w, http.StatusOK, data)
}

func writeNoStore(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Cache-Control", "no-store")
	writeSuccess(ctx, w, status, data)
}

func queryString(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func queryInt(values url.Values, key string) (int, error) {
	raw := queryString(values, key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func pathInt64(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(key))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

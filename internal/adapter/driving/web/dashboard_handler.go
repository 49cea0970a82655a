package web

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

const defaultPerPage = 10

type DashboardHandler struct {
	dashboard *usecase.DashboardUseCase
	exporter  *usecase.ExportUseCase
}

func NewDashboardHandler(dashboard *usecase.DashboardUseCase, exporter *usecase.ExportUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, exporter: exporter}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)

	overview, err := h.dashboard.Overview(ctx, session.UserType)
	if err != nil {
		h.fail(w, r, err, "failed to compute overview")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *DashboardHandler) Dataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)
	query := r.URL.Query()

	dataset, rng, err := datasetAndRange(r)
	if err != nil {
		h.fail(w, r, err, "invalid dataset request")
		return
	}

	page := intParam(query.Get("page"), 1)
	perPage := intParam(query.Get("per_page"), defaultPerPage)

	view, err := h.dashboard.View(ctx, session.UserType, dataset, tableFilter(r), rng, page, perPage)
	if err != nil {
		h.fail(w, r, err, "failed to load dataset")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)

	dataset, rng, err := datasetAndRange(r)
	if err != nil {
		h.fail(w, r, err, "invalid export request")
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(entity.FormatPDF)
	}
	format, ok := entity.ParseFormat(name)
	if !ok {
		h.fail(w, r, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, name), "invalid export format")
		return
	}

	src, err := h.dashboard.Source(ctx, session.UserType, dataset, tableFilter(r))
	if err != nil {
		h.fail(w, r, err, "failed to load dataset")
		return
	}

	report, err := h.exporter.Download(ctx, src, rng, format)
	if err != nil {
		h.fail(w, r, err, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": report.Filename}))
	w.Header().Set("X-Report-Reference", report.Reference)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write report")
	}
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	From    string `json:"from"`
	ToDate  string `json:"to_date"`

	usecase.TableFilter
}

func (h *DashboardHandler) Email(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := SessionFromContext(ctx)

	dataset, err := usecase.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		h.fail(w, r, err, "invalid dataset")
		return
	}

	var body emailRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opts := usecase.EmailOptions{To: body.To, Subject: body.Subject, Message: body.Message}
	if err := usecase.ValidateEmailOptions(opts); err != nil {
		h.fail(w, r, err, "invalid recipient")
		return
	}
	rng, err := usecase.ParseRange(body.From, body.ToDate)
	if err != nil {
		h.fail(w, r, err, "invalid date range")
		return
	}

	src, err := h.dashboard.Source(ctx, session.UserType, dataset, body.TableFilter)
	if err != nil {
		h.fail(w, r, err, "failed to load dataset")
		return
	}

	result, err := h.exporter.SendEmail(ctx, src, rng, opts)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("to", opts.To).Msg("failed to email report")
		writeError(w, http.StatusBadGateway, "Failed to send email. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)
	writeError(w, status, errorMessage(err, status))
}

func datasetAndRange(r *http.Request) (usecase.Dataset, entity.DateRange, error) {
	dataset, err := usecase.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		return "", entity.DateRange{}, err
	}
	query := r.URL.Query()
	rng, err := usecase.ParseRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return "", entity.DateRange{}, err
	}
	return dataset, rng, nil
}

// tableFilter lê q, field, status e risk da query string.
func tableFilter(r *http.Request) usecase.TableFilter {
	query := r.URL.Query()
	return usecase.TableFilter{
		Query:  query.Get("q"),
		Field:  query.Get("field"),
		Status: query.Get("status"),
		Risk:   query.Get("risk"),
	}
}

func intParam(value string, def int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

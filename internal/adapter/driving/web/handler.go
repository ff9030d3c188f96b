package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/shared/types"
	"github.com/diillson/op-bridge-go/pkg/numfmt"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	reports ReportBuilder
}

func NewHandler(reports ReportBuilder) *Handler {
	return &Handler{reports: reports}
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Bridge recebe um BridgeInput em JSON e devolve o relatório completo.
func (h *Handler) Bridge(w http.ResponseWriter, r *http.Request) {
	var input entity.BridgeInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&input); err != nil {
		writeJSON(r, w, http.StatusBadRequest, errorResponse{Errors: []string{"invalid JSON body: " + err.Error()}})
		return
	}

	report, ok := h.build(w, r, input)
	if !ok {
		return
	}
	writeJSON(r, w, http.StatusOK, report)
}

// Chart devolve apenas a cascata em SVG. Aceita query string ou formulário.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	input, ok := parseFormInput(w, r)
	if !ok {
		return
	}
	report, ok := h.build(w, r, input)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.RenderSVG(&buf, report); err != nil {
		renderFailed(w, r, err, "failed to render chart")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

// Report devolve a página HTML com tabela, cascata e comentários.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	input, ok := parseFormInput(w, r)
	if !ok {
		return
	}
	report, ok := h.build(w, r, input)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reports.RenderHTML(&buf, report); err != nil {
		renderFailed(w, r, err, "failed to render report")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request, input entity.BridgeInput) (entity.BridgeReport, bool) {
	report, err := h.reports.BuildReport(input)
	if err == nil {
		return report, true
	}

	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(r, w, http.StatusUnprocessableEntity, errorResponse{Errors: verr.Messages})
	case errors.Is(err, types.ErrInvalidMode):
		writeJSON(r, w, http.StatusUnprocessableEntity, errorResponse{Errors: []string{err.Error()}})
	default:
		renderFailed(w, r, err, "failed to build report")
	}
	return entity.BridgeReport{}, false
}

func parseFormInput(w http.ResponseWriter, r *http.Request) (entity.BridgeInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeJSON(r, w, http.StatusBadRequest, errorResponse{Errors: []string{"invalid form: " + err.Error()}})
		return entity.BridgeInput{}, false
	}
	input, err := inputFromValues(r.Form)
	if err != nil {
		writeJSON(r, w, http.StatusBadRequest, errorResponse{Errors: []string{err.Error()}})
		return entity.BridgeInput{}, false
	}
	return input, true
}

// inputFromValues lê os campos base.<item> e now.<item>. Campos vazios valem 0.
func inputFromValues(v url.Values) (entity.BridgeInput, error) {
	input := entity.BridgeInput{
		Mode:      entity.ComparisonMode(strings.ToLower(strings.TrimSpace(v.Get("mode")))),
		YearMonth: strings.TrimSpace(v.Get("year_month")),
		SiteName:  strings.TrimSpace(v.Get("site_name")),
	}
	for _, li := range entity.AllItems {
		for _, p := range []struct {
			prefix   string
			snapshot *entity.FinancialSnapshot
		}{
			{"base.", &input.Base},
			{"now.", &input.Now},
		} {
			amount, err := numfmt.ParseAmount(v.Get(p.prefix + string(li)))
			if err != nil {
				return entity.BridgeInput{}, fmt.Errorf("%s%s: %w", p.prefix, li, err)
			}
			p.snapshot.Set(li, amount)
		}
	}
	return input, nil
}

func renderFailed(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

// writeJSON codifica antes de escrever o cabeçalho, para que uma falha de
// encoding vire 500 em vez de um 200 sem corpo.
func writeJSON(r *http.Request, w http.ResponseWriter, status int, body interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

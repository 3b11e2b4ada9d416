package handlers

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/rural-insights/internal/analysis"
	"github.com/dvloznov/rural-insights/internal/api/middleware"
	"github.com/dvloznov/rural-insights/internal/jobs"
)

// UploadResponse is the success payload of POST /api/upload.
type UploadResponse struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	ReportID       string           `json:"report_id,omitempty"`
	Analysis       *analysis.Report `json:"analysis"`
	ProcessingTime float64          `json:"processing_time"`
}

// ErrorResponse is the failure payload for upload errors.
type ErrorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail"`
	Suggestion string `json:"suggestion"`
}

// UploadHandler ingests ledger CSV files and returns the full analysis.
type UploadHandler struct {
	analyzer  *analysis.Analyzer
	publisher jobs.Publisher
	bucket    string
	maxBytes  int64
	log       zerolog.Logger
}

// NewUploadHandler creates a new upload handler. An empty bucket disables
// report archiving; a nil publisher does too.
func NewUploadHandler(analyzer *analysis.Analyzer, publisher jobs.Publisher, bucket string, maxBytes int64, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		analyzer:  analyzer,
		publisher: publisher,
		bucket:    bucket,
		maxBytes:  maxBytes,
		log:       log,
	}
}

// Upload handles POST /api/upload. It accepts a multipart form with a single
// "file" field holding a semicolon-delimited ledger CSV.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	// The multipart overhead makes the body slightly larger than the file.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Arquivo não enviado. Use o campo 'file'.")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Arquivo sem nome")
		return
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		middleware.WriteError(w, http.StatusBadRequest, "Tipo de arquivo não permitido. Use: .csv")
		return
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read uploaded file")
		middleware.WriteError(w, http.StatusBadRequest, "Erro ao ler arquivo")
		return
	}

	if int64(len(contents)) > h.maxBytes {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge,
			"Arquivo muito grande. Máximo: "+formatMB(h.maxBytes)+"MB")
		return
	}
	if len(contents) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Arquivo vazio")
		return
	}

	report, err := h.analyzer.Analyze(ctx, contents)
	if err != nil {
		h.log.Warn().Err(err).Str("filename", header.Filename).Msg("Ledger validation failed")
		middleware.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:      "Erro de validação",
			Detail:     err.Error(),
			Suggestion: "Verifique se o arquivo está no formato correto",
		})
		return
	}

	reportID := uuid.New().String()
	h.archive(report, reportID, header.Filename)

	elapsed := math.Round(time.Since(start).Seconds()*100) / 100

	middleware.WriteJSON(w, http.StatusOK, UploadResponse{
		Success:        true,
		Message:        "Arquivo processado com sucesso",
		ReportID:       reportID,
		Analysis:       report,
		ProcessingTime: elapsed,
	})
}

// archive enqueues the report for asynchronous upload to cloud storage.
// Archiving failures are logged, never surfaced to the client.
func (h *UploadHandler) archive(report *analysis.Report, reportID, filename string) {
	if h.publisher == nil || h.bucket == "" {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		h.log.Error().Err(err).Str("report_id", reportID).Msg("Failed to marshal report for archiving")
		return
	}

	job := &jobs.ArchiveReportJob{
		ReportID:    reportID,
		Filename:    filename,
		Payload:     payload,
		GeneratedAt: time.Now(),
	}

	// Detached context: archiving must outlive the HTTP request.
	if err := h.publisher.PublishArchiveReport(context.Background(), job); err != nil {
		h.log.Error().Err(err).Str("report_id", reportID).Msg("Failed to enqueue archive job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("report_id", reportID).Msg("Archive job enqueued")
}

// SampleFormat handles GET /api/upload/sample, documenting the expected
// ledger layout.
func (h *UploadHandler) SampleFormat(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"format":   "CSV com ponto-e-vírgula (;) como delimitador",
		"encoding": "UTF-8, ISO-8859-1 ou Latin-1",
		"required_columns": []string{
			"descricao",
			"valor",
			"data",
			"operacao",
			"realizado",
		},
		"example": map[string]string{
			"descricao": "COMBUSTÍVEL",
			"valor":     "-150.00",
			"data":      "15/01/2024",
			"operacao":  "SAÍDA",
			"realizado": "SIM",
		},
		"notes": []string{
			"Valores de saída podem ser negativos ou positivos",
			"Data no formato DD/MM/AAAA",
			"Operação deve ser 'SAÍDA' ou 'ENTRADA'",
			"Realizado deve ser 'SIM' ou 'NÃO'",
		},
	})
}

func formatMB(bytes int64) string {
	return strconv.FormatInt(bytes/(1024*1024), 10)
}

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/contracts"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
	usecases_port "realestate-search-service/internal/core/port/usecases"
)

const maxRequestBodyBytes = 1 << 20

type SearchHandlers struct {
	runSearchUC   usecases_port.RunSearchPort
	batchSearchUC usecases_port.BatchSearchPort
	contactUC     usecases_port.ContactAgentPort
	defaultSearch domain.SearchConfiguration
}

// NewSearchHandlers - конструктор обработчиков. defaultSearch выполняется на GET /.
func NewSearchHandlers(
	runSearchUC usecases_port.RunSearchPort,
	batchSearchUC usecases_port.BatchSearchPort,
	contactUC usecases_port.ContactAgentPort,
	defaultSearch domain.SearchConfiguration,
) *SearchHandlers {
	return &SearchHandlers{
		runSearchUC:   runSearchUC,
		batchSearchUC: batchSearchUC,
		contactUC:     contactUC,
		defaultSearch: defaultSearch,
	}
}

// HandleDefaultSearch - GET /. Отдает массив объявлений поиска по умолчанию,
// полнота результата передается в заголовках X-Search-*.
func (h *SearchHandlers) HandleDefaultSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleDefaultSearch"})

	result, err := h.runSearchUC.Execute(r.Context(), h.defaultSearch)
	if err != nil {
		logger.Error("Default search failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	response := toSearchResponseDTO(result)
	w.Header().Set("X-Search-Complete", strconv.FormatBool(response.Complete))
	w.Header().Set("X-Search-Stop-Reason", response.StopReason)
	RespondWithJSON(w, http.StatusOK, response.Listings)
}

// HandleSearch - POST /api/v1/search
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSearch"})

	var reqDTO SearchRequestDTO
	if !decodeValidated(w, r, logger, contracts.SearchConfigurationV1, &reqDTO) {
		return
	}

	cfg := reqDTO.ToDomain()
	logger.Info("Received search request", port.Fields{"channel": string(cfg.Channel), "locations": cfg.Locations})

	result, err := h.runSearchUC.Execute(r.Context(), cfg)
	if err != nil {
		logger.Error("Search failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toSearchResponseDTO(result))
}

// HandleBatchSearch - POST /api/v1/search/batch
func (h *SearchHandlers) HandleBatchSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleBatchSearch"})

	var reqDTO BatchSearchRequestDTO
	if !decodeValidated(w, r, logger, contracts.BatchSearchV1, &reqDTO) {
		return
	}

	configs := make([]domain.SearchConfiguration, 0, len(reqDTO.Searches))
	for _, search := range reqDTO.Searches {
		configs = append(configs, search.ToDomain())
	}

	results, err := h.batchSearchUC.Execute(r.Context(), configs)
	if err != nil {
		logger.Error("Batch search failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	response := BatchSearchResponseDTO{Results: make([]SearchResponseDTO, 0, len(results))}
	for _, result := range results {
		response.Results = append(response.Results, toSearchResponseDTO(result))
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// HandleContactAgent - POST /api/v1/listings/{listingID}/contact-agent.
// Тело ответа удаленного сервиса передается клиенту без изменений.
func (h *SearchHandlers) HandleContactAgent(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "HandleContactAgent",
		"listing_id": listingID,
	})

	var reqDTO ContactAgentRequestDTO
	if !decodeValidated(w, r, logger, contracts.ContactAgentV1, &reqDTO) {
		return
	}

	body, err := h.contactUC.Execute(r.Context(), listingID, reqDTO.ToDomain())
	if err != nil {
		logger.Error("Contact agent failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *SearchHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeValidated читает тело, проверяет его по схеме и разбирает в dst.
// При ошибке сам пишет ответ и возвращает false.
func decodeValidated(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, schemaKey string, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		logger.Error("Failed to read request body", err, nil)
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}
	if len(body) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
		return false
	}

	if err := contracts.Validate(schemaKey, body); err != nil {
		logger.Warn("Request rejected by schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidChannel),
		errors.Is(err, domain.ErrInvalidExcludePattern),
		errors.Is(err, domain.ErrEmptyListingID):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTransportFailure), errors.Is(err, domain.ErrMalformedResponse):
		WriteJSONError(w, http.StatusBadGateway, "Remote listing service request failed")
	default:
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/dto"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	titulo := strings.TrimSpace(req.Titulo)
	if titulo == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	categoria := domain.CategoryGeral
	if req.Categoria != nil {
		categoria = domain.Category(*req.Categoria)
	}

	prioridade := domain.PriorityMedia
	if req.Prioridade != nil {
		prioridade = domain.Priority(*req.Prioridade)
	}

	dataVencimento, err := parseTimePtr(req.DataVencimento)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	var recorrencia *domain.Recurrence
	if req.Recorrencia != nil {
		proximaData, err := parseTimePtr(req.Recorrencia.ProximaData)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		intervalo := req.Recorrencia.Intervalo
		if intervalo == 0 {
			intervalo = 1
		}
		recorrencia = &domain.Recurrence{
			Tipo:        domain.RecurrenceType(req.Recorrencia.Tipo),
			Intervalo:   intervalo,
			ProximaData: proximaData,
		}
	}

	return domain.CreateTaskInput{
		Titulo:           titulo,
		Descricao:        req.Descricao,
		Responsavel:      req.Responsavel,
		Usuario:          req.Usuario,
		AccountID:        req.AccountID,
		Categoria:        categoria,
		Tags:             req.Tags,
		Prioridade:       prioridade,
		DataVencimento:   dataVencimento,
		Estimativa:       req.Estimativa,
		Observacoes:      req.Observacoes,
		Recorrente:       req.Recorrente,
		Recorrencia:      recorrencia,
		VinculoMovimento: req.VinculoMovimento,
		VinculoTransacao: req.VinculoTransacao,
		VinculoConta:     req.VinculoConta,
	}, nil
}

// BuildUpdateTaskInput distinguishes absent fields from fields explicitly set
// to null by inspecting the raw JSON object alongside the bound request.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var titulo *string
	if hasJSONField(raw, "titulo") && req.Titulo == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Titulo != nil {
		value := strings.TrimSpace(*req.Titulo)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		titulo = &value
	}

	var prioridade *domain.Priority
	if req.Prioridade != nil {
		value := domain.Priority(*req.Prioridade)
		prioridade = &value
	}

	var categoria *domain.Category
	if req.Categoria != nil {
		value := domain.Category(*req.Categoria)
		categoria = &value
	}

	descricaoSet := hasJSONField(raw, "descricao")
	if descricaoSet && !isJSONNull(raw["descricao"]) && req.Descricao == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var dataVencimento *time.Time
	dataVencimentoSet := hasJSONField(raw, "dataVencimento")
	if dataVencimentoSet && !isJSONNull(raw["dataVencimento"]) {
		if req.DataVencimento == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := time.Parse(time.RFC3339, *req.DataVencimento)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		dataVencimento = &parsed
	}

	estimativaSet := hasJSONField(raw, "estimativa")
	if estimativaSet && !isJSONNull(raw["estimativa"]) && req.Estimativa == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	observacoesSet := hasJSONField(raw, "observacoes")
	if observacoesSet && !isJSONNull(raw["observacoes"]) && req.Observacoes == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	tagsSet := hasJSONField(raw, "tags")

	return domain.UpdateTaskInput{
		Titulo:            titulo,
		Descricao:         req.Descricao,
		DescricaoSet:      descricaoSet,
		Prioridade:        prioridade,
		Categoria:         categoria,
		Tags:              req.Tags,
		TagsSet:           tagsSet,
		DataVencimento:    dataVencimento,
		DataVencimentoSet: dataVencimentoSet,
		Estimativa:        req.Estimativa,
		EstimativaSet:     estimativaSet,
		TempoGasto:        req.TempoGasto,
		Observacoes:       req.Observacoes,
		ObservacoesSet:    observacoesSet,
	}, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "titulo") ||
		hasJSONField(raw, "descricao") ||
		hasJSONField(raw, "prioridade") ||
		hasJSONField(raw, "categoria") ||
		hasJSONField(raw, "tags") ||
		hasJSONField(raw, "dataVencimento") ||
		hasJSONField(raw, "estimativa") ||
		hasJSONField(raw, "tempoGasto") ||
		hasJSONField(raw, "observacoes")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func parseTimePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

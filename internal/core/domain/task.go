package domain

import (
	"math"
	"time"
)

type TaskStatus string

const (
	TaskStatusPendente    TaskStatus = "pendente"
	TaskStatusEmAndamento TaskStatus = "em_andamento"
	TaskStatusConcluida   TaskStatus = "concluida"
	TaskStatusCancelada   TaskStatus = "cancelada"
	TaskStatusBloqueada   TaskStatus = "bloqueada"
)

// Terminal reports whether the status excludes the task from overdue and
// due-soon projections.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusConcluida || s == TaskStatusCancelada
}

type Priority string

const (
	PriorityBaixa   Priority = "baixa"
	PriorityMedia   Priority = "media"
	PriorityAlta    Priority = "alta"
	PriorityUrgente Priority = "urgente"
)

// Rank orders priorities for sorting: urgente > alta > media > baixa.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgente:
		return 4
	case PriorityAlta:
		return 3
	case PriorityMedia:
		return 2
	case PriorityBaixa:
		return 1
	}
	return 0
}

type Category string

const (
	CategoryCompras        Category = "compras"
	CategoryVendas         Category = "vendas"
	CategoryTransferencias Category = "transferencias"
	CategoryPassagens      Category = "passagens"
	CategoryRelatorios     Category = "relatorios"
	CategoryFinanceiro     Category = "financeiro"
	CategoryGeral          Category = "geral"
	CategoryOutra          Category = "outra"
)

type KanbanColumn string

const (
	KanbanColumnPendente    KanbanColumn = "pendente"
	KanbanColumnEmAndamento KanbanColumn = "em_andamento"
	KanbanColumnConcluida   KanbanColumn = "concluida"
)

// KanbanColumns returns the three board columns in display order.
func KanbanColumns() []KanbanColumn {
	return []KanbanColumn{KanbanColumnPendente, KanbanColumnEmAndamento, KanbanColumnConcluida}
}

type RecurrenceType string

const (
	RecurrenceDiaria  RecurrenceType = "diaria"
	RecurrenceSemanal RecurrenceType = "semanal"
	RecurrenceMensal  RecurrenceType = "mensal"
)

type Subtask struct {
	Descricao     string
	Concluida     bool
	DataConclusao *time.Time
}

type Attachment struct {
	Nome       string
	URL        string
	Tipo       string
	Tamanho    int64
	DataUpload time.Time
}

type Comment struct {
	Usuario string
	Texto   string
	Data    time.Time
}

// Recurrence is declarative only; no scheduler consumes it.
type Recurrence struct {
	Tipo        RecurrenceType
	Intervalo   int
	ProximaData *time.Time
}

// Kanban holds the board placement of a task. The column mirrors the status
// for the pendente/em_andamento/concluida transitions but is an independent
// field: cancelled and blocked tasks keep whatever column they were in.
type Kanban struct {
	Coluna  KanbanColumn
	Posicao int
}

type Task struct {
	ID               string
	Titulo           string
	Descricao        *string
	Responsavel      string
	Usuario          string
	AccountID        *string
	Categoria        Category
	Tags             []string
	Prioridade       Priority
	Status           TaskStatus
	DataVencimento   *time.Time
	DataInicio       *time.Time
	DataConclusao    *time.Time
	Estimativa       *string
	TempoGasto       int
	Kanban           Kanban
	Subtarefas       []Subtask
	Anexos           []Attachment
	Comentarios      []Comment
	Observacoes      *string
	Recorrente       bool
	Recorrencia      *Recurrence
	VinculoMovimento *string
	VinculoTransacao *string
	VinculoConta     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Atrasada reports whether the task is past its due date. Concluded and
// cancelled tasks are never considered overdue.
func (t *Task) Atrasada(now time.Time) bool {
	if t.Status.Terminal() || t.DataVencimento == nil {
		return false
	}
	return t.DataVencimento.Before(now)
}

// ProgressoSubtarefas returns the subtask completion percentage, rounded to
// the nearest integer. An empty checklist counts as fully complete.
func (t *Task) ProgressoSubtarefas() int {
	if len(t.Subtarefas) == 0 {
		return 100
	}
	concluidas := 0
	for _, s := range t.Subtarefas {
		if s.Concluida {
			concluidas++
		}
	}
	return int(math.Round(float64(concluidas) / float64(len(t.Subtarefas)) * 100))
}

// DiasRestantes returns the number of days until the due date, rounded up.
// It is nil when the task has no due date or is concluded/cancelled, and
// negative when the task is overdue.
func (t *Task) DiasRestantes(now time.Time) *int {
	if t.DataVencimento == nil || t.Status.Terminal() {
		return nil
	}
	dias := int(math.Ceil(t.DataVencimento.Sub(now).Hours() / 24))
	return &dias
}

type CreateTaskInput struct {
	Titulo           string
	Descricao        *string
	Responsavel      string
	Usuario          string
	AccountID        *string
	Categoria        Category
	Tags             []string
	Prioridade       Priority
	DataVencimento   *time.Time
	Estimativa       *string
	Observacoes      *string
	Recorrente       bool
	Recorrencia      *Recurrence
	VinculoMovimento *string
	VinculoTransacao *string
	VinculoConta     *string
}

// UpdateTaskInput carries a partial update. Pointer fields distinguish
// "absent" from "set to zero value"; the *Set flags cover fields that may be
// explicitly cleared with a JSON null.
type UpdateTaskInput struct {
	Titulo            *string
	Descricao         *string
	DescricaoSet      bool
	Prioridade        *Priority
	Categoria         *Category
	Tags              []string
	TagsSet           bool
	DataVencimento    *time.Time
	DataVencimentoSet bool
	Estimativa        *string
	EstimativaSet     bool
	TempoGasto        *int
	Observacoes       *string
	ObservacoesSet    bool
}

// TaskFilter narrows task listings. UserID matches either the owner or the
// responsible party; Responsavel matches the responsible party only.
type TaskFilter struct {
	UserID      *string
	Responsavel *string
	Status      *TaskStatus
	Prioridade  *Priority
	Categoria   *Category
	Page        int
	Limit       int
}

// KanbanBoard maps each of the three columns to its ordered card sequence.
type KanbanBoard map[KanbanColumn][]Task

type TaskStats struct {
	Total         int64
	Pendentes     int64
	EmAndamento   int64
	Concluidas    int64
	Canceladas    int64
	Atrasadas     int64
	PorPrioridade map[Priority]int64
	PorCategoria  map[Category]int64
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	titulo := strings.TrimSpace(input.Titulo)
	if titulo == "" {
		return nil, domain.ErrTituloRequired
	}
	if strings.TrimSpace(input.Responsavel) == "" {
		return nil, domain.ErrResponsavelRequired
	}
	if strings.TrimSpace(input.Usuario) == "" {
		return nil, domain.ErrUsuarioRequired
	}

	categoria := input.Categoria
	if categoria == "" {
		categoria = domain.CategoryGeral
	}
	prioridade := input.Prioridade
	if prioridade == "" {
		prioridade = domain.PriorityMedia
	}

	// New cards land at the bottom of the pendente column.
	posicao, err := s.taskRepository.NextKanbanPosition(ctx, domain.KanbanColumnPendente)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := &domain.Task{
		ID:               uuid.New().String(),
		Titulo:           titulo,
		Descricao:        input.Descricao,
		Responsavel:      input.Responsavel,
		Usuario:          input.Usuario,
		AccountID:        input.AccountID,
		Categoria:        categoria,
		Tags:             input.Tags,
		Prioridade:       prioridade,
		Status:           domain.TaskStatusPendente,
		DataVencimento:   input.DataVencimento,
		Estimativa:       input.Estimativa,
		Observacoes:      input.Observacoes,
		Recorrente:       input.Recorrente,
		Recorrencia:      input.Recorrencia,
		VinculoMovimento: input.VinculoMovimento,
		VinculoTransacao: input.VinculoTransacao,
		VinculoConta:     input.VinculoConta,
		Kanban: domain.Kanban{
			Coluna:  domain.KanbanColumnPendente,
			Posicao: posicao,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.taskRepository.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.taskRepository.GetByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	return s.taskRepository.List(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Titulo != nil {
		task.Titulo = *input.Titulo
	}
	if input.DescricaoSet {
		task.Descricao = input.Descricao
	}
	if input.Prioridade != nil {
		task.Prioridade = *input.Prioridade
	}
	if input.Categoria != nil {
		task.Categoria = *input.Categoria
	}
	if input.TagsSet {
		task.Tags = input.Tags
	}
	if input.DataVencimentoSet {
		task.DataVencimento = input.DataVencimento
	}
	if input.EstimativaSet {
		task.Estimativa = input.Estimativa
	}
	if input.TempoGasto != nil {
		task.TempoGasto = *input.TempoGasto
	}
	if input.ObservacoesSet {
		task.Observacoes = input.Observacoes
	}

	return s.save(ctx, task)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.taskRepository.Delete(ctx, id)
}

// StartTask moves the task into em_andamento. The original start time is
// preserved: re-starting never overwrites DataInicio.
func (s *TaskService) StartTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status.Terminal() {
		zap.L().Warn("starting a concluded or cancelled task",
			zap.String("task_id", task.ID),
			zap.String("status", string(task.Status)))
	}

	task.Status = domain.TaskStatusEmAndamento
	if task.DataInicio == nil {
		inicio := s.now()
		task.DataInicio = &inicio
	}
	task.Kanban.Coluna = domain.KanbanColumnEmAndamento

	return s.save(ctx, task)
}

// ConcludeTask is idempotent: re-concluding re-stamps DataConclusao.
func (s *TaskService) ConcludeTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	conclusao := s.now()
	task.Status = domain.TaskStatusConcluida
	task.DataConclusao = &conclusao
	task.Kanban.Coluna = domain.KanbanColumnConcluida

	return s.save(ctx, task)
}

// CancelTask marks the task cancelled. The kanban column is left untouched so
// the card stays visible wherever it was on the board.
func (s *TaskService) CancelTask(ctx context.Context, id, motivo string) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatusCancelada
	if motivo != "" {
		linha := fmt.Sprintf("[%s] Cancelada: %s", s.now().Format("2006-01-02 15:04"), motivo)
		if task.Observacoes != nil && *task.Observacoes != "" {
			linha = *task.Observacoes + "\n" + linha
		}
		task.Observacoes = &linha
	}

	return s.save(ctx, task)
}

func (s *TaskService) AddComment(ctx context.Context, id, usuarioID, texto string) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Comentarios = append(task.Comentarios, domain.Comment{
		Usuario: usuarioID,
		Texto:   texto,
		Data:    s.now(),
	})

	return s.save(ctx, task)
}

func (s *TaskService) AddSubtask(ctx context.Context, id, descricao string) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Subtarefas = append(task.Subtarefas, domain.Subtask{
		Descricao: descricao,
		Concluida: false,
	})

	return s.save(ctx, task)
}

// CompleteSubtask marks the subtask at index complete. An out-of-range index
// is a silent no-op; the record is still saved unchanged.
func (s *TaskService) CompleteSubtask(ctx context.Context, id string, index int) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if index >= 0 && index < len(task.Subtarefas) {
		conclusao := s.now()
		task.Subtarefas[index].Concluida = true
		task.Subtarefas[index].DataConclusao = &conclusao
	}

	return s.save(ctx, task)
}

// MoveKanban relocates a card and syncs the status with the target column:
// pendente tasks moved to em_andamento are started, anything moved to
// concluida is concluded, and a move back to pendente resets the status.
func (s *TaskService) MoveKanban(ctx context.Context, id string, coluna domain.KanbanColumn, posicao int) (*domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Kanban.Coluna = coluna
	task.Kanban.Posicao = posicao

	switch {
	case coluna == domain.KanbanColumnEmAndamento && task.Status == domain.TaskStatusPendente:
		task.Status = domain.TaskStatusEmAndamento
		if task.DataInicio == nil {
			inicio := s.now()
			task.DataInicio = &inicio
		}
	case coluna == domain.KanbanColumnConcluida && task.Status != domain.TaskStatusConcluida:
		conclusao := s.now()
		task.Status = domain.TaskStatusConcluida
		task.DataConclusao = &conclusao
	case coluna == domain.KanbanColumnPendente:
		task.Status = domain.TaskStatusPendente
	}

	return s.save(ctx, task)
}

func (s *TaskService) KanbanView(ctx context.Context, userID string) (domain.KanbanBoard, error) {
	board := domain.KanbanBoard{}
	for _, coluna := range domain.KanbanColumns() {
		tasks, err := s.taskRepository.ListKanbanColumn(ctx, userID, coluna)
		if err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		board[coluna] = tasks
	}
	return board, nil
}

func (s *TaskService) ListAtrasadas(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.taskRepository.ListAtrasadas(ctx, userID, s.now())
}

func (s *TaskService) ListVencendoEm(ctx context.Context, dias int, userID string) ([]domain.Task, error) {
	from := s.now()
	return s.taskRepository.ListVencendoEntre(ctx, userID, from, from.AddDate(0, 0, dias))
}

func (s *TaskService) ListByResponsavel(ctx context.Context, responsavelID string, status *domain.TaskStatus) ([]domain.Task, error) {
	return s.taskRepository.ListByResponsavel(ctx, responsavelID, status)
}

func (s *TaskService) ListByStatus(ctx context.Context, status domain.TaskStatus, userID string) ([]domain.Task, error) {
	return s.taskRepository.ListByStatus(ctx, status, userID)
}

func (s *TaskService) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	return s.taskRepository.Stats(ctx, userID, s.now())
}

func (s *TaskService) save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.UpdatedAt = s.now()
	if err := s.taskRepository.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

package ports

import (
	"context"
	"time"

	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// Save persists the full record, child lists included.
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, int64, error)
	ListByResponsavel(ctx context.Context, responsavelID string, status *domain.TaskStatus) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus, userID string) ([]domain.Task, error)
	ListAtrasadas(ctx context.Context, userID string, now time.Time) ([]domain.Task, error)
	ListVencendoEntre(ctx context.Context, userID string, from, until time.Time) ([]domain.Task, error)
	ListKanbanColumn(ctx context.Context, userID string, coluna domain.KanbanColumn) ([]domain.Task, error)
	NextKanbanPosition(ctx context.Context, coluna domain.KanbanColumn) (int, error)
	Stats(ctx context.Context, userID string, now time.Time) (*domain.TaskStats, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, int64, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	StartTask(ctx context.Context, id string) (*domain.Task, error)
	ConcludeTask(ctx context.Context, id string) (*domain.Task, error)
	CancelTask(ctx context.Context, id, motivo string) (*domain.Task, error)
	AddComment(ctx context.Context, id, usuarioID, texto string) (*domain.Task, error)
	AddSubtask(ctx context.Context, id, descricao string) (*domain.Task, error)
	CompleteSubtask(ctx context.Context, id string, index int) (*domain.Task, error)
	MoveKanban(ctx context.Context, id string, coluna domain.KanbanColumn, posicao int) (*domain.Task, error)
	KanbanView(ctx context.Context, userID string) (domain.KanbanBoard, error)
	ListAtrasadas(ctx context.Context, userID string) ([]domain.Task, error)
	ListVencendoEm(ctx context.Context, dias int, userID string) ([]domain.Task, error)
	ListByResponsavel(ctx context.Context, responsavelID string, status *domain.TaskStatus) ([]domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus, userID string) ([]domain.Task, error)
	Stats(ctx context.Context, userID string) (*domain.TaskStats, error)
}

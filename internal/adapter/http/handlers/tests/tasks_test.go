package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/dto"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/handlers"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/middleware"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
	"github.com/Adjalma/SS-Milhas-sub001/pkg/apierrors"
	"github.com/Adjalma/SS-Milhas-sub001/pkg/translator"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, input)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, int64, error) {
	args := m.Called(ctx, filter)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Get(1).(int64), args.Error(2)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	args := m.Called(ctx, id, input)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskServiceMock) StartTask(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) ConcludeTask(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) CancelTask(ctx context.Context, id, motivo string) (*domain.Task, error) {
	args := m.Called(ctx, id, motivo)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) AddComment(ctx context.Context, id, usuarioID, texto string) (*domain.Task, error) {
	args := m.Called(ctx, id, usuarioID, texto)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) AddSubtask(ctx context.Context, id, descricao string) (*domain.Task, error) {
	args := m.Called(ctx, id, descricao)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) CompleteSubtask(ctx context.Context, id string, index int) (*domain.Task, error) {
	args := m.Called(ctx, id, index)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) MoveKanban(ctx context.Context, id string, coluna domain.KanbanColumn, posicao int) (*domain.Task, error) {
	args := m.Called(ctx, id, coluna, posicao)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) KanbanView(ctx context.Context, userID string) (domain.KanbanBoard, error) {
	args := m.Called(ctx, userID)
	var board domain.KanbanBoard
	if value := args.Get(0); value != nil {
		board = value.(domain.KanbanBoard)
	}
	return board, args.Error(1)
}

func (m *taskServiceMock) ListAtrasadas(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) ListVencendoEm(ctx context.Context, dias int, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, dias, userID)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) ListByResponsavel(ctx context.Context, responsavelID string, status *domain.TaskStatus) ([]domain.Task, error) {
	args := m.Called(ctx, responsavelID, status)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) ListByStatus(ctx context.Context, status domain.TaskStatus, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, status, userID)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	args := m.Called(ctx, userID)
	var stats *domain.TaskStats
	if value := args.Get(0); value != nil {
		stats = value.(*domain.TaskStats)
	}
	return stats, args.Error(1)
}

func newTaskRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(serviceMock)
	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.GET("/tasks", handler.ListTasks)
	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks/kanban/view", handler.KanbanView)
	api.GET("/tasks/late/list", handler.ListLateTasks)
	api.GET("/tasks/:id", handler.GetTask)
	api.POST("/tasks/:id/start", handler.StartTask)
	api.POST("/tasks/:id/complete", handler.ConcludeTask)
	api.POST("/tasks/:id/cancel", handler.CancelTask)
	api.POST("/tasks/:id/subtasks", handler.AddSubtask)
	api.PUT("/tasks/:id/subtasks/:index/complete", handler.CompleteSubtask)
	api.PUT("/tasks/:id/kanban", handler.MoveKanban)
	return router
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	responsavel := uuid.New().String()
	usuario := uuid.New().String()
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	vencimento := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Titulo == "Validar compra LATAM Pass" &&
			input.Prioridade == domain.PriorityAlta &&
			input.Responsavel == responsavel
	})).Return(&domain.Task{
		ID:             uuid.New().String(),
		Titulo:         "Validar compra LATAM Pass",
		Responsavel:    responsavel,
		Usuario:        usuario,
		Categoria:      domain.CategoryCompras,
		Prioridade:     domain.PriorityAlta,
		Status:         domain.TaskStatusPendente,
		DataVencimento: &vencimento,
		Kanban:         domain.Kanban{Coluna: domain.KanbanColumnPendente, Posicao: 0},
		CreatedAt:      created,
		UpdatedAt:      created,
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	body := `{
		"titulo": "Validar compra LATAM Pass",
		"responsavel": "` + responsavel + `",
		"usuario": "` + usuario + `",
		"categoria": "compras",
		"prioridade": "alta",
		"dataVencimento": "2026-01-20T00:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Validar compra LATAM Pass", got.Titulo)
	require.Equal(t, "pendente", got.Status)
	require.Equal(t, "pendente", got.Kanban.Coluna)
	require.Equal(t, "alta", got.Prioridade)
	require.NotNil(t, got.DiasRestantes)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_RejectsBlankTitle(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	body := `{
		"titulo": "   ",
		"responsavel": "` + uuid.New().String() + `",
		"usuario": "` + uuid.New().String() + `"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusBadRequest, got.ErrDetails.Code)
	require.Equal(t, "Invalid task payload.", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateTask_RejectsMissingResponsavel(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	body := `{"titulo": "Emitir passagem", "usuario": "` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	taskID := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, taskID).Return(nil, domain.ErrTaskNotFound).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID, nil)
	req.Header.Set("Accept-Language", translator.LanguagePt)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Tarefa não encontrada.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_InvalidID(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid task id.", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "GetTask", mock.Anything, mock.Anything)
}

func TestTaskHandler_StartTask_Success(t *testing.T) {
	taskID := uuid.New().String()
	inicio := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("StartTask", mock.Anything, taskID).Return(&domain.Task{
		ID:         taskID,
		Titulo:     "Transferir pontos Smiles",
		Status:     domain.TaskStatusEmAndamento,
		DataInicio: &inicio,
		Kanban:     domain.Kanban{Coluna: domain.KanbanColumnEmAndamento},
		CreatedAt:  inicio,
		UpdatedAt:  inicio,
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID+"/start", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "em_andamento", got.Status)
	require.Equal(t, "em_andamento", got.Kanban.Coluna)
	require.Equal(t, "2026-02-01T09:00:00Z", *got.DataInicio)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ConcludeTask_Error(t *testing.T) {
	taskID := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("ConcludeTask", mock.Anything, taskID).Return(nil, errors.New("db is down")).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID+"/complete", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Could not conclude the task.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CancelTask_ForwardsMotivo(t *testing.T) {
	taskID := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("CancelTask", mock.Anything, taskID, "cliente desistiu").Return(&domain.Task{
		ID:     taskID,
		Titulo: "Vender milhas Azul",
		Status: domain.TaskStatusCancelada,
		Kanban: domain.Kanban{Coluna: domain.KanbanColumnEmAndamento},
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	body := `{"motivo": "cliente desistiu"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks/"+taskID+"/cancel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "cancelada", got.Status)
	// The cancelled card keeps its old column.
	require.Equal(t, "em_andamento", got.Kanban.Coluna)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CompleteSubtask_InvalidIndex(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+uuid.New().String()+"/subtasks/abc/complete", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid subtask index.", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "CompleteSubtask", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_KanbanView_ReturnsThreeColumns(t *testing.T) {
	userID := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("KanbanView", mock.Anything, userID).Return(domain.KanbanBoard{
		domain.KanbanColumnPendente: {
			{ID: uuid.New().String(), Titulo: "Comprar milhas", Kanban: domain.Kanban{Coluna: domain.KanbanColumnPendente, Posicao: 0}},
			{ID: uuid.New().String(), Titulo: "Emitir passagem", Kanban: domain.Kanban{Coluna: domain.KanbanColumnPendente, Posicao: 1}},
		},
		domain.KanbanColumnEmAndamento: {},
		domain.KanbanColumnConcluida:   {},
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/kanban/view?usuario="+userID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string][]dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	require.Contains(t, got, "pendente")
	require.Contains(t, got, "em_andamento")
	require.Contains(t, got, "concluida")
	require.Len(t, got["pendente"], 2)
	require.Equal(t, 0, got["pendente"][0].Kanban.Posicao)
	require.Equal(t, 1, got["pendente"][1].Kanban.Posicao)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_KanbanView_RequiresUsuario(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/kanban/view", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "KanbanView", mock.Anything, mock.Anything)
}

func TestTaskHandler_MoveKanban_Success(t *testing.T) {
	taskID := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("MoveKanban", mock.Anything, taskID, domain.KanbanColumnConcluida, 2).Return(&domain.Task{
		ID:     taskID,
		Titulo: "Fechar relatório",
		Status: domain.TaskStatusConcluida,
		Kanban: domain.Kanban{Coluna: domain.KanbanColumnConcluida, Posicao: 2},
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	body := `{"coluna": "concluida", "posicao": 2}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID+"/kanban", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "concluida", got.Status)
	require.Equal(t, 2, got.Kanban.Posicao)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_MoveKanban_RejectsUnknownColumn(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	body := `{"coluna": "arquivada", "posicao": 0}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+uuid.New().String()+"/kanban", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "MoveKanban", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_PaginationEnvelope(t *testing.T) {
	usuario := uuid.New().String()

	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, mock.MatchedBy(func(filter domain.TaskFilter) bool {
		return filter.UserID != nil && *filter.UserID == usuario && filter.Page == 2 && filter.Limit == 10
	})).Return([]domain.Task{
		{ID: uuid.New().String(), Titulo: "Comprar milhas", Prioridade: domain.PriorityUrgente, Status: domain.TaskStatusPendente},
	}, int64(11), nil).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?usuario="+usuario+"&page=2&limit=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Tasks, 1)
	require.Equal(t, int64(11), got.Pagination.Total)
	require.Equal(t, 2, got.Pagination.Page)
	require.Equal(t, 10, got.Pagination.Limit)
	require.Equal(t, 2, got.Pagination.Pages)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListLateTasks_Success(t *testing.T) {
	usuario := uuid.New().String()
	ontem := time.Now().AddDate(0, 0, -1)

	serviceMock := new(taskServiceMock)
	serviceMock.On("ListAtrasadas", mock.Anything, usuario).Return([]domain.Task{
		{ID: uuid.New().String(), Titulo: "Emitir bilhete", Status: domain.TaskStatusPendente, DataVencimento: &ontem},
	}, nil).Once()

	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/late/list?usuario="+usuario, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskCollectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.Total)
	require.Len(t, got.Tasks, 1)
	require.True(t, got.Tasks[0].Atrasada)
	serviceMock.AssertExpectations(t)
}

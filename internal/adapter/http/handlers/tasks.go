package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/dto"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/mapper"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/middleware"
	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/validation"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/ports"
	"github.com/Adjalma/SS-Milhas-sub001/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type listTasksQuery struct {
	Usuario     *string `form:"usuario" binding:"omitempty,uuid"`
	Responsavel *string `form:"responsavel" binding:"omitempty,uuid"`
	Status      *string `form:"status" binding:"omitempty,oneof=pendente em_andamento concluida cancelada bloqueada"`
	Prioridade  *string `form:"prioridade" binding:"omitempty,oneof=baixa media alta urgente"`
	Categoria   *string `form:"categoria" binding:"omitempty,oneof=compras vendas transferencias passagens relatorios financeiro geral outra"`
	Page        int     `form:"page,default=1" binding:"gte=1"`
	Limit       int     `form:"limit,default=20" binding:"gte=1,lte=100"`
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	var query listTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	filter := domain.TaskFilter{
		UserID:      query.Usuario,
		Responsavel: query.Responsavel,
		Page:        query.Page,
		Limit:       query.Limit,
	}
	if query.Status != nil {
		status := domain.TaskStatus(*query.Status)
		filter.Status = &status
	}
	if query.Prioridade != nil {
		prioridade := domain.Priority(*query.Prioridade)
		filter.Prioridade = &prioridade
	}
	if query.Categoria != nil {
		categoria := domain.Category(*query.Categoria)
		filter.Categoria = &categoria
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang),
		)
		return
	}

	pages := 0
	if filter.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: mapper.ToTaskItems(tasks, time.Now()),
		Pagination: dto.Pagination{
			Total: total,
			Page:  filter.Page,
			Limit: filter.Limit,
			Pages: pages,
		},
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailGetTask, "failed to get task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}

		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailDeleteTask, "failed to delete task", taskID)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) StartTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.StartTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailStartTask, "failed to start task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) ConcludeTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.ConcludeTask(c.Request.Context(), taskID)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailConcludeTask, "failed to conclude task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) CancelTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	var req dto.CancelTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}
	}

	motivo := ""
	if req.Motivo != nil {
		motivo = *req.Motivo
	}

	task, err := h.taskService.CancelTask(c.Request.Context(), taskID, motivo)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailCancelTask, "failed to cancel task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.AddComment(c.Request.Context(), taskID, req.Usuario, req.Texto)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailAddComment, "failed to add comment", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) AddSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	var req dto.AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.AddSubtask(c.Request.Context(), taskID, req.Descricao)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailAddSubtask, "failed to add subtask", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) CompleteSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidSubtaskIndex, lang),
		)
		return
	}

	task, err := h.taskService.CompleteSubtask(c.Request.Context(), taskID, index)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailCompleteSubtask, "failed to complete subtask", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) KanbanView(c *gin.Context) {
	lang := middleware.GetLang(c)

	userID, ok := h.userID(c, lang)
	if !ok {
		return
	}

	board, err := h.taskService.KanbanView(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to load kanban board", zap.String("usuario", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailKanbanView, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToKanbanBoard(board, time.Now()))
}

func (h *TaskHandler) MoveKanban(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := h.taskID(c, lang)
	if !ok {
		return
	}

	var req dto.MoveKanbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.MoveKanban(c.Request.Context(), taskID, domain.KanbanColumn(req.Coluna), *req.Posicao)
	if err != nil {
		h.respondError(c, lang, err, apierrors.MsgFailMoveTask, "failed to move task", taskID)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, time.Now()))
}

func (h *TaskHandler) ListLateTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	userID, ok := h.userID(c, lang)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListAtrasadas(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to list late tasks", zap.String("usuario", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListLateTasks, lang),
		)
		return
	}

	items := mapper.ToTaskItems(tasks, time.Now())
	c.JSON(http.StatusOK, dto.TaskCollectionResponse{Tasks: items, Total: len(items)})
}

func (h *TaskHandler) ListUpcomingTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	userID, ok := h.userID(c, lang)
	if !ok {
		return
	}

	dias := 7
	if value := c.Query("dias"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}
		dias = parsed
	}

	tasks, err := h.taskService.ListVencendoEm(c.Request.Context(), dias, userID)
	if err != nil {
		zap.L().Error("failed to list upcoming tasks", zap.String("usuario", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListUpcoming, lang),
		)
		return
	}

	items := mapper.ToTaskItems(tasks, time.Now())
	c.JSON(http.StatusOK, dto.TaskCollectionResponse{Tasks: items, Total: len(items)})
}

func (h *TaskHandler) TaskStats(c *gin.Context) {
	lang := middleware.GetLang(c)

	userID, ok := h.userID(c, lang)
	if !ok {
		return
	}

	stats, err := h.taskService.Stats(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to compute task stats", zap.String("usuario", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStats(stats))
}

func (h *TaskHandler) taskID(c *gin.Context, lang string) (string, bool) {
	taskID := c.Param("id")
	if _, err := uuid.Parse(taskID); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return "", false
	}
	return taskID, true
}

func (h *TaskHandler) userID(c *gin.Context, lang string) (string, bool) {
	userID := c.Query("usuario")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return "", false
	}
	return userID, true
}

func (h *TaskHandler) respondError(c *gin.Context, lang string, err error, failKey, logMsg, taskID string) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return
	}

	zap.L().Error(logMsg, zap.String("task_id", taskID), zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
	)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrTituloRequired) ||
		errors.Is(err, domain.ErrResponsavelRequired) ||
		errors.Is(err, domain.ErrUsuarioRequired)
}

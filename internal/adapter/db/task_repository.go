package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/ports"
)

// priorityOrder sorts urgente first. FIELD returns the 1-based position of
// the value in the list.
const priorityOrder = "FIELD(prioridade, 'urgente', 'alta', 'media', 'baixa')"

const taskColumns = `
id, titulo, descricao, responsavel, usuario, account_id, categoria, tags,
prioridade, status, data_vencimento, data_inicio, data_conclusao, estimativa,
tempo_gasto, kanban_coluna, kanban_posicao, observacoes, recorrente,
recorrencia_tipo, recorrencia_intervalo, recorrencia_proxima_data,
vinculo_movimento, vinculo_transacao, vinculo_conta, created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :titulo, :descricao, :responsavel, :usuario, :account_id, :categoria, :tags,
        :prioridade, :status, :data_vencimento, :data_inicio, :data_conclusao, :estimativa,
        :tempo_gasto, :kanban_coluna, :kanban_posicao, :observacoes, :recorrente,
        :recorrencia_tipo, :recorrencia_intervalo, :recorrencia_proxima_data,
        :vinculo_movimento, :vinculo_transacao, :vinculo_conta, :created_at, :updated_at)`

const updateTaskQuery = `
UPDATE tasks SET
  titulo = :titulo,
  descricao = :descricao,
  responsavel = :responsavel,
  usuario = :usuario,
  account_id = :account_id,
  categoria = :categoria,
  tags = :tags,
  prioridade = :prioridade,
  status = :status,
  data_vencimento = :data_vencimento,
  data_inicio = :data_inicio,
  data_conclusao = :data_conclusao,
  estimativa = :estimativa,
  tempo_gasto = :tempo_gasto,
  kanban_coluna = :kanban_coluna,
  kanban_posicao = :kanban_posicao,
  observacoes = :observacoes,
  recorrente = :recorrente,
  recorrencia_tipo = :recorrencia_tipo,
  recorrencia_intervalo = :recorrencia_intervalo,
  recorrencia_proxima_data = :recorrencia_proxima_data,
  vinculo_movimento = :vinculo_movimento,
  vinculo_transacao = :vinculo_transacao,
  vinculo_conta = :vinculo_conta,
  updated_at = :updated_at
WHERE id = :id`

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID                     string         `db:"id"`
	Titulo                 string         `db:"titulo"`
	Descricao              sql.NullString `db:"descricao"`
	Responsavel            string         `db:"responsavel"`
	Usuario                string         `db:"usuario"`
	AccountID              sql.NullString `db:"account_id"`
	Categoria              string         `db:"categoria"`
	Tags                   StringList     `db:"tags"`
	Prioridade             string         `db:"prioridade"`
	Status                 string         `db:"status"`
	DataVencimento         sql.NullTime   `db:"data_vencimento"`
	DataInicio             sql.NullTime   `db:"data_inicio"`
	DataConclusao          sql.NullTime   `db:"data_conclusao"`
	Estimativa             sql.NullString `db:"estimativa"`
	TempoGasto             int            `db:"tempo_gasto"`
	KanbanColuna           string         `db:"kanban_coluna"`
	KanbanPosicao          int            `db:"kanban_posicao"`
	Observacoes            sql.NullString `db:"observacoes"`
	Recorrente             bool           `db:"recorrente"`
	RecorrenciaTipo        sql.NullString `db:"recorrencia_tipo"`
	RecorrenciaIntervalo   sql.NullInt64  `db:"recorrencia_intervalo"`
	RecorrenciaProximaData sql.NullTime   `db:"recorrencia_proxima_data"`
	VinculoMovimento       sql.NullString `db:"vinculo_movimento"`
	VinculoTransacao       sql.NullString `db:"vinculo_transacao"`
	VinculoConta           sql.NullString `db:"vinculo_conta"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

type subtaskRow struct {
	ID            string       `db:"id"`
	TaskID        string       `db:"task_id"`
	Posicao       int          `db:"posicao"`
	Descricao     string       `db:"descricao"`
	Concluida     bool         `db:"concluida"`
	DataConclusao sql.NullTime `db:"data_conclusao"`
}

type attachmentRow struct {
	ID         string    `db:"id"`
	TaskID     string    `db:"task_id"`
	Posicao    int       `db:"posicao"`
	Nome       string    `db:"nome"`
	URL        string    `db:"url"`
	Tipo       string    `db:"tipo"`
	Tamanho    int64     `db:"tamanho"`
	DataUpload time.Time `db:"data_upload"`
}

type commentRow struct {
	ID      string    `db:"id"`
	TaskID  string    `db:"task_id"`
	Posicao int       `db:"posicao"`
	Usuario string    `db:"usuario"`
	Texto   string    `db:"texto"`
	Data    time.Time `db:"data"`
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, insertTaskQuery, mapTaskToRow(task)); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task := mapRowToTask(row)
	if err := r.attachChildren(ctx, []*domain.Task{&task}); err != nil {
		return nil, err
	}
	return &task, nil
}

// Save rewrites the whole record: the task row plus its child lists. Child
// rows are replaced wholesale, which gives last-write-wins semantics on
// concurrent saves of the same task.
func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.NamedExecContext(ctx, updateTaskQuery, mapTaskToRow(task))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The update may have matched a row without changing it; only treat
		// a genuinely missing task as not found.
		var exists int
		if err := tx.GetContext(ctx, &exists, "SELECT COUNT(*) FROM tasks WHERE id = ?", task.ID); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrTaskNotFound
		}
	}

	for _, table := range []string{"task_subtarefas", "task_anexos", "task_comentarios"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE task_id = ?", task.ID); err != nil {
			return err
		}
	}
	if err := insertChildren(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if filter.UserID != nil {
		where = append(where, "(usuario = ? OR responsavel = ?)")
		args = append(args, *filter.UserID, *filter.UserID)
	} else if filter.Responsavel != nil {
		where = append(where, "responsavel = ?")
		args = append(args, *filter.Responsavel)
	}
	if filter.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Prioridade != nil {
		where = append(where, "prioridade = ?")
		args = append(args, string(*filter.Prioridade))
	}
	if filter.Categoria != nil {
		where = append(where, "categoria = ?")
		args = append(args, string(*filter.Categoria))
	}

	condition := strings.Join(where, " AND ")

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tasks WHERE "+condition, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s, data_vencimento ASC LIMIT ? OFFSET ?",
		taskColumns, condition, priorityOrder,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	tasks, err := r.selectTasks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) ListByResponsavel(ctx context.Context, responsavelID string, status *domain.TaskStatus) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE responsavel = ?"
	args := []interface{}{responsavelID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY " + priorityOrder + ", data_vencimento ASC"

	return r.selectTasks(ctx, query, args...)
}

func (r *TaskRepository) ListByStatus(ctx context.Context, status domain.TaskStatus, userID string) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + ` FROM tasks
WHERE (usuario = ? OR responsavel = ?) AND status = ?
ORDER BY ` + priorityOrder + ", created_at DESC"

	return r.selectTasks(ctx, query, userID, userID, string(status))
}

func (r *TaskRepository) ListAtrasadas(ctx context.Context, userID string, now time.Time) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + ` FROM tasks
WHERE (usuario = ? OR responsavel = ?)
  AND status NOT IN ('concluida', 'cancelada')
  AND data_vencimento < ?
ORDER BY data_vencimento ASC`

	return r.selectTasks(ctx, query, userID, userID, now)
}

func (r *TaskRepository) ListVencendoEntre(ctx context.Context, userID string, from, until time.Time) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + ` FROM tasks
WHERE (usuario = ? OR responsavel = ?)
  AND status NOT IN ('concluida', 'cancelada')
  AND data_vencimento >= ? AND data_vencimento <= ?
ORDER BY data_vencimento ASC`

	return r.selectTasks(ctx, query, userID, userID, from, until)
}

func (r *TaskRepository) ListKanbanColumn(ctx context.Context, userID string, coluna domain.KanbanColumn) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + ` FROM tasks
WHERE (usuario = ? OR responsavel = ?) AND kanban_coluna = ?
ORDER BY kanban_posicao ASC, created_at DESC`

	return r.selectTasks(ctx, query, userID, userID, string(coluna))
}

func (r *TaskRepository) NextKanbanPosition(ctx context.Context, coluna domain.KanbanColumn) (int, error) {
	var posicao int
	query := "SELECT COALESCE(MAX(kanban_posicao) + 1, 0) FROM tasks WHERE kanban_coluna = ?"
	if err := r.db.GetContext(ctx, &posicao, query, string(coluna)); err != nil {
		return 0, err
	}
	return posicao, nil
}

func (r *TaskRepository) Stats(ctx context.Context, userID string, now time.Time) (*domain.TaskStats, error) {
	stats := &domain.TaskStats{
		PorPrioridade: map[domain.Priority]int64{},
		PorCategoria:  map[domain.Category]int64{},
	}

	type statusCount struct {
		Status string `db:"status"`
		Total  int64  `db:"total"`
	}
	var byStatus []statusCount
	err := r.db.SelectContext(ctx, &byStatus, `
SELECT status, COUNT(*) AS total FROM tasks
WHERE usuario = ? OR responsavel = ?
GROUP BY status`, userID, userID)
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.Total += row.Total
		switch domain.TaskStatus(row.Status) {
		case domain.TaskStatusPendente:
			stats.Pendentes = row.Total
		case domain.TaskStatusEmAndamento:
			stats.EmAndamento = row.Total
		case domain.TaskStatusConcluida:
			stats.Concluidas = row.Total
		}
	}
	// Canceladas is the residual so the buckets always sum to Total;
	// bloqueada rows land here as well.
	stats.Canceladas = stats.Total - stats.Pendentes - stats.EmAndamento - stats.Concluidas

	err = r.db.GetContext(ctx, &stats.Atrasadas, `
SELECT COUNT(*) FROM tasks
WHERE (usuario = ? OR responsavel = ?)
  AND status NOT IN ('concluida', 'cancelada')
  AND data_vencimento < ?`, userID, userID, now)
	if err != nil {
		return nil, err
	}

	type priorityCount struct {
		Prioridade string `db:"prioridade"`
		Total      int64  `db:"total"`
	}
	var byPriority []priorityCount
	err = r.db.SelectContext(ctx, &byPriority, `
SELECT prioridade, COUNT(*) AS total FROM tasks
WHERE usuario = ? OR responsavel = ?
GROUP BY prioridade`, userID, userID)
	if err != nil {
		return nil, err
	}
	for _, row := range byPriority {
		stats.PorPrioridade[domain.Priority(row.Prioridade)] = row.Total
	}

	type categoryCount struct {
		Categoria string `db:"categoria"`
		Total     int64  `db:"total"`
	}
	var byCategory []categoryCount
	err = r.db.SelectContext(ctx, &byCategory, `
SELECT categoria, COUNT(*) AS total FROM tasks
WHERE usuario = ? OR responsavel = ?
GROUP BY categoria`, userID, userID)
	if err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		stats.PorCategoria[domain.Category(row.Categoria)] = row.Total
	}

	return stats, nil
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...interface{}) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	refs := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapRowToTask(row))
		refs = append(refs, &tasks[len(tasks)-1])
	}

	if err := r.attachChildren(ctx, refs); err != nil {
		return nil, err
	}
	return tasks, nil
}

// attachChildren loads subtasks, attachments and comments for the given tasks
// with one IN query per child table.
func (r *TaskRepository) attachChildren(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, 0, len(tasks))
	byID := make(map[string]*domain.Task, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
		byID[task.ID] = task
	}

	query, args, err := sqlx.In(`
SELECT id, task_id, posicao, descricao, concluida, data_conclusao
FROM task_subtarefas WHERE task_id IN (?) ORDER BY task_id, posicao`, ids)
	if err != nil {
		return err
	}
	var subtasks []subtaskRow
	if err := r.db.SelectContext(ctx, &subtasks, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range subtasks {
		task := byID[row.TaskID]
		task.Subtarefas = append(task.Subtarefas, domain.Subtask{
			Descricao:     row.Descricao,
			Concluida:     row.Concluida,
			DataConclusao: nullTimePtr(row.DataConclusao),
		})
	}

	query, args, err = sqlx.In(`
SELECT id, task_id, posicao, nome, url, tipo, tamanho, data_upload
FROM task_anexos WHERE task_id IN (?) ORDER BY task_id, posicao`, ids)
	if err != nil {
		return err
	}
	var attachments []attachmentRow
	if err := r.db.SelectContext(ctx, &attachments, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range attachments {
		task := byID[row.TaskID]
		task.Anexos = append(task.Anexos, domain.Attachment{
			Nome:       row.Nome,
			URL:        row.URL,
			Tipo:       row.Tipo,
			Tamanho:    row.Tamanho,
			DataUpload: row.DataUpload,
		})
	}

	query, args, err = sqlx.In(`
SELECT id, task_id, posicao, usuario, texto, data
FROM task_comentarios WHERE task_id IN (?) ORDER BY task_id, posicao`, ids)
	if err != nil {
		return err
	}
	var comments []commentRow
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range comments {
		task := byID[row.TaskID]
		task.Comentarios = append(task.Comentarios, domain.Comment{
			Usuario: row.Usuario,
			Texto:   row.Texto,
			Data:    row.Data,
		})
	}

	return nil
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, task *domain.Task) error {
	for i, subtask := range task.Subtarefas {
		_, err := tx.ExecContext(ctx, `
INSERT INTO task_subtarefas (id, task_id, posicao, descricao, concluida, data_conclusao)
VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), task.ID, i, subtask.Descricao, subtask.Concluida, subtask.DataConclusao)
		if err != nil {
			return err
		}
	}

	for i, anexo := range task.Anexos {
		_, err := tx.ExecContext(ctx, `
INSERT INTO task_anexos (id, task_id, posicao, nome, url, tipo, tamanho, data_upload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), task.ID, i, anexo.Nome, anexo.URL, anexo.Tipo, anexo.Tamanho, anexo.DataUpload)
		if err != nil {
			return err
		}
	}

	for i, comentario := range task.Comentarios {
		_, err := tx.ExecContext(ctx, `
INSERT INTO task_comentarios (id, task_id, posicao, usuario, texto, data)
VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), task.ID, i, comentario.Usuario, comentario.Texto, comentario.Data)
		if err != nil {
			return err
		}
	}

	return nil
}

func mapTaskToRow(task *domain.Task) taskRow {
	row := taskRow{
		ID:               task.ID,
		Titulo:           task.Titulo,
		Descricao:        nullString(task.Descricao),
		Responsavel:      task.Responsavel,
		Usuario:          task.Usuario,
		AccountID:        nullString(task.AccountID),
		Categoria:        string(task.Categoria),
		Tags:             StringList(task.Tags),
		Prioridade:       string(task.Prioridade),
		Status:           string(task.Status),
		DataVencimento:   nullTime(task.DataVencimento),
		DataInicio:       nullTime(task.DataInicio),
		DataConclusao:    nullTime(task.DataConclusao),
		Estimativa:       nullString(task.Estimativa),
		TempoGasto:       task.TempoGasto,
		KanbanColuna:     string(task.Kanban.Coluna),
		KanbanPosicao:    task.Kanban.Posicao,
		Observacoes:      nullString(task.Observacoes),
		Recorrente:       task.Recorrente,
		VinculoMovimento: nullString(task.VinculoMovimento),
		VinculoTransacao: nullString(task.VinculoTransacao),
		VinculoConta:     nullString(task.VinculoConta),
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	if task.Recorrencia != nil {
		row.RecorrenciaTipo = sql.NullString{String: string(task.Recorrencia.Tipo), Valid: true}
		row.RecorrenciaIntervalo = sql.NullInt64{Int64: int64(task.Recorrencia.Intervalo), Valid: true}
		row.RecorrenciaProximaData = nullTime(task.Recorrencia.ProximaData)
	}

	return row
}

func mapRowToTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:             row.ID,
		Titulo:         row.Titulo,
		Descricao:      nullStringPtr(row.Descricao),
		Responsavel:    row.Responsavel,
		Usuario:        row.Usuario,
		AccountID:      nullStringPtr(row.AccountID),
		Categoria:      domain.Category(row.Categoria),
		Tags:           row.Tags,
		Prioridade:     domain.Priority(row.Prioridade),
		Status:         domain.TaskStatus(row.Status),
		DataVencimento: nullTimePtr(row.DataVencimento),
		DataInicio:     nullTimePtr(row.DataInicio),
		DataConclusao:  nullTimePtr(row.DataConclusao),
		Estimativa:     nullStringPtr(row.Estimativa),
		TempoGasto:     row.TempoGasto,
		Kanban: domain.Kanban{
			Coluna:  domain.KanbanColumn(row.KanbanColuna),
			Posicao: row.KanbanPosicao,
		},
		Observacoes:      nullStringPtr(row.Observacoes),
		Recorrente:       row.Recorrente,
		VinculoMovimento: nullStringPtr(row.VinculoMovimento),
		VinculoTransacao: nullStringPtr(row.VinculoTransacao),
		VinculoConta:     nullStringPtr(row.VinculoConta),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}

	if row.RecorrenciaTipo.Valid {
		task.Recorrencia = &domain.Recurrence{
			Tipo:        domain.RecurrenceType(row.RecorrenciaTipo.String),
			Intervalo:   int(row.RecorrenciaIntervalo.Int64),
			ProximaData: nullTimePtr(row.RecorrenciaProximaData),
		}
	}

	return task
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	result := value.String
	return &result
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	result := value.Time
	return &result
}

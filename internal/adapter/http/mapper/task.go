package mapper

import (
	"time"

	"github.com/Adjalma/SS-Milhas-sub001/internal/adapter/http/dto"
	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for i := range tasks {
		items = append(items, ToTaskItem(&tasks[i], now))
	}
	return items
}

func ToTaskItem(task *domain.Task, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Titulo:      task.Titulo,
		Descricao:   copyStringPtr(task.Descricao),
		Responsavel: task.Responsavel,
		Usuario:     task.Usuario,
		AccountID:   copyStringPtr(task.AccountID),
		Categoria:   string(task.Categoria),
		Tags:        task.Tags,
		Prioridade:  string(task.Prioridade),
		Status:      string(task.Status),
		Estimativa:  copyStringPtr(task.Estimativa),
		TempoGasto:  task.TempoGasto,
		Kanban: dto.KanbanItem{
			Coluna:  string(task.Kanban.Coluna),
			Posicao: task.Kanban.Posicao,
		},
		Observacoes:         copyStringPtr(task.Observacoes),
		Recorrente:          task.Recorrente,
		VinculoMovimento:    copyStringPtr(task.VinculoMovimento),
		VinculoTransacao:    copyStringPtr(task.VinculoTransacao),
		VinculoConta:        copyStringPtr(task.VinculoConta),
		Atrasada:            task.Atrasada(now),
		ProgressoSubtarefas: task.ProgressoSubtarefas(),
		DiasRestantes:       task.DiasRestantes(now),
		CreatedAt:           task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           task.UpdatedAt.Format(time.RFC3339),
	}

	item.DataVencimento = formatTimePtr(task.DataVencimento)
	item.DataInicio = formatTimePtr(task.DataInicio)
	item.DataConclusao = formatTimePtr(task.DataConclusao)

	for _, subtask := range task.Subtarefas {
		item.Subtarefas = append(item.Subtarefas, dto.SubtaskItem{
			Descricao:     subtask.Descricao,
			Concluida:     subtask.Concluida,
			DataConclusao: formatTimePtr(subtask.DataConclusao),
		})
	}

	for _, anexo := range task.Anexos {
		item.Anexos = append(item.Anexos, dto.AttachmentItem{
			Nome:       anexo.Nome,
			URL:        anexo.URL,
			Tipo:       anexo.Tipo,
			Tamanho:    anexo.Tamanho,
			DataUpload: anexo.DataUpload.Format(time.RFC3339),
		})
	}

	for _, comentario := range task.Comentarios {
		item.Comentarios = append(item.Comentarios, dto.CommentItem{
			Usuario: comentario.Usuario,
			Texto:   comentario.Texto,
			Data:    comentario.Data.Format(time.RFC3339),
		})
	}

	if task.Recorrencia != nil {
		item.Recorrencia = &dto.RecurrenceItem{
			Tipo:        string(task.Recorrencia.Tipo),
			Intervalo:   task.Recorrencia.Intervalo,
			ProximaData: formatTimePtr(task.Recorrencia.ProximaData),
		}
	}

	return item
}

func ToKanbanBoard(board domain.KanbanBoard, now time.Time) map[string][]dto.TaskItem {
	result := make(map[string][]dto.TaskItem, len(board))
	for coluna, tasks := range board {
		result[string(coluna)] = ToTaskItems(tasks, now)
	}
	return result
}

func ToTaskStats(stats *domain.TaskStats) dto.TaskStatsResponse {
	response := dto.TaskStatsResponse{
		Total:         stats.Total,
		Pendentes:     stats.Pendentes,
		EmAndamento:   stats.EmAndamento,
		Concluidas:    stats.Concluidas,
		Canceladas:    stats.Canceladas,
		Atrasadas:     stats.Atrasadas,
		PorPrioridade: make(map[string]int64, len(stats.PorPrioridade)),
		PorCategoria:  make(map[string]int64, len(stats.PorCategoria)),
	}
	for prioridade, total := range stats.PorPrioridade {
		response.PorPrioridade[string(prioridade)] = total
	}
	for categoria, total := range stats.PorCategoria {
		response.PorCategoria[string(categoria)] = total
	}
	return response
}

func copyStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	result := *value
	return &result
}

func formatTimePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	result := value.Format(time.RFC3339)
	return &result
}

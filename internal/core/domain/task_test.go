package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adjalma/SS-Milhas-sub001/internal/core/domain"
)

func TestTask_ProgressoSubtarefas(t *testing.T) {
	tests := []struct {
		name       string
		subtarefas []domain.Subtask
		want       int
	}{
		{
			name:       "empty checklist counts as complete",
			subtarefas: nil,
			want:       100,
		},
		{
			name: "no subtask done",
			subtarefas: []domain.Subtask{
				{Descricao: "Revisar contrato"},
				{Descricao: "Emitir bilhete"},
			},
			want: 0,
		},
		{
			name: "one of three done rounds to nearest integer",
			subtarefas: []domain.Subtask{
				{Descricao: "Conferir saldo", Concluida: true},
				{Descricao: "Transferir pontos"},
				{Descricao: "Confirmar bonificação"},
			},
			want: 33,
		},
		{
			name: "two of three done rounds up",
			subtarefas: []domain.Subtask{
				{Descricao: "Conferir saldo", Concluida: true},
				{Descricao: "Transferir pontos", Concluida: true},
				{Descricao: "Confirmar bonificação"},
			},
			want: 67,
		},
		{
			name: "all done",
			subtarefas: []domain.Subtask{
				{Descricao: "Conferir saldo", Concluida: true},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{Subtarefas: tt.subtarefas}
			require.Equal(t, tt.want, task.ProgressoSubtarefas())
		})
	}
}

func TestTask_DiasRestantes(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("nil without due date", func(t *testing.T) {
		task := domain.Task{Status: domain.TaskStatusPendente}
		require.Nil(t, task.DiasRestantes(now))
	})

	t.Run("nil when concluded", func(t *testing.T) {
		vencimento := now.AddDate(0, 0, 5)
		task := domain.Task{Status: domain.TaskStatusConcluida, DataVencimento: &vencimento}
		require.Nil(t, task.DiasRestantes(now))
	})

	t.Run("nil when cancelled", func(t *testing.T) {
		vencimento := now.AddDate(0, 0, 5)
		task := domain.Task{Status: domain.TaskStatusCancelada, DataVencimento: &vencimento}
		require.Nil(t, task.DiasRestantes(now))
	})

	t.Run("ceiling of partial days", func(t *testing.T) {
		vencimento := now.Add(36 * time.Hour)
		task := domain.Task{Status: domain.TaskStatusPendente, DataVencimento: &vencimento}
		dias := task.DiasRestantes(now)
		require.NotNil(t, dias)
		require.Equal(t, 2, *dias)
	})

	t.Run("negative when overdue", func(t *testing.T) {
		vencimento := now.Add(-48 * time.Hour)
		task := domain.Task{Status: domain.TaskStatusEmAndamento, DataVencimento: &vencimento}
		dias := task.DiasRestantes(now)
		require.NotNil(t, dias)
		require.Equal(t, -2, *dias)
	})
}

func TestTask_Atrasada(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ontem := now.AddDate(0, 0, -1)
	amanha := now.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		status domain.TaskStatus
		due    *time.Time
		want   bool
	}{
		{"pendente past due", domain.TaskStatusPendente, &ontem, true},
		{"em_andamento past due", domain.TaskStatusEmAndamento, &ontem, true},
		{"bloqueada past due", domain.TaskStatusBloqueada, &ontem, true},
		{"concluida past due is not late", domain.TaskStatusConcluida, &ontem, false},
		{"cancelada past due is not late", domain.TaskStatusCancelada, &ontem, false},
		{"pendente future due", domain.TaskStatusPendente, &amanha, false},
		{"pendente without due date", domain.TaskStatusPendente, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := domain.Task{Status: tt.status, DataVencimento: tt.due}
			require.Equal(t, tt.want, task.Atrasada(now))
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	require.Greater(t, domain.PriorityUrgente.Rank(), domain.PriorityAlta.Rank())
	require.Greater(t, domain.PriorityAlta.Rank(), domain.PriorityMedia.Rank())
	require.Greater(t, domain.PriorityMedia.Rank(), domain.PriorityBaixa.Rank())
	require.Zero(t, domain.Priority("desconhecida").Rank())
}

func TestKanbanColumns(t *testing.T) {
	require.Equal(t, []domain.KanbanColumn{
		domain.KanbanColumnPendente,
		domain.KanbanColumnEmAndamento,
		domain.KanbanColumnConcluida,
	}, domain.KanbanColumns())
}

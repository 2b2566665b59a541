package dto

type KanbanItem struct {
	Coluna  string `json:"coluna"`
	Posicao int    `json:"posicao"`
}

type SubtaskItem struct {
	Descricao     string  `json:"descricao"`
	Concluida     bool    `json:"concluida"`
	DataConclusao *string `json:"dataConclusao,omitempty"`
}

type AttachmentItem struct {
	Nome       string `json:"nome"`
	URL        string `json:"url"`
	Tipo       string `json:"tipo"`
	Tamanho    int64  `json:"tamanho"`
	DataUpload string `json:"dataUpload"`
}

type CommentItem struct {
	Usuario string `json:"usuario"`
	Texto   string `json:"texto"`
	Data    string `json:"data"`
}

type RecurrenceItem struct {
	Tipo        string  `json:"tipo"`
	Intervalo   int     `json:"intervalo"`
	ProximaData *string `json:"proximaData,omitempty"`
}

type TaskItem struct {
	ID                  string           `json:"id"`
	Titulo              string           `json:"titulo"`
	Descricao           *string          `json:"descricao,omitempty"`
	Responsavel         string           `json:"responsavel"`
	Usuario             string           `json:"usuario"`
	AccountID           *string          `json:"accountId,omitempty"`
	Categoria           string           `json:"categoria"`
	Tags                []string         `json:"tags,omitempty"`
	Prioridade          string           `json:"prioridade"`
	Status              string           `json:"status"`
	DataVencimento      *string          `json:"dataVencimento,omitempty"`
	DataInicio          *string          `json:"dataInicio,omitempty"`
	DataConclusao       *string          `json:"dataConclusao,omitempty"`
	Estimativa          *string          `json:"estimativa,omitempty"`
	TempoGasto          int              `json:"tempoGasto"`
	Kanban              KanbanItem       `json:"kanban"`
	Subtarefas          []SubtaskItem    `json:"subtarefas,omitempty"`
	Anexos              []AttachmentItem `json:"anexos,omitempty"`
	Comentarios         []CommentItem    `json:"comentarios,omitempty"`
	Observacoes         *string          `json:"observacoes,omitempty"`
	Recorrente          bool             `json:"recorrente"`
	Recorrencia         *RecurrenceItem  `json:"recorrencia,omitempty"`
	VinculoMovimento    *string          `json:"vinculoMovimento,omitempty"`
	VinculoTransacao    *string          `json:"vinculoTransacao,omitempty"`
	VinculoConta        *string          `json:"vinculoConta,omitempty"`
	Atrasada            bool             `json:"atrasada"`
	ProgressoSubtarefas int              `json:"progressoSubtarefas"`
	DiasRestantes       *int             `json:"diasRestantes"`
	CreatedAt           string           `json:"createdAt"`
	UpdatedAt           string           `json:"updatedAt"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type TaskListResponse struct {
	Tasks      []TaskItem `json:"tasks"`
	Pagination Pagination `json:"pagination"`
}

type TaskCollectionResponse struct {
	Tasks []TaskItem `json:"tasks"`
	Total int        `json:"total"`
}

type TaskStatsResponse struct {
	Total         int64            `json:"total"`
	Pendentes     int64            `json:"pendentes"`
	EmAndamento   int64            `json:"emAndamento"`
	Concluidas    int64            `json:"concluidas"`
	Canceladas    int64            `json:"canceladas"`
	Atrasadas     int64            `json:"atrasadas"`
	PorPrioridade map[string]int64 `json:"porPrioridade"`
	PorCategoria  map[string]int64 `json:"porCategoria"`
}

type RecurrenceRequest struct {
	Tipo        string  `json:"tipo" binding:"required,oneof=diaria semanal mensal"`
	Intervalo   int     `json:"intervalo" binding:"omitempty,gte=1"`
	ProximaData *string `json:"proximaData" binding:"omitempty"`
}

type CreateTaskRequest struct {
	Titulo           string             `json:"titulo" binding:"required,max=255"`
	Descricao        *string            `json:"descricao" binding:"omitempty,max=65535"`
	Responsavel      string             `json:"responsavel" binding:"required,uuid"`
	Usuario          string             `json:"usuario" binding:"required,uuid"`
	AccountID        *string            `json:"accountId" binding:"omitempty,uuid"`
	Categoria        *string            `json:"categoria" binding:"omitempty,oneof=compras vendas transferencias passagens relatorios financeiro geral outra"`
	Tags             []string           `json:"tags" binding:"omitempty,dive,max=64"`
	Prioridade       *string            `json:"prioridade" binding:"omitempty,oneof=baixa media alta urgente"`
	DataVencimento   *string            `json:"dataVencimento" binding:"omitempty"`
	Estimativa       *string            `json:"estimativa" binding:"omitempty,max=32"`
	Observacoes      *string            `json:"observacoes" binding:"omitempty,max=65535"`
	Recorrente       bool               `json:"recorrente"`
	Recorrencia      *RecurrenceRequest `json:"recorrencia" binding:"omitempty"`
	VinculoMovimento *string            `json:"vinculoMovimento" binding:"omitempty,uuid"`
	VinculoTransacao *string            `json:"vinculoTransacao" binding:"omitempty,uuid"`
	VinculoConta     *string            `json:"vinculoConta" binding:"omitempty,uuid"`
}

type UpdateTaskRequest struct {
	Titulo         *string  `json:"titulo" binding:"omitempty,max=255"`
	Descricao      *string  `json:"descricao" binding:"omitempty,max=65535"`
	Prioridade     *string  `json:"prioridade" binding:"omitempty,oneof=baixa media alta urgente"`
	Categoria      *string  `json:"categoria" binding:"omitempty,oneof=compras vendas transferencias passagens relatorios financeiro geral outra"`
	Tags           []string `json:"tags" binding:"omitempty,dive,max=64"`
	DataVencimento *string  `json:"dataVencimento" binding:"omitempty"`
	Estimativa     *string  `json:"estimativa" binding:"omitempty,max=32"`
	TempoGasto     *int     `json:"tempoGasto" binding:"omitempty,gte=0"`
	Observacoes    *string  `json:"observacoes" binding:"omitempty,max=65535"`
}

type CancelTaskRequest struct {
	Motivo *string `json:"motivo" binding:"omitempty,max=65535"`
}

type AddCommentRequest struct {
	Usuario string `json:"usuario" binding:"required,uuid"`
	Texto   string `json:"texto" binding:"required"`
}

type AddSubtaskRequest struct {
	Descricao string `json:"descricao" binding:"required"`
}

type MoveKanbanRequest struct {
	Coluna  string `json:"coluna" binding:"required,oneof=pendente em_andamento concluida"`
	Posicao *int   `json:"posicao" binding:"required,gte=0"`
}

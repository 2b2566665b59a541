package apierrors

const (
	MsgInvalidTaskID       = "invalidTaskID"
	MsgInvalidTaskPayload  = "invalidTaskPayload"
	MsgInvalidSubtaskIndex = "invalidSubtaskIndex"
	MsgTaskNotFound        = "taskNotFound"
	MsgFailListTasks       = "failListTasks"
	MsgFailGetTask         = "failGetTask"
	MsgFailCreateTask      = "failCreateTask"
	MsgFailUpdateTask      = "failUpdateTask"
	MsgFailDeleteTask      = "failDeleteTask"
	MsgFailStartTask       = "failStartTask"
	MsgFailConcludeTask    = "failConcludeTask"
	MsgFailCancelTask      = "failCancelTask"
	MsgFailAddComment      = "failAddComment"
	MsgFailAddSubtask      = "failAddSubtask"
	MsgFailCompleteSubtask = "failCompleteSubtask"
	MsgFailKanbanView      = "failKanbanView"
	MsgFailMoveTask        = "failMoveTask"
	MsgFailListLateTasks   = "failListLateTasks"
	MsgFailListUpcoming    = "failListUpcomingTasks"
	MsgFailTaskStats       = "failTaskStats"
)

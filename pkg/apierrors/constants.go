package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidUserID      = "invalidUserID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidUserPayload = "invalidUserPayload"
	MsgInvalidQuery       = "invalidQuery"
	MsgInvalidSortField   = "invalidSortField"
	MsgUnknownField       = "unknownField"
	MsgEmptyPatch         = "emptyPatch"
	MsgAssigneeNotFound   = "assigneeNotFound"
	MsgTaskNotFound       = "taskNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgRouteNotFound      = "routeNotFound"
	MsgTaskModified       = "taskModified"
	MsgUserConflict       = "userConflict"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailListUser       = "failListUser"
	MsgFailGetUser        = "failGetUser"
	MsgFailCreateUser     = "failCreateUser"
	MsgFailUpdateUser     = "failUpdateUser"
	MsgFailDeleteUser     = "failDeleteUser"
	MsgUserDeleted        = "userDeleted"
)

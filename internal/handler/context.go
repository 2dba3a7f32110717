package handler

type ContextKey string

var (
	ClaimsCtxKey   ContextKey = "claims"
	EmployeeCtx    ContextKey = "employee"
	TaskCtx        ContextKey = "task"
	AppointmentCtx ContextKey = "appointment"
)

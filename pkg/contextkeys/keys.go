package contextkeys

type contextKey string

const (
	EmployeeIDKey contextKey = "EmployeeID"
	IsAdminKey    contextKey = "IsAdmin"
	RequestIDKey  contextKey = "RequestID"
)

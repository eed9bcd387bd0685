package events

const (
	EmployeeCreatedEventName  = "employee.created"
	EmployeeUpdatedEventName  = "employee.updated"
	EmployeeRecycledEventName = "employee.recycled"
	EmployeeRestoredEventName = "employee.restored"
	EmployeeDeletedEventName  = "employee.deleted"
	EmployeesImportedName     = "employee.imported"
)

// EmployeeLifecycleEvent is published after a lifecycle transaction commits.
type EmployeeLifecycleEvent struct {
	Action string
	IDs    []uint64
}

func (e EmployeeLifecycleEvent) Name() string {
	return e.Action
}

func NewEmployeeEvent(action string, ids ...uint64) EmployeeLifecycleEvent {
	return EmployeeLifecycleEvent{Action: action, IDs: ids}
}

// AllEmployeeEventNames is used by listeners that react to every lifecycle change.
var AllEmployeeEventNames = []string{
	EmployeeCreatedEventName,
	EmployeeUpdatedEventName,
	EmployeeRecycledEventName,
	EmployeeRestoredEventName,
	EmployeeDeletedEventName,
	EmployeesImportedName,
}

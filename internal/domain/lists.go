package domain

const (
	ListRequests  = "requests"
	ListLogs      = "logs"
	ListBlueprint = "blueprint"
)

// Lists is the fixed set of observable lists, in a stable order.
var Lists = []string{ListRequests, ListLogs, ListBlueprint}

func IsValidList(name string) bool {
	switch name {
	case ListRequests, ListLogs, ListBlueprint:
		return true
	default:
		return false
	}
}

func ChangeEvent(list string) string {
	return "change:" + list
}

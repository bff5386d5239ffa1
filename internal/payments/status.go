package payments

type Status string

const (
	StatusCreated Status = "CREATED"
	StatusPaid    Status = "PAID"
)

// PAID -> PAID is allowed: replayed callbacks are not deduplicated.
var validNext = map[Status]map[Status]bool{
	"":            {StatusCreated: true, StatusPaid: true},
	StatusCreated: {StatusPaid: true},
	StatusPaid:    {StatusPaid: true},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

package transaction

import (
	"strings"

	"github.com/smallbiznis/storefront/internal/lineitem/domain"
)

// transitionStatus maps the last process transition to a receipt status,
// matched by substring in order.
var transitionStatus = []struct {
	match  string
	status domain.TransactionStatus
}{
	// expire-review-period and its per-party variants close a finished
	// transaction, so they must win over the generic expire match.
	{"review-period", domain.StatusCompleted},
	{"decline", domain.StatusDeclined},
	{"expire", domain.StatusDeclined},
	{"cancel", domain.StatusCanceled},
	{"refund", domain.StatusCanceled},
	{"review", domain.StatusCompleted},
	{"complete", domain.StatusCompleted},
	{"receive", domain.StatusReceived},
	{"deliver", domain.StatusReceived},
	{"accept", domain.StatusAccepted},
}

func status(explicit, lastTransition string) domain.TransactionStatus {
	switch s := domain.TransactionStatus(strings.ToLower(strings.TrimSpace(explicit))); s {
	case domain.StatusPending, domain.StatusAccepted, domain.StatusReceived,
		domain.StatusCompleted, domain.StatusCanceled, domain.StatusDeclined:
		return s
	}

	transition := strings.ToLower(strings.TrimSpace(lastTransition))
	for _, t := range transitionStatus {
		if strings.Contains(transition, t.match) {
			return t.status
		}
	}
	return domain.StatusPending
}

package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// Имена ограничений из migrations/001_init.sql
const (
	staffStartConstraint = "reservations_staff_start_uniq"
	roomStartConstraint  = "reservations_room_start_uniq"
	codeConstraint       = "reservations_code_key"
)

// classifyInsertError превращает нарушения уникальности в доменные ошибки
// Прочие ошибки остаются общими ошибками выполнения запроса
func classifyInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case staffStartConstraint, roomStartConstraint:
			return fmt.Errorf("%w: %s", ErrSlotTaken, pqErr.Constraint)
		case codeConstraint:
			return ErrDuplicateCode
		}
	}
	return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
}

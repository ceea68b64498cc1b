package create_reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// generateCode формирует код бронирования вида COT-20250310-K7QX
// Дата берется в часовом поясе салона
func generateCode(start time.Time, loc *time.Location) (string, error) {
	alphabet := domain.ReservationCodeAlphabet
	size := big.NewInt(int64(len(alphabet)))

	suffix := make([]byte, domain.ReservationCodeRandomLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate reservation code: %w", err)
		}
		suffix[i] = alphabet[n.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s",
		domain.ReservationCodePrefix, start.In(loc).Format(domain.CodeDateFormat), suffix), nil
}

package invoiceno

import (
	"fmt"
	"math/rand"
	"time"
)

// Generate produces an invoice number of the form inv-DDMMYY#### where #### is
// a random number in [1000,9999]. Numbers are not guaranteed unique; callers
// inserting them must treat a unique-constraint violation as retriable.
func Generate() string {
	return generateAt(time.Now())
}

func generateAt(now time.Time) string {
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("inv-%02d%02d%02d%d", now.Day(), int(now.Month()), now.Year()%100, suffix)
}

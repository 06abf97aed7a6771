package port_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"nebenscan/internal/port"
)

func TestBillObjectKey(t *testing.T) {
	billID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	key := port.BillObjectKey(billID, "abrechnung 2024.pdf")
	assert.Equal(t, "bills/6ba7b810-9dad-11d1-80b4-00c04fd430c8/abrechnung 2024.pdf", key)
}

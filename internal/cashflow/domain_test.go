package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMovementSigned(t *testing.T) {
	income := Movement{Amount: 1500, Kind: KindIngreso}
	expense := Movement{Amount: 2000, Kind: KindEgreso}

	require.Equal(t, 1500.0, income.Signed())
	require.Equal(t, -2000.0, expense.Signed())
}

func TestFutureExpenseBecomesExpenseMovement(t *testing.T) {
	fe := FutureExpense{
		Date:        time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		Description: "Arriendo",
		Amount:      1200000,
	}

	mv := fe.Movement()
	require.Equal(t, KindEgreso, mv.Kind)
	require.Equal(t, -1200000.0, mv.Signed())
	require.Equal(t, fe.Date, mv.DocumentDate())
}

package dedupe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

func TestStage_Name(t *testing.T) {
	assert.Equal(t, "dedupe", New().Name())
}

func TestStage_Process(t *testing.T) {
	para := domain.LineItem{ItemNumber: 1, Name: "Paracetamol", Dosage: "500 mg", Form: "Tablet", Quantity: 100}
	paraOtherQty := para
	paraOtherQty.Quantity = 50
	ibu := domain.LineItem{ItemNumber: 1, Name: "Ibuprofen", Dosage: "400 mg", Form: "Tablet", Quantity: 100}

	got, err := New().Process(context.Background(), nil, []domain.LineItem{para, ibu, para, paraOtherQty, ibu})

	require.NoError(t, err)
	assert.Equal(t, []domain.LineItem{para, ibu, paraOtherQty}, got)
}

func TestStage_Process_Empty(t *testing.T) {
	got, err := New().Process(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/op-bridge-go/internal/domain/entity"
	"github.com/diillson/op-bridge-go/internal/shared/types"
)

func TestChangeRatio(t *testing.T) {
	r, ok := ChangeRatio(200, 250)
	require.True(t, ok)
	assert.InDelta(t, 25.0, r, 1e-9)

	r, ok = ChangeRatio(-200, -100)
	require.True(t, ok)
	assert.InDelta(t, -50.0, r, 1e-9)

	_, ok = ChangeRatio(0, 50)
	assert.False(t, ok)
}

func TestToneOf(t *testing.T) {
	assert.Equal(t, entity.ToneNeutral, ToneOf(0, true))
	assert.Equal(t, entity.ToneBad, ToneOf(10, true))
	assert.Equal(t, entity.ToneGood, ToneOf(-10, true))
	assert.Equal(t, entity.ToneGood, ToneOf(10, false))
	assert.Equal(t, entity.ToneBad, ToneOf(-10, false))
}

func TestHeadlineTone(t *testing.T) {
	assert.Equal(t, entity.ToneGood, HeadlineTone(100))
	assert.Equal(t, entity.ToneGood, HeadlineTone(0))
	assert.Equal(t, entity.ToneBad, HeadlineTone(-1))
	assert.Equal(t, entity.ToneNeutral, ToneOf(0, false), "table cells stay neutral on zero")
}

func TestBuildSummaryRows(t *testing.T) {
	base := baseSnapshot()
	now := base
	now.MaterialCost = 350
	now.ConsumablesCost = 20

	rows := BuildSummaryRows(ComputeBridge(base, now))
	require.Len(t, rows, 9)

	assert.Equal(t, "Sales", rows[0].Label)
	assert.True(t, rows[0].Bold)
	assert.False(t, rows[0].IsCost)
	assert.Equal(t, entity.ToneNeutral, rows[0].Tone)

	material := rows[1]
	assert.Equal(t, entity.ItemMaterialCost, material.Item)
	assert.Equal(t, 50.0, material.Diff)
	assert.Equal(t, entity.ToneBad, material.Tone)
	require.NotNil(t, material.Ratio)
	assert.InDelta(t, 16.666, *material.Ratio, 0.001)

	consumables := rows[2]
	assert.Nil(t, consumables.Ratio, "zero base has no ratio")

	op := rows[8]
	assert.Equal(t, LabelOperatingProfit, op.Label)
	assert.True(t, op.Bold)
	assert.Equal(t, 400.0, op.Base)
	assert.Equal(t, 330.0, op.Now)
	assert.Equal(t, entity.ToneBad, op.Tone)
}

func TestKeyFactors(t *testing.T) {
	base := entity.FinancialSnapshot{Sales: 1000, MaterialCost: 300, TransportCost: 50, LaborCost: 200, SGACost: 100}
	now := entity.FinancialSnapshot{Sales: 1080, MaterialCost: 360, TransportCost: 40, LaborCost: 230, SGACost: 90}

	f := KeyFactors(ComputeBridge(base, now).Waterfall, 2, 1)

	require.Len(t, f.Worsening, 2)
	assert.Equal(t, entity.ItemMaterialCost, f.Worsening[0].Item)
	assert.Equal(t, -60.0, f.Worsening[0].Impact)
	assert.Equal(t, entity.ItemLaborCost, f.Worsening[1].Item)

	require.Len(t, f.Improving, 1)
	assert.Equal(t, entity.ItemSales, f.Improving[0].Item)
	assert.Equal(t, 80.0, f.Improving[0].Impact)
}

func TestKeyFactors_NoMovement(t *testing.T) {
	f := KeyFactors(ComputeBridge(baseSnapshot(), baseSnapshot()).Waterfall, 2, 1)
	assert.Empty(t, f.Worsening)
	assert.Empty(t, f.Improving)
}

func TestValidateInput(t *testing.T) {
	valid := entity.BridgeInput{Mode: entity.ModePreviousMonth, Base: baseSnapshot(), Now: baseSnapshot()}
	assert.NoError(t, ValidateInput(valid))

	missing := valid
	missing.Mode = entity.ModeTarget
	missing.Now.Sales = 0
	missing.Base.SGACost = 0
	missing.Base.LaborCost = 0
	missing.Base.ConsumablesCost = 0

	err := ValidateInput(missing)
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Current month Sales is not entered",
		"Target Labor Cost is not entered",
		"Target SG&A is not entered",
	}, verr.Messages)
}

func TestValidateInput_NonFinite(t *testing.T) {
	in := entity.BridgeInput{Mode: entity.ModePreviousMonth, Base: baseSnapshot(), Now: baseSnapshot()}
	in.Now.MaterialCost = 1e308
	in.Now.LaborCost = 1e308
	in.Base.TransportCost = math.Inf(1)

	err := ValidateInput(in)
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Current month operating profit is out of range",
		"Previous month Transport is not a finite number",
	}, verr.Messages)
}

func TestValidateInput_BadMode(t *testing.T) {
	err := ValidateInput(entity.BridgeInput{Mode: "yearly", Base: baseSnapshot(), Now: baseSnapshot()})
	assert.ErrorIs(t, err, types.ErrInvalidMode)
}

func TestFactorMessages(t *testing.T) {
	worse, better := FactorMessages(entity.KeyFactors{
		Worsening: []entity.Factor{{Label: "Material", Impact: -1500}},
		Improving: []entity.Factor{{Label: "Sales", Impact: 80}},
	})
	assert.Equal(t, []string{"Material likely pushed OP down by 1,500 thousand."}, worse)
	assert.Equal(t, []string{"Sales appears to have added 80 thousand to OP."}, better)

	worse, better = FactorMessages(entity.KeyFactors{})
	assert.Empty(t, worse)
	assert.Empty(t, better)
}

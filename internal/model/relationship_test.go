package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		source EntityType
		target EntityType
		want   RelationshipKind
	}{
		{EntityProvider, EntityBranchOffice, KindProvidesTo},
		{EntityProvider, EntityRoute, KindUse},
		{EntityProduct, EntityProvider, KindBelongsTo},
		{EntityProduct, EntityBranchOffice, KindExistsOn},
		{EntityProduct, EntityProduct, KindRelatedTo},
		{EntityInvoice, EntityProduct, KindContains},
		{EntityBranchOffice, EntityInvoice, KindEmits},
		{EntityBranchOffice, EntityBuyOrder, KindCreatesA},
	}
	for _, tt := range tests {
		t.Run(string(tt.source)+" to "+string(tt.target), func(t *testing.T) {
			kind, ok := KindFor(tt.source, tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}

	t.Run("unmapped pair falls back to RELATED_TO", func(t *testing.T) {
		_, ok := KindFor(EntityRoute, EntityInvoice)
		assert.False(t, ok)
		assert.Equal(t, KindRelatedTo, FallbackKind(EntityRoute, EntityInvoice))
	})
}

func TestDecodeProps(t *testing.T) {
	t.Run("decodes the variant for the pair", func(t *testing.T) {
		raw := json.RawMessage(`{"actual_stock": 10, "buy_date": "2024-03-05", "minimum_stock": 2}`)
		props, err := DecodeProps(EntityProduct, EntityBranchOffice, raw)
		require.NoError(t, err)

		existsOn, ok := props.(*ExistsOnProps)
		require.True(t, ok)
		assert.Equal(t, 10, existsOn.ActualStock)
		assert.Equal(t, "2024-03-05", existsOn.BuyDate)
		assert.Equal(t, KindExistsOn, existsOn.Kind())
	})

	t.Run("property-free pair decodes to nil", func(t *testing.T) {
		props, err := DecodeProps(EntityProduct, EntityProduct, json.RawMessage(`{"ignored": 1}`))
		require.NoError(t, err)
		assert.Nil(t, props)
	})

	t.Run("empty bag yields the zero variant", func(t *testing.T) {
		props, err := DecodeProps(EntityInvoice, EntityProduct, nil)
		require.NoError(t, err)
		contains, ok := props.(*ContainsProps)
		require.True(t, ok)
		assert.Zero(t, contains.Quantity)
	})

	t.Run("malformed bag is an error", func(t *testing.T) {
		_, err := DecodeProps(EntityProvider, EntityRoute, json.RawMessage(`{"cost_of_operation": "not a number"`))
		assert.Error(t, err)
	})
}

func TestRequiresProperties(t *testing.T) {
	assert.True(t, RequiresProperties(EntityProvider, EntityBranchOffice))
	assert.True(t, RequiresProperties(EntityInvoice, EntityProduct))
	assert.False(t, RequiresProperties(EntityProduct, EntityProduct))
	assert.False(t, RequiresProperties(EntityBranchOffice, EntityInvoice))
	assert.False(t, RequiresProperties(EntityBranchOffice, EntityBuyOrder))
}

func TestPropertyFields(t *testing.T) {
	fields := PropertyFields(EntityInvoice, EntityProduct)
	require.Len(t, fields, 4)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"quantity", "discount", "price", "sub_total"}, names)
}

func TestParseEntityType(t *testing.T) {
	for _, valid := range []string{"product", "provider", "branchOffice", "invoice", "buyOrder", "route"} {
		entity, ok := ParseEntityType(valid)
		require.True(t, ok, valid)
		assert.Equal(t, valid, string(entity))
	}

	_, ok := ParseEntityType("warehouse")
	assert.False(t, ok)
}

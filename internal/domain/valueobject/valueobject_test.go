package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTRY(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₺0,00"},
		{945, "₺945,00"},
		{1234.5, "₺1.234,50"},
		{1234567.891, "₺1.234.567,89"},
		{-850, "-₺850,00"},
		{math.NaN(), "₺-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTRY(tt.amount))
	}
}

func TestAdjustmentValidate(t *testing.T) {
	assert.Nil(t, Adjustment{Type: AdjustmentPercentage, Value: 10}.Validate("discount"))
	assert.Nil(t, Adjustment{Type: AdjustmentAmount, Value: 5000}.Validate("discount"))

	fe := Adjustment{Type: "fixed", Value: 10}.Validate("discount")
	if assert.NotNil(t, fe) {
		assert.Equal(t, "discount.type", fe.Field)
	}
	assert.NotNil(t, Adjustment{Type: AdjustmentPercentage, Value: 150}.Validate("agencyCommission"))
	assert.NotNil(t, Adjustment{Type: AdjustmentAmount, Value: -1}.Validate("agencyCommission"))
}

func TestRolePages(t *testing.T) {
	assert.True(t, RoleAdmin.CanAccess(PageEmployees))
	assert.False(t, RoleStaff.CanAccess(PageEmployees))
	assert.False(t, RoleManager.CanAccess(PageEmployees))
	assert.True(t, RoleManager.CanAccess(PageRateCards))
	assert.Equal(t, RoleStaff, ParseRole("unknown"))
	assert.Equal(t, RoleManager, ParseRole(" Manager "))
	assert.Equal(t, "Teklifler", PageProposals.Title())
}

func TestNewProposalStatus(t *testing.T) {
	s, err := NewProposalStatus("")
	assert.NoError(t, err)
	assert.Equal(t, ProposalStatusDraft, s)

	s, err = NewProposalStatus("SENT")
	assert.NoError(t, err)
	assert.Equal(t, ProposalStatusSent, s)

	_, err = NewProposalStatus("archived")
	assert.Error(t, err)
}

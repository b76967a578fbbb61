package entity_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

func sampleProposal() entity.Proposal {
	return entity.Proposal{
		CustomerName: "  Acme  ",
		ProjectName:  "Lansman",
		Date:         "2024-05-01",
		Topics: []entity.Topic{{
			Name: "Dijital",
			Categories: []entity.Category{{
				Name: "Sosyal Medya",
				Services: []entity.Service{
					{Name: "Reels", Unit: "adet", Price: 100, Days: 2, Quantity: 3},
				},
			}},
		}},
	}
}

func TestProposal_NormalizeAssignsIDs(t *testing.T) {
	p := sampleProposal()
	p.Normalize()

	assert.Equal(t, "Acme", p.CustomerName)
	assert.Equal(t, valueobject.ProposalStatusDraft, p.Status)
	assert.NotEmpty(t, p.Topics[0].ID)
	assert.NotEmpty(t, p.Topics[0].Categories[0].ID)
	assert.NotEmpty(t, p.Topics[0].Categories[0].Services[0].ID)
}

func TestProposal_ValidateCollectsAllErrors(t *testing.T) {
	p := entity.Proposal{Date: "01.05.2024", Status: valueobject.ProposalStatusDraft}
	p.Topics = []entity.Topic{{Categories: []entity.Category{{Services: []entity.Service{{Price: math.NaN()}}}}}}

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	fields := make([]string, 0, len(appErr.Details))
	for _, d := range appErr.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "customerName")
	assert.Contains(t, fields, "projectName")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "topics[0].categories[0].services[0].name")
	assert.Contains(t, fields, "topics[0].categories[0].services[0]")
}

func TestProposal_ValidateRejectsBadAdjustment(t *testing.T) {
	p := sampleProposal()
	p.Normalize()
	p.Discount = &valueobject.Adjustment{Type: valueobject.AdjustmentPercentage, Value: 120}

	assert.True(t, apperror.IsValidation(p.Validate()))

	p.Discount.Value = 20
	assert.NoError(t, p.Validate())
}

func TestProposal_CloneIsDeep(t *testing.T) {
	p := sampleProposal()
	p.Discount = &valueobject.Adjustment{Type: valueobject.AdjustmentAmount, Value: 10}

	cp := p.Clone()
	cp.Topics[0].Categories[0].Services[0].Price = 999
	cp.Discount.Value = 50

	assert.Equal(t, 100.0, p.Topics[0].Categories[0].Services[0].Price)
	assert.Equal(t, 10.0, p.Discount.Value)
}

func TestRevisionName(t *testing.T) {
	assert.Equal(t, "Lansman (Revize)", entity.RevisionName("Lansman"))
	assert.Equal(t, "Lansman (Revize)", entity.RevisionName("Lansman (Revize)"))
}

func TestProposal_SameProject(t *testing.T) {
	p := sampleProposal()
	assert.True(t, p.SameProject("acme", "LANSMAN"))
	assert.False(t, p.SameProject("acme", "Kampanya"))
}

func TestRateCard_ProposalCategories(t *testing.T) {
	rc := entity.RateCard{
		CustomerName: "Acme",
		Categories: []entity.RateCategory{{
			Name:     "Video",
			Services: []entity.RateService{{Name: "Çekim", Unit: "gün", Price: 2500}},
		}},
	}

	cats := rc.ProposalCategories()
	require.Len(t, cats, 1)
	require.Len(t, cats[0].Services, 1)
	s := cats[0].Services[0]
	assert.Equal(t, "Çekim", s.Name)
	assert.Equal(t, 1.0, s.Days)
	assert.Equal(t, 1.0, s.Quantity)
	assert.Equal(t, 2500.0, s.TotalPrice)
}

func TestRateCard_Validate(t *testing.T) {
	bad := "2024/01/01"
	rc := entity.RateCard{
		StartDate:  &bad,
		Categories: []entity.RateCategory{{Name: "Video", Services: []entity.RateService{{Name: "Kurgu", Price: -1}}}},
	}
	var appErr *apperror.AppError
	require.ErrorAs(t, rc.Validate(), &appErr)
	assert.Len(t, appErr.Details, 3)
}

func TestAttachments_Without(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	list := entity.Attachments{{ID: a, Name: "a.pdf"}, {ID: b, Name: "b.png"}}

	rest, removed, ok := list.Without(a)
	assert.True(t, ok)
	assert.Equal(t, "a.pdf", removed.Name)
	assert.Len(t, rest, 1)

	_, _, ok = rest.Without(a)
	assert.False(t, ok)

	found, ok := list.Find(b)
	assert.True(t, ok)
	assert.Equal(t, "b.png", found.Name)
}

func TestEmployee_Validate(t *testing.T) {
	e := entity.Employee{FirstName: "Ayşe", LastName: "Yılmaz", Email: "not-an-email"}
	e.Normalize()
	assert.True(t, apperror.IsValidation(e.Validate()))

	e.Email = "ayse@example.com"
	assert.NoError(t, e.Validate())
	assert.Equal(t, "Ayşe Yılmaz", e.FullName())
}

func TestNewEquipment(t *testing.T) {
	_, err := entity.NewEquipment(" ", "laptop", "", "", "")
	assert.True(t, apperror.IsValidation(err))

	eq, err := entity.NewEquipment("MacBook Pro", "laptop", "C02XYZ", "2024-02-01", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", eq.AssignedDate)
	assert.False(t, eq.IsReturned())
}

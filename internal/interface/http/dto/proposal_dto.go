package dto

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/domain/wizard"
	"github.com/ignatzorin/agency-backend/internal/usecase/proposal"
)

// ProposalRequest - тело POST /proposals и черновик мастера.
// Итоговые суммы из запроса игнорируются, сервер считает их сам.
type ProposalRequest struct {
	CustomerName     string                  `json:"customerName"`
	ProjectName      string                  `json:"projectName"`
	Date             string                  `json:"date"`
	Topics           []entity.Topic          `json:"topics"`
	Discount         *valueobject.Adjustment `json:"discount"`
	AgencyCommission *valueobject.Adjustment `json:"agencyCommission"`
	Terms            string                  `json:"terms"`
	ShowTotal        *bool                   `json:"showTotal"`
	Status           string                  `json:"status"`
	CreatedBy        string                  `json:"createdBy"`
}

func (r ProposalRequest) ToEntity() (entity.Proposal, error) {
	status, err := valueobject.NewProposalStatus(r.Status)
	if err != nil {
		return entity.Proposal{}, err
	}
	showTotal := true
	if r.ShowTotal != nil {
		showTotal = *r.ShowTotal
	}
	return entity.Proposal{
		CustomerName:     r.CustomerName,
		ProjectName:      r.ProjectName,
		Date:             r.Date,
		Topics:           r.Topics,
		Discount:         r.Discount,
		AgencyCommission: r.AgencyCommission,
		Terms:            r.Terms,
		ShowTotal:        showTotal,
		Status:           status,
		CreatedBy:        r.CreatedBy,
	}, nil
}

// ParseProposalPatch разбирает тело PUT. Отсутствующее поле не меняется,
// null для discount/agencyCommission снимает их.
func ParseProposalPatch(body []byte) (proposal.ProposalPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return proposal.ProposalPatch{}, err
	}

	var patch proposal.ProposalPatch
	fields := []struct {
		name string
		dst  any
	}{
		{"customerName", &patch.CustomerName},
		{"projectName", &patch.ProjectName},
		{"date", &patch.Date},
		{"topics", &patch.Topics},
		{"terms", &patch.Terms},
		{"showTotal", &patch.ShowTotal},
		{"status", &patch.Status},
	}
	for _, f := range fields {
		if v, ok := raw[f.name]; ok && !isNull(v) {
			if err := json.Unmarshal(v, f.dst); err != nil {
				return proposal.ProposalPatch{}, fmt.Errorf("%s: %w", f.name, err)
			}
		}
	}

	if v, ok := raw["discount"]; ok {
		patch.DiscountSet = true
		if err := json.Unmarshal(v, &patch.Discount); err != nil {
			return proposal.ProposalPatch{}, fmt.Errorf("discount: %w", err)
		}
	}
	if v, ok := raw["agencyCommission"]; ok {
		patch.AgencyCommissionSet = true
		if err := json.Unmarshal(v, &patch.AgencyCommission); err != nil {
			return proposal.ProposalPatch{}, fmt.Errorf("agencyCommission: %w", err)
		}
	}
	return patch, nil
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

type WizardValidateRequest struct {
	Step     string          `json:"step" binding:"required"`
	Proposal ProposalRequest `json:"proposal"`
}

type WizardSubmitRequest struct {
	Action    string          `json:"action" binding:"required"`
	EditingID *string         `json:"editingId"`
	Proposal  ProposalRequest `json:"proposal"`
}

func (r WizardSubmitRequest) ToInput() (proposal.SubmitInput, error) {
	p, err := r.Proposal.ToEntity()
	if err != nil {
		return proposal.SubmitInput{}, err
	}
	in := proposal.SubmitInput{Action: wizard.Action(r.Action), Proposal: p}
	if r.EditingID != nil && *r.EditingID != "" {
		id, err := uuid.Parse(*r.EditingID)
		if err != nil {
			return proposal.SubmitInput{}, fmt.Errorf("editingId: %w", err)
		}
		in.EditingID = &id
	}
	return in, nil
}

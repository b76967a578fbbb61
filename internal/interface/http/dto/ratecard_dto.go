package dto

import (
	"encoding/json"
	"fmt"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/usecase/ratecard"
)

type RateCardRequest struct {
	CustomerName string                `json:"customerName"`
	StartDate    *string               `json:"startDate"`
	EndDate      *string               `json:"endDate"`
	Categories   []entity.RateCategory `json:"categories"`
}

func (r RateCardRequest) ToEntity() entity.RateCard {
	return entity.RateCard{
		CustomerName: r.CustomerName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Categories:   r.Categories,
	}
}

// ParseRateCardPatch: null в startDate/endDate очищает дату.
func ParseRateCardPatch(body []byte) (ratecard.RateCardPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ratecard.RateCardPatch{}, err
	}

	var patch ratecard.RateCardPatch
	if v, ok := raw["customerName"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &patch.CustomerName); err != nil {
			return patch, fmt.Errorf("customerName: %w", err)
		}
	}
	if v, ok := raw["categories"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &patch.Categories); err != nil {
			return patch, fmt.Errorf("categories: %w", err)
		}
	}
	if v, ok := raw["startDate"]; ok {
		patch.StartDateSet = true
		if err := json.Unmarshal(v, &patch.StartDate); err != nil {
			return patch, fmt.Errorf("startDate: %w", err)
		}
	}
	if v, ok := raw["endDate"]; ok {
		patch.EndDateSet = true
		if err := json.Unmarshal(v, &patch.EndDate); err != nil {
			return patch, fmt.Errorf("endDate: %w", err)
		}
	}
	return patch, nil
}

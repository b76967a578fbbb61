package valueobject

import (
	"strings"

	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusApproved, ProposalStatusRejected:
		return true
	}
	return false
}

// NewProposalStatus разбирает статус; пустая строка означает черновик.
func NewProposalStatus(status string) (ProposalStatus, error) {
	if strings.TrimSpace(status) == "" {
		return ProposalStatusDraft, nil
	}
	s := ProposalStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "geçersiz teklif durumu")
	}
	return s, nil
}

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on_leave"
)

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

// NewEmployeeStatus разбирает статус сотрудника; по умолчанию active.
func NewEmployeeStatus(status string) (EmployeeStatus, error) {
	if strings.TrimSpace(status) == "" {
		return EmployeeStatusActive, nil
	}
	s := EmployeeStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "geçersiz çalışan durumu")
	}
	return s, nil
}

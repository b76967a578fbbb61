package dto

import (
	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/usecase/employee"
)

type CreateEmployeeRequest struct {
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Department string             `json:"department"`
	Position   string             `json:"position"`
	StartDate  string             `json:"startDate"`
	Status     string             `json:"status"`
	Equipment  []entity.Equipment `json:"equipment"`
}

func (r CreateEmployeeRequest) ToEntity() (entity.Employee, error) {
	status, err := valueobject.NewEmployeeStatus(r.Status)
	if err != nil {
		return entity.Employee{}, err
	}
	return entity.Employee{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		Position:   r.Position,
		StartDate:  r.StartDate,
		Status:     status,
		Equipment:  r.Equipment,
	}, nil
}

type UpdateEmployeeRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	StartDate  *string `json:"startDate"`
	Status     *string `json:"status"`
}

func (r UpdateEmployeeRequest) ToPatch() employee.EmployeePatch {
	return employee.EmployeePatch{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		Position:   r.Position,
		StartDate:  r.StartDate,
		Status:     r.Status,
	}
}

type AssignEquipmentRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	SerialNumber string `json:"serialNumber"`
	AssignedDate string `json:"assignedDate"`
	Notes        string `json:"notes"`
}

func (r AssignEquipmentRequest) ToInput() employee.EquipmentInput {
	return employee.EquipmentInput{
		Name:         r.Name,
		Type:         r.Type,
		SerialNumber: r.SerialNumber,
		AssignedDate: r.AssignedDate,
		Notes:        r.Notes,
	}
}

type ReturnEquipmentRequest struct {
	ReturnedDate string `json:"returnedDate"`
}

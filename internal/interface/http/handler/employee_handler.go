package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/interface/http/dto"
	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/usecase/employee"
)

type EmployeeHandler struct {
	*AttachmentHandler
	createEmployeeUC  *employee.CreateEmployeeUseCase
	getEmployeeUC     *employee.GetEmployeeUseCase
	listEmployeesUC   *employee.ListEmployeesUseCase
	updateEmployeeUC  *employee.UpdateEmployeeUseCase
	deleteEmployeeUC  *employee.DeleteEmployeeUseCase
	equipmentUC       *employee.EquipmentUseCase
	exportEmployeesUC *employee.ExportEmployeesUseCase
}

func NewEmployeeHandler(
	files *AttachmentHandler,
	createEmployeeUC *employee.CreateEmployeeUseCase,
	getEmployeeUC *employee.GetEmployeeUseCase,
	listEmployeesUC *employee.ListEmployeesUseCase,
	updateEmployeeUC *employee.UpdateEmployeeUseCase,
	deleteEmployeeUC *employee.DeleteEmployeeUseCase,
	equipmentUC *employee.EquipmentUseCase,
	exportEmployeesUC *employee.ExportEmployeesUseCase,
) *EmployeeHandler {
	return &EmployeeHandler{
		AttachmentHandler: files,
		createEmployeeUC:  createEmployeeUC,
		getEmployeeUC:     getEmployeeUC,
		listEmployeesUC:   listEmployeesUC,
		updateEmployeeUC:  updateEmployeeUC,
		deleteEmployeeUC:  deleteEmployeeUC,
		equipmentUC:       equipmentUC,
		exportEmployeesUC: exportEmployeesUC,
	}
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.listEmployeesUC.Execute(c.Request.Context(), employee.EmployeeFilter{
		Department: c.Query("department"),
		Status:     c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, list, len(list))
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := req.ToEntity()
	if err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.createEmployeeUC.Execute(c.Request.Context(), e)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.getEmployeeUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, e)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.updateEmployeeUC.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteEmployeeUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *EmployeeHandler) AssignEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.equipmentUC.Assign(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, updated)
}

// ReturnEquipment: тело необязательно, без returnedDate ставится сегодняшняя дата.
func (h *EmployeeHandler) ReturnEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	equipmentID, ok := pathID(c, "equipmentId")
	if !ok {
		return
	}
	var req dto.ReturnEquipmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	updated, err := h.equipmentUC.Return(c.Request.Context(), id, equipmentID, req.ReturnedDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *EmployeeHandler) RemoveEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	equipmentID, ok := pathID(c, "equipmentId")
	if !ok {
		return
	}
	updated, err := h.equipmentUC.Remove(c.Request.Context(), id, equipmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *EmployeeHandler) ExportExcel(c *gin.Context) {
	file, err := h.exportEmployeesUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Name, file.ContentType, file.Data)
}

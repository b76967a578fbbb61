package employee

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/export"
	"github.com/ignatzorin/agency-backend/internal/logger"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/service"
)

// OwnerFiles удаляет каталог вложений записи.
type OwnerFiles interface {
	RemoveOwner(ctx context.Context, ownerID uuid.UUID) error
}

func prepare(e *entity.Employee) error {
	e.Normalize()
	return e.Validate()
}

type CreateEmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
}

func NewCreateEmployeeUseCase(employeeRepo repository.EmployeeRepository) *CreateEmployeeUseCase {
	return &CreateEmployeeUseCase{employeeRepo: employeeRepo}
}

func (uc *CreateEmployeeUseCase) Execute(ctx context.Context, e entity.Employee) (*entity.Employee, error) {
	if err := prepare(&e); err != nil {
		return nil, err
	}
	e.Files = entity.Attachments{}
	for i := range e.Equipment {
		if e.Equipment[i].ID == uuid.Nil {
			e.Equipment[i].ID = uuid.New()
		}
	}

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := uc.employeeRepo.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type GetEmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
}

func NewGetEmployeeUseCase(employeeRepo repository.EmployeeRepository) *GetEmployeeUseCase {
	return &GetEmployeeUseCase{employeeRepo: employeeRepo}
}

func (uc *GetEmployeeUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return uc.employeeRepo.FindByID(ctx, id)
}

// EmployeeFilter - пустые поля не фильтруют.
type EmployeeFilter struct {
	Department string
	Status     string
}

type ListEmployeesUseCase struct {
	employeeRepo repository.EmployeeRepository
}

func NewListEmployeesUseCase(employeeRepo repository.EmployeeRepository) *ListEmployeesUseCase {
	return &ListEmployeesUseCase{employeeRepo: employeeRepo}
}

func (uc *ListEmployeesUseCase) Execute(ctx context.Context, filter EmployeeFilter) ([]*entity.Employee, error) {
	if filter.Status != "" {
		status, err := valueobject.NewEmployeeStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(status)
	}

	all, err := uc.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Employee, 0, len(all))
	for _, e := range all {
		if filter.Department != "" && !strings.EqualFold(e.Department, strings.TrimSpace(filter.Department)) {
			continue
		}
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type EmployeePatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Department *string
	Position   *string
	StartDate  *string
	Status     *string
}

type UpdateEmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
}

func NewUpdateEmployeeUseCase(employeeRepo repository.EmployeeRepository) *UpdateEmployeeUseCase {
	return &UpdateEmployeeUseCase{employeeRepo: employeeRepo}
}

// Execute не трогает оборудование и файлы, для них отдельные операции.
func (uc *UpdateEmployeeUseCase) Execute(ctx context.Context, id uuid.UUID, patch EmployeePatch) (*entity.Employee, error) {
	return uc.employeeRepo.Update(ctx, id, func(e *entity.Employee) error {
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = *v
			}
		}
		set(&e.FirstName, patch.FirstName)
		set(&e.LastName, patch.LastName)
		set(&e.Email, patch.Email)
		set(&e.Phone, patch.Phone)
		set(&e.Department, patch.Department)
		set(&e.Position, patch.Position)
		set(&e.StartDate, patch.StartDate)
		if patch.Status != nil {
			status, err := valueobject.NewEmployeeStatus(*patch.Status)
			if err != nil {
				return err
			}
			e.Status = status
		}
		if err := prepare(e); err != nil {
			return err
		}
		e.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type DeleteEmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
	files        OwnerFiles
	cache        *service.ExportCache
}

func NewDeleteEmployeeUseCase(employeeRepo repository.EmployeeRepository, files OwnerFiles, cache *service.ExportCache) *DeleteEmployeeUseCase {
	return &DeleteEmployeeUseCase{employeeRepo: employeeRepo, files: files, cache: cache}
}

func (uc *DeleteEmployeeUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.InvalidateByPrefix(exportKind)
	if err := uc.files.RemoveOwner(ctx, id); err != nil {
		logger.Log.WithError(err).WithField("employee_id", id).Warn("employee: не удалось удалить файлы сотрудника")
	}
	return nil
}

// EquipmentInput - данные для выдачи оборудования.
type EquipmentInput struct {
	Name         string
	Type         string
	SerialNumber string
	AssignedDate string
	Notes        string
}

// EquipmentUseCase выдаёт, принимает обратно и удаляет оборудование сотрудника.
type EquipmentUseCase struct {
	employeeRepo repository.EmployeeRepository
}

func NewEquipmentUseCase(employeeRepo repository.EmployeeRepository) *EquipmentUseCase {
	return &EquipmentUseCase{employeeRepo: employeeRepo}
}

func (uc *EquipmentUseCase) Assign(ctx context.Context, employeeID uuid.UUID, in EquipmentInput) (*entity.Employee, error) {
	item, err := entity.NewEquipment(in.Name, in.Type, in.SerialNumber, in.AssignedDate, in.Notes)
	if err != nil {
		return nil, err
	}
	return uc.employeeRepo.Update(ctx, employeeID, func(e *entity.Employee) error {
		e.Equipment = append(e.Equipment, item)
		e.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Return отмечает возврат. Пустая дата означает сегодня; повторный возврат - ошибка.
func (uc *EquipmentUseCase) Return(ctx context.Context, employeeID, equipmentID uuid.UUID, returnedDate string) (*entity.Employee, error) {
	returnedDate = strings.TrimSpace(returnedDate)
	if returnedDate == "" {
		returnedDate = time.Now().Format(time.DateOnly)
	} else if !entity.IsValidDate(returnedDate) {
		return nil, apperror.Validation("ekipman doğrulanamadı", apperror.FieldError{Field: "returnedDate", Message: "geçersiz iade tarihi"})
	}

	return uc.employeeRepo.Update(ctx, employeeID, func(e *entity.Employee) error {
		for i := range e.Equipment {
			if e.Equipment[i].ID != equipmentID {
				continue
			}
			if e.Equipment[i].IsReturned() {
				return apperror.New(apperror.ErrCodeConflict, "ekipman zaten iade edildi")
			}
			d := returnedDate
			e.Equipment[i].ReturnedDate = &d
			e.UpdatedAt = time.Now().UTC()
			return nil
		}
		return apperror.ErrEquipmentNotFound
	})
}

func (uc *EquipmentUseCase) Remove(ctx context.Context, employeeID, equipmentID uuid.UUID) (*entity.Employee, error) {
	return uc.employeeRepo.Update(ctx, employeeID, func(e *entity.Employee) error {
		rest := make([]entity.Equipment, 0, len(e.Equipment))
		for _, item := range e.Equipment {
			if item.ID != equipmentID {
				rest = append(rest, item)
			}
		}
		if len(rest) == len(e.Equipment) {
			return apperror.ErrEquipmentNotFound
		}
		e.Equipment = rest
		e.UpdatedAt = time.Now().UTC()
		return nil
	})
}

const exportKind = "employees"

// ExportedFile - готовый файл для отдачи клиенту.
type ExportedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportEmployeesUseCase struct {
	employeeRepo repository.EmployeeRepository
	cache        *service.ExportCache
}

func NewExportEmployeesUseCase(employeeRepo repository.EmployeeRepository, cache *service.ExportCache) *ExportEmployeesUseCase {
	return &ExportEmployeesUseCase{employeeRepo: employeeRepo, cache: cache}
}

// Execute кэширует выгрузку по самой свежей отметке изменения в списке.
func (uc *ExportEmployeesUseCase) Execute(ctx context.Context) (*ExportedFile, error) {
	all, err := uc.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]entity.Employee, 0, len(all))
	var latest time.Time
	for _, e := range all {
		list = append(list, *e)
		if e.UpdatedAt.After(latest) {
			latest = e.UpdatedAt
		}
	}

	key := service.ExportCacheKey(exportKind, uuid.Nil, latest, "xlsx") + ":" + strconv.Itoa(len(list))
	data, err := uc.cache.GetOrRender(key, func() ([]byte, error) {
		return export.EmployeesExcel(list)
	})
	if err != nil {
		return nil, err
	}
	return &ExportedFile{
		Name:        export.FileName(".xlsx", "calisanlar", time.Now().Format(time.DateOnly)),
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}

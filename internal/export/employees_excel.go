package export

import (
	"fmt"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
)

var employeeColumns = []any{"Ad Soyad", "E-posta", "Telefon", "Departman", "Pozisyon", "Başlangıç", "Durum", "Zimmetli Ekipman", "Dosya"}

// EmployeesExcel - список сотрудников с числом выданного и не сданного оборудования.
func EmployeesExcel(list []entity.Employee) ([]byte, error) {
	w, err := newWorkbook("Çalışanlar")
	if err != nil {
		return nil, err
	}
	defer w.close()

	if err := w.widths(26, 30, 16, 18, 20, 12, 10, 18, 8); err != nil {
		return nil, err
	}

	rowNum, err := w.titleBlock(len(employeeColumns), "Çalışan Listesi", fmt.Sprintf("Toplam: %d", len(list)))
	if err != nil {
		return nil, err
	}

	if err := w.row(rowNum, w.header, employeeColumns...); err != nil {
		return nil, err
	}
	w.freezeBelow(rowNum)
	rowNum++

	for _, e := range list {
		assigned := 0
		for _, eq := range e.Equipment {
			if !eq.IsReturned() {
				assigned++
			}
		}
		if err := w.row(rowNum, w.body,
			e.FullName(), e.Email, e.Phone, e.Department, e.Position,
			displayDate(e.StartDate), employeeStatusLabel(e.Status), assigned, len(e.Files),
		); err != nil {
			return nil, err
		}
		rowNum++
	}

	return w.bytes()
}

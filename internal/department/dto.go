package department

import "github.com/mohspitality/hospitality-management/internal/core/common/validation"

type CreateDepartmentDTO struct {
	Name string `json:"name"`
}

func (d CreateDepartmentDTO) Validate() error {
	if err := validation.ValidateResourceName("name", d.Name); err != nil {
		return err
	}
	return nil
}

type DepartmentsResponse struct {
	Departments []*Department `json:"departments"`
}

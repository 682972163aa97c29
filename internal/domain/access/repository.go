package access

import "context"

// Repository consulta os vínculos de uma pessoa (administrador,
// funcionário, cliente). Somente leitura.
type Repository interface {
	IsAdministrator(ctx context.Context, personID uint) (bool, error)

	IsStaffOfCompany(ctx context.Context, personID, companyID uint) (bool, error)
	IsClientOfCompany(ctx context.Context, personID, companyID uint) (bool, error)

	IsStaffRecord(ctx context.Context, personID, staffID uint) (bool, error)
	IsClientRecord(ctx context.Context, personID, clientID uint) (bool, error)

	CompaniesOfPerson(ctx context.Context, personID uint) ([]uint, error)
}

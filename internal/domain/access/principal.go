package access

// Principal é o usuário autenticado, resolvido a partir do token.
type Principal struct {
	UserID   uint `json:"usuario_id"`
	PersonID uint `json:"pessoa_id"`
}

// Scope lista as empresas visíveis para um principal.
type Scope struct {
	All        bool
	CompanyIDs []uint
}

func (s Scope) Allows(companyID uint) bool {
	if s.All {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

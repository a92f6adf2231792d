package constants

import "fmt"

const (
	RoleAdmin      = "ADMIN"
	RoleAtendente  = "ATENDENTE"
	RoleTriagem    = "TRIAGEM"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess      = "❌ Apenas administradores podem acessar %s."
	ErrOnlySuperAdminsCanAccess = "❌ Apenas o super administrador pode acessar %s."
	ErrOnlyStaffCanAccess       = "❌ Seu perfil não tem acesso a %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleAtendente,
		RoleTriagem,
		RoleSuperAdmin,
	}

	DeskRoles = []string{
		RoleAdmin,
		RoleAtendente,
		RoleTriagem,
	}

	IntakeRoles = []string{
		RoleAdmin,
		RoleTriagem,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

// IsValidRole reports whether r is one of the known profile roles.
func IsValidRole(r string) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

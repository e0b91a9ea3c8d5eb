package constants

import "fmt"

const (
	RoleAdmin        = "admin"
	RoleTenant       = "tenant"
	RoleServiceAgent = "service_agent"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyTenantsCanAccess = "❌ Hanya penghuni (tenant) yang boleh mengakses fitur %s."
	ErrOnlyAgentsCanAccess  = "❌ Hanya petugas servis yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTenant(feature string) string {
	return fmt.Sprintf(ErrOnlyTenantsCanAccess, feature)
}

func RoleErrorAgent(feature string) string {
	return fmt.Sprintf(ErrOnlyAgentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTenant,
		RoleServiceAgent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	TenantOnly = []string{
		RoleTenant,
	}

	AgentOnly = []string{
		RoleServiceAgent,
	}
)

// Jenis layanan petugas servis (selaras dengan ticket_service_type)
const (
	ServicePlumber     = "plumber"
	ServiceElectrician = "electrician"
	ServiceCleaner     = "cleaner"
	ServiceOther       = "other"
)

var ServiceTypes = []string{
	ServicePlumber,
	ServiceElectrician,
	ServiceCleaner,
	ServiceOther,
}

func IsValidServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}

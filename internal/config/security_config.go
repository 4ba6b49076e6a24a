// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityRefresh                       // Refresh token required
	SecurityAccess                        // Access token required
	SecurityCustomer                      // Access token of an Individual or Corporate user
	SecurityStaff                         // Access token of a Staff user
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"Login":  SecurityPublic,
	"Health": SecurityPublic,

	// Auth - Refresh Protected
	"RefreshToken": SecurityRefresh,

	// Profile - Access Protected
	"GetMe":        SecurityAccess,
	"GetDashboard": SecurityAccess,

	// Vehicles - Access Protected
	"SearchVehicles":    SecurityAccess,
	"GetVehicle":        SecurityAccess,
	"GetVehicleImage":   SecurityAccess,
	"CheckAvailability": SecurityAccess,
	"QuoteRental":       SecurityAccess,

	// Rentals
	"CreateRental":     SecurityCustomer,
	"ReturnVehicle":    SecurityCustomer,
	"ListMyRentals":    SecurityAccess,
	"GetRental":        SecurityAccess,
	"GetRentalInvoice": SecurityAccess,

	// Staff
	"ListUsers":          SecurityStaff,
	"CreateUser":         SecurityStaff,
	"GetUser":            SecurityStaff,
	"DeleteUser":         SecurityStaff,
	"AddVehicle":         SecurityStaff,
	"DeleteVehicle":      SecurityStaff,
	"UploadVehicleImage": SecurityStaff,
	"ListAllRentals":     SecurityStaff,
	"GetAnalytics":       SecurityStaff,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityStaff
}

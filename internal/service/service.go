package service

import (
	"context"
	"io"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, userID, password string) (*domain.User, string, string, error) // user, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	CreateUser(ctx context.Context, input NewUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, v *domain.Vehicle) error
	GetVehicle(ctx context.Context, id string) (*VehicleDetail, error)
	SearchVehicles(ctx context.Context, filter VehicleFilter) ([]VehicleSummary, error)
	DeleteVehicle(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, id string, start, end time.Time) (bool, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, userID, vehicleID string, start, end time.Time) (*domain.Rental, error)
	ReturnVehicle(ctx context.Context, rentalID string, actualReturn time.Time) (*domain.Rental, error)
	QuoteRental(ctx context.Context, userID, vehicleID string, start, end time.Time) (*utils.CostBreakdown, error)
	GetRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID string) ([]domain.Rental, error) // empty userID lists all
}

type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*Analytics, error)
}

type InvoiceService interface {
	GetInvoice(ctx context.Context, rentalID string) (*Invoice, error)
}

type ImageStorageService interface {
	UploadVehicleImage(ctx context.Context, vehicleID, filename, contentType string, size int64, r io.Reader) (string, error) // returns download URL
	OpenVehicleImage(ctx context.Context, vehicleID string) (io.ReadCloser, string, error)                                  // returns reader, content type
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, email, name string, inv *Invoice) error
	SendReturnConfirmation(ctx context.Context, email, name string, inv *Invoice) error
	SendOverdueReminder(ctx context.Context, email, name, rentalID, vehicleLabel string, dueDate time.Time) error
}

package service

import (
	"context"
	"io"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockSnapshotRepo
type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepo) Save(ctx context.Context, s *domain.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalConfirmation(ctx context.Context, email, name string, inv *Invoice) error {
	args := m.Called(ctx, email, name, inv)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, email, name string, inv *Invoice) error {
	args := m.Called(ctx, email, name, inv)
	return args.Error(0)
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name, rentalID, vehicleLabel string, dueDate time.Time) error {
	args := m.Called(ctx, email, name, rentalID, vehicleLabel, dueDate)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockStorage) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

const testPassword = "secret123"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixtureSnapshot holds one user per role and one vehicle per type
func fixtureSnapshot(t *testing.T) *domain.Snapshot {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	s := domain.NewSnapshot()
	s.Users = []domain.User{
		{
			ID: "alice", PasswordHash: string(hash), Role: domain.RoleIndividual,
			Name: "Alice Smith", ContactInfo: "alice@example.com",
			Individual: &domain.IndividualProfile{DateOfBirth: day(1990, 1, 1), LicenseNumber: "DL12345"},
		},
		{
			ID: "acme", PasswordHash: string(hash), Role: domain.RoleCorporate,
			Name: "Acme Ltd", ContactInfo: "+15550001111",
			Corporate: &domain.CorporateProfile{CompanyName: "Acme", BusinessRegistration: "REG-1", BillingAddress: "1 Main St"},
		},
		{
			ID: "admin", PasswordHash: string(hash), Role: domain.RoleStaff,
			Name: "Admin", ContactInfo: "admin@example.com",
			Staff: &domain.StaffProfile{EmployeeID: "E001", Position: domain.StaffPositionAdmin},
		},
	}
	s.Vehicles = []domain.Vehicle{
		{
			ID: "CAR01", Type: domain.VehicleTypeCar, Brand: "Toyota", Model: "Corolla", Year: 2022, DailyRateCents: 10000,
			Car: &domain.CarSpec{Doors: 4, FuelType: "PETROL", Transmission: "AUTOMATIC"},
		},
		{
			ID: "BIKE01", Type: domain.VehicleTypeMotorbike, Brand: "Honda", Model: "CBR", Year: 2021, DailyRateCents: 5000,
			Motorbike: &domain.MotorbikeSpec{EngineCC: 600, BikeType: "SPORT", HasABS: true},
		},
		{
			ID: "TRK01", Type: domain.VehicleTypeTruck, Brand: "Volvo", Model: "FL", Year: 2020, DailyRateCents: 15000,
			Truck: &domain.TruckSpec{LoadCapacityTonnes: 12, TruckType: "BOX"},
		},
	}
	return s
}

// newTestStore opens a store over snap whose saves succeed
func newTestStore(t *testing.T, snap *domain.Snapshot) (*store.Store, *MockSnapshotRepo) {
	repo := new(MockSnapshotRepo)
	repo.On("Load", mock.Anything).Return(snap, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	st, err := store.Open(context.Background(), repo)
	require.NoError(t, err)
	return st, repo
}

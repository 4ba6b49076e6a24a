package service

import (
	"context"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t, fixtureSnapshot(t))
	svc := NewUserService(st)

	t.Run("Success hashes password", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, NewUserInput{
			ID: "bob", Password: "hunter22", Role: domain.RoleIndividual,
			Name: "Bob Jones", ContactInfo: "bob@example.com",
			Individual: &domain.IndividualProfile{DateOfBirth: day(1985, 3, 2), LicenseNumber: "LIC98765"},
		})
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))

		got, err := svc.GetUser(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "Bob Jones", got.Name)
	})

	t.Run("Duplicate id", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, NewUserInput{
			ID: "alice", Password: "hunter22", Role: domain.RoleStaff,
			Name: "Other Alice", ContactInfo: "a2@example.com",
			Staff: &domain.StaffProfile{EmployeeID: "E002", Position: domain.StaffPositionAgent},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("Short password", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, NewUserInput{ID: "carl", Password: "123", Role: domain.RoleIndividual})
		assert.ErrorIs(t, err, domain.ErrInvalidEntity)
	})

	t.Run("Profile mismatch", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, NewUserInput{
			ID: "dora", Password: "hunter22", Role: domain.RoleCorporate,
			Name: "Dora", ContactInfo: "dora@example.com",
			Individual: &domain.IndividualProfile{DateOfBirth: day(1985, 3, 2), LicenseNumber: "LIC98765"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEntity)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	st, _ := newTestStore(t, fixtureSnapshot(t))
	svc := NewUserService(st)

	all, _ := svc.ListUsers(context.Background(), "")
	if assert.Len(t, all, 3) {
		assert.Equal(t, "acme", all[0].ID)
	}
	staff, _ := svc.ListUsers(context.Background(), domain.RoleStaff)
	assert.Len(t, staff, 1)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Staff cannot delete themselves", func(t *testing.T) {
		st, _ := newTestStore(t, fixtureSnapshot(t))
		err := NewUserService(st).DeleteUser(ctx, "admin", "admin")
		assert.ErrorIs(t, err, domain.ErrSelfDeletion)
	})

	t.Run("Blocked while rentals are active", func(t *testing.T) {
		snap := fixtureSnapshot(t)
		snap.Rentals = []domain.Rental{{ID: "R00001", UserID: "alice", VehicleID: "CAR01", Status: domain.RentalStatusActive}}
		st, _ := newTestStore(t, snap)

		err := NewUserService(st).DeleteUser(ctx, "admin", "alice")
		assert.ErrorIs(t, err, domain.ErrHasActiveRentals)
	})

	t.Run("History is kept after deletion", func(t *testing.T) {
		snap := fixtureSnapshot(t)
		snap.Rentals = []domain.Rental{{ID: "R00001", UserID: "alice", VehicleID: "CAR01", Status: domain.RentalStatusReturned, TotalCostCents: 500}}
		st, _ := newTestStore(t, snap)
		svc := NewUserService(st)

		require.NoError(t, svc.DeleteUser(ctx, "admin", "alice"))
		_, err := svc.GetUser(ctx, "alice")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		inv, err := NewInvoiceService(st).GetInvoice(ctx, "R00001")
		require.NoError(t, err)
		assert.Equal(t, "alice", inv.RenterName)
	})

	t.Run("Unknown user", func(t *testing.T) {
		st, _ := newTestStore(t, fixtureSnapshot(t))
		err := NewUserService(st).DeleteUser(ctx, "admin", "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	snap := fixtureSnapshot(t)
	snap.Rentals = []domain.Rental{
		{ID: "R00001", UserID: "alice", VehicleID: "CAR01", Status: domain.RentalStatusReturned, TotalCostCents: 9000},
		{ID: "R00002", UserID: "alice", VehicleID: "BIKE01", Status: domain.RentalStatusActive, TotalCostCents: 5000,
			StartDate: day(2000, 1, 1), EndDate: day(2100, 1, 1)},
		{ID: "R00003", UserID: "acme", VehicleID: "TRK01", Status: domain.RentalStatusReturned, TotalCostCents: 100},
	}
	st, _ := newTestStore(t, snap)
	svc := NewUserService(st)

	dash, err := svc.GetDashboard(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, dash.TotalRentals)
	assert.Len(t, dash.ActiveRentals, 1)
	assert.Equal(t, int64(9000), dash.TotalSpentCents)
	assert.Nil(t, dash.Fleet)

	staffDash, err := svc.GetDashboard(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, staffDash.Fleet)
	assert.Equal(t, 3, staffDash.Fleet.Vehicles)
	assert.Equal(t, 1, staffDash.Fleet.ActiveRentals)
	assert.Equal(t, 1, staffDash.Fleet.RentedToday)

	_, err = svc.GetDashboard(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/store"
	"fleetrent-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// NewUserInput carries the fields staff supply when creating an account
type NewUserInput struct {
	ID          string
	Password    string
	Role        domain.Role
	Name        string
	ContactInfo string
	Individual  *domain.IndividualProfile
	Corporate   *domain.CorporateProfile
	Staff       *domain.StaffProfile
}

// Dashboard summarises a user's activity. Staff additionally get fleet totals.
type Dashboard struct {
	User            *domain.User    `json:"user"`
	ActiveRentals   []domain.Rental `json:"active_rentals"`
	TotalRentals    int             `json:"total_rentals"`
	TotalSpentCents int64           `json:"total_spent_cents"`
	Fleet           *FleetSummary   `json:"fleet,omitempty"`
}

type FleetSummary struct {
	Vehicles      int `json:"vehicles"`
	RentedToday   int `json:"rented_today"`
	Users         int `json:"users"`
	Rentals       int `json:"rentals"`
	ActiveRentals int `json:"active_rentals"`
}

type userService struct {
	store *store.Store
}

func NewUserService(st *store.Store) UserService {
	return &userService{store: st}
}

func (s *userService) CreateUser(ctx context.Context, input NewUserInput) (*domain.User, error) {
	logger.EnterMethod("userService.CreateUser", "userID", input.ID, "role", input.Role)

	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidEntity, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           strings.TrimSpace(input.ID),
		PasswordHash: string(hash),
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
		ContactInfo:  strings.TrimSpace(input.ContactInfo),
		CreatedOn:    time.Now().UTC(),
		Individual:   input.Individual,
		Corporate:    input.Corporate,
		Staff:        input.Staff,
	}
	if err := domain.ValidateUser(&user); err != nil {
		logger.ExitMethodWithError("userService.CreateUser", err, "userID", input.ID)
		return nil, err
	}

	err = s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindUser(user.ID) != nil {
			return fmt.Errorf("%w: user %s", domain.ErrDuplicateID, user.ID)
		}
		snap.Users = append(snap.Users, user.Clone())
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("userService.CreateUser", err, "userID", input.ID)
		return nil, err
	}

	logger.Info("User created", "userID", user.ID, "role", user.Role)
	logger.ExitMethod("userService.CreateUser", "userID", user.ID)
	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		u := snap.FindUser(id)
		if u == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		user = u.Clone()
		return nil
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users sorted by id, optionally filtered by role
func (s *userService) ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		for _, u := range snap.Users {
			if role == "" || u.Role == role {
				users = append(users, u.Clone())
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// DeleteUser removes an account. Staff may not delete themselves and users
// holding active rentals cannot be removed; rental history is kept.
func (s *userService) DeleteUser(ctx context.Context, actorID, userID string) error {
	logger.EnterMethod("userService.DeleteUser", "actorID", actorID, "userID", userID)
	if actorID == userID {
		logger.ExitMethodWithError("userService.DeleteUser", domain.ErrSelfDeletion, "userID", userID)
		return domain.ErrSelfDeletion
	}

	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindUser(userID) == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		if n := snap.CountActiveForUser(userID); n > 0 {
			return fmt.Errorf("%w: user %s holds %d active rentals", domain.ErrHasActiveRentals, userID, n)
		}
		snap.RemoveUser(userID)
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("userService.DeleteUser", err, "userID", userID)
		return err
	}

	logger.Info("User deleted", "userID", userID, "by", actorID)
	logger.ExitMethod("userService.DeleteUser", "userID", userID)
	return nil
}

func (s *userService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var dash *Dashboard
	today := utils.Today()
	if err := s.store.Read(func(snap *domain.Snapshot) error {
		u := snap.FindUser(userID)
		if u == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		c := u.Clone()
		dash = &Dashboard{User: &c, ActiveRentals: []domain.Rental{}}
		for _, r := range snap.Rentals {
			if r.UserID != userID {
				continue
			}
			dash.TotalRentals++
			if r.IsActive() {
				dash.ActiveRentals = append(dash.ActiveRentals, r.Clone())
			} else {
				dash.TotalSpentCents += r.TotalCostCents
			}
		}
		if u.IsStaff() {
			fleet := &FleetSummary{
				Vehicles: len(snap.Vehicles),
				Users:    len(snap.Users),
				Rentals:  len(snap.Rentals),
			}
			for _, r := range snap.Rentals {
				if r.IsActive() {
					fleet.ActiveRentals++
				}
			}
			for _, v := range snap.Vehicles {
				if utils.VehicleStatusOn(snap.Rentals, v.ID, today) == domain.VehicleStatusRented {
					fleet.RentedToday++
				}
			}
			dash.Fleet = fleet
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return dash, nil
}

package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	entityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,20}$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,19}$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
			return entityIDPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
			v := strings.TrimSpace(fl.Field().String())
			if strings.Contains(v, "@") {
				return validate.Var(v, "email") == nil
			}
			return phonePattern.MatchString(v)
		})
	})
	return validate
}

// IsEmail reports whether contact info holds an email address.
func IsEmail(contact string) bool {
	return strings.Contains(contact, "@") && getValidator().Var(contact, "email") == nil
}

// ValidateUser checks field rules and that exactly the profile matching the
// role is present.
func ValidateUser(u *User) error {
	if err := getValidator().Struct(u); err != nil {
		return wrapValidation(err)
	}
	set := 0
	for _, present := range []bool{u.Individual != nil, u.Corporate != nil, u.Staff != nil} {
		if present {
			set++
		}
	}
	ok := set == 1 &&
		(u.Role != RoleIndividual || u.Individual != nil) &&
		(u.Role != RoleCorporate || u.Corporate != nil) &&
		(u.Role != RoleStaff || u.Staff != nil)
	if !ok {
		return fmt.Errorf("%w: profile does not match role %s", ErrInvalidEntity, u.Role)
	}
	return nil
}

// ValidateVehicle checks field rules and that exactly the details matching the
// vehicle type is present.
func ValidateVehicle(v *Vehicle) error {
	if err := getValidator().Struct(v); err != nil {
		return wrapValidation(err)
	}
	set := 0
	for _, present := range []bool{v.Car != nil, v.Motorbike != nil, v.Truck != nil} {
		if present {
			set++
		}
	}
	ok := set == 1 &&
		(v.Type != VehicleTypeCar || v.Car != nil) &&
		(v.Type != VehicleTypeMotorbike || v.Motorbike != nil) &&
		(v.Type != VehicleTypeTruck || v.Truck != nil)
	if !ok {
		return fmt.Errorf("%w: type details do not match type %s", ErrInvalidEntity, v.Type)
	}
	return validateYearVsRate(v, time.Now().UTC().Year())
}

// validateYearVsRate rejects daily rates that are unrealistic for the
// vehicle's age relative to currentYear.
func validateYearVsRate(v *Vehicle, currentYear int) error {
	rate := v.DailyRateCents
	switch {
	case v.Year > currentYear && rate < 5000:
		return fmt.Errorf("%w: future model vehicles must rent for at least 50.00 per day", ErrInvalidEntity)
	case v.Year < 2000 && rate > 20000:
		return fmt.Errorf("%w: vehicles older than 2000 cannot rent for more than 200.00 per day", ErrInvalidEntity)
	case v.Year >= currentYear-2 && rate > 50000:
		return fmt.Errorf("%w: daily rate exceeds 500.00 for a new vehicle", ErrInvalidEntity)
	case v.Year < currentYear-10 && rate < 2000:
		return fmt.Errorf("%w: vehicles over ten years old must rent for at least 20.00 per day", ErrInvalidEntity)
	}
	return nil
}

func wrapValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", e.Namespace(), e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidEntity, strings.Join(msgs, "; "))
}

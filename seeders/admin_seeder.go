package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdminSeed struct {
	EmpNo     string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// SeedAdmin creates the bootstrap administrator unless an employee with the
// same email already exists.
func SeedAdmin(ctx context.Context, db repositories.DBPool, seed AdminSeed, logger *zap.Logger) error {
	log.Println("  - Creating bootstrap admin...")

	repo := repositories.NewEmployeeRepository(db, logger)
	if _, err := repo.FindByEmail(ctx, seed.Email); err == nil {
		log.Println("    - Admin already exists, skipping.")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := utils.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	birthDate := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	admin := &entities.Employee{
		EmpNo:     seed.EmpNo,
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		Profile: entities.EmployeeProfile{
			BirthDate:  &birthDate,
			BloodGroup: constants.UnknownBloodGroup,
		},
		Job: entities.EmployeeJob{
			Designation:  "Administrator",
			IsAdmin:      true,
			PasswordHash: hash,
		},
		Contact: entities.EmployeeContact{Email: seed.Email},
		Status: entities.EmployeeStatus{
			WorkingHours: constants.DefaultWorkingHours,
			Status:       constants.EmployeeStatusActive,
		},
	}

	txManager := repositories.NewTxManager(db)
	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		_, err := repo.Create(ctx, tx, admin)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("    - Admin %s created.", seed.Email)
	return nil
}

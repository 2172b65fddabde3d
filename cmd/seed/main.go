package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/paywise-hr/payroll-backend-go/internal/config"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
)

// Seeds one admin account and a batch of demo employees with random
// salaries. Re-running skips usernames that already exist.
func main() {
	employeeCount := flag.Int("employees", 100, "number of demo employees to seed")
	adminPassword := flag.String("admin-password", "admin123", "password for the seeded admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedAdmin(ctx, db, *adminPassword); err != nil {
		log.Fatal("Error seeding admin: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	seeded := 0
	for i := 1; i <= *employeeCount; i++ {
		username := fmt.Sprintf("employee%03d", i)

		hash, err := bcrypt.GenerateFromPassword([]byte(username+"pass"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Error hashing password: ", err)
		}

		// Monthly salaries between 3,000.00 and 12,000.00.
		salary := decimal.NewFromInt(int64(3000 + rand.Intn(9001))).Round(2)

		_, err = employeeRepo.Create(ctx, employee.Employee{
			Username:     username,
			PasswordHash: string(hash),
			FullName:     fmt.Sprintf("Demo Employee %03d", i),
			Salary:       salary,
			CreatedBy:    "seeder",
			UpdatedBy:    "seeder",
			RequestIP:    "127.0.0.1",
		})
		if err != nil {
			if errors.Is(err, employee.ErrUsernameExists) {
				continue
			}
			log.Fatal("Error seeding employee: ", err)
		}
		seeded++
	}

	fmt.Printf("Seeded %d employees\n", seeded)
}

func seedAdmin(ctx context.Context, db *database.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO admins (username, password_hash, full_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`
	_, err = db.Pool.Exec(ctx, query, "admin", string(hash), "Payroll Administrator")
	if err != nil {
		return err
	}

	fmt.Println("Seeded admin account")
	return nil
}

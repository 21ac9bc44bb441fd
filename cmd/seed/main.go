package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"studenthub/internal/config"
	"studenthub/internal/db"
	"studenthub/internal/model"
	"studenthub/internal/repository"
)

// seedPassword is the shared plaintext for all demo accounts.
const seedPassword = "changeme123"

var seedUsers = []model.User{
	{
		Username:      "alice.j",
		FullName:      "Alice Johnson",
		DateOfBirth:   "2004-03-12",
		Gender:        "female",
		ContactNumber: "+1-555-0101",
		Email:         "alice.johnson@example.edu",
		ParentDetails: model.ParentDetails{
			FatherName:    "Mark Johnson",
			MotherName:    "Sarah Johnson",
			ContactNumber: "+1-555-0102",
			Email:         "johnsons@example.com",
		},
		Address: model.Address{
			Street:     "14 Maple Street",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62704",
		},
		StudentInfo: model.StudentInfo{
			RollNumber:             "CS-2022-014",
			Department:             "Computer Science",
			Program:                "BSc",
			EnrollmentYear:         2022,
			ExpectedGraduationYear: 2026,
		},
	},
	{
		Username:      "rahul.v",
		FullName:      "Rahul Verma",
		DateOfBirth:   "2003-11-02",
		Gender:        "male",
		ContactNumber: "+91-98100-22334",
		Email:         "rahul.verma@example.edu",
		ParentDetails: model.ParentDetails{
			FatherName:    "Anil Verma",
			MotherName:    "Priya Verma",
			ContactNumber: "+91-98100-22335",
			Email:         "vermas@example.com",
		},
		Address: model.Address{
			Street:     "221 Lake Road",
			City:       "Pune",
			State:      "Maharashtra",
			PostalCode: "411001",
		},
		StudentInfo: model.StudentInfo{
			RollNumber:             "EE-2021-087",
			Department:             "Electrical Engineering",
			Program:                "BTech",
			EnrollmentYear:         2021,
			ExpectedGraduationYear: 2025,
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	created := 0
	for i := range seedUsers {
		user := seedUsers[i]
		if _, err := repo.FindByUsername(ctx, user.Username); err == nil {
			log.Printf("skip %s: already exists", user.Username)
			continue
		}
		user.PasswordHash = string(hashed)
		if err := repo.Create(ctx, &user); err != nil {
			log.Fatalf("create %s: %v", user.Username, err)
		}
		log.Printf("created %s (%s)", user.Username, user.ID)
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, len(seedUsers)-created)
}

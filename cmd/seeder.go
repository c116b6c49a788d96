package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a sample org chart",
	Long:  `Seed the database with a sample reporting hierarchy for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "leave_requests", "attendance_records", "users"} {
				if err := gormDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		cost := cfg.Security.BCryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		managerID := "u-manager"
		teamLeadID := "u-teamlead"

		users := []directory.User{
			{ID: "u-admin", Username: "admin", FullName: "Ava Admin", Role: directory.RoleAdmin, Department: "Operations", ShiftStartTime: "09:00"},
			{ID: "u-hr", Username: "hr", FullName: "Harper Reyes", Role: directory.RoleHR, Department: "People", ShiftStartTime: "09:00"},
			{ID: managerID, Username: "manager", FullName: "Morgan Vale", Role: directory.RoleManager, Department: "Engineering", ShiftStartTime: "08:30"},
			{ID: teamLeadID, Username: "teamlead", FullName: "Tam Linh", Role: directory.RoleTeamLead, Department: "Engineering", ShiftStartTime: "09:00", ManagerID: &managerID},
			{ID: "u-staff1", Username: "staff1", FullName: "Sam Okafor", Role: directory.RoleStaff, Department: "Engineering", ShiftStartTime: "09:00", TeamLeadID: &teamLeadID, ManagerID: &managerID},
			{ID: "u-staff2", Username: "staff2", FullName: "Sasha Imai", Role: directory.RoleStaff, Department: "Engineering", ShiftStartTime: "10:00", TeamLeadID: &teamLeadID, ManagerID: &managerID},
		}

		for i := range users {
			users[i].PasswordHash = string(hash)
			users[i].IsActive = true

			var exists int64
			if err := gormDB.Model(&directory.User{}).Where("username = ?", users[i].Username).Count(&exists).Error; err != nil {
				log.Fatalf("failed to check user %s: %v", users[i].Username, err)
			}
			if exists > 0 {
				fmt.Printf("user %s already exists, skipping\n", users[i].Username)
				continue
			}
			if err := gormDB.Create(&users[i]).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", users[i].Username, err)
			}
			fmt.Printf("Seeded user %s (%s)\n", users[i].Username, users[i].Role)
		}

		fmt.Println("Seeding complete. All seed accounts use password \"password\".")
	},
}

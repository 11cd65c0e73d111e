package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohspitality/hospitality-management/internal/auth"
	rbacmodel "github.com/mohspitality/hospitality-management/internal/core/datamodel/rbac"
	"github.com/mohspitality/hospitality-management/internal/rbac"
	rbacpg "github.com/mohspitality/hospitality-management/internal/rbac/postgres"
	"github.com/mohspitality/hospitality-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo hotel company, staff, roles, outlets and QR code limits for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		pool, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(pool)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		// The catalog has to exist before any role snapshot can reference it.
		catalog := rbac.NewCatalog(rbacpg.NewRepository(db), logger.LoggerWrapper())
		if _, err := catalog.Reconcile(context.Background()); err != nil {
			log.Fatalf("failed to reconcile permission catalog: %v", err)
		}
		fmt.Println("Permission catalog reconciled")

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		companyEmail := "owner@demohotel.com"
		companyID := seedUser(db, companyEmail, string(hash), "company", nil, "premium")

		var profileExists int
		if err := db.Raw("SELECT 1 FROM company_profiles WHERE user_id = ?", companyID).Row().Scan(&profileExists); err != nil {
			if err := db.Exec(
				"INSERT INTO company_profiles (user_id, company_name, phone_number, address, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				companyID, "Demo Grand Hotel", "+6281200001111", "Jl. Pantai Kuta No. 1, Bali",
			).Error; err != nil {
				log.Fatalf("failed to insert company profile: %v", err)
			}
			fmt.Println("Seeded company profile: Demo Grand Hotel")
		}

		managerRoleID := seedRole(db, companyID, "manager", rbac.AllPermissionNames())
		waiterRoleID := seedRole(db, companyID, "waiter", []string{
			"view_orders", "update_orders", "view_departments", "view_outlets",
		})

		managerEmail := "manager@demohotel.com"
		managerID := seedUser(db, managerEmail, string(hash), "staff", &companyID, "premium")
		seedUserProfile(db, managerID, "Made Manager", "front desk")
		assignRole(db, managerID, managerRoleID)

		waiterEmail := "waiter@demohotel.com"
		waiterID := seedUser(db, waiterEmail, string(hash), "staff", &companyID, "premium")
		seedUserProfile(db, waiterID, "Wati Waiter", "service")
		assignRole(db, waiterID, waiterRoleID)

		departments := []string{"housekeeping", "kitchen", "front desk"}
		for _, name := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM departments WHERE company_id = ? AND name = ?", companyID, name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (name, company_id, created_at, updated_at) VALUES (?, ?, now(), now())", name, companyID).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", name, err)
			}
			fmt.Printf("Seeded department: %s\n", name)
		}

		outlets := []struct {
			Name string
			Type string
		}{
			{"main restaurant", "restaurant"},
			{"tower room service", "room_service"},
		}
		for _, o := range outlets {
			var exists int
			if err := db.Raw("SELECT 1 FROM outlets WHERE company_id = ? AND name = ?", companyID, o.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO outlets (name, company_id, outlet_type, created_at, updated_at) VALUES (?, ?, ?, now(), now())", o.Name, companyID, o.Type).Error; err != nil {
				log.Fatalf("failed to insert outlet %s: %v", o.Name, err)
			}
			fmt.Printf("Seeded outlet: %s (%s)\n", o.Name, o.Type)
		}

		var nopostExists int
		if err := db.Raw("SELECT 1 FROM no_post_list WHERE company_id = ?", companyID).Row().Scan(&nopostExists); err != nil {
			if err := db.Exec("INSERT INTO no_post_list (company_id, items, created_at, updated_at) VALUES (?, ?, now(), now())", companyID, "101,102,305").Error; err != nil {
				log.Fatalf("failed to insert no-post list: %v", err)
			}
			fmt.Println("Seeded no-post list: 101,102,305")
		}

		// Subscription tiers without a row are uncapped on purpose.
		limits := []struct {
			Subscription string
			MaxBatches   int
		}{
			{"trial", 3},
			{"basic", 10},
			{"premium", 25},
		}
		for _, l := range limits {
			var exists int
			if err := db.Raw("SELECT 1 FROM qrcode_limits WHERE subscription_type = ?", l.Subscription).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO qrcode_limits (subscription_type, max_batches) VALUES (?, ?)", l.Subscription, l.MaxBatches).Error; err != nil {
				log.Fatalf("failed to insert qrcode limit %s: %v", l.Subscription, err)
			}
			fmt.Printf("Seeded qrcode limit: %s -> %d batches\n", l.Subscription, l.MaxBatches)
		}

		fmt.Println("Seeding finished. Demo logins (password 'password'):", companyEmail+",", managerEmail+",", waiterEmail)
	},
}

func seedUser(db *gorm.DB, email, passwordHash, userType string, companyID *string, subscription string) string {
	var id string
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Printf("User %s already exists\n", email)
		return id
	}

	id = auth.NewUserID()
	if err := db.Exec(
		"INSERT INTO users (id, email, password_hash, user_type, company_id, subscription_type, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
		id, email, passwordHash, userType, companyID, subscription,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Printf("Seeded %s user: %s\n", userType, email)
	return id
}

func seedUserProfile(db *gorm.DB, userID, fullName, department string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM user_profiles WHERE user_id = ?", userID).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec(
		"INSERT INTO user_profiles (user_id, full_name, department, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
		userID, fullName, department,
	).Error; err != nil {
		log.Fatalf("failed to insert profile for %s: %v", fullName, err)
	}
	fmt.Printf("Seeded profile: %s\n", fullName)
}

// seedRole inserts a role whose snapshot is built from the live permissions
// table, the same way the role service does it.
func seedRole(db *gorm.DB, companyID, name string, permissionNames []string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM roles WHERE company_id = ? AND name = ?", companyID, name).Row().Scan(&id); err == nil {
		fmt.Printf("Role %s already exists\n", name)
		return id
	}

	snapshot := make(rbacmodel.PermissionList, 0, len(permissionNames))
	for _, permName := range permissionNames {
		var p rbacmodel.PermissionSnapshot
		row := db.Raw("SELECT id, name, description FROM permissions WHERE name = ?", permName).Row()
		if err := row.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			log.Fatalf("permission %s not found for role %s: %v", permName, name, err)
		}
		snapshot = append(snapshot, p)
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		log.Fatalf("failed to marshal snapshot for role %s: %v", name, err)
	}

	if err := db.Exec(
		"INSERT INTO roles (name, company_id, user_permissions, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
		name, companyID, string(raw),
	).Error; err != nil {
		log.Fatalf("failed to insert role %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM roles WHERE company_id = ? AND name = ?", companyID, name).Row().Scan(&id); err != nil {
		log.Fatalf("role %s not found after insert: %v", name, err)
	}
	fmt.Printf("Seeded role: %s (%d permissions)\n", name, len(snapshot))
	return id
}

func assignRole(db *gorm.DB, userID string, roleID int64) {
	if err := db.Exec("UPDATE users SET role_id = ?, updated_at = now() WHERE id = ?", roleID, userID).Error; err != nil {
		log.Fatalf("failed to assign role %d to user %s: %v", roleID, userID, err)
	}
}

// clearSeedData wipes tenant data in dependency order. The permission
// catalog and subscription limits stay; they are reference data.
func clearSeedData(db *gorm.DB) {
	tables := []string{
		"password_resets",
		"refresh_tokens",
		"qrcode_batches",
		"no_post_list",
		"outlets",
		"departments",
		"user_profiles",
		"company_profiles",
		"users",
		"roles",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

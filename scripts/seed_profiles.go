// Seeds member profiles from a YAML file into the sqlite database. Meant
// for provisioning a fresh install; existing profiles are updated in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"estudio/internal/database"
	"estudio/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type seedProfile struct {
	ID           string `yaml:"id"`
	FullName     string `yaml:"full_name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	MonthlyHours int    `yaml:"monthly_hours"`
	DailyHours   int    `yaml:"daily_hours"`
	Role         string `yaml:"role"`
}

type seedConfig struct {
	Profiles []seedProfile `yaml:"profiles"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("profiles", "configs/profiles.yaml", "path to profiles.yaml")
		dbPath   = flag.String("db", "./data/estudio.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}

	var seed seedConfig
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}
	if len(seed.Profiles) == 0 {
		return fmt.Errorf("no profiles found in %s", *seedPath)
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, updated := 0, 0
	for _, entry := range seed.Profiles {
		if entry.ID == "" {
			return fmt.Errorf("profile %q has no id", entry.FullName)
		}

		monthly := entry.MonthlyHours
		if monthly == 0 {
			monthly = models.DefaultMonthlyHoursLimit
		}
		daily := entry.DailyHours
		if daily == 0 {
			daily = models.DefaultDailyHoursLimit
		}

		profile := &models.Profile{
			ID:                entry.ID,
			FullName:          entry.FullName,
			Email:             entry.Email,
			Phone:             entry.Phone,
			MonthlyHoursLimit: monthly,
			DailyHoursLimit:   daily,
		}

		existing, err := db.GetProfile(ctx, entry.ID)
		if err != nil {
			return fmt.Errorf("get profile %s: %w", entry.ID, err)
		}
		if existing == nil {
			if err := db.CreateProfile(ctx, profile); err != nil {
				return fmt.Errorf("create profile %s: %w", entry.ID, err)
			}
			created++
		} else {
			profile.HoursUsedThisMonth = existing.HoursUsedThisMonth
			profile.HoursResetDate = existing.HoursResetDate
			if err := db.UpdateProfile(ctx, profile); err != nil {
				return fmt.Errorf("update profile %s: %w", entry.ID, err)
			}
			updated++
		}

		if entry.Role != "" {
			if entry.Role != models.RoleAdmin && entry.Role != models.RoleMember {
				return fmt.Errorf("profile %s has unknown role %q", entry.ID, entry.Role)
			}
			if err := db.SetRole(ctx, entry.ID, entry.Role); err != nil {
				return fmt.Errorf("set role for %s: %w", entry.ID, err)
			}
		}
	}

	logger.Info().Int("created", created).Int("updated", updated).Msg("profiles seeded")
	return nil
}

// Command seed loads the sample events into the configured database and can
// create or promote an admin account.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ecell/portal-api/internal/api"
	"github.com/ecell/portal-api/internal/config"
	"github.com/ecell/portal-api/internal/db"
	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/logger"
	"github.com/ecell/portal-api/internal/repository/dao"
	"github.com/ecell/portal-api/internal/service"
)

var errMissingAdminPassword = errors.New("--admin-password is required to create a new admin account")

type options struct {
	configPath    string
	reset         bool
	skipEvents    bool
	adminEmail    string
	adminPassword string
	adminName     string
	adminRoll     string
}

func main() {
	opts := parseFlags(os.Args[1:])

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) options {
	var opts options

	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "./cmd/app/config.yml", "path of the API config file")
	fs.BoolVar(&opts.reset, "reset", false, "delete every existing event before seeding")
	fs.BoolVar(&opts.skipEvents, "skip-events", false, "do not insert the sample events")
	fs.StringVar(&opts.adminEmail, "admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "email of the admin account to create or promote")
	fs.StringVar(&opts.adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password used when the admin account is created")
	fs.StringVar(&opts.adminName, "admin-name", "E-Cell Admin", "name used when the admin account is created")
	fs.StringVar(&opts.adminRoll, "admin-roll-number", "ADMIN-001", "roll number used when the admin account is created")
	_ = fs.Parse(args)

	return opts
}

func run(opts options) error {
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}
	defer logger.Sync()

	gormDB, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("db.Open -> %w", err)
	}
	defer db.Close(gormDB)

	if err = dao.InitTables(gormDB); err != nil {
		return fmt.Errorf("dao.InitTables -> %w", err)
	}

	ctx := context.Background()
	services := api.NewServices(gormDB)

	var creatorID uint
	if opts.adminEmail != "" {
		admin, err := ensureAdmin(ctx, services, opts)
		if err != nil {
			return err
		}
		creatorID = admin.ID
	}

	if opts.reset {
		n, err := services.Events.DeleteAllEvents(ctx)
		if err != nil {
			return fmt.Errorf("services.Events.DeleteAllEvents -> %w", err)
		}
		zap.L().Info("cleared existing events", zap.Int64("count", n))
	}

	if opts.skipEvents {
		return nil
	}

	for i, event := range sampleEvents() {
		created, err := services.Events.CreateEvent(ctx, event, creatorID)
		if err != nil {
			return fmt.Errorf("services.Events.CreateEvent(%q) -> %w", event.Title, err)
		}
		zap.L().Info(fmt.Sprintf("%d. %s - %s", i+1, created.Title, created.Date.Format("Mon Jan 02 2006")))
	}

	return nil
}

// ensureAdmin promotes the account with the admin email, creating it first
// when it does not exist.
func ensureAdmin(ctx context.Context, services *api.Services, opts options) (domain.User, error) {
	user, err := services.Users.GetUserByEmail(ctx, opts.adminEmail)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		if opts.adminPassword == "" {
			return domain.User{}, errMissingAdminPassword
		}

		user, err = services.Auth.Signup(ctx, domain.User{
			Email:      opts.adminEmail,
			Password:   opts.adminPassword,
			Name:       opts.adminName,
			RollNumber: opts.adminRoll,
			Branch:     "Administration",
			Year:       1,
			Phone:      "0000000000",
		})
		if err != nil {
			return domain.User{}, fmt.Errorf("services.Auth.Signup -> %w", err)
		}
		zap.L().Info("created admin account", zap.String("email", user.Email))
	default:
		return domain.User{}, fmt.Errorf("services.Users.GetUserByEmail -> %w", err)
	}

	if user.IsAdmin() {
		return user, nil
	}

	user, err = services.Users.UpdateRole(ctx, user.ID, domain.RoleAdmin)
	if err != nil {
		return domain.User{}, fmt.Errorf("services.Users.UpdateRole -> %w", err)
	}
	zap.L().Info("promoted account to admin", zap.String("email", user.Email))

	return user, nil
}

func sampleEvents() []domain.Event {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	return []domain.Event{
		{
			Title:           "Startup Pitch Competition 2025",
			Description:     "Present your innovative startup idea to industry experts and investors. Win prizes worth ₹50,000!",
			Date:            date("2025-12-15"),
			Time:            "10:00 AM - 4:00 PM",
			Venue:           "Auditorium, Block A",
			Type:            domain.EventTypeCompetition,
			MaxParticipants: 50,
		},
		{
			Title:           "Entrepreneurship Workshop",
			Description:     "Learn the fundamentals of starting and scaling your own business from successful entrepreneurs.",
			Date:            date("2025-12-20"),
			Time:            "2:00 PM - 5:00 PM",
			Venue:           "Seminar Hall, Block B",
			Type:            domain.EventTypeWorkshop,
			MaxParticipants: 100,
		},
		{
			Title:           "Networking Meetup",
			Description:     "Connect with fellow entrepreneurs, investors, and mentors in an informal setting.",
			Date:            date("2025-12-25"),
			Time:            "6:00 PM - 8:00 PM",
			Venue:           "Cafeteria",
			Type:            domain.EventTypeNetworking,
			MaxParticipants: 80,
		},
		{
			Title:           "Innovation Summit 2025",
			Description:     "Annual summit featuring keynote speakers from top tech companies and startups.",
			Date:            date("2026-01-10"),
			Time:            "9:00 AM - 6:00 PM",
			Venue:           "Main Auditorium",
			Type:            domain.EventTypeSeminar,
			MaxParticipants: 200,
		},
	}
}

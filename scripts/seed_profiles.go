package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/adapters/persistence"
	profileUC "github.com/khoahotran/profile-directory/internal/application/usecase/profile"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

func strPtr(s string) *string { return &s }

var seedProfiles = []profile.CreateInput{
	{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Skills: []string{"Mathematics", "Go", "Algorithms"},
		Education: []profile.EducationEntry{{
			Institution: "University of London",
			Degree:      "BSc",
			Field:       "Mathematics",
			StartDate:   "1832-01-01",
			EndDate:     "1835-01-01",
		}},
		Links: &profile.LinkSet{
			GitHub:    "https://github.com/ada",
			LinkedIn:  "https://linkedin.com/in/ada",
			Portfolio: "https://ada.dev",
		},
	},
	{
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Skills: []string{"COBOL", "Compilers"},
		Work: []profile.WorkEntry{{
			Company:     "US Navy",
			Position:    "Rear Admiral",
			Description: "Led development of early compilers",
			StartDate:   "1943-12-01",
			Location:    "Arlington, VA",
		}},
		Links: &profile.LinkSet{
			GitHub:    "https://github.com/grace",
			LinkedIn:  "https://linkedin.com/in/grace",
			Portfolio: "https://grace.dev",
		},
	},
	{
		Name:   "Linus Torvalds",
		Email:  "linus@example.com",
		Skills: []string{"C", "Git", "Linux"},
		Projects: []profile.ProjectEntry{{
			Title:        "Linux",
			Description:  "A free operating system kernel",
			Links:        profile.ProjectLinks{GitHub: strPtr("https://github.com/torvalds/linux")},
			Technologies: []string{"C", "Assembly"},
			StartDate:    "1991-08-25",
		}},
		Links: &profile.LinkSet{
			GitHub:    "https://github.com/torvalds",
			LinkedIn:  "https://linkedin.com/in/linus",
			Portfolio: "https://kernel.org",
		},
	},
}

func main() {
	fmt.Println("seeding profiles...")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	var repo profile.Repository
	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := persistence.NewMongoDatabase(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect MongoDB", err)
		}
		defer client.Disconnect(context.Background())
		repo = persistence.NewMongoProfileRepo(db, appLogger)
	default:
		pool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Postgres", err)
		}
		defer pool.Close()
		repo = persistence.NewPostgresProfileRepo(pool, appLogger)
	}

	uc := profileUC.NewProfileUseCase(repo, appLogger)
	ctx := context.Background()

	created := 0
	for _, in := range seedProfiles {
		_, err := uc.ExecuteCreate(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperror.ErrDuplicateEmail):
			appLogger.Info("profile already present", zap.String("email", in.Email))
		default:
			appLogger.Fatal("cannot seed profile", err, zap.String("email", in.Email))
		}
	}

	fmt.Printf("seeded %d new profile(s)\n", created)
}

// Command bowlctl is the operator CLI: it exercises the gift code
// vendor directly and runs bulk contest entry against the live database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voterbowl/backend/internal/config"
	"github.com/voterbowl/backend/internal/db"
	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/logger"
	"github.com/voterbowl/backend/internal/repository"
	"github.com/voterbowl/backend/internal/repository/dao"
	"github.com/voterbowl/backend/internal/service"
	"github.com/voterbowl/backend/pkg/agcod"
	"github.com/voterbowl/backend/pkg/mailer"
	"github.com/voterbowl/backend/pkg/random"
)

func main() {
	app := &cli.App{
		Name:  "bowlctl",
		Usage: "operational tooling for the contest backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "./cmd/app/config.yml",
				Usage: "path to the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "create-gift-card",
				Usage: "mint a gift card for a given amount",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "amount", Required: true, Usage: "card value in whole dollars"},
					&cli.StringFlag{Name: "request-id", Usage: "creation request ID suffix; random when omitted"},
				},
				Action: createGiftCard,
			},
			{
				Name:  "check-gift-card",
				Usage: "re-present a creation request ID and print the card it minted",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "amount", Required: true, Usage: "card value in whole dollars"},
					&cli.StringFlag{Name: "request-id", Required: true, Usage: "full creation request ID"},
				},
				Action: checkGiftCard,
			},
			{
				Name:   "available-funds",
				Usage:  "print the vendor account balance",
				Action: availableFunds,
			},
			{
				Name:      "enter-contest",
				Usage:     "enter students into a contest by email or @suffix pattern",
				ArgsUsage: "EMAIL|@SUFFIX ...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "school", Required: true, Usage: "school slug"},
					&cli.UintFlag{Name: "contest", Required: true, Usage: "contest ID"},
				},
				Action: enterContest,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("config.Load -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, fmt.Errorf("logger.Init -> %w", err)
	}

	return conf, nil
}

func newVendor(c *cli.Context) (*agcod.Client, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	vendor, err := agcod.New(conf.AGCOD)
	if err != nil {
		return nil, fmt.Errorf("agcod.New -> %w", err)
	}

	return vendor, nil
}

func openDB(conf *config.AppConfig) (*gorm.DB, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return db.OpenPostgresWithURL(url)
	}

	return db.OpenPostgres(conf.Postgres)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent -> %w", err)
	}

	fmt.Println(string(out))

	return nil
}

func createGiftCard(c *cli.Context) error {
	vendor, err := newVendor(c)
	if err != nil {
		return err
	}

	suffix := c.String("request-id")
	if suffix == "" {
		suffix = random.Token(32)
	}

	resp, err := vendor.CreateGiftCard(context.Background(), c.Int("amount"), vendor.MakeRequestID(suffix), "")
	if err != nil {
		return fmt.Errorf("vendor.CreateGiftCard -> %w", err)
	}

	return printJSON(resp)
}

func checkGiftCard(c *cli.Context) error {
	vendor, err := newVendor(c)
	if err != nil {
		return err
	}

	resp, err := vendor.CheckGiftCard(context.Background(), c.Int("amount"), c.String("request-id"), "")
	if err != nil {
		return fmt.Errorf("vendor.CheckGiftCard -> %w", err)
	}

	return printJSON(resp)
}

func availableFunds(c *cli.Context) error {
	vendor, err := newVendor(c)
	if err != nil {
		return err
	}

	resp, err := vendor.GetAvailableFunds(context.Background())
	if err != nil {
		return fmt.Errorf("vendor.GetAvailableFunds -> %w", err)
	}

	return printJSON(resp)
}

// enterContest enters every named student into the contest. Arguments
// starting with "@" match all existing students whose stored email ends
// with that suffix. Students already entered keep their original roll.
func enterContest(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one EMAIL or @SUFFIX argument is required")
	}

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	gormDB, err := openDB(conf)
	if err != nil {
		return fmt.Errorf("openDB -> %w", err)
	}

	vendor, err := agcod.New(conf.AGCOD)
	if err != nil {
		return fmt.Errorf("agcod.New -> %w", err)
	}

	m, err := mailer.NewSES(conf.Email)
	if err != nil {
		return fmt.Errorf("mailer.NewSES -> %w", err)
	}

	schoolRepo := repository.NewSchoolRepository(dao.NewSchoolDAO(gormDB))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(gormDB))
	studentRepo := repository.NewStudentRepository(dao.NewStudentDAO(gormDB))
	entryRepo := repository.NewContestEntryRepository(dao.NewContestEntryDAO(gormDB))
	linkRepo := repository.NewValidationLinkRepository(dao.NewValidationLinkDAO(gormDB))

	prizes := service.NewPrizeService(entryRepo, studentRepo, vendor, m, zap.L())
	validation := service.NewValidationService(linkRepo, studentRepo, schoolRepo, prizes, m, zap.L(), conf.API.BaseURL)

	ctx := context.Background()

	school, err := schoolRepo.FindBySlug(ctx, c.String("school"))
	if err != nil {
		return fmt.Errorf("schoolRepo.FindBySlug -> %w", err)
	}

	contest, err := contestRepo.FindByID(ctx, uint(c.Uint("contest")))
	if err != nil {
		return fmt.Errorf("contestRepo.FindByID -> %w", err)
	}

	// Force entries land at the contest's opening instant so they count
	// even when the window has since closed.
	now := contest.StartAt

	var students []domain.Student
	for _, arg := range c.Args().Slice() {
		if strings.HasPrefix(arg, "@") {
			matched, err := studentRepo.FindByEmailSuffix(ctx, school.ID, arg)
			if err != nil {
				return fmt.Errorf("studentRepo.FindByEmailSuffix -> %w", err)
			}
			students = append(students, matched...)
			continue
		}

		matched, err := studentRepo.FindByEmail(ctx, school.ID, arg)
		if err != nil {
			return fmt.Errorf("studentRepo.FindByEmail -> %w", err)
		}
		if len(matched) == 0 {
			fmt.Printf("SKIPPED  %v (no such student)\n", arg)
			continue
		}
		students = append(students, matched...)
	}

	for _, student := range students {
		entry, isNew, err := prizes.EnterContest(ctx, student, contest, now)
		if err != nil {
			return fmt.Errorf("prizes.EnterContest(%v) -> %w", student.Email, err)
		}

		status := "ALREADY"
		if isNew {
			status = "ENTERED"
		}
		if entry.IsWinner() {
			status += " WINNER"
		}
		fmt.Printf("%-15v %v\n", status, student.Email)

		if isNew && entry.IsWinner() {
			link, err := validation.IssueLink(ctx, school, student, student.Email, &entry)
			if err != nil {
				return fmt.Errorf("validation.IssueLink(%v) -> %w", student.Email, err)
			}
			fmt.Printf("\t--> email sent: %v\n", link.RelativeURL(school.Slug))
		}
	}

	return nil
}

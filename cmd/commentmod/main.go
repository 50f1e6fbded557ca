// Command line tool for comment moderation housekeeping: ad-hoc spam checks,
// database seeding, and purging of hidden comments.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/commentmod/commentmod"
	"github.com/commentmod/commentmod/akismet"
	"github.com/commentmod/commentmod/commentstore"
	"github.com/commentmod/commentmod/keyword"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "commentmod",
		Usage:   "comment moderation toolkit",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			EnvVars: []string{"COMMENTMOD_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
	}

	app.Commands = []*cli.Command{
		checkCmd,
		purgeHiddenCmd,
		seedCmd,
	}

	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func openStore(cctx *cli.Context) (*commentstore.GormStore, error) {
	db, err := commentstore.OpenDatabase(cctx.String("database-url"), cctx.Int("max-db-connections"))
	if err != nil {
		return nil, err
	}
	return commentstore.NewGormStore(db)
}

var checkCmd = &cli.Command{
	Name:      "check",
	Usage:     "run comment text through a spam checker",
	ArgsUsage: `<text>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "akismet-key",
			Usage:   "Akismet API key; when set, checks against the Akismet service instead of the keyword blocklist",
			EnvVars: []string{"AKISMET_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "akismet-site",
			Usage:   "front page URL of the site the comment belongs to, required for Akismet",
			EnvVars: []string{"AKISMET_SITE_URL"},
		},
		&cli.StringFlag{
			Name:    "blocklist",
			Usage:   "file path of JSON keyword blocklist (array of strings)",
			EnvVars: []string{"COMMENTMOD_BLOCKLIST"},
		},
	},
	Action: runCheckCmd,
}

func runCheckCmd(cctx *cli.Context) error {
	ctx := context.Background()
	configLogger(cctx, os.Stdout)

	body := strings.Join(cctx.Args().Slice(), " ")
	if body == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		body = string(raw)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("need comment text to check, as arguments or on stdin")
	}

	var checker commentmod.SpamChecker
	if key := cctx.String("akismet-key"); key != "" {
		site := cctx.String("akismet-site")
		if site == "" {
			return fmt.Errorf("--akismet-site is required when checking against Akismet")
		}
		client := akismet.NewClient(key, site)
		valid, err := client.VerifyKey(ctx)
		if err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("akismet did not accept the API key")
		}
		checker = client
	} else {
		kw := keyword.NewChecker()
		if p := cctx.String("blocklist"); p != "" {
			if err := kw.LoadFromFileJSON(p); err != nil {
				return err
			}
		}
		checker = kw
	}

	cmt := &commentmod.Comment{
		Target: commentmod.TargetRef{Kind: "cli.check", Key: "adhoc"},
		Submitter: commentmod.Submitter{
			IPAddress: "127.0.0.1",
			UserAgent: "commentmod-cli/" + versioninfo.Short(),
		},
		Body:      body,
		CreatedAt: time.Now(),
		IsPublic:  true,
	}
	target := &commentmod.MockTarget{Kind: "cli.check", Key: "adhoc", Title: "ad-hoc check"}

	spam, err := checker.IsSpam(ctx, cmt, target)
	if err != nil {
		return err
	}
	if spam {
		return cli.Exit("SPAM", 1)
	}
	fmt.Println("HAM")
	return nil
}

var purgeHiddenCmd = &cli.Command{
	Name:  "purge-hidden",
	Usage: "delete old hidden comments (held for moderation, or removed) from the database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "database-url",
			Value:   "sqlite://data/commentmod/comments.sqlite",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:    "max-db-connections",
			EnvVars: []string{"MAX_DB_CONNECTIONS"},
			Value:   10,
		},
		&cli.IntFlag{
			Name:  "days",
			Usage: "only purge comments older than this many days",
			Value: 14,
		},
	},
	Action: runPurgeHiddenCmd,
}

func runPurgeHiddenCmd(cctx *cli.Context) error {
	ctx := context.Background()
	logger := configLogger(cctx, os.Stdout)

	store, err := openStore(cctx)
	if err != nil {
		return err
	}

	before := time.Now().AddDate(0, 0, -cctx.Int("days"))
	purged, err := store.PurgeHidden(ctx, before)
	if err != nil {
		return fmt.Errorf("failed purging hidden comments: %w", err)
	}
	logger.Info("purged hidden comments", "count", purged, "before", before)
	return nil
}

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "fill the database with fake comments, for development",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "database-url",
			Value:   "sqlite://data/commentmod/comments.sqlite",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:    "max-db-connections",
			EnvVars: []string{"MAX_DB_CONNECTIONS"},
			Value:   10,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of comments to generate",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "targets",
			Usage: "number of distinct targets to spread comments across",
			Value: 10,
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "content kind for the generated comments",
			Value: "blog.entry",
		},
	},
	Action: runSeedCmd,
}

func runSeedCmd(cctx *cli.Context) error {
	ctx := context.Background()
	logger := configLogger(cctx, os.Stdout)

	store, err := openStore(cctx)
	if err != nil {
		return err
	}

	kind := cctx.String("kind")
	targets := cctx.Int("targets")
	if targets < 1 {
		targets = 1
	}
	count := cctx.Int("count")

	for i := 0; i < count; i++ {
		ref := commentmod.TargetRef{
			Kind: kind,
			Key:  fmt.Sprintf("t%d", gofakeit.Number(1, targets)),
		}
		cmt := commentmod.FakeComment(ref)
		cmt.CreatedAt = time.Now().Add(-time.Duration(gofakeit.Number(0, 60*24*30)) * time.Minute)
		// hold some back, so moderation queries have something to chew on
		if gofakeit.Number(1, 10) == 1 {
			cmt.IsPublic = false
		}
		if err := store.Add(ctx, cmt); err != nil {
			return fmt.Errorf("failed seeding comments: %w", err)
		}
	}

	logger.Info("seeded comments", "count", count, "kind", kind, "targets", targets)
	return nil
}

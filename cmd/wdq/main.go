package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dinhhuy2010/wdq-go/client"
	"github.com/dinhhuy2010/wdq-go/languages"
	"github.com/dinhhuy2010/wdq-go/server"
	"github.com/dinhhuy2010/wdq-go/wdq"
)

func main() {
	godotenv.Load()

	app := cli.App{
		Name:  "wdq",
		Usage: "query wikidata entities from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				EnvVars: []string{"WDQ_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "user-agent",
				EnvVars: []string{"WDQ_USER_AGENT"},
			},
			&cli.Float64Flag{
				Name:    "rps",
				EnvVars: []string{"WDQ_RPS"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"WDQ_DEBUG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "item",
				Usage:     "fetch an item and print a summary",
				ArgsUsage: "<QID>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lang"},
				},
				Action: runItem,
			},
			{
				Name:      "property",
				Usage:     "fetch a property and print a summary",
				ArgsUsage: "<PID>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lang"},
				},
				Action: runProperty,
			},
			{
				Name:      "statements",
				Usage:     "walk the statements of an item",
				ArgsUsage: "<QID>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "property"},
					&cli.StringFlag{Name: "rank"},
				},
				Action: runStatements,
			},
			{
				Name:  "serve",
				Usage: "run the entity lookup http service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "http-addr",
						EnvVars: []string{"WDQ_HTTP_ADDR"},
						Value:   ":8080",
					},
				},
				Action: runServe,
			},
		},
	}

	app.Run(os.Args)
}

func newLogger(cmd *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func newClient(cmd *cli.Context) *client.Client {
	return client.NewClient(client.ClientArgs{
		Logger:            newLogger(cmd),
		BaseURL:           cmd.String("base-url"),
		UserAgent:         cmd.String("user-agent"),
		RequestsPerSecond: cmd.Float64("rps"),
	})
}

func requireID(cmd *cli.Context) (string, error) {
	id := cmd.Args().First()
	if id == "" {
		return "", cli.Exit("an entity id is required", 1)
	}
	return id, nil
}

func termLang(cmd *cli.Context) (string, error) {
	lang := cmd.String("lang")
	if lang != "" && !languages.IsValid(lang) {
		return "", cli.Exit(fmt.Sprintf("unknown language code %q", lang), 1)
	}
	return lang, nil
}

func printSummary(ent *wdq.Entity, lang string) error {
	labels, err := ent.Labels()
	if err != nil {
		return err
	}
	descriptions, err := ent.Descriptions()
	if err != nil {
		return err
	}
	aliases, err := ent.Aliases()
	if err != nil {
		return err
	}
	statements, err := ent.Statements()
	if err != nil {
		return err
	}

	var labelLang, label, descLang, desc string
	if lang != "" {
		labelLang, label = labels.Fallback(lang, "mul", "en")
		descLang, desc = descriptions.Fallback(lang, "mul", "en")
	} else {
		labelLang, label = labels.Fallback()
		descLang, desc = descriptions.Fallback()
	}

	fmt.Printf("%s: %s", ent.ID(), label)
	if labelLang != "" {
		fmt.Printf(" (%s)", labelLang)
	}
	fmt.Println()
	if desc != "" && descLang != "" {
		fmt.Printf("  %s\n", desc)
	}
	fmt.Printf("  %d alias(es) in %d language(s), %d statement(s) on %d property(ies)\n",
		aliases.Count(), aliases.Len(), statements.Len(), len(statements.Properties()))

	return nil
}

var runItem = func(cmd *cli.Context) error {
	qid, err := requireID(cmd)
	if err != nil {
		return err
	}
	lang, err := termLang(cmd)
	if err != nil {
		return err
	}

	item, err := newClient(cmd).Item(cmd.Context, qid)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := printSummary(&item.Entity, lang); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sitelinks, err := item.Sitelinks()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Printf("  %d sitelink(s)\n", sitelinks.Len())

	return nil
}

var runProperty = func(cmd *cli.Context) error {
	pid, err := requireID(cmd)
	if err != nil {
		return err
	}
	lang, err := termLang(cmd)
	if err != nil {
		return err
	}

	property, err := newClient(cmd).Property(cmd.Context, pid)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := printSummary(&property.Entity, lang); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	datatype, err := property.Datatype()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Printf("  datatype: %s\n", datatype)

	return nil
}

var runStatements = func(cmd *cli.Context) error {
	qid, err := requireID(cmd)
	if err != nil {
		return err
	}

	var ranks []wdq.Rank
	if rankStr := cmd.String("rank"); rankStr != "" {
		rank, err := wdq.ParseRank(rankStr)
		if err != nil {
			return cli.Exit(fmt.Sprintf("unknown rank %q", rankStr), 1)
		}
		ranks = append(ranks, rank)
	}

	item, err := newClient(cmd).Item(cmd.Context, qid)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	statements, err := item.Statements()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var stmts []wdq.Statement
	if pid := cmd.String("property"); pid != "" {
		stmts, err = statements.ByProperty(pid, ranks...)
	} else {
		stmts, err = statements.All(ranks...)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, stmt := range stmts {
		fmt.Printf("%s (%s) [%s]: %s\n", stmt.Property.ID, stmt.Property.Datatype, stmt.Rank, formatValue(stmt.Value))
	}

	return nil
}

func formatValue(v wdq.Value) string {
	switch val := v.(type) {
	case wdq.NoValue:
		return "<no value>"
	case wdq.SomeValue:
		return "<some value>"
	case wdq.ItemValue:
		return val.ID
	case wdq.ExternalIDValue:
		return val.ID
	case wdq.GenericValue:
		if s, err := val.AsString(); err == nil {
			return s
		}
		return string(val.Content)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

var runServe = func(cmd *cli.Context) error {
	ctx, cancel := context.WithCancel(cmd.Context)
	defer cancel()

	logger := newLogger(cmd)

	srv, err := server.NewServer(server.ServerArgs{
		Logger:   logger,
		HttpAddr: cmd.String("http-addr"),
		Client:   newClient(cmd),
	})
	if err != nil {
		logger.Error("error creating server", "error", err)
		return err
	}

	go func() {
		exitSigs := make(chan os.Signal, 1)
		signal.Notify(exitSigs, syscall.SIGINT, syscall.SIGTERM)

		sig := <-exitSigs

		logger.Info("received os exit signal", "signal", sig)
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Error("error running server", "error", err)
	}

	return nil
}

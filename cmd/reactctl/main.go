package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/chessreact/move-reactor/internal/advisor"
	"github.com/chessreact/move-reactor/internal/engine"
	"github.com/chessreact/move-reactor/internal/msgcat"
	"github.com/chessreact/move-reactor/internal/service/analysis"
)

func main() {
	app := &cli.App{
		Name:  "reactctl",
		Usage: "analyze a chess move from the command line",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "classify a move and print the reaction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fen", Usage: "position in FEN notation", Required: true},
					&cli.StringFlag{Name: "move", Usage: "move in SAN or UCI notation", Required: true},
					&cli.StringFlag{Name: "stockfish", Usage: "path to a UCI engine binary", EnvVars: []string{"STOCKFISH_PATH"}},
					&cli.IntFlag{Name: "depth", Usage: "engine search depth", Value: 12},
					&cli.StringFlag{Name: "templates", Usage: "directory with phrase overrides", EnvVars: []string{"TEMPLATE_DIR"}},
					&cli.BoolFlag{Name: "json", Usage: "print the full report as JSON"},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalyze(c *cli.Context) error {
	catalog, err := msgcat.New(c.String("templates"))
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}

	opts := analysis.Options{
		Catalog: catalog,
		Advisor: advisor.New(),
		Depth:   c.Int("depth"),
	}

	if path := c.String("stockfish"); path != "" {
		eval, err := engine.New(engine.Config{
			BinaryPath: path,
			Depth:      c.Int("depth"),
			Timeout:    30 * time.Second,
		}, nil)
		if err != nil {
			return fmt.Errorf("init engine: %w", err)
		}
		defer eval.Close()
		opts.Engine = eval
	}

	svc, err := analysis.New(opts)
	if err != nil {
		return err
	}

	rep, err := svc.Analyze(c.Context, c.String("fen"), c.String("move"))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("move:     %s (%s)\n", rep.NormalizedMove, rep.UCI)
	fmt.Printf("category: %s\n", rep.Category)
	fmt.Printf("reaction: %s\n", rep.Reaction)
	if rep.Summary.Available {
		fmt.Printf("engine:   tone=%s", rep.Summary.Tone)
		if rep.Summary.DeltaCP != nil {
			fmt.Printf(" delta_cp=%d", *rep.Summary.DeltaCP)
		}
		fmt.Println()
	}
	if rep.Advisory != nil {
		fmt.Printf("advisory: %s (%.0f%%)\n", rep.Advisory.Prediction, rep.Advisory.Confidence*100)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/planforge/internal/board"
	"github.com/felixgeelhaar/planforge/internal/config"
	"github.com/felixgeelhaar/planforge/internal/errors"
	"github.com/felixgeelhaar/planforge/internal/log"
	"github.com/felixgeelhaar/planforge/internal/plan"
	"github.com/felixgeelhaar/planforge/internal/provider"
	"github.com/felixgeelhaar/planforge/internal/reconcile"
	"github.com/felixgeelhaar/planforge/internal/tracker"
	"github.com/felixgeelhaar/planforge/internal/ux"
)

var (
	configFileFlag string
	modelFlag      string
	noColorFlag    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <requirements-file>",
	Short: "Extract a plan from a requirements document and apply it to GitHub",
	Long: `Read a natural-language requirements document, extract milestones and
tasks with a generative model, and create the corresponding GitHub
milestones, issues and project board items.

Milestones are matched by exact title per repository; issues are matched by
exact title among open issues sharing the same labels and milestone. Matches
are skipped, so the command is safe to re-run.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.DefaultLogger()

	cfg, err := config.Load(configFileFlag)
	if err != nil {
		return err
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}

	requirementsPath := args[0]
	requirements, err := os.ReadFile(requirementsPath)
	if err != nil {
		return errors.NewRequirementsFileError(requirementsPath, err)
	}

	gemini, err := provider.NewGeminiClient(cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer gemini.Close()

	logger.Info("extracting plan from requirements",
		"file", requirementsPath, "model", cfg.Model)

	extractor := plan.NewExtractor(gemini, cfg.Model, logger)
	extracted, err := extractor.Extract(ctx, string(requirements))
	if err != nil {
		return err
	}

	logger.Info("plan extracted",
		"milestones", len(extracted.Milestones), "tasks", len(extracted.Tasks))

	github, err := tracker.NewGitHubClient(ctx, cfg.GitHubToken)
	if err != nil {
		return err
	}

	repos := make(map[string]tracker.Repository, len(cfg.Repositories()))
	for key, name := range cfg.Repositories() {
		repos[key] = tracker.Repository{Key: key, Owner: cfg.Organization, Name: name}
	}

	linker := board.NewLinker(board.NewGHClient(logger), cfg.Organization, cfg.BoardName, logger)
	orchestrator := reconcile.NewOrchestrator(repos, github, linker, logger)

	summary, runErr := orchestrator.Run(ctx, extracted)

	if summary != nil {
		fmt.Fprint(cmd.OutOrStdout(), ux.NewSummaryRenderer(noColorFlag).Render(summary))
	}

	return runErr
}

func init() {
	generateCmd.Flags().StringVar(&configFileFlag, "config", "", "optional YAML config file overlaying the environment")
	generateCmd.Flags().StringVar(&modelFlag, "model", "", "generative model to use (default "+config.DefaultModel+")")
	generateCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddCommand(generateCmd)
}

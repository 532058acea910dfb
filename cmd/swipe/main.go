package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kokistudios/swipe/internal/deck"
	"github.com/kokistudios/swipe/internal/export"
	"github.com/kokistudios/swipe/internal/gesture"
	swipemcp "github.com/kokistudios/swipe/internal/mcp"
	"github.com/kokistudios/swipe/internal/provision"
	"github.com/kokistudios/swipe/internal/store"
	"github.com/kokistudios/swipe/internal/tui"
	"github.com/kokistudios/swipe/internal/ui"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func main() {
	var noColor bool
	var play playOptions

	rootCmd := &cobra.Command{
		Use:   "swipe",
		Short: "Like or pass on a deck of cats",
		Long:  "A terminal swipe deck. Drag a card right to like it, left to pass, and see everything you liked once the deck runs out.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), play)
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	play.bind(rootCmd)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)

	playC := playCmd()
	playC.GroupID = "core"
	doctorC := doctorCmd()
	doctorC.GroupID = "config"
	initC := initCmd()
	initC.GroupID = "config"
	configC := configCmd()
	configC.GroupID = "config"

	rootCmd.AddCommand(playC)
	rootCmd.AddCommand(initC)
	rootCmd.AddCommand(configC)
	rootCmd.AddCommand(doctorC)
	rootCmd.AddCommand(completionCmd())
	rootCmd.AddCommand(mcpServeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// playOptions are the per-run overrides shared by `swipe` and `swipe play`.
type playOptions struct {
	cards      int
	ratio      float64
	noAxisLock bool
	verbose    bool
}

func (o *playOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.cards, "cards", 0, "Number of cards in the deck (default from config)")
	cmd.Flags().Float64Var(&o.ratio, "ratio", 0, "Fraction of the screen width a drag must cross to count (default from config)")
	cmd.Flags().BoolVar(&o.noAxisLock, "no-axis-lock", false, "Treat every drag as horizontal")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Log every state change to swipe.log")
}

func (o playOptions) apply(cfg *store.Config) error {
	if o.cards != 0 {
		cfg.Deck.TotalCards = o.cards
	}
	if o.ratio != 0 {
		cfg.Gesture.SwipeRatio = o.ratio
	}
	if o.noAxisLock {
		cfg.Gesture.AxisLock = false
	}
	return cfg.Validate()
}

func playCmd() *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Swipe through a fresh deck (the default command)",
		Long:  "Deal a deck of cat pictures and swipe through it. Drag the top card with the mouse, or use ←/→. Once every card is decided the liked cards are listed and can be exported.",
		Example: `  swipe
  swipe play --cards 5
  swipe play --ratio 0.4 --no-axis-lock`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runPlay(ctx context.Context, opts playOptions) error {
	s, err := store.LoadOrDefault(store.Home())
	if err != nil {
		return err
	}
	cfg := s.Config
	if err := opts.apply(&cfg); err != nil {
		return err
	}

	p, err := provision.NewURL(cfg.Provider.BaseURL, cfg.Provider.QueryParam)
	if err != nil {
		return err
	}
	d, err := deck.New(p, cfg.Deck.TotalCards)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file until it closes.
	if err := os.MkdirAll(s.Home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Home, err)
	}
	logPath := s.Path("swipe.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	restore := ui.RedirectLog(logFile, opts.verbose)

	m, err := tui.New(d, tui.Options{
		Gesture:   cfg.GestureSettings(),
		ExportDir: s.ExportDir(),
		Logger:    ui.Logger,
	})
	if err != nil {
		restore()
		return err
	}
	sp := ui.NewSpinner("Shuffling the deck...")
	err = m.Start(ctx)
	sp.Stop()
	if err != nil {
		restore()
		return fmt.Errorf("failed to deal a deck: %w", err)
	}
	ui.Logger.Info("deck dealt", "cards", d.Total(), "source", cfg.Provider.BaseURL)

	runErr := tui.Run(ctx, m)
	restore()
	if runErr != nil {
		return runErr
	}

	accepted := d.Accepted()
	if m.Controller().State() != gesture.Summary {
		ui.Info(fmt.Sprintf("Stopped with %s of %d cards left; liked %s so far.",
			ui.Bold(fmt.Sprint(d.Remaining())), d.Total(), ui.Green(fmt.Sprint(len(accepted)))))
		return nil
	}
	ui.RenderMarkdown(export.Markdown(accepted))
	if opts.verbose {
		ui.Detail("Log:", logPath)
	}
	return nil
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Initialize SWIPE_HOME directory structure",
		Long:    "Create the SWIPE_HOME directory (~/.swipe by default) with exports/ and config.yaml. swipe runs on defaults without it; init gives you a config file to edit.",
		Example: "  swipe init\n  swipe init --force",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()
			if _, err := os.Stat(filepath.Join(home, "config.yaml")); err == nil && force {
				ok, err := ui.Confirm(fmt.Sprintf("Reset %s to defaults?", filepath.Join(home, "config.yaml")))
				if err != nil {
					return err
				}
				if !ok {
					ui.EmptyState("Left the existing config alone.")
					return nil
				}
			}
			if err := store.Init(home, force); err != nil {
				return err
			}
			ui.LogoWithTagline("like or pass on a deck of cats")
			ui.Success("swipe initialized")
			ui.Detail("Home:", home)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if SWIPE_HOME already exists")
	return cmd
}

func loadStore() (*store.Store, error) {
	home := store.Home()
	s, err := store.Load(home)
	if err != nil {
		return nil, fmt.Errorf("swipe not initialized — run 'swipe init' first: %w", err)
	}
	return s, nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit swipe configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.LoadOrDefault(store.Home())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  fmt.Sprintf("Set a swipe configuration value. Valid keys: %v.", store.ConfigKeys),
		Example: `  swipe config set deck.total_cards 20
  swipe config set gesture.swipe_ratio 0.3
  swipe config set gesture.axis_lock false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			if err := s.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Set %s = %s", ui.Bold(args[0]), args[1]))
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check health of SWIPE_HOME",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()

			if fix {
				ui.CommandBanner("DOCTOR", "repair mode")
				fixed := store.FixIssues(home)
				for _, f := range fixed {
					ui.Success(fmt.Sprintf("[FIXED] %s", f))
				}
				if len(fixed) == 0 {
					ui.EmptyState("Nothing to fix.")
				}
			} else {
				ui.CommandBanner("DOCTOR", "health check")
			}
			ui.KeyValue("Home", ui.Dim(home))
			ui.KeyValue("Config", ui.Dim(filepath.Join(home, "config.yaml")))
			fmt.Fprintln(os.Stderr)

			issues := store.CheckHealth(home)
			if len(issues) == 0 {
				ui.Success("Everything looks good")
				return nil
			}

			errs, warns := 0, 0
			for _, issue := range issues {
				if issue.Severity == "error" {
					ui.Error(fmt.Sprintf("[ERR]  %s", issue.Message))
					errs++
				} else {
					ui.Warning(fmt.Sprintf("[WARN] %s", issue.Message))
					warns++
				}
			}
			fmt.Fprintf(os.Stderr, "\n  %s error(s), %s warning(s)\n",
				ui.Red(fmt.Sprint(errs)), ui.Yellow(fmt.Sprint(warns)))
			hasError := errs > 0

			if hasError {
				os.Exit(2)
			}
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Recreate a missing exports directory or config.yaml")
	return cmd
}

func completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generate shell completion scripts",
		Long:      "Generate shell completion scripts for bash, zsh, or fish. Output the script to stdout for sourcing in your shell profile.",
		Example:   "  swipe completion bash > ~/.bashrc.d/swipe\n  swipe completion zsh > ~/.zfunc/_swipe\n  swipe completion fish > ~/.config/fish/completions/swipe.fish",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			default:
				return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", args[0])
			}
		},
	}
}

func mcpServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Run a swipe deck as an MCP server",
		Long:   "Start a swipe deck behind a Model Context Protocol (MCP) server over stdio, so an agent can inspect the deck and like or pass on cards with explicit controls.",
		Hidden: true, // Not typically called directly by users
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.LoadOrDefault(store.Home())
			if err != nil {
				return err
			}
			cfg := s.Config
			p, err := provision.NewURL(cfg.Provider.BaseURL, cfg.Provider.QueryParam)
			if err != nil {
				return err
			}
			d, err := deck.New(p, cfg.Deck.TotalCards)
			if err != nil {
				return err
			}
			server, err := swipemcp.NewServer(d, cfg.GestureSettings(), version, ui.Logger)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}
}

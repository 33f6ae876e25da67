// Package cli 实现 verifier 命令行
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/news_verifier/internal/config"
	"github.com/iWorld-y/news_verifier/internal/engine"
	"github.com/iWorld-y/news_verifier/internal/logger"
	"github.com/iWorld-y/news_verifier/internal/model"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
	"github.com/iWorld-y/news_verifier/internal/render"
	"github.com/iWorld-y/news_verifier/internal/verify"
)

var (
	cfgFile     string
	langFlag    string
	formatFlag  string
	publishDate string
	noColor     bool
	verbose     bool

	cfg *config.Config
	eng *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "verifier",
	Short: "Check the credibility of news articles and questions",
	Long: `verifier sends a news page, pasted text or a question to the local
verification backend and prints its verdict.

Example usage:
  verifier page https://example.com/news/1
  verifier page --html-file saved.html
  verifier text "Water boils at 100 degrees Celsius at sea level."
  pbpaste | verifier text --stdin
  verifier ask "Who won the 2024 election?"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute 执行根命令
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "language: auto, en, zh-TW (default from config)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: text or html (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored verdicts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	if err := logger.InitLogger(level, cfg.Log.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if noColor {
		color.NoColor = true
	}

	eng, err = engine.NewEngine(cfg)
	if err != nil {
		return err
	}
	return nil
}

// run 执行一次验证并按格式输出
func run(cmd *cobra.Command, opts engine.RunOptions) error {
	opts.Language = model.ParseLanguage(firstNonEmpty(langFlag, cfg.Defaults.Language))
	if opts.PublishDate == "" {
		opts.PublishDate = publishDate
	}
	if verbose {
		opts.ProgressCallback = func(status string) {
			if status != engine.StatusDone {
				fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.Faint).Sprint(status))
			}
		}
	}

	doc, err := eng.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), doc, firstNonEmpty(formatFlag, cfg.Defaults.Format))
}

func writeDocument(w io.Writer, doc *render.Document, format string) error {
	switch format {
	case "html":
		return render.WriteHTML(w, doc)
	case "text", "":
		return render.WriteText(w, doc, render.TextOptions{Highlight: highlight})
	default:
		return fmt.Errorf("unknown output format %q: must be text or html", format)
	}
}

// highlight 判定着色，color.NoColor 为 true 时原样返回
func highlight(style render.Style, s string) string {
	switch style {
	case render.StyleCredible:
		return color.New(color.FgGreen, color.Bold).Sprint(s)
	case render.StyleMisleading:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case render.StyleUncertain:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return s
	}
}

// ErrorMessage 返回面向用户的错误提示
func ErrorMessage(err error) string {
	var ve *verify.Error
	switch {
	case errors.As(err, &ve):
		return ve.UserMessage()
	case errors.Is(err, pagetext.ErrExtractFailed):
		return "Failed to extract page text."
	case errors.Is(err, verify.ErrSuperseded):
		return "Request was replaced by a newer one."
	default:
		return "Error: " + err.Error()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

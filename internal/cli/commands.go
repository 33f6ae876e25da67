package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/news_verifier/internal/engine"
	"github.com/iWorld-y/news_verifier/internal/model"
	"github.com/iWorld-y/news_verifier/internal/pagetext"
)

var pageCmd = &cobra.Command{
	Use:   "page [url]",
	Short: "Verify the main text of a web page",
	Long: `Fetch a web page, extract its text and verify it in news mode.
Use --html-file to verify a page saved on disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		htmlFile, _ := cmd.Flags().GetString("html-file")

		req := &pagetext.Request{}
		if len(args) == 1 {
			req.URL = args[0]
		}
		if htmlFile != "" {
			data, err := os.ReadFile(htmlFile)
			if err != nil {
				return fmt.Errorf("read html file: %w", err)
			}
			req.HTML = data
		}
		if req.URL == "" && len(req.HTML) == 0 {
			return fmt.Errorf("page requires a url or --html-file")
		}

		return run(cmd, engine.RunOptions{Mode: model.ModeNews, Page: req})
	},
}

var textCmd = &cobra.Command{
	Use:   "text [words...]",
	Short: "Verify pasted news text",
	RunE: func(cmd *cobra.Command, args []string) error {
		fromStdin, _ := cmd.Flags().GetBool("stdin")

		text := strings.Join(args, " ")
		if fromStdin {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		return run(cmd, engine.RunOptions{Mode: model.ModeNews, Text: text})
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a free-form question",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, engine.RunOptions{Mode: model.ModeQA, Question: strings.Join(args, " ")})
	},
}

func init() {
	rootCmd.AddCommand(pageCmd, textCmd, askCmd)

	pageCmd.Flags().String("html-file", "", "read page HTML from a file instead of fetching")
	textCmd.Flags().Bool("stdin", false, "read the text from standard input")

	for _, c := range []*cobra.Command{pageCmd, textCmd} {
		c.Flags().StringVar(&publishDate, "publish-date", "", "publish date (YYYY-MM-DD)")
	}
}

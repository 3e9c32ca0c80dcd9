package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cadoz/internal/assist"
	"cadoz/internal/catalog"
	"cadoz/internal/gift"
	"cadoz/internal/kv"
	"cadoz/internal/search"
	"cadoz/internal/storefront"
)

const searchResultLimit = 5

var sessionFlag string

var catalogCmd = &cobra.Command{
	Use:   "catalog [step]",
	Short: "Print the options a gift step offers",
	Long: `Prints the catalogue items a gift step offers, in rows of ten.

Steps: chocolates, candies, box, decorations, wrap, summary.
Without a step every step is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a stored session's order transcript and checkout link",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search products interactively, one query per line on stdin",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

var askCmd = &cobra.Command{
	Use:   "ask MESSAGE",
	Short: "Ask the storefront assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	summaryCmd.Flags().StringVar(&sessionFlag, "session", "", "Session id (the shop_session-id cookie)")
	_ = summaryCmd.MarkFlagRequired("session")
	searchCmd.Flags().StringVar(&sessionFlag, "session", "", "Record answered queries as this session's recent searches")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	steps := gift.Steps()
	if len(args) == 1 {
		step, err := gift.ParseStep(args[0])
		if err != nil {
			return err
		}
		steps = []gift.Step{step}
	}

	store, err := kv.NewMemory()
	if err != nil {
		return err
	}
	defer store.Close()
	presenter := gift.NewPresenter(c, gift.NewContainer(store, gift.NewReducer(), logger))

	out := cmd.OutOrStdout()
	for _, step := range steps {
		view, err := presenter.View(step)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d/%d %s\n", view.Index+1, view.StepCount, view.Title)
		for i, group := range view.Groups {
			fmt.Fprintf(out, "  row %d\n", i+1)
			for _, opt := range group {
				fmt.Fprintf(out, "    %-10s %-32s %6d %s\n", opt.Item.ID, opt.Item.Name, opt.Item.Price, cfg.Order.Currency)
			}
		}
	}
	return nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.session(cmd.Context(), sessionFlag)
	if err != nil {
		return err
	}
	summary := sess.Summary(a.orders)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, summary.Transcript)
	fmt.Fprintln(out)
	fmt.Fprintln(out, summary.Link)
	return nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	index := search.NewIndex(c.Products())

	var sess *storefront.Session
	if sessionFlag != "" {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if sess, err = a.session(ctx, sessionFlag); err != nil {
			return err
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanLines(ctx, cmd.InOrStdin(), lines)
	}()

	out := cmd.OutOrStdout()
	for query := range search.Debounce(ctx, cfg.Search.Debounce, lines) {
		results := index.Search(query, searchResultLimit)
		fmt.Fprintf(out, "%q: %d result(s)\n", query, len(results))
		for _, r := range results {
			fmt.Fprintf(out, "  %-8s %s\n", r.Item.ID, r.Item.Name)
		}
		if sess != nil && len(results) > 0 {
			fmt.Fprintf(out, "  recent: %s\n", strings.Join(sess.Recent.Add(ctx, query), ", "))
		}
	}
	return nil
}

// scanLines stops once ctx is done, even if nobody reads lines.
func scanLines(ctx context.Context, r io.Reader, lines chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	client := assist.NewClient(cfg.Assist.Endpoint, &http.Client{Timeout: cfg.Assist.Timeout + 2*time.Second})
	msg := client.Ask(cmd.Context(), strings.Join(args, " "))
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] bot: %s\n", msg.Timestamp.Format("15:04"), msg.Text)
	return nil
}

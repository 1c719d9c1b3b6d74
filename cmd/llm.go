package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the log of generation requests",
	Long: `Every call to the AI provider is recorded in the local database with its
prompt, the returned worksheet, token counts and latency. These commands
read that log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation requests",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE:  runLLMStats,
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose ("+llm.PurposeWorksheet+", "+llm.PurposeCLI+")")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

// withEventRepo opens the database for the duration of fn.
func withEventRepo(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func runLLMList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	opts := store.QueryOpts{Limit: limit}
	opts.Purpose, _ = cmd.Flags().GetString("purpose")
	if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
		opts.From = time.Now().Add(-since)
	}
	if failedOnly {
		// Filtered after the query; fetch everything in range.
		opts.Limit = 0
	}

	return withEventRepo(cmd, func(repo store.EventRepo) error {
		events, err := repo.QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = failedEvents(events, limit)
		}
		writeEventTable(cmd.OutOrStdout(), events)
		return nil
	})
}

func failedEvents(events []store.LLMEvent, limit int) []store.LLMEvent {
	var out []store.LLMEvent
	for _, e := range events {
		if e.Success {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func writeEventTable(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "Belum ada permintaan yang tercatat.")
		return
	}

	t := newTable("ID", "Waktu", "Tujuan", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	fmt.Fprintln(w, t.String())
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", args[0], err)
	}

	return withEventRepo(cmd, func(repo store.EventRepo) error {
		e, err := repo.GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEvent(cmd.OutOrStdout(), e)
		return nil
	})
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Request", e.RequestID},
		{"Waktu", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Tujuan", e.Purpose},
		{"Token", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latensi", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Berhasil", strconv.FormatBool(e.Success)},
		{"Error", e.ErrorMessage},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	section := func(title, body string) {
		rule := strings.Repeat("─", 60)
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
		if body == "" {
			body = "(tidak tersimpan)"
		}
		fmt.Fprintln(w, body)
	}
	section("PROMPT", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
}

func runLLMStats(cmd *cobra.Command, args []string) error {
	return withEventRepo(cmd, func(repo store.EventRepo) error {
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	})
}

func writeUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "Belum ada pemakaian yang tercatat.")
		return
	}

	pt := newTable("Tujuan", "Calls", "Input", "Output", "Total", "Avg Ms")
	var calls, in, out int
	for _, u := range byPurpose {
		pt.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	pt.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
	fmt.Fprintln(w, "Pemakaian per tujuan")
	fmt.Fprintln(w, pt.String())

	if len(byModel) == 0 {
		return
	}

	mt := newTable("Model", "Calls", "Input", "Output", "Biaya")
	var total float64
	var unknown []string
	for _, u := range byModel {
		price := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			price = formatCost(usd)
		} else {
			unknown = append(unknown, u.Model)
		}
		mt.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), price)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (sebagian)"
	}
	mt.Row(label, "", "", "", formatCost(total))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Perkiraan biaya (USD)")
	fmt.Fprintln(w, mt.String())
	if len(unknown) > 0 {
		fmt.Fprintf(w, "Harga tidak diketahui untuk: %s\n", strings.Join(unknown, ", "))
	}
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/controller"
	"github.com/abhisek/lkpd/internal/export"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/worksheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one worksheet without the TUI",
	Long: `Generate a worksheet from flags and save it.

The default format writes a Word-compatible .doc file into --out. With
--format md the raw markdown is printed to stdout instead.`,
	Example: `  lkpd generate --subject Matematika --grade 4 --topic "Pecahan Senilai" \
    --objective "Peserta didik mampu menjelaskan pecahan senilai." --trait bernalarKritis`,
	RunE: runGenerate,
}

func init() {
	addRequestFlags(generateCmd)
	generateCmd.Flags().String("format", "doc", "Output format: doc or md")
	generateCmd.Flags().String("kop1", "", "Letterhead line 1")
	generateCmd.Flags().String("kop2", "", "Letterhead line 2")
	generateCmd.Flags().String("kop3", "", "Letterhead line 3")
	generateCmd.Flags().String("alamat", "", "Letterhead address")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "doc" && format != "md" {
		return fmt.Errorf("invalid format %q: must be doc or md", format)
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, "")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	st, eventRepo := openStore(cmd, log)
	if st != nil {
		defer st.Close()
	}

	ctx := llm.WithPurpose(cmd.Context(), llm.PurposeCLI)
	ctx = llm.WithRequestID(ctx, uuid.NewString())

	provider, _, err := llm.NewProviderFromEnv(ctx, eventRepo, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	ctrl := controller.New()
	if err := ctrl.Generate(ctx, provider, req); err != nil {
		fmt.Fprintln(os.Stderr, llm.UserMessage(err))
		return err
	}
	doc := ctrl.Document()
	doc.SetLetterhead(letterheadFromFlags(cmd))

	if format == "md" {
		fmt.Fprint(cmd.OutOrStdout(), doc.Body)
		return nil
	}

	outDir, _ := cmd.Flags().GetString("out")
	path, err := export.Save(outDir, doc)
	if err != nil {
		return fmt.Errorf("export word: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// letterheadFromFlags overrides the default letterhead with any flags set.
func letterheadFromFlags(cmd *cobra.Command) worksheet.Letterhead {
	lh := worksheet.DefaultLetterhead()
	for name, dst := range map[string]*string{
		"kop1":   &lh.Line1,
		"kop2":   &lh.Line2,
		"kop3":   &lh.Line3,
		"alamat": &lh.Address,
	} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return lh
}

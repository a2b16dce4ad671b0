// Command invoicectl renders invoices from project fixtures without a
// database or server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/logger"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/kizora/invoicer/internal/infrastructure/spreadsheet"
)

const dateFlagLayout = "2006-01-02"

type options struct {
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "invoicectl",
		Short:        "Render invoices and sample sheets from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(&logger.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: "stderr",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = logger.Sync(opts.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newRenderCmd(opts),
		newSampleSheetCmd(opts),
		newTemplatesCmd(),
	)
	return root
}

type renderOptions struct {
	template string
	out      string
	date     string
	format   string
	editing  bool
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <fixture.yaml>",
		Short: "Render a project fixture as an invoice",
		Long: `Renders a YAML project fixture with the selected template.

The html format writes the export document; the json format writes the
live view tree. Without --out the export is written to
Invoice-<number>.html in the current directory and json goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), opts, ro, args[0])
		},
	}
	cmd.Flags().StringVar(&ro.template, "template", invoicing.DefaultTemplate().ID, "template id")
	cmd.Flags().StringVar(&ro.out, "out", "", "output file, or - for stdout")
	cmd.Flags().StringVar(&ro.date, "date", "", "render as of this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ro.format, "format", "html", "output format: html or json")
	cmd.Flags().BoolVar(&ro.editing, "editing", false, "build the live view in editing mode (json only)")
	return cmd
}

func runRender(stdout io.Writer, opts *options, ro *renderOptions, fixturePath string) error {
	now, err := parseNow(ro.date)
	if err != nil {
		return err
	}
	tmpl, ok := invoicing.LookupTemplate(ro.template)
	if !ok {
		return fmt.Errorf("unknown template %q", ro.template)
	}

	fixture, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}
	project, err := fixture.project(now)
	if err != nil {
		return fmt.Errorf("invalid fixture %s: %w", fixturePath, err)
	}

	inv := invoicing.BuildInvoice(project, tmpl, now)
	issuer := printing.DefaultIssuer()

	var (
		content []byte
		name    string
	)
	switch ro.format {
	case "html":
		exporter, err := printing.NewExportRenderer(issuer)
		if err != nil {
			return err
		}
		doc, err := exporter.Render(inv)
		if err != nil {
			return err
		}
		content, name = doc.Content, doc.Filename
	case "json":
		doc := printing.NewLiveView(issuer).Build(inv, ro.editing)
		content, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode live view: %w", err)
		}
		content = append(content, '\n')
		name = "-"
	default:
		return fmt.Errorf("unknown format %q", ro.format)
	}

	out := ro.out
	if out == "" {
		out = name
	}
	if out == "-" {
		_, err := stdout.Write(content)
		return err
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	opts.log.Info("Invoice rendered",
		zap.String("file", out),
		zap.String("template", tmpl.ID),
		zap.String("invoice_number", inv.Fields.InvoiceNumber),
		zap.String("total", inv.Display.GrandTotal),
	)
	return nil
}

func parseNow(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	now, err := time.ParseInLocation(dateFlagLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
	}
	return now, nil
}

func newSampleSheetCmd(opts *options) *cobra.Command {
	var (
		out      string
		projects []string
	)
	cmd := &cobra.Command{
		Use:   "sample-sheet",
		Short: "Write the sample employee time sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := spreadsheet.WriteSample(f, projects); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}
			opts.log.Info("Sample sheet written", zap.String("file", out))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", spreadsheet.SampleFilename, "output file")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "project names to use in the sample rows")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the invoice templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLAYOUT\tFEATURES")
			for _, t := range invoicing.Templates() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Layout, features(t.Features))
			}
			return w.Flush()
		},
	}
}

func features(f invoicing.TemplateFeatures) string {
	var out []string
	if f.ShowLogo {
		out = append(out, "logo")
	}
	if f.ShowBorder {
		out = append(out, "border")
	}
	if f.ShowWatermark {
		out = append(out, "watermark")
	}
	out = append(out, "header="+string(f.HeaderStyle), "table="+string(f.TableStyle))
	return strings.Join(out, ",")
}

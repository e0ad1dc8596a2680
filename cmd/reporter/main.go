package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrd-survey/internal/config"
	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/pipeline"
	"github.com/hrd-survey/internal/store"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "reporter",
		Short: "HRD survey reporting pipeline",
		Long:  `Converts survey response exports into aggregated statistics and fills the standard report template, with a review report for every mapping decision`,
	}

	rootCmd.AddCommand(createConvertCmd())
	rootCmd.AddCommand(createAnalyzeCmd())
	rootCmd.AddCommand(createFillCmd())
	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createOpinionsCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createConvertCmd() *cobra.Command {
	var cp949 bool

	cmd := &cobra.Command{
		Use:   "convert [input.csv] [output.csv]",
		Short: "Decode a response export to UTF-8 and convert Likert texts to numbers",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			charset, converted, err := pipeline.Convert(args[0], args[1], cp949)
			if err != nil {
				log.Fatalf("Failed to convert %s: %v", args[0], err)
			}
			fmt.Printf("감지된 인코딩: %s\n", charset)
			fmt.Printf("변환된 리커트 컬럼: %d개\n", len(converted))
			fmt.Printf("저장됨: %s\n", args[1])
		},
	}

	cmd.Flags().BoolVar(&cp949, "cp949", false, "write the output in CP949 for legacy spreadsheet tools")

	return cmd
}

func createAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [input.csv] [stats.json]",
		Short: "Aggregate per-question statistics from a converted response file",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := pipeline.Analyze(args[0], args[1])
			if err != nil {
				log.Fatalf("Failed to analyze %s: %v", args[0], err)
			}

			fmt.Printf("총 응답: %d개\n", result.TotalResponses)
			fmt.Printf("분석된 문항: %d개\n", len(result.Questions))
			for _, q := range result.Questions {
				label := q.Label
				if len([]rune(label)) > 50 {
					label = string([]rune(label)[:50]) + "..."
				}
				fmt.Printf("  %.2f | %s\n", q.Mean, label)
			}
			fmt.Printf("저장됨: %s\n", args[1])
		},
	}
}

func createFillCmd() *cobra.Command {
	var (
		threshold  float64
		labelCol   int
		rowSpec    string
		reportPath string
		useStore   bool
	)

	cmd := &cobra.Command{
		Use:   "fill [stats.json] [template.csv] [output.csv]",
		Short: "Map aggregated statistics onto the report template",
		Long: `Matches each template question against the survey questions by text
similarity and writes accepted means into the template's value column.
Every decision, matched or not, lands in the review report.`,
		Args: cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			rows, err := parseRows(rowSpec)
			if err != nil {
				log.Fatalf("Invalid --rows: %v", err)
			}

			opts := pipeline.Options{
				Threshold: threshold,
				LabelCol:  labelCol,
				Rows:      rows,
			}

			fill, err := pipeline.Fill(args[0], args[1], args[2], opts)
			if err != nil {
				log.Fatalf("Mapping failed: %v", err)
			}

			fill.Report.Print()

			if reportPath != "" {
				if err := fill.Report.WriteFile(reportPath); err != nil {
					log.Fatalf("Failed to write review report: %v", err)
				}
				fmt.Printf("검토 리포트: %s\n", reportPath)
			}

			if useStore {
				recordRun(args[0], args[1], threshold, fill.Decisions)
			}

			// The review report above is already saved; a write failure
			// still exits non-zero so scripts notice.
			if fill.WriteErr != nil {
				log.Fatalf("Template write failed: %v", fill.WriteErr)
			}
			fmt.Printf("결과 파일: %s\n", args[2])
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", config.Threshold(mapping.DefaultThreshold), "similarity acceptance threshold [0,1]")
	cmd.Flags().IntVar(&labelCol, "label-col", config.LabelColumn(), "template label column, 0-based")
	cmd.Flags().StringVar(&rowSpec, "rows", "", "comma-separated template rows to fill (default: all rows)")
	cmd.Flags().StringVar(&reportPath, "report", "", "path for the review report JSON")
	cmd.Flags().BoolVar(&useStore, "store", false, "record the run in the Postgres audit store")

	return cmd
}

func createRunCmd() *cobra.Command {
	var (
		templatePath string
		threshold    float64
		labelCol     int
		rowSpec      string
	)

	cmd := &cobra.Command{
		Use:   "run [work-folder]",
		Short: "Run the full pipeline over a work folder",
		Long:  `Processes every CSV in <work-folder>/raw: encoding + Likert conversion into processed/, statistics into results/, filled templates and review reports into output/`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rows, err := parseRows(rowSpec)
			if err != nil {
				log.Fatalf("Invalid --rows: %v", err)
			}

			summary, err := pipeline.Run(args[0], templatePath, pipeline.Options{
				Threshold: threshold,
				LabelCol:  labelCol,
				Rows:      rows,
			})
			if err != nil {
				log.Fatalf("Pipeline failed: %v", err)
			}

			fmt.Printf("처리 완료: %d개 성공, %d개 실패\n", len(summary.Processed), len(summary.Failed))
			if len(summary.Failed) > 0 {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", config.GetEnv("SURVEY_TEMPLATE", "templates/report.csv"), "report template CSV")
	cmd.Flags().Float64Var(&threshold, "threshold", config.Threshold(mapping.DefaultThreshold), "similarity acceptance threshold [0,1]")
	cmd.Flags().IntVar(&labelCol, "label-col", config.LabelColumn(), "template label column, 0-based")
	cmd.Flags().StringVar(&rowSpec, "rows", "", "comma-separated template rows to fill (default: all rows)")

	return cmd
}

func createOpinionsCmd() *cobra.Command {
	var (
		column  int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "opinions [input.csv]",
		Short: "Group free-text answers into common opinions",
		Long: `Cleans free-text answers (placeholder answers dropped, typos and
endings normalized) and groups similar ones, printing one representative
line per opinion with its count.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opinions, err := pipeline.Qualitative(args[0], column)
			if err != nil {
				log.Fatalf("Failed to group opinions: %v", err)
			}

			for _, oc := range opinions {
				fmt.Printf("\n[%s]\n", oc.Label)
				for _, g := range oc.Groups {
					fmt.Printf("  %d건 | %s\n", g.Count, g.Representative)
				}
			}

			if outPath != "" {
				if err := pipeline.WriteOpinions(outPath, opinions); err != nil {
					log.Fatalf("Failed to write opinions: %v", err)
				}
				fmt.Printf("\n저장됨: %s\n", outPath)
			}
		},
	}

	cmd.Flags().IntVar(&column, "column", -1, "0-based column to group (default: every free-text column)")
	cmd.Flags().StringVar(&outPath, "out", "", "path for the grouped opinions JSON")

	return cmd
}

func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test audit store connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			st, err := store.Open()
			if err != nil {
				log.Fatalf("Failed to connect to audit store: %v", err)
			}
			defer st.Close()

			if err := st.EnsureSchema(); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}

			runs, decisions, err := st.Ping()
			if err != nil {
				log.Fatalf("Ping failed: %v", err)
			}
			fmt.Println("Audit store connection successful!")
			fmt.Printf("Stored runs: %d\n", runs)
			fmt.Printf("Stored decisions: %d\n", decisions)
		},
	}
}

func recordRun(sourceFile, templateFile string, threshold float64, decisions []mapping.Decision) {
	st, err := store.Open()
	if err != nil {
		log.Printf("Warning: audit store unavailable: %v", err)
		return
	}
	defer st.Close()

	if err := st.EnsureSchema(); err != nil {
		log.Printf("Warning: failed to ensure audit schema: %v", err)
		return
	}

	runID, err := st.RecordRun(sourceFile, templateFile, threshold, decisions)
	if err != nil {
		log.Printf("Warning: failed to record run: %v", err)
		return
	}
	fmt.Printf("감사 기록 저장됨: run %d\n", runID)
}

func parseRows(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var rows []int
	for _, part := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad row number %q", part)
		}
		rows = append(rows, n)
	}
	return rows, nil
}

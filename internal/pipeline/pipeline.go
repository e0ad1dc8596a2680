package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hrd-survey/internal/config"
	"github.com/hrd-survey/internal/debug"
	"github.com/hrd-survey/internal/encoding"
	"github.com/hrd-survey/internal/likert"
	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/report"
	"github.com/hrd-survey/internal/stats"
	"github.com/hrd-survey/internal/template"
)

// Options configures a pipeline run.
type Options struct {
	Threshold float64 // similarity acceptance threshold
	LabelCol  int     // template label column, 0-based
	Rows      []int   // designated template rows; nil means every row
}

// ReadResponses reads a survey response CSV in any of the supported
// encodings and returns its rows as UTF-8.
func ReadResponses(path string) ([][]string, encoding.Charset, error) {
	data, charset, err := encoding.ReadFileUTF8(path)
	if err != nil {
		return nil, charset, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, charset, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, charset, nil
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

func writeCSVCP949(path string, rows [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	data, err := encoding.EncodeCP949(buf.Bytes())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Convert decodes a raw response file to UTF-8 and rewrites Likert scale
// texts as integers. Returns the detected charset and the converted
// column indexes. With cp949 the output is re-encoded to CP949 for
// legacy spreadsheet consumers, as the survey team's old workflow did.
func Convert(inPath, outPath string, cp949 bool) (encoding.Charset, []int, error) {
	defer debug.Timing(config.Debug(), "convert")()

	rows, charset, err := ReadResponses(inPath)
	if err != nil {
		return charset, nil, err
	}
	debug.Output(config.Debug(), "%s: detected charset %s, %d rows", inPath, charset, len(rows))

	converted := likert.ConvertTable(rows)

	if cp949 {
		if err := writeCSVCP949(outPath, rows); err != nil {
			return charset, converted, err
		}
		return charset, converted, nil
	}

	if err := writeCSV(outPath, rows); err != nil {
		return charset, converted, err
	}
	return charset, converted, nil
}

// Analyze aggregates a converted response file into per-question
// statistics and saves them as JSON.
func Analyze(inPath, outPath string) (*stats.Result, error) {
	defer debug.Timing(config.Debug(), "analyze")()

	rows, _, err := ReadResponses(inPath)
	if err != nil {
		return nil, err
	}

	result, err := stats.Aggregate(filepath.Base(inPath), rows)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := result.WriteFile(outPath); err != nil {
		return nil, err
	}
	return result, nil
}

// FillResult carries everything the fill stage produced. WriteErr is the
// template-write failure, if any; the decisions and review report are
// still present so a reviewer can diagnose the run.
type FillResult struct {
	Decisions []mapping.Decision
	Report    *report.Report
	WriteErr  error
}

// Fill maps aggregated statistics onto a report template: computes the
// mapping decisions, writes accepted means into the template copy at
// outPath, and builds the review report. The template writer and the
// report builder are independent consumers of the decision list; a write
// failure is recorded in the result rather than aborting the report.
func Fill(statsPath, templatePath, outPath string, opts Options) (*FillResult, error) {
	defer debug.Timing(config.Debug(), "fill")()

	result, err := stats.LoadResult(statsPath)
	if err != nil {
		return nil, err
	}
	store, err := result.Store()
	if err != nil {
		return nil, &mapping.InputError{Msg: err.Error()}
	}

	tmpl, err := template.Load(templatePath, opts.LabelCol)
	if err != nil {
		return nil, err
	}

	var slots []mapping.Slot
	if opts.Rows != nil {
		slots = tmpl.SlotsAt(opts.Rows)
	} else {
		slots = tmpl.Slots()
	}

	decisions, err := mapping.Map(slots, store, mapping.Options{Threshold: opts.Threshold})
	if err != nil {
		return nil, err
	}

	fill := &FillResult{
		Decisions: decisions,
		Report:    report.Build(decisions),
	}
	debug.Output(config.Debug(), "mapped %d slots, %d accepted", len(decisions), fill.Report.Matched)

	if err := tmpl.Apply(decisions, store); err != nil {
		fill.WriteErr = err
	} else if err := tmpl.Write(outPath); err != nil {
		fill.WriteErr = err
	}

	return fill, nil
}

// Work folder layout, matching the survey team's existing workspace:
// raw/ holds exports as received, processed/ the converted CSVs,
// results/ the stats JSON, output/ the filled templates and reports.
const (
	rawDir       = "raw"
	processedDir = "processed"
	resultsDir   = "results"
	outputDir    = "output"
)

// RunSummary reports what a full pipeline run did.
type RunSummary struct {
	Processed []string
	Failed    []string
}

// Run executes the full pipeline over a work folder: every CSV in raw/ is
// converted, aggregated, and mapped onto the template. Per-file failures
// are collected rather than aborting the remaining files.
func Run(workDir, templatePath string, opts Options) (*RunSummary, error) {
	rawFiles, err := filepath.Glob(filepath.Join(workDir, rawDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list raw files: %w", err)
	}
	if len(rawFiles) == 0 {
		return nil, fmt.Errorf("no CSV files in %s", filepath.Join(workDir, rawDir))
	}

	summary := &RunSummary{}

	for _, rawFile := range rawFiles {
		name := strings.TrimSuffix(filepath.Base(rawFile), ".csv")
		fmt.Printf("처리 중: %s\n", filepath.Base(rawFile))

		processed := filepath.Join(workDir, processedDir, name+".csv")
		statsFile := filepath.Join(workDir, resultsDir, name+"_stats.json")
		outFile := filepath.Join(workDir, outputDir, name+"_결과.csv")
		reportFile := filepath.Join(workDir, outputDir, name+"_검토리포트.json")

		if err := runOne(rawFile, processed, statsFile, templatePath, outFile, reportFile, opts); err != nil {
			fmt.Printf("  실패: %v\n", err)
			summary.Failed = append(summary.Failed, filepath.Base(rawFile))
			continue
		}
		summary.Processed = append(summary.Processed, filepath.Base(rawFile))
	}

	return summary, nil
}

func runOne(rawFile, processed, statsFile, templatePath, outFile, reportFile string, opts Options) error {
	charset, converted, err := Convert(rawFile, processed, false)
	if err != nil {
		return err
	}
	fmt.Printf("  감지된 인코딩: %s, 변환된 리커트 컬럼: %d개\n", charset, len(converted))

	result, err := Analyze(processed, statsFile)
	if err != nil {
		return err
	}
	fmt.Printf("  총 응답: %d개, 분석된 문항: %d개\n", result.TotalResponses, len(result.Questions))

	fill, err := Fill(statsFile, templatePath, outFile, opts)
	if err != nil {
		return err
	}

	// The review report is the primary diagnostic tool; write it even
	// when the template write stage failed.
	if err := fill.Report.WriteFile(reportFile); err != nil {
		return err
	}
	fill.Report.Print()

	if fill.WriteErr != nil {
		return fmt.Errorf("template write failed (review report saved): %w", fill.WriteErr)
	}
	return nil
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jmendezr85/pdf-extractor-excel/internal/excel"
	"github.com/jmendezr85/pdf-extractor-excel/internal/rules"
	"github.com/jmendezr85/pdf-extractor-excel/internal/runner"
)

var (
	sheetName    = flag.String("sheet", "Datos", "Excel sheet name for the exported rows")
	presetPath   = flag.String("preset", "", "Path to a preset JSON with field rules (uses the built-in template if empty)")
	maxPages     = flag.Int("maxpages", runner.DefaultMaxPages, "Maximum number of pages to process")
	noHeuristics = flag.Bool("no-heuristics", false, "Disable template heuristics for fields without a pattern")
	noPageColumn = flag.Bool("no-pagecolumn", false, "Omit the 'Página PDF' source page column")
	outputFormat = flag.String("format", "text", "Output format for the run summary: text, json")
	quiet        = flag.Bool("quiet", false, "Suppress per-page progress output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	outPath := defaultOutputPath(pdfPath)
	if flag.NArg() > 1 {
		outPath = flag.Arg(1)
	}

	fieldRules, err := loadRules(*presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset: %v\n", err)
		os.Exit(1)
	}

	summary, err := runExtraction(pdfPath, outPath, fieldRules)

	result := buildResult(pdfPath, summary, err)
	if outErr := outputResult(result); outErr != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", outErr)
		os.Exit(1)
	}

	if err != nil {
		os.Exit(1)
	}
}

func runExtraction(pdfPath, outPath string, fieldRules []rules.FieldRule) (*runner.Summary, error) {
	var onProgress runner.ProgressFunc
	if !*quiet && *outputFormat == "text" {
		onProgress = func(percent int, message string) {
			fmt.Printf("[%3d%%] %s\n", percent, message)
		}
	}

	run := runner.New(excel.NewWriter(), onProgress)

	// Ctrl+C requests cooperative cancellation; the run stops between pages
	// and no partial spreadsheet is written.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		<-signalCh
		run.Cancel()
	}()

	opts := runner.Options{
		SheetName:             *sheetName,
		UseTemplateHeuristics: !*noHeuristics,
		MaxPages:              *maxPages,
		IncludePDFPage:        !*noPageColumn,
	}

	return run.RunFile(pdfPath, outPath, fieldRules, opts)
}

func loadRules(path string) ([]rules.FieldRule, error) {
	if path == "" {
		return rules.DefaultTemplate(), nil
	}
	return rules.LoadPreset(path)
}

// defaultOutputPath places the spreadsheet next to the source PDF.
func defaultOutputPath(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(filepath.Dir(pdfPath), base+"_extract.xlsx")
}

// ExtractionResult is the run summary printed at the end.
type ExtractionResult struct {
	FilePath      string  `json:"file_path"`
	OutputPath    string  `json:"output_path"`
	Success       bool    `json:"success"`
	State         string  `json:"state"`
	TotalPages    int     `json:"total_pages"`
	Rows          int     `json:"rows"`
	TextlessPages int     `json:"textless_pages"`
	ElapsedSecs   float64 `json:"elapsed_seconds"`
	Error         string  `json:"error,omitempty"`
}

func buildResult(pdfPath string, summary *runner.Summary, err error) *ExtractionResult {
	absPath, pathErr := filepath.Abs(pdfPath)
	if pathErr != nil {
		absPath = pdfPath
	}

	result := &ExtractionResult{
		FilePath: absPath,
		Success:  err == nil,
	}
	if summary != nil {
		result.OutputPath = summary.OutputPath
		result.State = summary.State.String()
		result.TotalPages = summary.TotalPages
		result.Rows = summary.Rows
		result.TextlessPages = summary.TextlessPages
		result.ElapsedSecs = summary.Elapsed.Seconds()
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func outputResult(result *ExtractionResult) error {
	switch *outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text":
		outputText(result)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputText(result *ExtractionResult) {
	if !result.Success {
		if result.State == "cancelled" {
			fmt.Printf("⚠️  Run cancelled: %s\n", result.Error)
		} else {
			fmt.Printf("❌ Extraction failed: %s\n", result.Error)
		}
		return
	}

	fmt.Printf("✅ Extracted %d row(s) from %d page(s)\n", result.Rows, result.TotalPages)
	fmt.Printf("   Output: %s\n", result.OutputPath)
	if result.TextlessPages > 0 {
		fmt.Printf("   Pages without text: %d (scanned pages yield empty fields)\n", result.TextlessPages)
	}
}

func printHelp() {
	fmt.Println("certextract - extract occupational certificate fields from a PDF into Excel")
	fmt.Println()
	fmt.Println("Every page of the document becomes one spreadsheet row. Fields are filled")
	fmt.Println("by the built-in occupational certificate template, or by regular expressions")
	fmt.Println("from a preset JSON; fields that cannot be found confidently stay empty.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -sheet          Excel sheet name (default 'Datos')")
	fmt.Println("  -preset         Preset JSON with field rules")
	fmt.Println("  -maxpages       Maximum pages to process (default 2000)")
	fmt.Println("  -no-heuristics  Disable template heuristics for patternless fields")
	fmt.Println("  -no-pagecolumn  Omit the 'Página PDF' source page column")
	fmt.Println("  -format         Output format: text (default), json")
	fmt.Println("  -quiet          Suppress per-page progress output")
	fmt.Println("  -help           Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  certextract certificados.pdf")
	fmt.Println("  certextract certificados.pdf informe.xlsx")
	fmt.Println("  certextract -preset campos.json -sheet Resultados certificados.pdf")
	fmt.Println("  certextract -format json -quiet certificados.pdf")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  • Scanned PDFs have no extractable text; the run completes with empty")
	fmt.Println("    fields and a warning. This tool does not perform OCR.")
	fmt.Println("  • Ctrl+C cancels the run; no partial spreadsheet is written.")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  certextract [OPTIONS] <pdf_file> [output.xlsx]")
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}

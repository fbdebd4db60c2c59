package mcp

// toolGuide backs the cert_server_info tool: one entry per registered tool
// with practical usage guidance.
type toolInfo struct {
	Name        string
	Description string
	Usage       string
}

var toolGuide = []toolInfo{
	{
		Name:        "cert_extract_file",
		Description: "Extract certificate fields from every page of a PDF and export them as Excel rows",
		Usage: "Use this tool for the full extraction run: one spreadsheet row per page. " +
			"Pass 'preset' to override the built-in occupational template.",
	},
	{
		Name:        "cert_preview_page",
		Description: "Run the field extraction against a single page without writing a file",
		Usage: "Use this tool to check what the extractor would produce for one page " +
			"before running a whole document, or to tune a preset.",
	},
	{
		Name:        "cert_validate_file",
		Description: "Validate that a file is a readable PDF",
		Usage:       "Use this tool before extraction to catch corrupted or oversized files early.",
	},
	{
		Name:        "cert_default_template",
		Description: "List the built-in occupational certificate field template",
		Usage:       "Use this tool to see which field names the template heuristics recognize.",
	},
	{
		Name:        "cert_load_preset",
		Description: "Load a field-rule preset JSON and list its rules",
		Usage:       "Use this tool to inspect a preset file before extracting with it.",
	},
	{
		Name:        "cert_save_preset",
		Description: "Save a field-rule preset JSON",
		Usage: "Use this tool to persist a rule set. Without 'preset_json' it writes the " +
			"built-in template as a starting point for edits.",
	},
	{
		Name:        "cert_server_info",
		Description: "Get server information, available tools and usage guidance",
		Usage:       "Use this tool to discover the extraction defaults currently configured.",
	},
}

const usageGuidance = `Certificate Extractor Usage Guide:

1. VALIDATE FIRST:
   - Use 'cert_validate_file' to check the PDF is readable.

2. PREVIEW A PAGE:
   - Use 'cert_preview_page' on page 1 to confirm the template matches the
     document layout. Empty fields usually mean the page layout differs from
     the occupational certificate template.

3. RUN THE EXTRACTION:
   - Use 'cert_extract_file'. One row is written per page; fields that cannot
     be found confidently stay empty rather than guessing.

4. CUSTOM FIELDS:
   - Start from 'cert_default_template', save it with 'cert_save_preset',
     edit the JSON, and pass it back via the 'preset' argument. A non-empty
     "pattern" is a regular expression whose first capturing group (or whole
     match) becomes the value, and it always wins over the heuristic.

IMPORTANT NOTES:
- Always use absolute file paths.
- Scanned PDFs have no extractable text; the run completes but warns when
  most pages are textless. This server cannot perform OCR.`

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmerge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  merge      Merge the docs tree into one Markdown file (default)")
	fmt.Fprintln(w, "  export     Render a Markdown file to PDF (HTML fallback)")
	fmt.Fprintln(w, "  build      Merge, then export")
	fmt.Fprintln(w, "  doctor     Check Chrome and project setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docmerge help <command>' for details on a specific command.")
}

func printMergeInputUsage(w io.Writer) {
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --docs <dir>          Content root (default \"docs\")")
	fmt.Fprintln(w, "      --descriptor <file>   Navigation descriptor, JSON or YAML (default \"toc.json\")")
	fmt.Fprintln(w, "      --exclude <glob>      Skip content files matching glob (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "      --provenance <s>      Notice printed under the title")
	fmt.Fprintln(w, "      --no-provenance       Omit the notice")
	fmt.Fprintln(w, "      --date <s>            Append a date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                 Generate a table of contents")
	fmt.Fprintln(w, "      --toc-depth <n>       Max depth (>= 1, default 3)")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w)
}

func printExportOptionsUsage(w io.Writer) {
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load and render timeout (default 30s)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal (default a4)")
	fmt.Fprintln(w, "      --style <s>           Built-in style, CSS file, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-entry diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: DOCMERGE_CONFIG, DOCMERGE_DOCS_DIR, DOCMERGE_DESCRIPTOR,")
	fmt.Fprintln(w, "DOCMERGE_OUTPUT, DOCMERGE_TITLE, DOCMERGE_DATE, DOCMERGE_STYLE,")
	fmt.Fprintln(w, "DOCMERGE_TIMEOUT, DOCMERGE_PAGE_SIZE. Flags take precedence.")
}

func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmerge merge [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge the pages listed in the navigation descriptor into one Markdown file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       Merged Markdown (default \"API_documentation_full.md\")")
	fmt.Fprintln(w)
	printMergeInputUsage(w)
	printCommonUsage(w)
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmerge export [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown to PDF with headless Chrome. When rendering fails the")
	fmt.Fprintln(w, "styled HTML is kept next to the PDF path so it can be printed from a browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (default: the merge output)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       PDF file (default: input with .pdf extension)")
	fmt.Fprintln(w)
	printExportOptionsUsage(w)
	printCommonUsage(w)
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmerge build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge the docs tree, then export the result to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <file>       Merged Markdown (default \"API_documentation_full.md\")")
	fmt.Fprintln(w, "      --pdf <file>          PDF file (default: Markdown output with .pdf extension)")
	fmt.Fprintln(w)
	printMergeInputUsage(w)
	printExportOptionsUsage(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "merge":
		printMergeUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: docmerge doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container settings and the default inputs.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docmerge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docmerge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

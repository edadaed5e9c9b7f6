// Package process terminates the headless browser started for PDF export.
package process

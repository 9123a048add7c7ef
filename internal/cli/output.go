package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	Out io.Writer // nil means os.Stdout
	Err io.Writer // nil means os.Stderr
}

// NewFormatter reads --json and --quiet from cmd and writes to the command's
// output streams.
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

// AddFlags registers --json and --quiet on cmd.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("quiet", false, "Minimal output (IDs only)")
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) err() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs a successful result. In quiet mode only the ids found in
// data are printed; pretty renders the human-readable form.
func (f *OutputFormatter) Success(data any, pretty func(w io.Writer) error) error {
	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	if f.Quiet {
		for _, id := range IDs(data) {
			if _, err := fmt.Fprintln(f.out(), id); err != nil {
				return err
			}
		}
		return nil
	}

	if pretty == nil {
		_, err := fmt.Fprintf(f.out(), "%+v\n", data)
		return err
	}
	return pretty(f.out())
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	return f.errorWith(code, message, suggestion, nil)
}

// Failure reports err using its classification and returns the matching
// CommandError for the command to return.
func (f *OutputFormatter) Failure(err error, suggestion string) error {
	class := Classify(err)
	if fmtErr := f.errorWith(class.Code, err.Error(), suggestion, FieldMessages(err)); fmtErr != nil {
		return fmtErr
	}
	return &CommandError{Code: class.Exit, Err: err, Reported: true}
}

func (f *OutputFormatter) errorWith(code, message, suggestion string, fields map[string]string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		if len(fields) > 0 {
			errData["fields"] = fields
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	w := f.err()
	if len(fields) > 0 {
		fmt.Fprintln(w, "❌ Error: validation failed")
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			fmt.Fprintf(w, "   %s: %s\n", field, fields[field])
		}
	} else {
		fmt.Fprintf(w, "❌ Error: %s\n", message)
	}
	if suggestion != "" {
		fmt.Fprintf(w, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// IDs extracts the identifiers printed in quiet mode.
func IDs(data any) []string {
	switch v := data.(type) {
	case models.Task:
		return []string{v.ID}
	case models.Project:
		return []string{v.ID}
	case models.User:
		return []string{v.ID}
	case []models.Task:
		ids := make([]string, len(v))
		for i, t := range v {
			ids[i] = t.ID
		}
		return ids
	case []models.Project:
		ids := make([]string, len(v))
		for i, p := range v {
			ids[i] = p.ID
		}
		return ids
	case []models.User:
		ids := make([]string, len(v))
		for i, u := range v {
			ids[i] = u.ID
		}
		return ids
	case []models.Column:
		var ids []string
		for _, c := range v {
			ids = append(ids, IDs(c.Tasks)...)
		}
		return ids
	case interface{ GetID() string }:
		return []string{v.GetID()}
	}
	return nil
}

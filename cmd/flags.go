package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

// enumValue is a string flag restricted to a fixed set of values. Input is
// matched case-insensitively and stored in its canonical spelling.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnum(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(v string) error {
	for _, a := range e.allowed {
		if strings.EqualFold(a, strings.TrimSpace(v)) {
			e.value = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }

func withAll(values ...string) []string {
	return append([]string{models.FilterAll}, values...)
}

func roleNames() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}

func userStatusNames() []string {
	out := make([]string, len(models.UserStatuses))
	for i, s := range models.UserStatuses {
		out[i] = string(s)
	}
	return out
}

func orderStatusNames() []string {
	out := make([]string, len(models.OrderStatuses))
	for i, s := range models.OrderStatuses {
		out[i] = string(s)
	}
	return out
}

// addListFlags registers the query flags shared by every list command
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "case-insensitive search text")
	cmd.Flags().String("from", "", "earliest date (YYYY-MM-DD, today, -7d, monday...)")
	cmd.Flags().String("to", "", "latest date, inclusive")
	cmd.Flags().IntP("page", "p", models.DefaultPage, "page number")
	cmd.Flags().IntP("limit", "n", 0, "page size (default from config)")
	addFormatFlags(cmd)
}

// addFormatFlags registers --json and --yaml
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("yaml", false, "output as YAML")
}

// outputMode reads --json/--yaml
func outputMode(cmd *cobra.Command) output.OutputMode {
	if v, _ := cmd.Flags().GetBool("json"); v {
		return output.ModeJSON
	}
	if v, _ := cmd.Flags().GetBool("yaml"); v {
		return output.ModeYAML
	}
	return output.ModeTable
}

// listFilter builds a filter from the shared list flags plus the named
// enum field flags
func listFilter(cmd *cobra.Command, pageSize int, fieldFlags map[string]string) models.Filter {
	f := models.Filter{Fields: map[string]string{}}
	f.Search, _ = cmd.Flags().GetString("search")
	f.DateFrom, _ = cmd.Flags().GetString("from")
	f.DateTo, _ = cmd.Flags().GetString("to")
	f.Page, _ = cmd.Flags().GetInt("page")
	f.PageSize, _ = cmd.Flags().GetInt("limit")
	if f.PageSize <= 0 {
		f.PageSize = pageSize
	}
	for flag, field := range fieldFlags {
		if v, _ := cmd.Flags().GetString(flag); v != "" && v != models.FilterAll {
			f.Fields[field] = v
		}
	}
	return f
}

// emit prints v as JSON or YAML, or calls table for the default mode
func emit(mode output.OutputMode, v interface{}, table func()) error {
	switch mode {
	case output.ModeJSON:
		return output.JSON(v)
	case output.ModeYAML:
		return output.YAML(v)
	default:
		table()
		return nil
	}
}

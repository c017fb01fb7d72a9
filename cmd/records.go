package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/overlay"
)

// view renders one kind of record for the terminal
type view[E models.Record] struct {
	table func([]E) string
	card  func(E) string
	line  func(E) string
}

func runList[B any, E models.Record](ctx context.Context, svc *overlay.Service[B, E], f models.Filter, mode output.OutputMode, v view[E]) error {
	page, err := svc.Query(ctx, f)
	if err != nil {
		return err
	}
	return emit(mode, page, func() {
		if len(page.Items) > 0 {
			fmt.Println(v.table(page.Items))
		}
		fmt.Println(output.PageFooter(page.Page, page.TotalPages, page.Total))
	})
}

func runShow[B any, E models.Record](ctx context.Context, svc *overlay.Service[B, E], id int, card bool, mode output.OutputMode, v view[E]) error {
	e, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	return emit(mode, e, func() {
		md := v.card(e)
		if card {
			if rendered, err := output.RenderMarkdown(md); err == nil {
				md = rendered
			}
		}
		fmt.Println(md)
	})
}

func runCreate[B any, E models.Record](ctx context.Context, svc *overlay.Service[B, E], e E, check func(E) error, mode output.OutputMode, v view[E]) error {
	if err := check(e); err != nil {
		return err
	}
	created, err := svc.Create(ctx, e)
	if err != nil {
		return err
	}
	return emit(mode, created, func() {
		output.Success("Created %s", v.line(created))
	})
}

func runUpdate[B any, E models.Record](ctx context.Context, svc *overlay.Service[B, E], id int, patch models.Patch, check func(models.Patch) error, mode output.OutputMode, v view[E]) error {
	if err := check(patch); err != nil {
		return err
	}
	updated, err := svc.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	return emit(mode, updated, func() {
		output.Success("Updated %s", v.line(updated))
	})
}

func runDelete[B any, E models.Record](ctx context.Context, svc *overlay.Service[B, E], id int, mode output.OutputMode) error {
	if err := svc.Delete(ctx, id); err != nil {
		return err
	}
	return emit(mode, map[string]interface{}{"deleted": id, "kind": svc.Kind()}, func() {
		output.Success("Deleted %s #%d", svc.Kind(), id)
	})
}

// idArg parses the single positional id
func idArg(args []string) (int, error) {
	return models.ParseID(args[0])
}

// dateFlag resolves a date flag to YYYY-MM-DD, "" when unset
func dateFlag(cmd *cobra.Command, name string, now time.Time) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return "", nil
	}
	d, err := dateparse.ResolveAt(v, now)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// patchFromFlags collects every changed flag named in fields into a patch.
// fields maps flag names to JSON field names.
func patchFromFlags(cmd *cobra.Command, fields map[string]string, now time.Time) (models.Patch, error) {
	values := map[string]any{}
	for flag, field := range fields {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		switch cmd.Flags().Lookup(flag).Value.Type() {
		case "float64":
			v, _ := cmd.Flags().GetFloat64(flag)
			values[field] = v
		default:
			if field == "joinDate" || field == "orderDate" {
				d, err := dateFlag(cmd, flag, now)
				if err != nil {
					return nil, err
				}
				values[field] = d
				continue
			}
			v, _ := cmd.Flags().GetString(flag)
			values[field] = v
		}
	}
	return models.NewPatch(values)
}

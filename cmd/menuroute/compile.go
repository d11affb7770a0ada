package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/model"
	"github.com/go-arcade/menuroute/internal/source"
	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/spf13/cobra"
)

// compileOptions are shared by the offline commands.
type compileOptions struct {
	dir       string
	key       string
	listField string
	routeBase string
	expr      string
}

func (o *compileOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dir, "dir", "./data", "directory holding <key>.json")
	cmd.Flags().StringVar(&o.key, "key", model.LoginAction, "menu file name without .json")
	cmd.Flags().StringVar(&o.listField, "list-field", model.DefaultListField, "field holding the item list")
	cmd.Flags().StringVar(&o.routeBase, "route-base", config.DefaultRouteBase, "prefix of every generated path")
	cmd.Flags().StringVar(&o.expr, "component-expr", "", `componentPath expression, e.g. "@/views/" + viewPath + "/index.vue"`)
}

// build loads the menu file and compiles it. Warnings go to w.
func (o *compileOptions) build(ctx context.Context, w io.Writer) (*menuroute.DynamicRoute, error) {
	items, err := source.NewFileSource(o.dir, o.listField).Load(ctx, o.key)
	if err != nil {
		return nil, err
	}
	transform, err := menuroute.ExprTransform(o.expr)
	if err != nil {
		return nil, err
	}

	route := menuroute.NewDynamicRoute(menuroute.Options{
		RouteBase: o.routeBase,
		Transform: transform,
		OnWarning: func(warning menuroute.Warning) {
			fmt.Fprintln(w, "warning:", warning.String())
		},
	})
	route.GenerateRoutes(items)
	return route, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func flatten(routes []*menuroute.RouteRecord) []*menuroute.RouteRecord {
	flat := make([]*menuroute.RouteRecord, 0, len(routes))
	for _, r := range routes {
		flat = append(flat, r.Flat())
	}
	return flat
}

func newCompileCmd() *cobra.Command {
	opts := &compileOptions{}
	var flat bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a menu file and print the route tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if flat {
				return printJSON(cmd.OutOrStdout(), flatten(route.AllRoutes()))
			}
			return printJSON(cmd.OutOrStdout(), route.RootRoutes())
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&flat, "flat", false, "print every record without children")
	return cmd
}

func newResolveCmd() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path against a compiled menu file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			record, params, ok := route.MatchPath(args[0])
			if !ok {
				return fmt.Errorf("no route matches %q", args[0])
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"route":  record.Flat(),
				"params": params,
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

func newBreadcrumbCmd() *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "breadcrumb <path>",
		Short: "Print the ancestor chain of a path, root first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := opts.build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), flatten(route.Breadcrumb(args[0])))
		},
	}
	opts.bind(cmd)
	return cmd
}

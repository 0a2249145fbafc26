package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kubev2v/resort-catalog/internal/store"
)

// lister renders the rows of one entity type.
type lister func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error)

var listers = map[string]lister{
	"resorts": func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error) {
		rows, err := s.Resorts().Filter(ctx, conds...)
		if err != nil {
			return nil, nil, err
		}
		out := make([][]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, []string{
				strconv.FormatInt(r.ID, 10),
				r.Name,
				strconv.FormatFloat(r.Price, 'f', 2, 64),
				strings.Join(r.Features, ","),
				strings.Join(r.Environments, ","),
			})
		}
		return []string{"id", "name", "price", "features", "environments"}, out, nil
	},
	"features": func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error) {
		rows, err := s.Features().Filter(ctx, conds...)
		if err != nil {
			return nil, nil, err
		}
		out := make([][]string, 0, len(rows))
		for _, f := range rows {
			out = append(out, []string{strconv.FormatInt(f.ID, 10), f.Name})
		}
		return []string{"id", "name"}, out, nil
	},
	"environments": func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error) {
		rows, err := s.Environments().Filter(ctx, conds...)
		if err != nil {
			return nil, nil, err
		}
		out := make([][]string, 0, len(rows))
		for _, e := range rows {
			out = append(out, []string{strconv.FormatInt(e.ID, 10), e.Name})
		}
		return []string{"id", "name"}, out, nil
	},
	"roles": func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error) {
		rows, err := s.Roles().Filter(ctx, conds...)
		if err != nil {
			return nil, nil, err
		}
		out := make([][]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, []string{strconv.FormatInt(r.ID, 10), r.Name})
		}
		return []string{"id", "name"}, out, nil
	},
	"users": func(ctx context.Context, s *store.Store, conds []store.Condition) ([]string, [][]string, error) {
		rows, err := s.Users().Filter(ctx, conds...)
		if err != nil {
			return nil, nil, err
		}
		out := make([][]string, 0, len(rows))
		for _, u := range rows {
			out = append(out, []string{strconv.FormatInt(u.ID, 10), u.Login, u.Role})
		}
		return []string{"id", "login", "role"}, out, nil
	},
}

func entityNames() []string {
	names := make([]string, 0, len(listers))
	for name := range listers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newListCommand(v *viper.Viper) *cobra.Command {
	var where []string

	cmd := &cobra.Command{
		Use:       fmt.Sprintf("list <%s>", strings.Join(entityNames(), "|")),
		Short:     "List the rows of an entity",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, ok := listers[args[0]]
			if !ok {
				return fmt.Errorf("unknown entity %q: expected one of %s", args[0], strings.Join(entityNames(), ", "))
			}

			conds, err := ParseConditions(where)
			if err != nil {
				return err
			}

			s, err := openStore(cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			header, rows, err := list(cmd.Context(), s, conds)
			if err != nil {
				return err
			}
			render(cmd.OutOrStdout(), header, rows)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "filter as column:op:value, may be repeated (ANDed)")
	return cmd
}

// ParseConditions parses column:op:value expressions.
func ParseConditions(exprs []string) ([]store.Condition, error) {
	conds := make([]store.Condition, 0, len(exprs))
	for _, expr := range exprs {
		parts := strings.SplitN(expr, ":", 3)
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid filter %q: expected column:op:value", expr)
		}
		op, ok := store.ParseOperator(parts[1])
		if !ok {
			return nil, fmt.Errorf("invalid filter %q: unsupported operator %q", expr, parts[1])
		}
		var value any = parts[2]
		if op == store.OpIn {
			value = strings.Split(parts[2], ",")
		}
		conds = append(conds, store.Condition{Column: parts[0], Op: op, Value: value})
	}
	return conds, nil
}

func render(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

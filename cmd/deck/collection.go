package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/search"
	"github.com/sky-flux/deck/storage"
)

func listCMD(flags *globalFlags) *cobra.Command {
	var all bool
	var lang, filter string

	list := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				l, err := a.language(lang)
				if err != nil {
					return err
				}
				records := a.records(ctx)
				if !all {
					records = deck.Visible(records)
				}
				for _, r := range deck.Filter(records, filter, l) {
					printRow(cmd.OutOrStdout(), r, l)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVarP(&all, "all", "a", false, "include hidden exercises")
	list.Flags().StringVar(&lang, "lang", "", "display language (en, fr)")
	list.Flags().StringVarP(&filter, "filter", "f", "", "only titles containing this text")
	return list
}

func printRow(w io.Writer, r deck.Record, l deck.Language) {
	hidden := ""
	if r.Hidden {
		hidden = "  (hidden)"
	}
	fmt.Fprintf(w, "%4d  %s%s\n", r.ID, r.Title(l), hidden)
}

func showCMD(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one exercise in both languages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				r, ok := deck.Find(a.records(ctx), id)
				if !ok {
					return fmt.Errorf("%w: id %d", deck.ErrRecordNotFound, id)
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "#%d", r.ID)
				if r.Hidden {
					fmt.Fprint(w, " (hidden)")
				}
				fmt.Fprintln(w)
				for _, l := range []deck.Language{deck.English, deck.French} {
					fmt.Fprintf(w, "\n[%s] %s\n%s\n", l, r.Title(l), r.Description(l))
				}
				return nil
			})
		},
	}
}

func searchCMD(flags *globalFlags) *cobra.Command {
	var limit int
	var lang string

	searchCmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Full-text search across titles and descriptions in both languages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				l, err := a.language(lang)
				if err != nil {
					return err
				}
				records := a.records(ctx)
				idx, err := search.New(records)
				if err != nil {
					return err
				}
				defer idx.Close()
				if n, err := idx.Len(); err == nil {
					a.log.WithField("documents", n).Debug("search index built")
				}

				hits, err := idx.Query(ctx, strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				if len(hits) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no matches")
					return nil
				}
				for _, h := range hits {
					if r, ok := deck.Find(records, h.ID); ok {
						printRow(cmd.OutOrStdout(), r, l)
					}
				}
				return nil
			})
		},
	}
	searchCmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "maximum number of results")
	searchCmd.Flags().StringVar(&lang, "lang", "", "display language (en, fr)")
	return searchCmd
}

func hideCMD(flags *globalFlags, hide bool) *cobra.Command {
	use, short, done := "hide <id>", "Hide an exercise from study sessions", "hidden"
	if !hide {
		use, short, done = "unhide <id>", "Show a hidden exercise in study sessions again", "visible"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				records, err := a.editable(ctx)
				if err != nil {
					return err
				}
				out, err := deck.SetHidden(records, id, hide)
				if err != nil {
					return err
				}
				if err := a.store.Save(ctx, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exercise %d is now %s\n", id, done)
				return nil
			})
		},
	}
}

func deleteCMD(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				records, err := a.editable(ctx)
				if err != nil {
					return err
				}
				out, err := deck.Remove(records, id)
				if err != nil {
					return err
				}
				if err := a.store.Save(ctx, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exercise %d deleted\n", id)
				return nil
			})
		},
	}
}

func restoreCMD(flags *globalFlags) *cobra.Command {
	var yes bool
	restore := &cobra.Command{
		Use:   "restore",
		Short: "Replace the collection with the built-in exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("restore discards every edit; pass --yes to confirm")
			}
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				if err := storage.Restore(ctx, a.store, deck.DefaultRecords()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "default exercises restored")
				return nil
			})
		},
	}
	restore.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the restore")
	return restore
}

func exportCMD(flags *globalFlags) *cobra.Command {
	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				records := a.records(ctx)
				var data []byte
				var err error
				switch format {
				case "json":
					data, err = json.MarshalIndent(records, "", "  ")
				case "yaml", "yml":
					data, err = yaml.Marshal(records)
				default:
					return fmt.Errorf("%w: %q", storage.ErrUnsupportedFormat, format)
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
				return err
			})
		},
	}
	export.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return export
}

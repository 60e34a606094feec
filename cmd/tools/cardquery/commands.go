package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/hearthstone/backend/internal/config"
	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
	"github.com/zhouzirui/hearthstone/backend/internal/service/lookup"
)

// queryEnv is what every subcommand needs: a service over the loaded data and
// the configured default limit.
type queryEnv struct {
	svc          *lookup.Service
	defaultLimit int
}

func newRootCmd() *cobra.Command {
	var dataFile string

	root := &cobra.Command{
		Use:   "cardquery",
		Short: "Query the Hearthstone card dataset without starting the API",
		Long: `cardquery loads the configured card dataset and runs the same lookups the
HTTP API serves. Configuration comes from the environment (CARDS_*) or the
TOML file named by CARDS_CONFIG_FILE; --data overrides the data file.

Examples:
  cardquery list --limit 5
  cardquery get frostbolt
  cardquery get CS2_029 --by id
  cardquery attr "leeroy jenkins" cost
  cardquery path fireball '$.mechanics[0]'`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataFile, "data", "", "card data file (JSON or YAML)")

	load := func() (*queryEnv, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		path := cfg.Cards.DataFile
		if dataFile != "" {
			path = dataFile
		}
		items, err := card.LoadFile(path)
		if err != nil {
			return nil, err
		}
		store := card.NewMemoryStore(items)
		return &queryEnv{
			svc:          lookup.NewService(store, cfg.Cards.LookupOptions()),
			defaultLimit: cfg.Cards.DefaultLimit,
		}, nil
	}

	root.AddCommand(newListCmd(load), newGetCmd(load), newAttrCmd(load), newPathCmd(load))
	return root
}

type loader func() (*queryEnv, error)

func newListCmd(load loader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the first cards of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = env.defaultLimit
			}
			cards, err := env.svc.ListLimited(limit)
			if err != nil {
				return err
			}
			return printCards(cmd.OutOrStdout(), cards)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", lookup.DefaultLimit, "number of cards to print")
	return cmd
}

func newGetCmd(load loader) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "get [card]",
		Short: "Print the cards matching a name or id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			key, err := parseKey(by, args[0])
			if err != nil {
				return err
			}
			return printCards(cmd.OutOrStdout(), env.svc.Resolve(key))
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "match on name or id (default: name, then id)")
	return cmd
}

func newAttrCmd(load loader) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "attr [card] [key]",
		Short: "Print one attribute of the first matching card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			key, err := parseKey(by, args[0])
			if err != nil {
				return err
			}
			first, err := lookup.FirstOrFail(env.svc.Resolve(key))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			value, ok := lookup.ProjectAttribute(first, args[1])
			if !ok {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%s has no attribute %q\n", first.Name(), args[1])
			}
			return printJSON(cmd.OutOrStdout(), value)
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "match on name or id (default: name, then id)")
	return cmd
}

func newPathCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path [card] [jsonpath]",
		Short: "Evaluate a JSONPath expression on the first matching card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := load()
			if err != nil {
				return err
			}
			first, err := lookup.FirstOrFail(env.svc.Resolve(lookup.Auto(args[0])))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			selected, err := lookup.SelectPath(first, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), selected)
		},
	}
	return cmd
}

func parseKey(by, value string) (lookup.Key, error) {
	kind, err := lookup.ParseKeyKind(by)
	if err != nil {
		return lookup.Key{}, err
	}
	return lookup.Key{Kind: kind, Value: value}, nil
}

// printCards writes a highlighted header per card followed by its JSON.
func printCards(w io.Writer, cards card.Collection) error {
	if len(cards) == 0 {
		color.New(color.FgYellow).Fprintln(w, "no cards matched")
		return nil
	}
	header := color.New(color.FgCyan, color.Bold)
	for _, c := range cards {
		header.Fprintf(w, "%s [%s]\n", c.Name(), c.ID())
		if err := printJSON(w, c); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

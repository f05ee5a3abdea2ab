package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/model-pkgs/registry"
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Search packages by name",
	Long: `Searches the registry. With no argument (or the literal "*") every
package is listed. With --regex the argument is sent as a name pattern.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("regex", false, "treat the argument as a regex name pattern")
	searchCmd.Flags().Bool("latest", false, "show only the latest version of each package")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}

	name := registry.Wildcard
	if len(args) > 0 {
		name = args[0]
	}

	var pkgs []registry.PackageMetadata
	if regex, _ := cmd.Flags().GetBool("regex"); regex {
		pkgs, err = s.reg.SearchByRegex(cmd.Context(), name)
	} else {
		var result registry.SearchResult
		result, err = s.reg.SearchPackages(cmd.Context(), []registry.SearchQuery{{Name: name}})
		pkgs = result.Packages
	}
	if err != nil {
		return err
	}

	registry.SortPackages(pkgs)

	if latest, _ := cmd.Flags().GetBool("latest"); latest {
		pkgs = latestOnly(pkgs)
	}

	if len(pkgs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no packages found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION")
	for _, p := range pkgs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Version)
	}
	return w.Flush()
}

// latestOnly keeps the highest version per package name. Input must be
// sorted by name with versions descending.
func latestOnly(pkgs []registry.PackageMetadata) []registry.PackageMetadata {
	out := pkgs[:0]
	prev := ""
	for _, p := range pkgs {
		if p.Name == prev {
			continue
		}
		out = append(out, p)
		prev = p.Name
	}
	return out
}

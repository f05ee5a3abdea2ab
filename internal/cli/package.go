package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/model-pkgs/registry"
	"github.com/model-pkgs/registry/client"
	"github.com/model-pkgs/registry/fetch"
	"github.com/model-pkgs/registry/internal/core"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a package with its rating and cost",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Ingest a model by URL, subject to the quality gate",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

var uploadCmd = &cobra.Command{
	Use:   "upload <url>",
	Short: "Upload a package by URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var rateCmd = &cobra.Command{
	Use:   "rate <id>",
	Short: "Submit quality scores for a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runRate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Resolve a model download and stream it to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	ingestCmd.Flags().String("name", "", "explicit model name")

	rateCmd.Flags().Float64("bus-factor", 0, "bus factor score")
	rateCmd.Flags().Float64("correctness", 0, "correctness score")
	rateCmd.Flags().Float64("ramp-up", 0, "ramp-up score")
	rateCmd.Flags().Float64("responsive-maintainer", 0, "responsive maintainer score")
	rateCmd.Flags().Float64("license", 0, "license score")
	rateCmd.Flags().Float64("pinning", 0, "good pinning practice score")
	rateCmd.Flags().Float64("pull-request", 0, "pull request score")
	rateCmd.Flags().Float64("net-score", 0, "net score")
	rateCmd.Flags().Float64("reproducibility", 0, "reproducibility score")

	downloadCmd.Flags().StringP("output", "o", "", "output file (default derived from the storage URL)")
	downloadCmd.Flags().Bool("resolve-only", false, "print the storage location without downloading")

	rootCmd.AddCommand(getCmd, ingestCmd, uploadCmd, rateCmd, deleteCmd, downloadCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	id := args[0]
	ctx := cmd.Context()

	pkg, err := s.reg.GetPackage(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", pkg.Metadata.ID)
	fmt.Fprintf(w, "Name\t%s\n", pkg.Metadata.Name)
	fmt.Fprintf(w, "Version\t%s\n", pkg.Metadata.Version)
	if pkg.Data.URL != "" {
		fmt.Fprintf(w, "URL\t%s\n", pkg.Data.URL)
	}
	if pkg.Data.Content != "" {
		fmt.Fprintf(w, "Description\t%s\n", pkg.Data.Content)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Rating and cost are best-effort extras on the detail view.
	if rating, err := s.reg.GetPackageRating(ctx, id); err != nil {
		slog.Debug("rating unavailable", "id", id, "error", err)
	} else {
		printRating(out, rating)
	}

	cost, _ := s.reg.GetPackageCost(ctx, id)
	if entry, ok := cost[id]; ok {
		fmt.Fprintf(out, "\nTotal cost: %s\n", core.FormatScore(entry.TotalCost))
	}
	return nil
}

func printRating(out io.Writer, r registry.PackageRating) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nMETRIC\tSCORE")
	fmt.Fprintf(w, "NetScore\t%s\n", core.FormatScore(r.NetScore))
	fmt.Fprintf(w, "BusFactor\t%s\n", core.FormatScore(r.BusFactor))
	fmt.Fprintf(w, "Correctness\t%s\n", core.FormatScore(r.Correctness))
	fmt.Fprintf(w, "RampUp\t%s\n", core.FormatScore(r.RampUp))
	fmt.Fprintf(w, "ResponsiveMaintainer\t%s\n", core.FormatScore(r.ResponsiveMaintainer))
	fmt.Fprintf(w, "LicenseScore\t%s\n", core.FormatScore(r.LicenseScore))
	fmt.Fprintf(w, "GoodPinningPractice\t%s\n", core.FormatScore(r.GoodPinningPractice))
	fmt.Fprintf(w, "PullRequest\t%s\n", core.FormatScore(r.PullRequest))
	fmt.Fprintf(w, "Reproducibility\t%s\n", core.FormatScore(r.Reproducibility))
	_ = w.Flush()
}

func runIngest(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	result, err := s.reg.IngestModel(cmd.Context(), args[0], name)
	if err != nil {
		var gateErr *client.QualityGateError
		if errors.As(err, &gateErr) {
			return formatQualityGate(gateErr)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ingested %s (id %s)\n", result.ModelName, result.ArtifactID)
	return nil
}

// formatQualityGate renders the 424 failure as an itemized report rather
// than a flat message.
func formatQualityGate(gateErr *client.QualityGateError) error {
	var b strings.Builder
	msg := gateErr.Message
	if msg == "" {
		msg = "quality gate check failed"
	}
	b.WriteString(msg)
	for _, m := range gateErr.FailingMetrics {
		b.WriteString(fmt.Sprintf("\n  %s: score %s, threshold %s",
			m.Metric, core.FormatScore(m.Score), core.FormatScore(m.Threshold)))
	}
	return errors.New(b.String())
}

func runUpload(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}

	pkg, err := s.reg.UploadPackage(cmd.Context(), registry.PackageData{URL: args[0]})
	if err != nil {
		var gateErr *client.QualityGateError
		if errors.As(err, &gateErr) {
			return formatQualityGate(gateErr)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s %s (id %s)\n",
		pkg.Metadata.Name, pkg.Metadata.Version, pkg.Metadata.ID)
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}

	f64 := func(name string) float64 {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	rating := registry.PackageRating{
		BusFactor:            f64("bus-factor"),
		Correctness:          f64("correctness"),
		RampUp:               f64("ramp-up"),
		ResponsiveMaintainer: f64("responsive-maintainer"),
		LicenseScore:         f64("license"),
		GoodPinningPractice:  f64("pinning"),
		PullRequest:          f64("pull-request"),
		NetScore:             f64("net-score"),
		Reproducibility:      f64("reproducibility"),
	}

	if err := s.reg.RatePackage(cmd.Context(), args[0], rating); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rated package %s\n", args[0])
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	if err := s.reg.DeletePackage(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted package %s\n", args[0])
	return nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	s, err := newHydratedStack(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	downloadURL := s.reg.DownloadURL(args[0])

	resolver := fetch.NewResolver(fetch.WithResolverAuth(s.store))
	loc, err := resolver.Resolve(ctx, downloadURL)
	if err != nil {
		return err
	}
	slog.Debug("download resolved", "id", args[0], "url", loc.URL, "direct", loc.Direct)

	if resolveOnly, _ := cmd.Flags().GetBool("resolve-only"); resolveOnly {
		fmt.Fprintln(cmd.OutOrStdout(), loc.URL)
		return nil
	}

	fetcher := fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(
		fetch.WithRegistryAuth(s.store, s.reg.Routes().Base()),
	))
	artifact, err := fetcher.Fetch(ctx, loc.URL)
	if err != nil {
		return err
	}
	defer func() { _ = artifact.Body.Close() }()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = path.Base(loc.URL)
		if output == "" || output == "." || output == "/" {
			output = args[0]
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	written, err := io.Copy(file, artifact.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, written)
	return nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bradfox2/aa-hotel-optimizer/internal/cli"
	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
	"github.com/bradfox2/aa-hotel-optimizer/internal/config"
	"github.com/bradfox2/aa-hotel-optimizer/internal/session"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage AAdvantage Hotels session credentials",
		Long: `The portal has no public API; searches reuse the cookies and tokens
from a logged-in browser session. Copy any portal request from your
browser's network tab as cURL and import it here.`,
	}

	cmd.PersistentFlags().String("headers-file", "", "session headers file (default: ~/.config/aahotels/headers.json)")
	_ = viper.BindPFlag("search.headers_file", cmd.PersistentFlags().Lookup("headers-file"))

	cmd.AddCommand(authImportCmd())
	cmd.AddCommand(authShowCmd())

	return cmd
}

func authImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [curl-file]",
		Short: "Import session headers from a copied cURL command",
		Long: `Reads a cURL command (from a file argument or stdin) and stores its
headers for later searches.

In your browser: open DevTools, load aadvantagehotels.com while logged
in, right-click any request to the site and choose "Copy as cURL".`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAuthImport,
	}
	return cmd
}

func runAuthImport(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if len(args) == 1 {
		raw, err = os.ReadFile(config.ExpandPath(args[0])) //nolint:gosec // user-supplied path
		if err != nil {
			return fmt.Errorf("failed to read curl file: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Paste the cURL command, then press Ctrl-D:"))
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	url, headers, err := session.ParseCurlCommand(string(raw))
	if err != nil {
		return common.NewUserError("could not parse the curl command; copy a portal request from your browser's network tab", err)
	}
	slog.Debug("Parsed curl command", "url", url, "headers", len(headers))

	if missing := session.Sanity(headers); len(missing) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(
			fmt.Sprintf("Missing expected headers: %s. Searches may fail with 403.", strings.Join(missing, ", "))))
	}

	path, err := headersPath()
	if err != nil {
		return err
	}
	if err := session.SaveHeaders(path, headers); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Saved %d headers to %s", len(headers), path)))
	return nil
}

func authShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored session headers (values redacted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := headersPath()
			if err != nil {
				return err
			}
			headers, err := session.LoadHeaders(path)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(headers))
			for name := range headers {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Headers in %s:", path)))
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %s\n", name, redact(headers[name]))
			}
			return nil
		},
	}
}

func headersPath() (string, error) {
	if path := config.ExpandPath(viper.GetString("search.headers_file")); path != "" {
		return path, nil
	}
	return session.DefaultHeadersPath()
}

// redact keeps a short prefix so the user can tell tokens apart.
func redact(value string) string {
	const keep = 8
	if len(value) <= keep {
		return strings.Repeat("*", len(value))
	}
	return value[:keep] + strings.Repeat("*", 12)
}

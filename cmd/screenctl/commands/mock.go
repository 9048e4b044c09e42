package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewMockCommand(opts *RootOptions) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "mock METHOD PATH",
		Short: "Print the canned mock response for a request",
		Long: `Print the canned mock response for METHOD PATH as JSON.

PATH is relative to the service base path, e.g. "/machines/machine-7".
Path parameters select the route but are not substituted into the
response: every id returns the same canned entity.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			method, path := strings.ToUpper(args[0]), args[1]
			domains := a.APIs.MockDomains()
			if domain != "" {
				domains = []string{domain}
			}
			for _, d := range domains {
				f, key, ok := a.APIs.MockMap(d).Lookup(method, path)
				if !ok {
					continue
				}
				v, err := api.CallFactory(f)
				if err != nil {
					return errors.Wrapf(err, "mock %s in %s", key, d)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "# %s (%s)\n", key, d)
				return writeJSON(cmd.OutOrStdout(), v)
			}
			return errors.Wrapf(api.ErrNoMock, "%s %s", method, path)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "API domain to look in (default: every domain, sorted by name)")
	return cmd
}

// writeJSON prints the canned body as one JSON document. Mock bodies are
// arbitrary values, often arrays of nested objects, so they are not rows.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode json")
}

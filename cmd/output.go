package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"text/tabwriter"

	"reolink-cli/internal/client"
	"reolink-cli/internal/config"
	"reolink-cli/internal/system"
)

// newSystemAPI builds the system API from the saved session.
func newSystemAPI() (*system.API, error) {
	s := config.Load()
	if s.BaseURL == "" || s.Token == "" {
		return nil, errors.New("not logged in, run 'reolink-cli login' first")
	}

	api := client.New(client.ClientConfig{
		BaseURL:  s.BaseURL,
		Token:    s.Token,
		Insecure: s.Insecure,
	})
	return system.New(api), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

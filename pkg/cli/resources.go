package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/m-mizutani/docmirror/pkg/cli/config"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func resourcesCommand() *cli.Command {
	var resources config.Resources

	return &cli.Command{
		Name:    "resources",
		Aliases: []string{"r"},
		Usage:   "List resources in the registry file",
		Flags:   resources.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := resources.NewRegistry(ctx)
			if err != nil {
				return err
			}

			return printResources(c.Root().Writer, registry.Resources())
		},
	}
}

func printResources(w io.Writer, resources []*model.SyncResource) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREPOSITORY\tBRANCH\tCONTENT\tSTATUS")

	for _, res := range resources {
		status := "ok"
		if err := res.Validate(); err != nil {
			status = "incomplete"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			res.Name, res.Repository, res.Branch, contentLabel(res.Content), status)
	}

	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write resource list")
	}
	return nil
}

func contentLabel(prefixes model.ContentPrefixes) string {
	switch {
	case prefixes == nil:
		return "*"
	case len(prefixes) == 0:
		return "-"
	default:
		return strings.Join(prefixes, ",")
	}
}

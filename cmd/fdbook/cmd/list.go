package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tokmz/fdbook/pkg/fdapi"
	"github.com/tokmz/fdbook/pkg/logger"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the user's fixed deposits",
	Long: `列出当前用户的定期存款。

Examples:
  fdbook list --user 17
  fdbook list --user 17 -o yaml`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	id := a.identity.UserID(ctx)
	if id == logger.AnonymousUser {
		return fdapi.ErrEmptyUserID
	}

	a.log.LogUserAction(ctx, "view_fd_list")

	payload, err := a.api.GetFDs(ctx, id)
	if err != nil {
		return err
	}
	deposits, err := payload.Deposits()
	if err != nil {
		return err
	}
	return newPrinter(cmd.OutOrStdout()).PrintDeposits(deposits)
}

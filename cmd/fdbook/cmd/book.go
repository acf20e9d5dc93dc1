package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/fdapi"
	"github.com/tokmz/fdbook/pkg/logger"
)

var (
	bookAmount float64
	bookTenure int
	bookScheme string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a fixed deposit",
	Long: `预约一笔定期存款，最低金额 1000，期限 1 到 120 个月。

Examples:
  fdbook book --user 17 --amount 5000 --tenure 12 --scheme "Tax Saver"`,
	RunE: runBook,
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.Flags().Float64Var(&bookAmount, "amount", 0, "存款金额")
	bookCmd.Flags().IntVar(&bookTenure, "tenure", 12, "期限（月）")
	bookCmd.Flags().StringVar(&bookScheme, "scheme", "Regular Saver", "存款产品")
	_ = bookCmd.MarkFlagRequired("amount")
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	req := fdapi.BookRequest{
		Amount:       bookAmount,
		Scheme:       bookScheme,
		TenureMonths: bookTenure,
	}
	if s, ok := fdapi.LookupScheme(bookScheme); ok {
		req.Scheme = s.Name
	}
	if id := a.identity.UserID(ctx); id != logger.AnonymousUser {
		req.UserID = fdapi.ID(id)
	}
	if err := req.Validate(); err != nil {
		return fdapi.ErrInvalidBooking.WithError(err)
	}

	a.log.LogUserAction(ctx, "book_fd",
		zap.Float64("amount", req.Amount),
		zap.String("scheme", req.Scheme),
		zap.Int("tenure_months", req.TenureMonths),
	)

	payload, err := a.api.BookFD(ctx, req)
	if err != nil {
		return err
	}
	return newPrinter(cmd.OutOrStdout()).PrintPayload(payload)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inventree-tools/crewplan/infra/inventree"
	"github.com/inventree-tools/crewplan/infra/logger"
	"github.com/inventree-tools/crewplan/infra/mailer"
)

var (
	emailOrder   int
	emailTo      string
	emailCompany int
	emailSubject string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send a sales order CSV export by email",
	RunE:  runEmail,
}

func init() {
	emailCmd.Flags().IntVar(&emailOrder, "order", 0, "sales order id to export")
	emailCmd.Flags().StringVar(&emailTo, "to", "", "recipient address; defaults to the company contact")
	emailCmd.Flags().IntVar(&emailCompany, "company", 0, "company id used to look up the recipient")
	emailCmd.Flags().StringVar(&emailSubject, "subject", "", "message subject")
	_ = emailCmd.MarkFlagRequired("order")
	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("email-command")
	client, err := inventree.NewClient(cfg.InvenTree)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	to := emailTo
	if to == "" && emailCompany > 0 {
		to, err = client.CompanyEmail(ctx, emailCompany)
		if err != nil {
			return err
		}
	}
	if to == "" {
		return fmt.Errorf("no recipient: pass --to or --company")
	}

	csvBytes, err := client.OrderCSV(ctx, emailOrder)
	if err != nil {
		return err
	}

	m, err := mailer.New(cfg.SMTP)
	if err != nil {
		return err
	}
	subject := emailSubject
	if subject == "" {
		subject = fmt.Sprintf("Sales order %d export", emailOrder)
	}
	body := fmt.Sprintf("Attached is the CSV export of sales order %d.", emailOrder)
	filename := fmt.Sprintf("sales_order_%d.csv", emailOrder)
	if err := m.Send(to, subject, body, filename, csvBytes); err != nil {
		return err
	}
	logg.Infof("sent order %d export to %s", emailOrder, to)
	return nil
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/api"
	"github.com/gastrack-dev/gastrack/internal/models"
)

// NewMovementsCmd creates the movements command group
func NewMovementsCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Track cylinder movements and delivery transactions",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List cylinder movements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMovementsList(serverAlias)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a cylinder movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMovementsGet(serverAlias, args[0])
		},
	})

	record := &cobra.Command{
		Use:   "record",
		Short: "Record a cylinder movement",
	}
	var moveReq api.CreateMovementRequest
	var moveType string
	record.Flags().StringVar(&moveReq.CylinderID, "cylinder", "", "Cylinder ID")
	record.Flags().StringVar(&moveType, "type", "", "Movement type (delivery|pickup|transfer|maintenance|return)")
	record.Flags().StringVar(&moveReq.FromLocationID, "from", "", "Origin location ID")
	record.Flags().StringVar(&moveReq.ToLocationID, "to", "", "Destination location ID")
	record.Flags().StringVar(&moveReq.Notes, "notes", "", "Notes")
	record.RunE = func(cmd *cobra.Command, args []string) error {
		moveReq.MovementType = models.MovementType(moveType)
		return runMovementsRecord(serverAlias, moveReq)
	}
	cmd.AddCommand(record)

	tx := &cobra.Command{
		Use:   "tx",
		Short: "Manage delivery transactions",
	}

	tx.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactionsList(serverAlias)
		},
	})

	tx.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactionsGet(serverAlias, args[0])
		},
	})

	txCreate := &cobra.Command{
		Use:   "create",
		Short: "Open a new transaction with a single line item",
	}
	var txCustomer, txType, txCylinder, txNotes string
	var txQuantity int
	var txUnitPrice float64
	txCreate.Flags().StringVar(&txCustomer, "customer", "", "Customer ID")
	txCreate.Flags().StringVar(&txType, "type", "", "Transaction type (delivery|pickup|transfer|maintenance|return)")
	txCreate.Flags().StringVar(&txCylinder, "cylinder", "", "Cylinder ID")
	txCreate.Flags().IntVar(&txQuantity, "quantity", 1, "Quantity")
	txCreate.Flags().Float64Var(&txUnitPrice, "unit-price", 0, "Unit price")
	txCreate.Flags().StringVar(&txNotes, "notes", "", "Notes")
	txCreate.RunE = func(cmd *cobra.Command, args []string) error {
		req := api.CreateTransactionRequest{
			CustomerID:      txCustomer,
			TransactionType: models.MovementType(txType),
			Notes:           txNotes,
			Items: []api.TransactionItemRequest{
				{CylinderID: txCylinder, Quantity: txQuantity, UnitPrice: txUnitPrice},
			},
		}
		return runTransactionsCreate(serverAlias, req)
	}
	tx.AddCommand(txCreate)

	tx.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a transaction as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactionsComplete(serverAlias, args[0])
		},
	})

	cmd.AddCommand(tx)

	return cmd
}

func runMovementsList(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	movements, err := a.client.ListMovements()
	if err != nil {
		return err
	}

	if len(movements) == 0 {
		fmt.Fprintln(output, "No movements found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCYLINDER\tTYPE\tFROM\tTO\tWHEN")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.CylinderID, m.MovementType, m.FromLocationID, m.ToLocationID,
			m.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runMovementsGet(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	m, err := a.client.GetMovement(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Movement %s\n", m.ID)
	fmt.Fprintf(output, "  Cylinder: %s\n", m.CylinderID)
	fmt.Fprintf(output, "  Type:     %s\n", m.MovementType)
	fmt.Fprintf(output, "  Route:    %s -> %s\n", m.FromLocationID, m.ToLocationID)
	fmt.Fprintf(output, "  When:     %s by %s\n", m.Timestamp.Format("2006-01-02 15:04"), m.PerformedBy)
	if m.Notes != "" {
		fmt.Fprintf(output, "  Notes:    %s\n", m.Notes)
	}
	return nil
}

func runMovementsRecord(serverAlias string, req api.CreateMovementRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	m, err := a.client.CreateMovement(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Recorded %s of cylinder %s\n", m.MovementType, m.CylinderID)
	return nil
}

func runTransactionsList(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	transactions, err := a.client.ListTransactions()
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Fprintln(output, "No transactions found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tTYPE\tSTATUS\tTOTAL\tCREATED")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			t.ID, t.CustomerID, t.TransactionType, t.Status, t.TotalAmount,
			t.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runTransactionsGet(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	t, err := a.client.GetTransaction(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Transaction %s\n", t.ID)
	fmt.Fprintf(output, "  Customer: %s\n", t.CustomerID)
	fmt.Fprintf(output, "  Type:     %s (%s)\n", t.TransactionType, t.Status)
	fmt.Fprintf(output, "  Total:    %.2f\n", t.TotalAmount)
	for _, item := range t.Items {
		fmt.Fprintf(output, "    %s x%d @ %.2f = %.2f\n", item.CylinderID, item.Quantity, item.UnitPrice, item.TotalPrice)
	}
	return nil
}

func runTransactionsCreate(serverAlias string, req api.CreateTransactionRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	t, err := a.client.CreateTransaction(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Opened transaction %s (total %.2f)\n", t.ID, t.TotalAmount)
	return nil
}

func runTransactionsComplete(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	t, err := a.client.CompleteTransaction(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Transaction %s completed\n", t.ID)
	return nil
}

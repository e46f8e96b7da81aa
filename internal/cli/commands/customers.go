package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gastrack-dev/gastrack/internal/api"
)

// NewCustomersCmd creates the customers command group
func NewCustomersCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers and their delivery locations",
	}
	cmd.PersistentFlags().StringVar(&serverAlias, "server", "", "Server alias from gastrack.json")

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersList(serverAlias)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersGet(serverAlias, args[0])
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Register a new customer",
	}
	var createReq api.CreateCustomerRequest
	create.Flags().StringVar(&createReq.Name, "name", "", "Business name")
	create.Flags().StringVar(&createReq.Email, "email", "", "Contact email")
	create.Flags().StringVar(&createReq.Phone, "phone", "", "Contact phone")
	create.Flags().StringVar(&createReq.Address, "address", "", "Street address")
	create.Flags().StringVar(&createReq.City, "city", "", "City")
	create.Flags().StringVar(&createReq.State, "state", "", "State")
	create.Flags().StringVar(&createReq.ZipCode, "zip", "", "Zip code")
	create.Flags().StringVar(&createReq.Country, "country", "", "Country")
	create.Flags().StringVar(&createReq.BusinessType, "business-type", "", "Business type")
	create.Flags().StringVar(&createReq.TaxID, "tax-id", "", "Tax ID")
	create.Flags().Float64Var(&createReq.CreditLimit, "credit-limit", 0, "Credit limit")
	create.Flags().StringVar(&createReq.PaymentTerms, "payment-terms", "net30", "Payment terms")
	create.RunE = func(cmd *cobra.Command, args []string) error {
		return runCustomersCreate(serverAlias, createReq)
	}
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersDelete(serverAlias, args[0])
		},
	})

	locations := &cobra.Command{
		Use:   "locations",
		Short: "Manage a customer's delivery locations",
	}

	locations.AddCommand(&cobra.Command{
		Use:   "ls <customer-id>",
		Short: "List a customer's locations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocationsList(serverAlias, args[0])
		},
	})

	addLocation := &cobra.Command{
		Use:   "add <customer-id>",
		Short: "Add a delivery location",
		Args:  cobra.ExactArgs(1),
	}
	var locReq api.CreateLocationRequest
	addLocation.Flags().StringVar(&locReq.Name, "name", "", "Location name")
	addLocation.Flags().StringVar(&locReq.Address, "address", "", "Street address")
	addLocation.Flags().StringVar(&locReq.City, "city", "", "City")
	addLocation.Flags().StringVar(&locReq.State, "state", "", "State")
	addLocation.Flags().StringVar(&locReq.ZipCode, "zip", "", "Zip code")
	addLocation.Flags().StringVar(&locReq.Country, "country", "", "Country")
	addLocation.Flags().BoolVar(&locReq.IsPrimary, "primary", false, "Mark as primary location")
	addLocation.RunE = func(cmd *cobra.Command, args []string) error {
		return runLocationsAdd(serverAlias, args[0], locReq)
	}
	locations.AddCommand(addLocation)

	locations.AddCommand(&cobra.Command{
		Use:   "rm <customer-id> <location-id>",
		Short: "Remove a delivery location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocationsRemove(serverAlias, args[0], args[1])
		},
	})

	cmd.AddCommand(locations)

	return cmd
}

func runCustomersList(serverAlias string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	customers, err := a.client.ListCustomers()
	if err != nil {
		return err
	}

	if len(customers) == 0 {
		fmt.Fprintln(output, "No customers found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tBUSINESS TYPE\tCREDIT LIMIT")
	for _, c := range customers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n", c.ID, c.Name, c.City, c.BusinessType, c.CreditLimit)
	}
	return w.Flush()
}

func runCustomersGet(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.GetCustomer(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Customer %s\n", c.ID)
	fmt.Fprintf(output, "  Name:     %s (%s)\n", c.Name, c.BusinessType)
	fmt.Fprintf(output, "  Contact:  %s / %s\n", c.Email, c.Phone)
	fmt.Fprintf(output, "  Address:  %s, %s, %s %s, %s\n", c.Address, c.City, c.State, c.ZipCode, c.Country)
	fmt.Fprintf(output, "  Terms:    %s, credit limit %.2f\n", c.PaymentTerms, c.CreditLimit)
	if len(c.Locations) > 0 {
		fmt.Fprintf(output, "  Locations (%d):\n", len(c.Locations))
		for _, l := range c.Locations {
			marker := ""
			if l.IsPrimary {
				marker = " [primary]"
			}
			fmt.Fprintf(output, "    %s: %s, %s%s\n", l.ID, l.Name, l.City, marker)
		}
	}
	return nil
}

func runCustomersCreate(serverAlias string, req api.CreateCustomerRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	c, err := a.client.CreateCustomer(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Created customer %s (%s)\n", c.ID, c.Name)
	return nil
}

func runCustomersDelete(serverAlias, id string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	if err := a.client.DeleteCustomer(id); err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Deleted customer %s\n", id)
	return nil
}

func runLocationsList(serverAlias, customerID string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	locations, err := a.client.ListLocations(customerID)
	if err != nil {
		return err
	}

	if len(locations) == 0 {
		fmt.Fprintln(output, "No locations found.")
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tPRIMARY")
	for _, l := range locations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", l.ID, l.Name, l.City, l.IsPrimary)
	}
	return w.Flush()
}

func runLocationsAdd(serverAlias, customerID string, req api.CreateLocationRequest) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	l, err := a.client.CreateLocation(customerID, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Added location %s (%s)\n", l.ID, l.Name)
	return nil
}

func runLocationsRemove(serverAlias, customerID, locationID string) error {
	a, err := newApp(serverAlias)
	if err != nil {
		return err
	}
	if err := a.requireAuthenticated(); err != nil {
		return err
	}

	if err := a.client.DeleteLocation(customerID, locationID); err != nil {
		return err
	}

	fmt.Fprintf(output, "✓ Removed location %s\n", locationID)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/lexdesk/internal/core/service"
)

var (
	integrationOwner  string
	integrationScopes []string
)

var integrationsCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Manage integration clients",
	Long:  "Manage client credentials for machine access to the API. A client acts on behalf of its owner, limited to its scopes.",
}

var integrationsAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a new integration client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		owner, err := services.API.Users.GetUserByEmail(cmd.Context(), integrationOwner)
		if err != nil {
			return fmt.Errorf("owner not found: %s", integrationOwner)
		}

		client, secret, err := services.API.APIClients.CreateClient(cmd.Context(), label, owner.ID, integrationScopes)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Println("Client created successfully")
		fmt.Printf("Client ID: %s\n", client.ID)
		fmt.Printf("Client Secret: %s\n", secret)
		fmt.Printf("Scopes: %s\n", strings.Join(client.Scopes, ", "))
		fmt.Println("\nIMPORTANT: Save the client secret now. It will not be shown again!")

		return nil
	},
}

var integrationsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete an integration client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Confirm deletion
		if !confirm(fmt.Sprintf("Are you sure you want to delete client '%s'?", clientID)) {
			fmt.Println("Cancelled")
			return nil
		}

		if err := services.API.APIClients.DeleteClient(cmd.Context(), clientID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("Client '%s' deleted successfully\n", clientID)
		return nil
	},
}

var integrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all integration clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.API.APIClients.ListClients(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CLIENT ID\tLABEL\tOWNER\tSCOPES\tCREATED AT")
		for _, client := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				client.ID,
				client.Label,
				client.OwnerID,
				strings.Join(client.Scopes, ","),
				client.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	integrationsAddCmd.Flags().StringVar(&integrationOwner, "owner", "", "email of the user the client acts for")
	integrationsAddCmd.Flags().StringSliceVar(&integrationScopes, "scopes", []string{service.ScopeAll}, "resources the client may use, e.g. agenda,clientes")
	_ = integrationsAddCmd.MarkFlagRequired("owner")

	rootCmd.AddCommand(integrationsCmd)
	integrationsCmd.AddCommand(integrationsAddCmd)
	integrationsCmd.AddCommand(integrationsDeleteCmd)
	integrationsCmd.AddCommand(integrationsListCmd)
}

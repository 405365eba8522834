package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/repository"
)

var (
	userRole     string
	userFullName string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts. Every user owns its own clients, cases and billing.",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user already exists
		_, err = services.API.Users.GetUserByEmail(cmd.Context(), email)
		if err == nil {
			return fmt.Errorf("user already exists: %s", email)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		password, err := readNewPassword("password")
		if err != nil {
			return err
		}

		user, err := services.API.Users.CreateUser(cmd.Context(), email, password, userFullName, domain.Role(userRole))
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created successfully (%s)\n", user.Email, user.Role)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.API.Users.GetUserByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("user not found: %s", email)
		}

		// Confirm deletion
		if !confirm(fmt.Sprintf("Are you sure you want to delete user '%s' and all of its data?", user.Email)) {
			fmt.Println("Cancelled")
			return nil
		}

		if err := services.API.Users.DeleteUser(cmd.Context(), "", user.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Printf("User '%s' deleted successfully\n", user.Email)
		return nil
	},
}

var usersUpdatePasswordCmd = &cobra.Command{
	Use:   "update-password <email>",
	Short: "Update user password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user exists
		user, err := services.API.Users.GetUserByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("user not found: %s", email)
		}

		password, err := readNewPassword("new password")
		if err != nil {
			return err
		}

		if err := services.API.Users.ResetPassword(cmd.Context(), user.ID, password); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("Password updated for user '%s'\n", user.Email)
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <email> <admin|member>",
	Short: "Promote or demote a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.API.Users.GetUserByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user not found: %s", args[0])
		}

		user, err = services.API.Users.SetRole(cmd.Context(), user.ID, domain.Role(args[1]))
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("User '%s' is now %s\n", user.Email, user.Role)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.API.Users.ListUsers(cmd.Context(), repository.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tCREATED AT")
		for _, user := range users {
			name := ""
			if user.FullName != nil {
				name = *user.FullName
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				user.Email,
				name,
				user.Role,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&userRole, "role", string(domain.RoleMember), "role: admin or member")
	usersAddCmd.Flags().StringVar(&userFullName, "name", "", "full name")

	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersUpdatePasswordCmd)
	usersCmd.AddCommand(usersSetRoleCmd)
	usersCmd.AddCommand(usersListCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

func newAdminCommand(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var req domain.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			user, err := e.services.Users.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			success.Fprintf(cmd.OutOrStdout(), "Created %s <%s> (%s) id=%s\n", user.Name, user.Email, user.Role, user.ID)
			return nil
		}),
	}
	create.Flags().StringVar(&req.Email, "email", "", "login email")
	create.Flags().StringVar(&req.Password, "password", "", "login password")
	create.Flags().StringVar(&req.Name, "name", "", "display name")
	create.Flags().StringVar(&req.Role, "role", domain.RoleAdmin, "account role")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	_ = create.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: r.run(func(cmd *cobra.Command, args []string, e *env) error {
			users, err := e.services.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading.Fprintf(out, "%d users\n", len(users))
			for _, u := range users {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role)
			}
			return nil
		}),
	}

	cmd.AddCommand(create, list)
	return cmd
}

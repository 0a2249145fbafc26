package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kubev2v/resort-catalog/internal/access"
	"github.com/kubev2v/resort-catalog/internal/models"
	"github.com/kubev2v/resort-catalog/internal/notify"
)

func newAddUserCommand(v *viper.Viper) *cobra.Command {
	var (
		password      string
		role          string
		adminLogin    string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "add-user <login>",
		Short: "Create a user",
		Long: `Create a user with the given role.

The first user can be created freely. Once users exist, the command must be
authenticated with --as and --as-password as an admin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			cfg, err := loadConfiguration(v)
			if err != nil {
				return err
			}

			s, err := openStore(cmd, v)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			users := s.Users(notify.NewLogObserver())
			user := models.NewUser(args[0], password, role)

			existing, err := users.GetAll(ctx)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				if err := users.Add(ctx, user); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", user.Login)
				return nil
			}

			proxy := access.NewProxy[models.User](users, s.Users(), access.Privileges{
				models.RoleAdmin: cfg.Access.AdminPrivilege,
				models.RoleUser:  cfg.Access.UserPrivilege,
			})
			ok, err := proxy.Login(ctx, adminLogin, adminPassword)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("authentication failed")
			}
			if err := proxy.Add(ctx, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", user.Login)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password of the new user")
	cmd.Flags().StringVar(&role, "role", models.RoleUser, "role of the new user")
	cmd.Flags().StringVar(&adminLogin, "as", "", "login of the admin creating the user")
	cmd.Flags().StringVar(&adminPassword, "as-password", "", "password of the admin creating the user")
	return cmd
}

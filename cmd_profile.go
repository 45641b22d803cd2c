package main

import (
	"fmt"

	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/spf13/cobra"
)

func newSignInCmd(a *app) *cobra.Command {
	var u model.User
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Save your name and email",
		Long: `Stores your profile locally. Nothing leaves this machine.
Signing in again replaces the stored profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := a.planner.SignIn(cmd.Context(), u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", saved.FirstName)
			return nil
		},
	}
	cmd.Flags().StringVar(&u.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&u.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&u.Email, "email", "", "email address")
	return cmd
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.planner.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.FullName(), u.Email)
			return nil
		},
	}
}

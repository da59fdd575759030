package main

import (
	"github.com/spf13/cobra"
	"github.com/target/incident-portal/internal/service"
)

func newPasswordCmd() *cobra.Command {
	var current, next, confirm string
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := service.ValidateNewPassword(next, confirm); err != nil {
				return err
			}
			id := a.session.Identity()
			if id == nil {
				return service.ErrNotLoggedIn
			}
			token, err := a.session.Token(cmd.Context())
			if err != nil {
				return service.ErrNotLoggedIn
			}

			err = a.services.Passwords.Change(cmd.Context(), service.ChangePasswordInput{
				UserID:          id.ID,
				Email:           id.Email,
				Token:           token,
				CurrentPassword: current,
				NewPassword:     next,
			})
			if err != nil {
				return err
			}
			success(a.out, "Senha atualizada com sucesso")
			return nil
		}),
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	for _, f := range []string{"current", "new", "confirm"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

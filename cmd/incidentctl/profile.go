package main

import (
	"github.com/spf13/cobra"
	"github.com/target/incident-portal/internal/service"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Fetch your profile from the backend",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			id, err := a.services.Profile.Current(cmd.Context())
			if err != nil {
				return err
			}
			return printIdentity(a.out, id)
		}),
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var name, email, phone, taxID string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var changes service.ProfileChanges
			flags := cmd.Flags()
			if flags.Changed("name") {
				changes.Name = &name
			}
			if flags.Changed("email") {
				changes.Email = &email
			}
			if flags.Changed("phone") {
				changes.Phone = &phone
			}
			if flags.Changed("cpf") {
				changes.TaxID = &taxID
			}

			updated, err := a.services.Profile.Update(cmd.Context(), changes)
			if err != nil {
				return err
			}
			success(a.out, "Perfil atualizado")
			return printIdentity(a.out, updated)
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&taxID, "cpf", "", "CPF")
	return cmd
}

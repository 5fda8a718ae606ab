package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nivschuman/ElectionResults/internal/identity"
	models "github.com/nivschuman/ElectionResults/internal/models"
	principals "github.com/nivschuman/ElectionResults/internal/principals"
	registry "github.com/nivschuman/ElectionResults/internal/registry"
)

var registration = &registry.Registration{}

var roleName string

func init() {
	addKeyFlag(bootstrapCmd)
	rootCmd.AddCommand(bootstrapCmd)

	addKeyFlag(registerCmd)
	registerCmd.Flags().StringVar(&registration.PrincipalId, "principal", "", "principal id to register")
	registerCmd.Flags().StringVar(&registration.NationalId, "national-id", "", "national id of the principal")
	registerCmd.Flags().StringVar(&roleName, "role", "", "submitter, agent or observer")
	registerCmd.Flags().StringVar(&registration.StationId, "station", "", "station the principal acts for")
	registerCmd.Flags().StringVar(&registration.Party, "party", "", "party of an agent")
	registerCmd.Flags().StringVar(&registration.Organization, "organization", "", "organization of a submitter or observer")
	registerCmd.MarkFlagRequired("principal")
	registerCmd.MarkFlagRequired("role")
	registerCmd.MarkFlagRequired("station")
	rootCmd.AddCommand(registerCmd)

	addKeyFlag(deactivateCmd)
	rootCmd.AddCommand(deactivateCmd)

	rootCmd.AddCommand(principalCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <roster.json>",
	Short: "Register every principal of a roster file as the registry owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		entries, err := principals.RosterFromJSON(data)
		if err != nil {
			return err
		}

		callerId, err := authenticate(identity.ActionRegister, args[0], data)
		if err != nil {
			return err
		}

		registered, err := principals.Bootstrap(node.Registry, callerId, entries)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "registered %d principals\n", len(registered))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register or overwrite a principal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(roleName)
		if err != nil {
			return err
		}
		registration.Role = role

		payload, err := json.Marshal(registration)
		if err != nil {
			return err
		}

		callerId, err := authenticate(identity.ActionRegister, registration.PrincipalId, payload)
		if err != nil {
			return err
		}

		principal, err := node.Registry.Register(callerId, registration)
		if err != nil {
			return err
		}

		printPrincipals(cmd, []*models.Principal{principal})
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <principal-id>",
	Short: "Deactivate a principal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		callerId, err := authenticate(identity.ActionDeactivate, args[0], nil)
		if err != nil {
			return err
		}

		if err := node.Registry.Deactivate(callerId, args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", args[0])
		return nil
	},
}

var principalCmd = &cobra.Command{
	Use:   "principal [principal-id]",
	Short: "Show one principal or list all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			principal, err := node.Registry.Lookup(args[0])
			if err != nil {
				return err
			}

			printPrincipals(cmd, []*models.Principal{principal})
			return nil
		}

		all, err := node.Registry.List()
		if err != nil {
			return err
		}

		printPrincipals(cmd, all)
		return nil
	},
}

func printPrincipals(cmd *cobra.Command, list []*models.Principal) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROLE\tSTATION\tAFFILIATION\tACTIVE")
	for _, principal := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", principal.Id, principal.Role, principal.StationId, principal.Affiliation(), principal.Active)
	}
	w.Flush()
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/target/incident-portal/internal/domain/model"
	apperrors "github.com/target/incident-portal/internal/errors"
)

func newIncidentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incidents",
		Aliases: []string{"incident", "inc"},
		Short:   "Register, list and administer incidents",
	}
	cmd.AddCommand(
		newIncidentListCmd(),
		newIncidentGetCmd(),
		newIncidentCreateCmd(),
		newIncidentUpdateCmd(),
		newIncidentDeleteCmd(),
		newIncidentResolveCmd(),
		newIncidentBySeverityCmd(),
		newIncidentStatsCmd(),
	)
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField("id", fmt.Sprintf("invalid incident id %q", raw))
	}
	return id, nil
}

func parseDay(flag, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperrors.ValidationField(flag, fmt.Sprintf("%s must be YYYY-MM-DD", flag))
	}
	return t, nil
}

func parseSeverityFlag(raw string) (*model.Severity, error) {
	if raw == "" {
		return nil, nil
	}
	sev, err := model.ParseSeverity(raw)
	if err != nil {
		return nil, apperrors.ValidationField("gravidade", err.Error())
	}
	return &sev, nil
}

func newIncidentListCmd() *cobra.Command {
	var status, severity, from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			filter := model.IncidentFilter{Status: model.IncidentStatus(status)}
			var err error
			if filter.Severity, err = parseSeverityFlag(severity); err != nil {
				return err
			}
			if filter.From, err = parseDay("from", from); err != nil {
				return err
			}
			if filter.To, err = parseDay("to", to); err != nil {
				return err
			}

			list, err := a.services.Incidents.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printIncidents(a.out, list)
		}),
	}
	cmd.Flags().StringVar(&status, "status", "all", "all, resolved or pending")
	cmd.Flags().StringVar(&severity, "severity", "", "baixa, media or alta")
	cmd.Flags().StringVar(&from, "from", "", "first creation day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last creation day, YYYY-MM-DD")
	return cmd
}

func newIncidentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one incident",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inc, err := a.services.Incidents.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printIncident(a.out, inc)
		}),
	}
}

func newIncidentCreateCmd() *cobra.Command {
	var req model.CreateIncidentRequest
	var severity, imageURL string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an incident",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var err error
			if req.Severity, err = parseSeverityFlag(severity); err != nil {
				return err
			}
			if cmd.Flags().Changed("image-url") {
				req.ImageURL = &imageURL
			}
			inc, err := a.services.Incidents.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			success(a.out, "Incidente %d registrado", inc.ID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "incident title")
	cmd.Flags().StringVar(&req.Description, "description", "", "what happened")
	cmd.Flags().StringVar(&req.Latitude, "location", "", "place name or latitude")
	cmd.Flags().StringVar(&req.Longitude, "longitude", "", "longitude")
	cmd.Flags().StringVar(&severity, "severity", "", "baixa, media or alta")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "link to a photo")
	return cmd
}

func newIncidentUpdateCmd() *cobra.Command {
	var name, description, location, longitude, severity string
	var resolved bool
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an incident (ADMIN or MANAGER)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			inc, err := a.services.Incidents.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				inc.Name = name
			}
			if flags.Changed("description") {
				inc.Description = description
			}
			if flags.Changed("location") {
				inc.Latitude = location
			}
			if flags.Changed("longitude") {
				inc.Longitude = longitude
			}
			if flags.Changed("severity") {
				if inc.Severity, err = parseSeverityFlag(severity); err != nil {
					return err
				}
			}
			if flags.Changed("resolved") {
				inc.Resolved = resolved
			}

			updated, err := a.services.Incidents.Update(ctx, id, inc)
			if err != nil {
				return err
			}
			success(a.out, "Incidente %d atualizado", updated.ID)
			return printIncident(a.out, updated)
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "incident title")
	cmd.Flags().StringVar(&description, "description", "", "what happened")
	cmd.Flags().StringVar(&location, "location", "", "place name or latitude")
	cmd.Flags().StringVar(&longitude, "longitude", "", "longitude")
	cmd.Flags().StringVar(&severity, "severity", "", "baixa, media or alta")
	cmd.Flags().BoolVar(&resolved, "resolved", false, "resolution state")
	return cmd
}

func newIncidentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an incident (ADMIN or MANAGER)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.services.Incidents.Delete(cmd.Context(), id); err != nil {
				return err
			}
			success(a.out, "Incidente %d excluído", id)
			return nil
		}),
	}
}

func newIncidentResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ID",
		Short: "Mark an incident as resolved (ADMIN or MANAGER)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inc, err := a.services.Incidents.Resolve(cmd.Context(), id)
			if err != nil {
				return err
			}
			success(a.out, "Incidente %d resolvido", inc.ID)
			return nil
		}),
	}
}

func newIncidentBySeverityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-severity SEVERITY",
		Short: "List incidents of one severity",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			sev, err := parseSeverityFlag(args[0])
			if err != nil {
				return err
			}
			if sev == nil {
				return apperrors.ValidationField("gravidade", "severity is required")
			}
			list, err := a.services.Incidents.BySeverity(cmd.Context(), *sev)
			if err != nil {
				return err
			}
			return printIncidents(a.out, list)
		}),
	}
}

func newIncidentStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize incidents (ADMIN or MANAGER)",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			stats, err := a.services.Incidents.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printStats(a.out, stats)
		}),
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/domain/model"
)

// printNavigator reports session redirects on w.
type printNavigator struct {
	w io.Writer
}

func newPrintNavigator(w io.Writer) *printNavigator {
	return &printNavigator{w: w}
}

func (n *printNavigator) Navigate(_ context.Context, path string) error {
	_, err := fmt.Fprintf(n.w, "redirect: %s\n", path)
	return err
}

func success(w io.Writer, format string, args ...any) {
	pterm.Success.WithWriter(w).Printfln(format, args...)
}

func info(w io.Writer, format string, args ...any) {
	pterm.Info.WithWriter(w).Printfln(format, args...)
}

func printIdentity(w io.Writer, id domainauth.Identity) error {
	data := pterm.TableData{
		{"ID", strconv.FormatInt(id.ID, 10)},
		{"Nome", id.Name},
		{"E-mail", id.Email},
		{"Cargo", id.Role.String()},
	}
	if id.Sector != "" {
		data = append(data, []string{"Setor", id.Sector})
	}
	if id.Phone != "" {
		data = append(data, []string{"Telefone", id.Phone})
	}
	if id.TaxID != "" {
		data = append(data, []string{"CPF", id.TaxID})
	}
	return pterm.DefaultTable.WithWriter(w).WithData(data).Render()
}

func printIncidents(w io.Writer, list []model.Incident) error {
	if len(list) == 0 {
		info(w, "Nenhum incidente encontrado")
		return nil
	}
	data := pterm.TableData{{"ID", "Nome", "Local", "Gravidade", "Status", "Criado em"}}
	for _, inc := range list {
		data = append(data, []string{
			strconv.FormatInt(inc.ID, 10),
			inc.Name,
			inc.Latitude,
			severityLabel(inc.Severity),
			statusLabel(inc.Resolved),
			dateLabel(inc.CreatedAt),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func printIncident(w io.Writer, inc model.Incident) error {
	data := pterm.TableData{
		{"ID", strconv.FormatInt(inc.ID, 10)},
		{"Nome", inc.Name},
		{"Descrição", inc.Description},
		{"Local", inc.Latitude},
		{"Longitude", inc.Longitude},
		{"Gravidade", severityLabel(inc.Severity)},
		{"Status", statusLabel(inc.Resolved)},
		{"Criado em", dateLabel(inc.CreatedAt)},
	}
	if inc.Creator != nil {
		data = append(data, []string{"Criador", strconv.FormatInt(inc.Creator.ID, 10)})
	}
	if inc.ImageURL != nil {
		data = append(data, []string{"Imagem", *inc.ImageURL})
	}
	return pterm.DefaultTable.WithWriter(w).WithData(data).Render()
}

func printStats(w io.Writer, s model.IncidentStats) error {
	data := pterm.TableData{
		{"Total", "Resolvidos", "Pendentes", "Alta", "Média", "Baixa"},
		{
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Resolved),
			strconv.Itoa(s.Pending),
			strconv.Itoa(s.High),
			strconv.Itoa(s.Medium),
			strconv.Itoa(s.Low),
		},
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func severityLabel(s *model.Severity) string {
	if s == nil {
		return "-"
	}
	return s.String()
}

func statusLabel(resolved bool) string {
	if resolved {
		return "Resolvido"
	}
	return "Pendente"
}

func dateLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

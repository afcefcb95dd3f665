// Package report renders the downloadable reporting formats shared by the
// HTTP layer and the admin CLI.
package report

import (
	"fmt"
	"strings"

	"quejas/backend/internal/models"
)

// RenderEntityCSV produces the per-entity report in the exact format the
// download consumers expect: fixed Spanish header, quoted name and date,
// bare count.
func RenderEntityCSV(counts []models.EntityCount, reportDate string) string {
	var b strings.Builder
	b.WriteString("Entidad,Total Quejas,Fecha Reporte\n")
	for _, row := range counts {
		name := strings.ReplaceAll(row.EntityName, `"`, `""`)
		fmt.Fprintf(&b, "\"%s\",%d,\"%s\"\n", name, row.Count, reportDate)
	}
	return b.String()
}

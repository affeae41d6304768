package transform

import (
	"strings"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// GradeFallback grade of a SKU missing from the grade sheet
const GradeFallback = "N/A"

// GradeMap SKU -> product grade lookup. Read-only once built.
type GradeMap struct {
	grades map[string]string
}

// BuildGradeMap reads the grade sheet positionally: first column SKU,
// second column grade. Later rows overwrite earlier ones for the same SKU.
func BuildGradeMap(sheet entity.Sheet) (GradeMap, error) {
	if width := sheet.Width(); width < 2 {
		return GradeMap{}, entity.NewStructuralError(sheet.Name,
			"grade sheet needs two columns (SKU, grade), found %d", width)
	}

	grades := make(map[string]string, len(sheet.Rows))
	for _, row := range sheet.Rows {
		sku := strings.TrimSpace(entity.CellAt(row, 0))
		if sku == "" {
			continue
		}

		grade := strings.TrimSpace(entity.CellAt(row, 1))
		if grade == "" {
			delete(grades, sku)
			continue
		}
		grades[sku] = grade
	}

	return GradeMap{grades: grades}, nil
}

// Grade never fails: unknown SKUs get GradeFallback.
func (g GradeMap) Grade(sku string) string {
	if grade, ok := g.grades[strings.TrimSpace(sku)]; ok {
		return grade
	}
	return GradeFallback
}

// Len number of SKUs with a grade.
func (g GradeMap) Len() int {
	return len(g.grades)
}

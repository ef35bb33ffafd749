package checks

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// SchemaReport is the result of a database schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table of a SchemaReport.
type TableReport struct {
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that every model's table exists with all its tagged columns.
// Models must implement TableName.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}
	migrator := db.Migrator()

	for _, model := range models {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := tabler.TableName()

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if !migrator.HasTable(tableName) {
			tbl.Status = "error"
			report.Matched = false
			report.Tables[tableName] = tbl
			continue
		}
		tbl.Exists = true

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		actual := make(map[string]struct{}, len(columnTypes))
		for _, ct := range columnTypes {
			actual[strings.ToLower(ct.Name())] = struct{}{}
		}

		t := reflect.TypeOf(model)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		for i := 0; i < t.NumField(); i++ {
			col := parseGormColumn(t.Field(i).Tag.Get("gorm"))
			if col == "" {
				continue
			}
			if _, exists := actual[col]; !exists {
				tbl.MissingColumns = append(tbl.MissingColumns, col)
				tbl.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[tableName] = tbl
	}

	return report, nil
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

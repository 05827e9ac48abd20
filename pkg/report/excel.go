package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes the summary as an Excel workbook with one sheet per
// analysis section.
func WriteWorkbook(path string, s *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Descriptives"); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeDescriptivesSheet(f, s); err != nil {
		return err
	}

	if s.ANOVA != nil {
		if _, err := f.NewSheet("ANOVA"); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeANOVASheet(f, s); err != nil {
			return err
		}
	}
	if s.OLS != nil {
		if _, err := f.NewSheet("Regression"); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeRegressionSheet(f, s); err != nil {
			return err
		}
	}
	if s.Correlations != nil {
		if _, err := f.NewSheet("Correlations"); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeCorrelationSheet(f, s); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell (%d, %d): %w", i+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func writeDescriptivesSheet(f *excelize.File, s *Summary) error {
	const sheet = "Descriptives"
	if err := setRow(f, sheet, 1, []interface{}{"Store", "N", "Mean", "SD", "Min", "Q1", "Median", "Q3", "Max"}); err != nil {
		return err
	}
	row := 2
	for _, g := range s.ByStore {
		d := g.Stats
		if err := setRow(f, sheet, row, []interface{}{g.Group, d.Count, d.Mean, d.StdDev, d.Min, d.Q1, d.Median, d.Q3, d.Max}); err != nil {
			return err
		}
		row++
	}
	d := s.Overall
	return setRow(f, sheet, row, []interface{}{"all", d.Count, d.Mean, d.StdDev, d.Min, d.Q1, d.Median, d.Q3, d.Max})
}

func writeANOVASheet(f *excelize.File, s *Summary) error {
	const sheet = "ANOVA"
	a := s.ANOVA
	if err := setRow(f, sheet, 1, []interface{}{"Source", "SS", "df", "MS", "F", "p"}); err != nil {
		return err
	}
	if err := setRow(f, sheet, 2, []interface{}{"Between stores", a.SSBetween, a.DFBetween, a.MSBetween, a.F, a.P}); err != nil {
		return err
	}
	if err := setRow(f, sheet, 3, []interface{}{"Within stores", a.SSWithin, a.DFWithin, a.MSWithin, "", ""}); err != nil {
		return err
	}
	if err := setRow(f, sheet, 5, []interface{}{"Eta squared", a.EtaSquared}); err != nil {
		return err
	}

	if s.Tukey != nil {
		if err := setRow(f, sheet, 7, []interface{}{"Tukey HSD", "Diff", "SE", "q", "p", "Lower", "Upper"}); err != nil {
			return err
		}
		row := 8
		for _, c := range s.Tukey.Comparisons {
			pair := fmt.Sprintf("%s - %s", c.GroupA, c.GroupB)
			if err := setRow(f, sheet, row, []interface{}{pair, c.MeanDiff, c.SE, c.Q, c.P, c.Lower, c.Upper}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeRegressionSheet(f *excelize.File, s *Summary) error {
	const sheet = "Regression"
	o := s.OLS
	if err := setRow(f, sheet, 1, []interface{}{"Term", "Estimate", "SE", "t", "p", "Lower", "Upper"}); err != nil {
		return err
	}
	row := 2
	for _, c := range o.Coefficients {
		if err := setRow(f, sheet, row, []interface{}{c.Name, c.Estimate, c.StdErr, c.T, c.P, c.Lower, c.Upper}); err != nil {
			return err
		}
		row++
	}
	row++
	if err := setRow(f, sheet, row, []interface{}{"R2", o.R2}); err != nil {
		return err
	}
	if err := setRow(f, sheet, row+1, []interface{}{"Adjusted R2", o.AdjR2}); err != nil {
		return err
	}
	if err := setRow(f, sheet, row+2, []interface{}{"F", o.F, "p", o.FP}); err != nil {
		return err
	}
	return setRow(f, sheet, row+3, []interface{}{"Residual SE", o.ResidualStdErr})
}

func writeCorrelationSheet(f *excelize.File, s *Summary) error {
	const sheet = "Correlations"
	m := s.Correlations
	header := make([]interface{}, 0, len(m.Names)+1)
	header = append(header, "")
	for _, n := range m.Names {
		header = append(header, n)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, n := range m.Names {
		row := make([]interface{}, 0, len(m.Names)+1)
		row = append(row, n)
		for j := range m.Names {
			row = append(row, m.R[i][j])
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/security/validation"
)

const exportSheet = "Policies"

var exportHeaders = []string{
	"ID", "Source", "Policy Number", "Insured Amount", "Premium", "Commission",
	"Tax Amount", "Admin Fee", "Policy Fee", "Start Date", "End Date",
	"Effective Date", "Renewal Date", "Policy Type", "Client Type", "Client Ref",
	"Insurer", "Insurer Policy Number", "Product", "Business Description",
	"Business Event", "Root Policy Ref",
}

type exportServiceImpl struct{}

func NewExportService() ExportService {
	return &exportServiceImpl{}
}

// WriteXLSX writes one header row plus one row per policy. Text cells are
// sanitised against spreadsheet formula injection.
func (s *exportServiceImpl) WriteXLSX(w io.Writer, policies []models.CanonicalPolicy) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, p := range policies {
		row := exportRow(p)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func exportRow(p models.CanonicalPolicy) []interface{} {
	text := validation.SanitizeCell
	return []interface{}{
		text(p.ID), string(p.Source), text(p.PolicyNumber), p.InsuredAmount, p.Premium, p.Commission,
		p.TaxAmount, p.AdminFee, p.PolicyFee, text(p.StartDate), text(p.EndDate),
		text(p.EffectiveDate), text(p.RenewalDate), text(p.PolicyType), text(p.ClientType), text(p.ClientRef),
		text(p.Insurer), text(p.InsurerPolicyNumber), text(p.Product), text(p.BusinessDescription),
		text(p.BusinessEvent), text(p.RootPolicyRef),
	}
}

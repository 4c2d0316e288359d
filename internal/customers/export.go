package customers

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pawan-gold/goldcrest/internal/backend"
	"github.com/pawan-gold/goldcrest/internal/shared"
)

// Export drain parameters. The loop stops on the first short page, which
// truncates the export when the final page is exactly full; tests pin the
// behaviour so a fix is a deliberate change.
const (
	exportPageSize = 100
	exportMaxPages = 50
)

var exportHeader = []string{
	"ID", "Name", "Mobile", "Address", "Purpose", "Staff",
	"Whatsapp", "Notification", "Joining Date", "Latitude", "Longitude",
}

// ExportFilename names the download after the active date floor.
func ExportFilename(from string) string {
	if from != "" {
		return "customers_from_" + from + ".csv"
	}
	return "customers_all.csv"
}

// Export drains the customer listing page by page and writes one CSV. Rows
// keep the server's return order. Zero matching rows yields ErrNoRecords
// and nothing is written.
func (s *Service) Export(ctx context.Context, w io.Writer, from string) (int, error) {
	filter := backend.CustomerFilter{StartDate: from}

	var collected []backend.Customer
	for page := 1; page <= exportMaxPages; page++ {
		envelope, err := shared.RetryOnce(ctx, func(ctx context.Context) (backend.CustomerPage, error) {
			if filter.Empty() {
				return s.api.ListCustomers(ctx, page, exportPageSize, nil)
			}
			return s.api.FilterCustomers(ctx, page, exportPageSize, filter)
		})
		if err != nil {
			return 0, err
		}
		for _, c := range envelope.Data {
			if from != "" && c.JoiningDate < from {
				continue
			}
			collected = append(collected, c)
		}
		if len(envelope.Data) < exportPageSize {
			break
		}
	}

	if len(collected) == 0 {
		return 0, shared.ErrNoRecords
	}

	index := s.directory.Index(ctx)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, c := range collected {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.MobNo,
			c.Address,
			index.PurposeName(c.Purpose),
			index.StaffName(c.StaffID),
			c.Whatsapp,
			c.Notification,
			c.JoiningDate,
			coordString(c.Latitude),
			coordString(c.Longitude),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(collected), nil
}

func coordString(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

package pipeline

import (
	"testing"
	"time"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/model"
)

const sampleCSV = "\ufeffPOLO,EQUIPE,DATA DO SERVIÇO,COLABORADORA (BAIXA),OBS\n" +
	"MARABA,EQ 01,05/03/2024,ANA,\n" +
	"marabá,EQ01,05/03/2024,,revisit\n" +
	"Canaa,EQ02,06/03/2024,,\n" +
	"TUCURUI,EQ 03,31/02/2024,,\n" +
	",EQ04,07/03/2024,,\n" +
	"JACUNDA,EQ05,01/01/2019,,\n" +
	",,,,\n"

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	cfg := config.Default()
	cfg.Normalize.Timezone = "UTC"
	return NewNormalizer(cfg.Normalize, cfg.Source.Columns)
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// rec builds a valid record dated y-m-d.
func rec(site, team string, y int, m time.Month, d int) model.CanonicalRecord {
	return model.CanonicalRecord{
		Site:        site,
		Team:        team,
		ServiceDate: day(y, m, d),
		Year:        y,
		Month:       int(m),
	}
}

func closed(r model.CanonicalRecord) model.CanonicalRecord {
	r.Closure = "MARIA"
	return r
}

func typed(r model.CanonicalRecord, serviceType string) model.CanonicalRecord {
	r.ServiceType = serviceType
	return r
}

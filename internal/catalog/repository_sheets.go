package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/voyagekit/packlist-backend/internal/config"
)

// SheetsRepository reads the product catalog from a Google Sheets range and
// normalizes the rows through ParseTable. Rows that fail validation are
// logged and skipped.
type SheetsRepository struct {
	cfg config.Config
	log *zap.Logger

	// newService is swappable in tests.
	newService func(ctx context.Context) (*sheets.Service, error)
}

func NewSheetsRepository(cfg config.Config, log *zap.Logger) *SheetsRepository {
	r := &SheetsRepository{cfg: cfg, log: log}
	r.newService = r.buildService
	return r
}

func (r *SheetsRepository) buildService(ctx context.Context) (*sheets.Service, error) {
	scope := option.WithScopes(sheets.SpreadsheetsReadonlyScope)
	if r.cfg.CredentialsFile != "" {
		return sheets.NewService(ctx, option.WithCredentialsFile(r.cfg.CredentialsFile), scope)
	}
	if r.cfg.ServiceAccountEmail != "" && r.cfg.ServiceAccountKey != "" {
		// keys arriving through env have literal \n sequences
		key := strings.ReplaceAll(r.cfg.ServiceAccountKey, `\n`, "\n")
		creds := serviceAccountJSON(r.cfg.ServiceAccountEmail, key)
		return sheets.NewService(ctx, option.WithCredentialsJSON(creds), scope)
	}
	return nil, fmt.Errorf("no sheets credentials configured: %w", ErrSourceUnavailable)
}

func (r *SheetsRepository) List(ctx context.Context) ([]ProductRecord, error) {
	if r.cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet configured: %w", ErrSourceUnavailable)
	}
	svc, err := r.newService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(r.cfg.SpreadsheetID, r.cfg.ProductsRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets read: %w", err)
	}

	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, fmt.Sprint(c))
		}
		values = append(values, cells)
	}

	records, diags := ParseTable(values)
	for _, d := range diags {
		r.log.Warn("dropping catalog row", zap.Int("row", d.Row), zap.String("reason", d.Reason))
	}
	return Dedupe(records), nil
}

func serviceAccountJSON(email, key string) []byte {
	creds := struct {
		Type       string `json:"type"`
		ClientMail string `json:"client_email"`
		PrivateKey string `json:"private_key"`
		TokenURI   string `json:"token_uri"`
	}{
		Type:       "service_account",
		ClientMail: email,
		PrivateKey: key,
		TokenURI:   "https://oauth2.googleapis.com/token",
	}
	b, _ := json.Marshal(creds)
	return b
}

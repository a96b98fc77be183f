package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benchfolio/backend/internal/apperrors"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/repository"
)

// Column names of the brokerage trade-history export. Matching is
// case-insensitive; only the required columns must be present.
var (
	requiredCSVColumns = []string{"tradedate", "action", "amount", "recordtype"}
	optionalCSVColumns = []string{"symbol", "quantity", "price", "description"}
)

// actionTypes maps export Action values onto the trade type enum.
// Unknown actions fall through to TradeOther, which the extraction filter
// ignores, so an unrecognised row can never distort the computed rates.
var actionTypes = map[string]model.TradeType{
	"buy":      model.TradeBuy,
	"sell":     model.TradeSell,
	"dividend": model.TradeDividend,
	"div":      model.TradeDividend,
	"fee":      model.TradeFee,
	"transfer": model.TradeTransfer,
	"xfer":     model.TradeTransfer,
}

// ImportSummary reports the outcome of a trade-history import.
type ImportSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService parses brokerage trade-history CSV exports into trade rows
// scoped to an upload session.
type ImportService struct {
	tradeRepo *repository.TradeRepository
}

// NewImportService creates a new ImportService with the provided repository dependencies.
func NewImportService(tradeRepo *repository.TradeRepository) *ImportService {
	return &ImportService{tradeRepo: tradeRepo}
}

// ImportTrades parses a trade-history CSV and stores its rows for the given
// session, replacing any previously imported trades so a corrected export
// can simply be re-uploaded.
//
// Rows whose RecordType is not "Trade" and rows with an unparseable date or
// amount are counted as skipped rather than failing the import; a missing
// required column fails with apperrors.ErrInvalidCSVHeaders.
func (s *ImportService) ImportTrades(ctx context.Context, sessionID string, r io.Reader) (ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	var trades []model.Trade

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportSummary{}, fmt.Errorf("failed to read CSV row: %w", err)
		}

		trade, ok := s.parseRow(sessionID, record, columns)
		if !ok {
			summary.Skipped++
			continue
		}
		trades = append(trades, trade)
	}

	if err := s.tradeRepo.DeleteBySession(ctx, sessionID); err != nil {
		return ImportSummary{}, err
	}
	if err := s.tradeRepo.InsertTrades(ctx, trades); err != nil {
		return ImportSummary{}, err
	}

	summary.Imported = len(trades)
	return summary, nil
}

// GetTrades returns all imported trades for a session, ordered by date.
func (s *ImportService) GetTrades(sessionID string) ([]model.Trade, error) {
	return s.tradeRepo.GetTradesBySession(sessionID)
}

// parseRow converts one CSV record into a trade. The second return value is
// false when the row should be skipped.
func (s *ImportService) parseRow(sessionID string, record []string, columns map[string]int) (model.Trade, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	if !strings.EqualFold(field("recordtype"), "Trade") {
		return model.Trade{}, false
	}

	date, err := parseTradeDate(field("tradedate"))
	if err != nil {
		return model.Trade{}, false
	}
	amount, err := parseDecimal(field("amount"))
	if err != nil {
		return model.Trade{}, false
	}

	tradeType, ok := actionTypes[strings.ToLower(field("action"))]
	if !ok {
		tradeType = model.TradeOther
	}

	quantity, _ := parseDecimal(field("quantity"))
	price, _ := parseDecimal(field("price"))

	return model.Trade{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Date:        date,
		Type:        tradeType,
		Symbol:      field("symbol"),
		Description: field("description"),
		Quantity:    quantity,
		Price:       price,
		Amount:      amount,
	}, true
}

// indexColumns maps lowercased header names to their positions and checks
// that every required column is present.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredCSVColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", apperrors.ErrInvalidCSVHeaders, strings.Join(missing, ", "))
	}
	return columns, nil
}

// parseTradeDate accepts the ISO layout used by recent exports and the
// US layout found in older ones.
func parseTradeDate(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse("01/02/2006", str)
		if err != nil {
			return time.Time{}, err
		}
	}
	return t.UTC(), nil
}

// parseDecimal parses a dollar amount, tolerating currency symbols and
// thousands separators.
func parseDecimal(str string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(str)
	if cleaned == "" {
		return 0, fmt.Errorf("empty decimal")
	}
	return strconv.ParseFloat(cleaned, 64)
}

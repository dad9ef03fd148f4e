// Package ofx imports OFX/QFX statement files as an offline alternative to
// the aggregator API.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/harwellgs/pocketsage/internal/model"
)

// Importer parses OFX/QFX files into upstream wire-shaped transactions.
type Importer struct {
	logger *slog.Logger
}

// NewImporter creates a new OFX importer.
func NewImporter() *Importer {
	return &Importer{
		logger: slog.Default().With("component", "ofx"),
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (i *Importer) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Import parses an OFX/QFX file and returns its transactions in the same
// wire shape the aggregator produces, so they flow through the normalizer
// and aggregator unchanged.
func (i *Importer) Import(reader io.Reader) ([]model.RawTransaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(i.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.RawTransaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			currency := stmt.CurDef.String()
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, i.convertTransaction(ofxTx, currency))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			currency := stmt.CurDef.String()
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, i.convertTransaction(ofxTx, currency))
			}
		}
	}

	i.logger.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction maps one OFX transaction into the aggregator wire shape.
// The raw OFX sign convention is preserved; the normalizer re-derives signs.
func (i *Importer) convertTransaction(ofxTx ofxgo.Transaction, currency string) model.RawTransaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	raw := model.RawTransaction{
		ID:       string(ofxTx.FiTID),
		Name:     i.extractName(ofxTx),
		Date:     ofxTx.DtPosted.Time.Format("2006-01-02"),
		Amount:   amount,
		Currency: currency,
	}

	// OFX carries no category labels; the transaction type is the closest
	// thing to one.
	switch fmt.Sprintf("%v", ofxTx.TrnType) {
	case "INT", "DIV", "DIRECTDEP":
		raw.PrimaryCategory = "Income"
	case "FEE", "SRVCHG":
		raw.PrimaryCategory = "Bank Fees"
	case "ATM", "CASH":
		raw.PrimaryCategory = "Cash & ATM"
	}

	return raw
}

// extractName tries to get a clean merchant name from OFX data.
func (i *Importer) extractName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date stamps some banks prepend
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
